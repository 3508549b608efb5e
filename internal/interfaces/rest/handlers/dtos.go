package handlers

import (
	"time"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/domain"
)

type createBookingRequest struct {
	PropertyID  string  `json:"property_id" validate:"required,uuid4"`
	Email       string  `json:"email" validate:"required,email"`
	CheckIn     string  `json:"check_in" validate:"required"`
	CheckOut    string  `json:"check_out" validate:"required"`
	Guests      int     `json:"guests" validate:"required,gt=0"`
	NightlyRate float64 `json:"nightly_rate" validate:"required,gt=0"`
}

type initiatePaymentRequest struct {
	BookingID   string  `json:"booking_id" validate:"required,uuid4"`
	FirstName   string  `json:"first_name" validate:"required"`
	LastName    string  `json:"last_name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// webhookRequest is Chapa's callback body. Chapa has shipped both field names
// for the transaction reference over time, so both are accepted.
type webhookRequest struct {
	TxRef  string `json:"tx_ref"`
	TrxRef string `json:"trx_ref"`
	Status string `json:"status"`
}

type bookingResponse struct {
	ID          string    `json:"id"`
	Reference   string    `json:"reference"`
	PropertyID  string    `json:"property_id"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	Guests      int       `json:"guests"`
	NightlyRate string    `json:"nightly_rate"`
	TotalNights int       `json:"total_nights"`
	TotalPrice  string    `json:"total_price"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type paymentResponse struct {
	TransactionRef string     `json:"transaction_ref"`
	BookingID      string     `json:"booking_id"`
	Amount         string     `json:"amount"`
	Currency       string     `json:"currency"`
	Status         string     `json:"status"`
	CheckoutURL    *string    `json:"checkout_url,omitempty"`
	GatewayRef     *string    `json:"gateway_ref,omitempty"`
	PaymentMethod  *string    `json:"payment_method,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

type verifyResponse struct {
	TransactionRef string `json:"transaction_ref"`
	Status         string `json:"status"`
	Transitioned   bool   `json:"transitioned"`
}

type bookingPaymentStatusResponse struct {
	Booking bookingResponse  `json:"booking"`
	Payment *paymentResponse `json:"payment,omitempty"`
}

type summaryResponse struct {
	TotalPayments      int    `json:"total_payments"`
	SuccessfulPayments int    `json:"successful_payments"`
	PendingPayments    int    `json:"pending_payments"`
	FailedPayments     int    `json:"failed_payments"`
	TotalSpent         string `json:"total_spent"`
	Currency           string `json:"currency"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:          b.ID.String(),
		Reference:   b.Reference,
		PropertyID:  b.PropertyID.String(),
		CheckIn:     b.CheckIn,
		CheckOut:    b.CheckOut,
		Guests:      b.Guests,
		NightlyRate: b.NightlyRate.StringFixed(2),
		TotalNights: b.TotalNights(),
		TotalPrice:  b.TotalPrice().StringFixed(2),
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
	}
}

func toPaymentResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		TransactionRef: p.TransactionRef,
		BookingID:      p.BookingID.String(),
		Amount:         p.Amount.StringFixed(2),
		Currency:       string(p.Currency),
		Status:         string(p.Status),
		CheckoutURL:    p.CheckoutURL,
		GatewayRef:     p.GatewayRef,
		PaymentMethod:  p.PaymentMethod,
		CreatedAt:      p.CreatedAt,
		CompletedAt:    p.CompletedAt,
	}
}

func toSummaryResponse(s *application.PaymentSummary) summaryResponse {
	return summaryResponse{
		TotalPayments:      s.TotalPayments,
		SuccessfulPayments: s.SuccessfulPayments,
		PendingPayments:    s.PendingPayments,
		FailedPayments:     s.FailedPayments,
		TotalSpent:         s.TotalSpent.StringFixed(2),
		Currency:           string(s.Currency),
	}
}
