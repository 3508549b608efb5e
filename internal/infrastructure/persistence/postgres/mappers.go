package postgres

import (
	"fmt"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/domain"
	"github.com/shopspring/decimal"
)

// toDomainPayment: maps db model to domain entity
func toDomainPayment(m paymentModel) (*domain.Payment, error) {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q for payment %s: %w", m.Amount, m.ID, err)
	}
	return &domain.Payment{
		ID:             m.ID,
		BookingID:      m.BookingID,
		TransactionRef: m.TransactionRef,
		GatewayRef:     m.GatewayRef,
		Amount:         amount,
		Currency:       domain.Currency(m.Currency),
		Status:         domain.PaymentStatus(m.Status),
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		PhoneNumber:    m.PhoneNumber,
		PaymentMethod:  m.PaymentMethod,
		CheckoutURL:    m.CheckoutURL,
		GatewayPayload: m.GatewayPayload,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		CompletedAt:    m.CompletedAt,
	}, nil
}

// toDomainBooking: maps db model to domain entity
func toDomainBooking(m bookingModel) (*domain.Booking, error) {
	rate, err := decimal.NewFromString(m.NightlyRate)
	if err != nil {
		return nil, fmt.Errorf("invalid nightly rate %q for booking %s: %w", m.NightlyRate, m.ID, err)
	}
	return &domain.Booking{
		ID:          m.ID,
		Reference:   m.Reference,
		PropertyID:  m.PropertyID,
		UserID:      m.UserID,
		Email:       m.Email,
		CheckIn:     m.CheckIn,
		CheckOut:    m.CheckOut,
		Guests:      m.Guests,
		NightlyRate: rate,
		Status:      domain.BookingStatus(m.Status),
		CreatedAt:   m.CreatedAt,
	}, nil
}
