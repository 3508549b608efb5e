// Package domain encodes the booking and payment entities and their lifecycle rules.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the current state of a payment in its lifecycle
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusSuccess   PaymentStatus = "success"
	StatusFailed    PaymentStatus = "failed"
	StatusCancelled PaymentStatus = "cancelled"
)

// Currency enumerates the reporting currencies accepted by the gateway.
type Currency string

const (
	CurrencyETB Currency = "ETB"
	CurrencyUSD Currency = "USD"
)

// AmountTolerance is the maximum allowed difference between a payment amount
// and the owning booking's computed total.
var AmountTolerance = decimal.NewFromFloat(0.01)

// Payment represents one payment attempt against a booking. The transaction
// reference is generated locally and shared with the gateway so callbacks can
// be matched back to this record. Records are never deleted; a retry after
// failure creates a new Payment with a fresh reference.
type Payment struct {
	ID             uuid.UUID
	BookingID      uuid.UUID
	TransactionRef string
	GatewayRef     *string
	Amount         decimal.Decimal
	Currency       Currency
	Status         PaymentStatus

	FirstName   string
	LastName    string
	Email       string
	PhoneNumber *string

	PaymentMethod  *string
	CheckoutURL    *string
	GatewayPayload []byte

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// Customer carries the payer details sent to the gateway at initialization.
type Customer struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber *string
}

// NewTransactionRef generates a unique local transaction reference.
func NewTransactionRef() string {
	return "TXN-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:16])
}

// NewPayment creates a pending payment for a booking. The amount must match
// the booking's computed total within AmountTolerance.
func NewPayment(booking *Booking, amount decimal.Decimal, currency Currency, customer Customer) (*Payment, error) {
	if customer.FirstName == "" || customer.LastName == "" {
		return nil, NewValidationError("customer name is required")
	}
	if customer.Email == "" {
		return nil, NewValidationError("customer email is required")
	}
	if !amount.IsPositive() {
		return nil, NewInvalidAmountError(amount)
	}
	if amount.Sub(booking.TotalPrice()).Abs().GreaterThan(AmountTolerance) {
		return nil, NewAmountMismatchError(amount, booking.TotalPrice())
	}

	now := time.Now()
	return &Payment{
		ID:             uuid.New(),
		BookingID:      booking.ID,
		TransactionRef: NewTransactionRef(),
		Amount:         amount,
		Currency:       currency,
		Status:         StatusPending,
		FirstName:      customer.FirstName,
		LastName:       customer.LastName,
		Email:          customer.Email,
		PhoneNumber:    customer.PhoneNumber,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Customer returns the payer details recorded at initiation, used when a
// retry creates a fresh payment for the same booking.
func (p *Payment) Customer() Customer {
	return Customer{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
		PhoneNumber: p.PhoneNumber,
	}
}

// CustomerName returns the payer's full name.
func (p *Payment) CustomerName() string {
	return p.FirstName + " " + p.LastName
}

// IsTerminal reports whether the payment has settled.
func (p *Payment) IsTerminal() bool {
	switch p.Status {
	case StatusSuccess, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanRetry reports whether a fresh payment attempt may be created for the
// owning booking. Success never allows a retry.
func (p *Payment) CanRetry() bool {
	return p.Status == StatusFailed || p.Status == StatusCancelled
}

// Settle applies a verified remote status and reports whether a transition
// occurred. The machine is monotone: any status other than pending is frozen,
// so a late or duplicate signal is a no-op. A remote "cancelled" settles as
// failed, matching how the gateway reports abandoned checkouts. CompletedAt
// is set exactly once, on the first transition into success.
func (p *Payment) Settle(remote PaymentStatus, at time.Time) bool {
	if p.Status != StatusPending {
		return false
	}

	switch remote {
	case StatusSuccess:
		p.Status = StatusSuccess
		if p.CompletedAt == nil {
			completed := at
			p.CompletedAt = &completed
		}
		return true
	case StatusFailed, StatusCancelled:
		p.Status = StatusFailed
		return true
	default:
		return false
	}
}

// MarkFailed records a gateway initialization failure.
func (p *Payment) MarkFailed() error {
	if p.Status != StatusPending {
		return NewInvalidTransitionError(p.Status, StatusFailed)
	}
	p.Status = StatusFailed
	return nil
}

// MarkCancelled abandons a not-yet-settled attempt. Local-only: no gateway
// decision is needed to walk away from a pending payment.
func (p *Payment) MarkCancelled() error {
	if p.Status != StatusPending {
		return NewInvalidTransitionError(p.Status, StatusCancelled)
	}
	p.Status = StatusCancelled
	return nil
}

// ParseRemoteStatus normalizes a gateway status string into the local enum.
// Every remote status crosses this single boundary; unrecognized values map
// to pending so an unexpected gateway answer can never settle a payment.
func ParseRemoteStatus(s string) (PaymentStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success":
		return StatusSuccess, true
	case "failed":
		return StatusFailed, true
	case "cancelled", "canceled":
		return StatusCancelled, true
	case "pending":
		return StatusPending, true
	default:
		return StatusPending, false
	}
}

func NewInvalidAmountError(amount decimal.Decimal) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("payment amount must be positive, got %s", amount),
	}
}

func NewAmountMismatchError(amount, total decimal.Decimal) *DomainError {
	return &DomainError{
		Code:    ErrCodeAmountMismatch,
		Message: fmt.Sprintf("payment amount (%s) must match booking total (%s)", amount, total),
	}
}
