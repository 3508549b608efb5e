package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus represents the current state of a booking, independent of any
// payment attempt's status.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCanceled  BookingStatus = "canceled"
)

// Booking represents a reservation of a property for a date range.
// Check-out is exclusive: [CheckIn, CheckOut).
type Booking struct {
	ID          uuid.UUID
	Reference   string
	PropertyID  uuid.UUID
	UserID      uuid.UUID
	Email       string
	CheckIn     time.Time
	CheckOut    time.Time
	Guests      int
	NightlyRate decimal.Decimal
	Status      BookingStatus
	CreatedAt   time.Time
}

// NewBookingReference generates a human-readable booking reference.
func NewBookingReference(now time.Time) string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("BOOKING-%s-%s", now.Format("20060102"), random)
}

// NewBooking creates a pending booking after validating its date range. The
// email is the guest's contact address; booking lifecycle emails go there.
func NewBooking(propertyID, userID uuid.UUID, email string, checkIn, checkOut time.Time, guests int, nightlyRate decimal.Decimal) (*Booking, error) {
	if email == "" {
		return nil, NewValidationError("contact email is required")
	}
	if !checkOut.After(checkIn) {
		return nil, NewValidationError("check-out date must be after check-in date")
	}
	if guests <= 0 {
		return nil, NewValidationError("guest count must be positive")
	}
	if !nightlyRate.IsPositive() {
		return nil, NewValidationError("nightly rate must be positive")
	}

	now := time.Now()
	return &Booking{
		ID:          uuid.New(),
		Reference:   NewBookingReference(now),
		PropertyID:  propertyID,
		UserID:      userID,
		Email:       email,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      guests,
		NightlyRate: nightlyRate,
		Status:      BookingPending,
		CreatedAt:   now,
	}, nil
}

// TotalNights returns the number of nights in the stay.
func (b *Booking) TotalNights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// TotalPrice computes the booking total as nights times the nightly rate.
func (b *Booking) TotalPrice() decimal.Decimal {
	return b.NightlyRate.Mul(decimal.NewFromInt(int64(b.TotalNights())))
}

// Confirm transitions the booking to confirmed. Only the first successful
// payment transition may confirm a booking, so any other current status is
// rejected.
func (b *Booking) Confirm() error {
	if b.Status != BookingPending {
		return NewInvalidBookingStateError(b.Status, BookingConfirmed)
	}
	b.Status = BookingConfirmed
	return nil
}

// Cancel transitions the booking to canceled by explicit user action.
// The caller is responsible for checking that no successful payment exists.
func (b *Booking) Cancel() error {
	if b.Status == BookingCanceled {
		return NewInvalidBookingStateError(b.Status, BookingCanceled)
	}
	b.Status = BookingCanceled
	return nil
}

// Overlaps reports whether two date ranges intersect, treating check-out as
// exclusive: back-to-back stays sharing a boundary date do not overlap.
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return b.CheckIn.Before(checkOut) && checkIn.Before(b.CheckOut)
}

func NewInvalidBookingStateError(from, to BookingStatus) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition booking from %s to %s", from, to),
	}
}
