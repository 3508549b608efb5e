package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InitiateCommand starts a payment attempt for a booking.
type InitiateCommand struct {
	BookingID   uuid.UUID
	UserID      uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber *string
}

// CreateBookingCommand reserves a property for a date range.
type CreateBookingCommand struct {
	PropertyID  uuid.UUID
	UserID      uuid.UUID
	Email       string
	CheckIn     time.Time
	CheckOut    time.Time
	Guests      int
	NightlyRate decimal.Decimal
}

// CheckoutURLs are handed to the gateway at initialization: the callback URL
// receives the gateway's webhook, the return URL is where the payer lands
// after checkout.
type CheckoutURLs struct {
	Callback string
	Return   string
}
