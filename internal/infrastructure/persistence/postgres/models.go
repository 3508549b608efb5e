package postgres

import (
	"time"

	"github.com/google/uuid"
)

// paymentModel mirrors the payments table. The amount travels as its text
// representation so the numeric column round-trips without float conversion.
type paymentModel struct {
	ID             uuid.UUID
	BookingID      uuid.UUID
	TransactionRef string
	GatewayRef     *string
	Amount         string
	Currency       string
	Status         string
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    *string
	PaymentMethod  *string
	CheckoutURL    *string
	GatewayPayload []byte
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CompletedAt    *time.Time
}

// bookingModel mirrors the bookings table.
type bookingModel struct {
	ID          uuid.UUID
	Reference   string
	PropertyID  uuid.UUID
	UserID      uuid.UUID
	Email       string
	CheckIn     time.Time
	CheckOut    time.Time
	Guests      int
	NightlyRate string
	Status      string
	CreatedAt   time.Time
}
