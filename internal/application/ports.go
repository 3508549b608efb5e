package application

import (
	"context"
	"time"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GatewayClient is the port for the external payment gateway. The gateway is
// the authoritative source of real-world payment success or failure and is
// reachable only over the network.
type GatewayClient interface {
	Initialize(ctx context.Context, req InitializeRequest) (*InitializeResponse, error)
	Verify(ctx context.Context, transactionRef string) (*VerifyResponse, error)
}

// InitializeRequest carries everything the gateway needs to open a checkout
// session for one payment attempt.
type InitializeRequest struct {
	Amount        decimal.Decimal
	Currency      domain.Currency
	Email         string
	FirstName     string
	LastName      string
	PhoneNumber   *string
	TxRef         string
	CallbackURL   string
	ReturnURL     string
	Customization *Customization
}

// Customization adjusts the hosted checkout page.
type Customization struct {
	Title       string
	Description string
	Logo        string
}

type InitializeResponse struct {
	CheckoutURL string
	GatewayRef  string
	RawPayload  []byte
}

type VerifyResponse struct {
	Status        string
	GatewayRef    string
	PaymentMethod string
	RawPayload    []byte
}

// NotificationKind selects the notification template.
type NotificationKind string

const (
	NotifyPaymentSucceeded NotificationKind = "payment_succeeded"
	NotifyPaymentFailed    NotificationKind = "payment_failed"
	NotifyBookingCreated   NotificationKind = "booking_created"
	NotifyBookingCanceled  NotificationKind = "booking_canceled"
)

// NotificationDispatcher is the asynchronous boundary for user notifications.
// Enqueue is fire-and-forget: delivery is at-least-once and retried by the
// dispatcher's own subsystem, and a delivery failure is never surfaced to the
// caller.
type NotificationDispatcher interface {
	Enqueue(kind NotificationKind, entityID uuid.UUID)
}

// PaymentRepository is the port for payment persistence.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	FindByReference(ctx context.Context, transactionRef string) (*domain.Payment, error)
	// FindByReferenceForUpdate takes a row-level lock so a status transition
	// is check-then-set against the freshest read.
	FindByReferenceForUpdate(ctx context.Context, transactionRef string) (*domain.Payment, error)
	// FindActiveByBookingID returns the booking's payment in pending or
	// success state, or nil when no active payment exists.
	FindActiveByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.Payment, error)
	FindLatestByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.Payment, error)
	FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Payment, error)
	// FindStalePending returns pending payments created before the cutoff,
	// oldest first, for the periodic sweep.
	FindStalePending(ctx context.Context, cutoff time.Time, limit int) ([]*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
	SummaryByUser(ctx context.Context, userID uuid.UUID) (*PaymentSummary, error)
}

// BookingRepository is the port for booking persistence.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	// CountOverlapping counts pending/confirmed bookings for the property
	// whose [check-in, check-out) range intersects the given one.
	CountOverlapping(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (int, error)
	UpdateStatus(ctx context.Context, booking *domain.Booking) error
}

// TransactionCoordinator executes a function within one database transaction,
// handing it transaction-scoped repositories so a payment transition and its
// booking side effect commit or roll back together.
type TransactionCoordinator interface {
	WithTransaction(ctx context.Context, fn func(payments PaymentRepository, bookings BookingRepository) error) error
}

// PaymentSummary aggregates a user's payment history.
type PaymentSummary struct {
	TotalPayments      int
	SuccessfulPayments int
	PendingPayments    int
	FailedPayments     int
	TotalSpent         decimal.Decimal
	Currency           domain.Currency
}
