package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/application/services"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/config"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu    sync.Mutex
	sent  []sentMail
	failN int // fail the first N sends
}

type sentMail struct {
	to      string
	subject string
}

func (r *recordingSender) Send(to, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failN > 0 {
		r.failN--
		return errors.New("smtp unavailable")
	}
	r.sent = append(r.sent, sentMail{to: to, subject: subject})
	return nil
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func (r *recordingSender) last() sentMail {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sent[len(r.sent)-1]
}

func newFixture(t *testing.T, sender EmailSender) (*Dispatcher, *services.MockPaymentRepository, *services.MockBookingRepository) {
	t.Helper()
	payments := services.NewMockPaymentRepository()
	bookings := services.NewMockBookingRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := NewDispatcher(payments, bookings, sender, config.NotifierConfig{
		QueueSize:   16,
		MaxAttempts: 3,
		RetryDelay:  time.Millisecond,
	}, logger)
	return d, payments, bookings
}

func seedBooking(t *testing.T, bookings *services.MockBookingRepository) *domain.Booking {
	t.Helper()
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	booking, err := domain.NewBooking(uuid.New(), uuid.New(), "guest@example.com", checkIn, checkIn.AddDate(0, 0, 2), 2, decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.NoError(t, bookings.Create(context.Background(), booking))
	return booking
}

func seedPayment(t *testing.T, payments *services.MockPaymentRepository, bookings *services.MockBookingRepository) *domain.Payment {
	t.Helper()
	booking := seedBooking(t, bookings)
	payment, err := domain.NewPayment(booking, booking.TotalPrice(), domain.CurrencyETB, domain.Customer{
		FirstName: "Abel",
		LastName:  "Tesfaye",
		Email:     "abel@example.com",
	})
	require.NoError(t, err)
	require.NoError(t, payments.Create(context.Background(), payment))
	return payment
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestDispatcher_DeliversPaymentSucceeded(t *testing.T) {
	sender := &recordingSender{}
	d, payments, bookings := newFixture(t, sender)
	payment := seedPayment(t, payments, bookings)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Start(ctx)

	d.Enqueue(application.NotifyPaymentSucceeded, payment.ID)

	waitFor(t, func() bool { return sender.count() == 1 })
	assert.Equal(t, "abel@example.com", sender.last().to)
	assert.Contains(t, sender.last().subject, "Payment Confirmation")
}

func TestDispatcher_RetriesThenDelivers(t *testing.T) {
	sender := &recordingSender{failN: 2}
	d, payments, bookings := newFixture(t, sender)
	payment := seedPayment(t, payments, bookings)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Start(ctx)

	d.Enqueue(application.NotifyPaymentFailed, payment.ID)

	// Two failures then success on the third attempt.
	waitFor(t, func() bool { return sender.count() == 1 })
	assert.Contains(t, sender.last().subject, "Payment Failed")
}

func TestDispatcher_DropsAfterMaxAttempts(t *testing.T) {
	sender := &recordingSender{failN: 10}
	d, payments, bookings := newFixture(t, sender)
	payment := seedPayment(t, payments, bookings)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Start(ctx)

	d.Enqueue(application.NotifyPaymentSucceeded, payment.ID)

	// All three attempts consumed, nothing delivered, nothing retried further.
	waitFor(t, func() bool {
		sender.mu.Lock()
		defer sender.mu.Unlock()
		return sender.failN == 7
	})
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, sender.count())
}

func TestDispatcher_UnknownEntityIsDroppedSilently(t *testing.T) {
	sender := &recordingSender{}
	d, _, _ := newFixture(t, sender)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Start(ctx)

	d.Enqueue(application.NotifyPaymentSucceeded, uuid.New())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, sender.count())
}

func TestDispatcher_BookingCreatedDeliversBeforeAnyPayment(t *testing.T) {
	sender := &recordingSender{}
	d, _, bookings := newFixture(t, sender)
	booking := seedBooking(t, bookings)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Start(ctx)

	// No payment exists yet; the contact address captured at creation is the
	// only one on file and must be enough.
	d.Enqueue(application.NotifyBookingCreated, booking.ID)

	waitFor(t, func() bool { return sender.count() == 1 })
	assert.Equal(t, "guest@example.com", sender.last().to)
	assert.Contains(t, sender.last().subject, "Booking Confirmation")
}

func TestDispatcher_BookingCanceledGoesToContactAddress(t *testing.T) {
	sender := &recordingSender{}
	d, _, bookings := newFixture(t, sender)
	booking := seedBooking(t, bookings)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Start(ctx)

	d.Enqueue(application.NotifyBookingCanceled, booking.ID)

	waitFor(t, func() bool { return sender.count() == 1 })
	assert.Equal(t, "guest@example.com", sender.last().to)
	assert.Contains(t, sender.last().subject, "Booking Cancelled")
}
