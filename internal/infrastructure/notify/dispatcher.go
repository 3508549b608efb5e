// Package notify delivers user-facing emails through an asynchronous
// in-process queue. Delivery is at-least-once with bounded retries; a
// notification that cannot be delivered is logged and dropped, never
// surfaced to the flow that enqueued it.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/config"
	"github.com/google/uuid"
)

type job struct {
	kind     application.NotificationKind
	entityID uuid.UUID
}

// Dispatcher implements application.NotificationDispatcher over a buffered
// channel drained by a single worker goroutine.
type Dispatcher struct {
	paymentRepo application.PaymentRepository
	bookingRepo application.BookingRepository
	sender      EmailSender
	logger      *slog.Logger

	queue       chan job
	maxAttempts int
	retryDelay  time.Duration
}

func NewDispatcher(
	paymentRepo application.PaymentRepository,
	bookingRepo application.BookingRepository,
	sender EmailSender,
	cfg config.NotifierConfig,
	logger *slog.Logger,
) *Dispatcher {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 256
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 60 * time.Second
	}
	return &Dispatcher{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		sender:      sender,
		logger:      logger,
		queue:       make(chan job, queueSize),
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
	}
}

// Enqueue hands a notification to the worker. A full queue drops the job with
// a log line; notifications are best-effort and must never block a payment
// flow.
func (d *Dispatcher) Enqueue(kind application.NotificationKind, entityID uuid.UUID) {
	select {
	case d.queue <- job{kind: kind, entityID: entityID}:
	default:
		d.logger.Error("notification queue full, dropping",
			"kind", kind,
			"entity_id", entityID)
	}
}

// Start drains the queue until the context is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	d.logger.Info("notification dispatcher started")
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("notification dispatcher stopped")
			return
		case j := <-d.queue:
			d.deliver(ctx, j)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, j job) {
	var lastErr error
	for attempt := 0; attempt < d.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(d.retryDelay * time.Duration(1<<(attempt-1))):
			}
		}

		lastErr = d.send(ctx, j)
		if lastErr == nil {
			return
		}
		d.logger.Warn("notification delivery failed",
			"kind", j.kind,
			"entity_id", j.entityID,
			"attempt", attempt+1,
			"error", lastErr)
	}

	d.logger.Error("notification dropped after max attempts",
		"kind", j.kind,
		"entity_id", j.entityID,
		"error", lastErr)
}

func (d *Dispatcher) send(ctx context.Context, j job) error {
	switch j.kind {
	case application.NotifyPaymentSucceeded, application.NotifyPaymentFailed:
		return d.sendPaymentEmail(ctx, j)
	case application.NotifyBookingCreated, application.NotifyBookingCanceled:
		return d.sendBookingEmail(ctx, j)
	default:
		d.logger.Warn("unknown notification kind", "kind", j.kind)
		return nil
	}
}

func (d *Dispatcher) sendPaymentEmail(ctx context.Context, j job) error {
	payment, err := d.paymentRepo.FindByID(ctx, j.entityID)
	if err != nil {
		return err
	}
	if payment == nil {
		d.logger.Warn("payment not found for notification", "entity_id", j.entityID)
		return nil
	}

	booking, err := d.bookingRepo.FindByID(ctx, payment.BookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		d.logger.Warn("booking not found for notification", "payment_id", payment.ID)
		return nil
	}

	var subject, body string
	switch j.kind {
	case application.NotifyPaymentSucceeded:
		subject = fmt.Sprintf("Payment Confirmation - Booking %s", booking.Reference)
		body = fmt.Sprintf(
			"Dear %s,\n\nYour payment of %s %s for booking %s has been confirmed.\nTransaction reference: %s\n\nCheck-in: %s\nCheck-out: %s\n\nThank you for booking with us.",
			payment.CustomerName(),
			payment.Amount.StringFixed(2), payment.Currency,
			booking.Reference,
			payment.TransactionRef,
			booking.CheckIn.Format("2006-01-02"),
			booking.CheckOut.Format("2006-01-02"),
		)
	case application.NotifyPaymentFailed:
		subject = fmt.Sprintf("Payment Failed - Booking %s", booking.Reference)
		body = fmt.Sprintf(
			"Dear %s,\n\nYour payment of %s %s for booking %s could not be completed.\nTransaction reference: %s\n\nYou can retry the payment from your bookings page.",
			payment.CustomerName(),
			payment.Amount.StringFixed(2), payment.Currency,
			booking.Reference,
			payment.TransactionRef,
		)
	}

	return d.sender.Send(payment.Email, subject, body)
}

func (d *Dispatcher) sendBookingEmail(ctx context.Context, j job) error {
	booking, err := d.bookingRepo.FindByID(ctx, j.entityID)
	if err != nil {
		return err
	}
	if booking == nil {
		d.logger.Warn("booking not found for notification", "entity_id", j.entityID)
		return nil
	}

	// Booking emails go to the contact address captured at creation: a
	// booking-created email fires before any payment exists.
	var subject, body string
	switch j.kind {
	case application.NotifyBookingCreated:
		subject = fmt.Sprintf("Booking Confirmation - %s", booking.Reference)
		body = fmt.Sprintf(
			"Dear guest,\n\nYour booking %s has been created.\n\nCheck-in: %s\nCheck-out: %s\nNights: %d\nTotal: %s\n\nComplete your payment to confirm the reservation.",
			booking.Reference,
			booking.CheckIn.Format("2006-01-02"),
			booking.CheckOut.Format("2006-01-02"),
			booking.TotalNights(),
			booking.TotalPrice().StringFixed(2),
		)
	case application.NotifyBookingCanceled:
		subject = fmt.Sprintf("Booking Cancelled - %s", booking.Reference)
		body = fmt.Sprintf(
			"Dear guest,\n\nYour booking %s has been cancelled.\n\nCheck-in: %s\nCheck-out: %s",
			booking.Reference,
			booking.CheckIn.Format("2006-01-02"),
			booking.CheckOut.Format("2006-01-02"),
		)
	}

	return d.sender.Send(booking.Email, subject, body)
}
