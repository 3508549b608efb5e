package services

import (
	"context"
	"log/slog"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/domain"
	"github.com/google/uuid"
)

// RetryService creates a fresh payment attempt after a failed or cancelled
// one. Retry produces a new identity: the old record stays frozen in its
// terminal state as an audit trail.
type RetryService struct {
	paymentRepo application.PaymentRepository
	bookingRepo application.BookingRepository
	initiate    *InitiateService
	logger      *slog.Logger
}

func NewRetryService(
	paymentRepo application.PaymentRepository,
	bookingRepo application.BookingRepository,
	initiate *InitiateService,
	logger *slog.Logger,
) *RetryService {
	return &RetryService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		initiate:    initiate,
		logger:      logger,
	}
}

// Retry requires the old record to be owned by the requester and in a
// retryable terminal state. Customer fields are copied from the old record
// onto the new attempt.
func (s *RetryService) Retry(ctx context.Context, transactionRef string, userID uuid.UUID) (*domain.Payment, error) {
	old, err := s.paymentRepo.FindByReference(ctx, transactionRef)
	if err != nil {
		return nil, err
	}
	if old == nil {
		return nil, application.NewNotFoundError("payment")
	}

	booking, err := s.bookingRepo.FindByID(ctx, old.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, application.NewNotFoundError("booking")
	}
	if booking.UserID != userID {
		return nil, application.NewUnauthorizedError("you do not have permission to retry this payment")
	}

	if !old.CanRetry() {
		return nil, application.NewInvalidStateError("only failed or cancelled payments can be retried")
	}
	if booking.Status != domain.BookingPending {
		return nil, application.NewInvalidStateError("booking is no longer pending payment")
	}

	s.logger.Info("retrying payment",
		"old_transaction_ref", old.TransactionRef,
		"booking_reference", booking.Reference)

	return s.initiate.createAndInitialize(ctx, booking, old.Customer())
}
