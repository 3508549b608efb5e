package services

import (
	"context"
	"log/slog"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/domain"
	"github.com/google/uuid"
)

// CancelService abandons a pending payment attempt. Local-only: no gateway
// call is needed to walk away from a not-yet-settled attempt, and no
// notification is sent.
type CancelService struct {
	paymentRepo application.PaymentRepository
	bookingRepo application.BookingRepository
	tx          application.TransactionCoordinator
	logger      *slog.Logger
}

func NewCancelService(
	paymentRepo application.PaymentRepository,
	bookingRepo application.BookingRepository,
	tx application.TransactionCoordinator,
	logger *slog.Logger,
) *CancelService {
	return &CancelService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		tx:          tx,
		logger:      logger,
	}
}

func (s *CancelService) Cancel(ctx context.Context, transactionRef string, userID uuid.UUID) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindByReference(ctx, transactionRef)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, application.NewNotFoundError("payment")
	}

	booking, err := s.bookingRepo.FindByID(ctx, payment.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, application.NewNotFoundError("booking")
	}
	if booking.UserID != userID {
		return nil, application.NewUnauthorizedError("you do not have permission to cancel this payment")
	}

	var cancelled *domain.Payment
	err = s.tx.WithTransaction(ctx, func(payments application.PaymentRepository, _ application.BookingRepository) error {
		p, err := payments.FindByReferenceForUpdate(ctx, transactionRef)
		if err != nil {
			return err
		}
		if p == nil {
			return application.NewNotFoundError("payment")
		}
		if err := p.MarkCancelled(); err != nil {
			return application.NewInvalidStateError("only pending payments can be cancelled")
		}
		if err := payments.Update(ctx, p); err != nil {
			return err
		}
		cancelled = p
		return nil
	})
	if err != nil {
		if _, ok := application.IsServiceError(err); ok {
			return nil, err
		}
		return nil, application.NewInternalError(err)
	}

	s.logger.Info("payment cancelled by user", "transaction_ref", transactionRef)
	return cancelled, nil
}
