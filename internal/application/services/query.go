package services

import (
	"context"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/domain"
	"github.com/google/uuid"
)

// QueryService serves read paths: payment detail, payment history, summary
// aggregates, and the latest payment for a booking.
type QueryService struct {
	paymentRepo application.PaymentRepository
	bookingRepo application.BookingRepository
}

func NewQueryService(paymentRepo application.PaymentRepository, bookingRepo application.BookingRepository) *QueryService {
	return &QueryService{paymentRepo: paymentRepo, bookingRepo: bookingRepo}
}

// GetPayment returns a payment scoped to its owner.
func (s *QueryService) GetPayment(ctx context.Context, transactionRef string, userID uuid.UUID) (*domain.Payment, error) {
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
	if booking == nil || booking.UserID != userID {
		return nil, application.NewUnauthorizedError("you do not have permission to view this payment")
	}
	return payment, nil
}

// ListPayments returns the user's payment history, newest first.
func (s *QueryService) ListPayments(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.paymentRepo.FindByUser(ctx, userID, limit, offset)
}

// Summary aggregates the user's payment counts and confirmed spend.
func (s *QueryService) Summary(ctx context.Context, userID uuid.UUID) (*application.PaymentSummary, error) {
	return s.paymentRepo.SummaryByUser(ctx, userID)
}

// BookingPaymentStatus returns the latest payment attempt for a booking,
// or nil when none exists yet.
func (s *QueryService) BookingPaymentStatus(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, *domain.Payment, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if booking == nil {
		return nil, nil, application.NewNotFoundError("booking")
	}

	payment, err := s.paymentRepo.FindLatestByBookingID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	return booking, payment, nil
}
