package services

import (
	"context"
	"log/slog"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/domain"
	"github.com/google/uuid"
)

// BookingService creates and cancels bookings. Confirmation is never a direct
// user action: it happens only as a side effect of a payment's first success
// transition, inside the reconciler.
type BookingService struct {
	bookingRepo application.BookingRepository
	paymentRepo application.PaymentRepository
	notifier    application.NotificationDispatcher
	logger      *slog.Logger
}

func NewBookingService(
	bookingRepo application.BookingRepository,
	paymentRepo application.PaymentRepository,
	notifier application.NotificationDispatcher,
	logger *slog.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// Create validates the date range and the overlap invariant: no two bookings
// for the same property may hold intersecting [check-in, check-out) ranges
// while both are pending or confirmed. The database enforces the same rule
// with an exclusion constraint; the query here gives the caller a clean
// client error instead of a constraint violation.
func (s *BookingService) Create(ctx context.Context, cmd CreateBookingCommand) (*domain.Booking, error) {
	booking, err := domain.NewBooking(cmd.PropertyID, cmd.UserID, cmd.Email, cmd.CheckIn, cmd.CheckOut, cmd.Guests, cmd.NightlyRate)
	if err != nil {
		return nil, application.NewValidationError(err)
	}

	overlapping, err := s.bookingRepo.CountOverlapping(ctx, cmd.PropertyID, cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	if overlapping > 0 {
		return nil, application.NewInvalidStateError("property is already booked for the requested dates")
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, application.NewInternalError(err)
	}

	s.notifier.Enqueue(application.NotifyBookingCreated, booking.ID)
	s.logger.Info("booking created",
		"booking_reference", booking.Reference,
		"property_id", booking.PropertyID,
		"total_price", booking.TotalPrice().String())

	return booking, nil
}

// Cancel cancels a booking by explicit user action. Blocked once a successful
// payment exists; refunds are a support workflow, not an API action.
func (s *BookingService) Cancel(ctx context.Context, bookingID, userID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, application.NewNotFoundError("booking")
	}
	if booking.UserID != userID {
		return nil, application.NewUnauthorizedError("you can only cancel your own bookings")
	}
	if booking.Status == domain.BookingCanceled {
		return nil, application.NewInvalidStateError("booking is already cancelled")
	}

	active, err := s.paymentRepo.FindActiveByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if active != nil && active.Status == domain.StatusSuccess {
		return nil, application.NewInvalidStateError("cannot cancel a booking with a confirmed payment")
	}

	if err := booking.Cancel(); err != nil {
		return nil, application.NewInvalidStateError(err.Error())
	}
	if err := s.bookingRepo.UpdateStatus(ctx, booking); err != nil {
		return nil, application.NewInternalError(err)
	}

	s.notifier.Enqueue(application.NotifyBookingCanceled, booking.ID)
	s.logger.Info("booking cancelled", "booking_reference", booking.Reference)

	return booking, nil
}
