package services

import (
	"context"
	"testing"
	"time"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newBookingFixture(payments *MockPaymentRepository, bookings *MockBookingRepository, dispatcher *MockDispatcher) *BookingService {
	return NewBookingService(bookings, payments, dispatcher, testLogger())
}

func TestBookingService_Create_Success(t *testing.T) {
	// Setup
	dispatcher := &MockDispatcher{}
	svc := newBookingFixture(NewMockPaymentRepository(), NewMockBookingRepository(), dispatcher)

	checkIn := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	// Action
	booking, err := svc.Create(context.Background(), CreateBookingCommand{
		PropertyID:  uuid.New(),
		UserID:      uuid.New(),
		Email:       "guest@example.com",
		CheckIn:     checkIn,
		CheckOut:    checkIn.AddDate(0, 0, 3),
		Guests:      2,
		NightlyRate: decimal.NewFromInt(1500),
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if booking.Status != domain.BookingPending {
		t.Errorf("expected pending, got %s", booking.Status)
	}
	if !booking.TotalPrice().Equal(decimal.NewFromInt(4500)) {
		t.Errorf("expected total 4500, got %s", booking.TotalPrice())
	}
	if dispatcher.Count(application.NotifyBookingCreated) != 1 {
		t.Error("expected one booking-created notification")
	}
}

func TestBookingService_Create_OverlapRejected(t *testing.T) {
	// Setup
	bookings := NewMockBookingRepository()
	svc := newBookingFixture(NewMockPaymentRepository(), bookings, &MockDispatcher{})

	propertyID := uuid.New()
	checkIn := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	existing, _ := domain.NewBooking(propertyID, uuid.New(), "guest@example.com", checkIn, checkIn.AddDate(0, 0, 3), 2, decimal.NewFromInt(1000))
	_ = bookings.Create(context.Background(), existing)

	// Action: a range intersecting the existing stay.
	_, err := svc.Create(context.Background(), CreateBookingCommand{
		PropertyID:  propertyID,
		UserID:      uuid.New(),
		Email:       "guest@example.com",
		CheckIn:     checkIn.AddDate(0, 0, 1),
		CheckOut:    checkIn.AddDate(0, 0, 5),
		Guests:      1,
		NightlyRate: decimal.NewFromInt(1000),
	})

	// Assert
	if !application.IsErrorCode(err, application.ErrCodeInvalidState) {
		t.Fatalf("expected INVALID_STATE, got %v", err)
	}
}

func TestBookingService_Create_BackToBackAllowed(t *testing.T) {
	// Setup
	bookings := NewMockBookingRepository()
	svc := newBookingFixture(NewMockPaymentRepository(), bookings, &MockDispatcher{})

	propertyID := uuid.New()
	checkIn := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	existing, _ := domain.NewBooking(propertyID, uuid.New(), "guest@example.com", checkIn, checkIn.AddDate(0, 0, 3), 2, decimal.NewFromInt(1000))
	_ = bookings.Create(context.Background(), existing)

	// Action: check-in exactly on the existing check-out.
	_, err := svc.Create(context.Background(), CreateBookingCommand{
		PropertyID:  propertyID,
		UserID:      uuid.New(),
		Email:       "guest@example.com",
		CheckIn:     checkIn.AddDate(0, 0, 3),
		CheckOut:    checkIn.AddDate(0, 0, 5),
		Guests:      1,
		NightlyRate: decimal.NewFromInt(1000),
	})

	// Assert
	if err != nil {
		t.Fatalf("back-to-back stays must be allowed, got %v", err)
	}
}

func TestBookingService_Create_InvalidDates(t *testing.T) {
	// Setup
	svc := newBookingFixture(NewMockPaymentRepository(), NewMockBookingRepository(), &MockDispatcher{})

	checkIn := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)

	// Action
	_, err := svc.Create(context.Background(), CreateBookingCommand{
		PropertyID:  uuid.New(),
		UserID:      uuid.New(),
		Email:       "guest@example.com",
		CheckIn:     checkIn,
		CheckOut:    checkIn.AddDate(0, 0, -1),
		Guests:      2,
		NightlyRate: decimal.NewFromInt(1000),
	})

	// Assert
	if !application.IsErrorCode(err, application.ErrCodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestBookingService_Cancel_Success(t *testing.T) {
	// Setup
	bookings := NewMockBookingRepository()
	dispatcher := &MockDispatcher{}
	svc := newBookingFixture(NewMockPaymentRepository(), bookings, dispatcher)

	userID := uuid.New()
	booking := newTestBooking(t, userID)
	_ = bookings.Create(context.Background(), booking)

	// Action
	cancelled, err := svc.Cancel(context.Background(), booking.ID, userID)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cancelled.Status != domain.BookingCanceled {
		t.Errorf("expected canceled, got %s", cancelled.Status)
	}
	if dispatcher.Count(application.NotifyBookingCanceled) != 1 {
		t.Error("expected one booking-canceled notification")
	}
}

func TestBookingService_Cancel_BlockedBySuccessfulPayment(t *testing.T) {
	// Setup
	payments := NewMockPaymentRepository()
	bookings := NewMockBookingRepository()
	svc := newBookingFixture(payments, bookings, &MockDispatcher{})

	userID := uuid.New()
	booking := newTestBooking(t, userID)
	_ = bookings.Create(context.Background(), booking)
	payment := newTestPayment(t, booking)
	payment.Status = domain.StatusSuccess
	_ = payments.Create(context.Background(), payment)

	// Action
	_, err := svc.Cancel(context.Background(), booking.ID, userID)

	// Assert
	if !application.IsErrorCode(err, application.ErrCodeInvalidState) {
		t.Fatalf("expected INVALID_STATE, got %v", err)
	}
	if booking.Status != domain.BookingPending {
		t.Errorf("booking must stay untouched, got %s", booking.Status)
	}
}

func TestBookingService_Cancel_AllowedWithFailedPayment(t *testing.T) {
	// Setup
	payments := NewMockPaymentRepository()
	bookings := NewMockBookingRepository()
	svc := newBookingFixture(payments, bookings, &MockDispatcher{})

	userID := uuid.New()
	booking := newTestBooking(t, userID)
	_ = bookings.Create(context.Background(), booking)
	payment := newTestPayment(t, booking)
	_ = payment.MarkFailed()
	_ = payments.Create(context.Background(), payment)

	// Action
	cancelled, err := svc.Cancel(context.Background(), booking.ID, userID)

	// Assert
	if err != nil {
		t.Fatalf("failed payment must not block cancellation, got %v", err)
	}
	if cancelled.Status != domain.BookingCanceled {
		t.Errorf("expected canceled, got %s", cancelled.Status)
	}
}

func TestBookingService_Cancel_WrongOwner(t *testing.T) {
	// Setup
	bookings := NewMockBookingRepository()
	svc := newBookingFixture(NewMockPaymentRepository(), bookings, &MockDispatcher{})

	booking := newTestBooking(t, uuid.New())
	_ = bookings.Create(context.Background(), booking)

	// Action
	_, err := svc.Cancel(context.Background(), booking.ID, uuid.New())

	// Assert
	if !application.IsErrorCode(err, application.ErrCodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}
