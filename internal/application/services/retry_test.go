package services

import (
	"context"
	"testing"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/domain"
	"github.com/google/uuid"
)

func newRetryFixture(payments *MockPaymentRepository, bookings *MockBookingRepository, gateway *MockGatewayClient) *RetryService {
	initiate := newInitiateFixture(payments, bookings, gateway)
	return NewRetryService(payments, bookings, initiate, testLogger())
}

func TestRetryService_Retry_CreatesFreshAttempt(t *testing.T) {
	// Setup
	payments := NewMockPaymentRepository()
	bookings := NewMockBookingRepository()
	gateway := &MockGatewayClient{}
	svc := newRetryFixture(payments, bookings, gateway)

	userID := uuid.New()
	booking := newTestBooking(t, userID)
	_ = bookings.Create(context.Background(), booking)
	old := newTestPayment(t, booking)
	_ = old.MarkFailed()
	_ = payments.Create(context.Background(), old)

	// Action
	fresh, err := svc.Retry(context.Background(), old.TransactionRef, userID)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fresh.TransactionRef == old.TransactionRef {
		t.Error("retry must mint a new transaction reference")
	}
	if fresh.Status != domain.StatusPending {
		t.Errorf("expected fresh attempt pending, got %s", fresh.Status)
	}
	if fresh.Email != old.Email || fresh.FirstName != old.FirstName {
		t.Error("customer fields must carry over to the fresh attempt")
	}
	if old.Status != domain.StatusFailed {
		t.Errorf("old record must stay frozen as failed, got %s", old.Status)
	}
}

func TestRetryService_Retry_SuccessfulPaymentRejected(t *testing.T) {
	// Setup
	payments := NewMockPaymentRepository()
	bookings := NewMockBookingRepository()
	svc := newRetryFixture(payments, bookings, &MockGatewayClient{})

	userID := uuid.New()
	booking := newTestBooking(t, userID)
	_ = bookings.Create(context.Background(), booking)
	old := newTestPayment(t, booking)
	old.Status = domain.StatusSuccess
	_ = payments.Create(context.Background(), old)

	// Action
	_, err := svc.Retry(context.Background(), old.TransactionRef, userID)

	// Assert
	if !application.IsErrorCode(err, application.ErrCodeInvalidState) {
		t.Fatalf("expected INVALID_STATE, got %v", err)
	}
}

func TestRetryService_Retry_PendingPaymentRejected(t *testing.T) {
	// Setup
	payments := NewMockPaymentRepository()
	bookings := NewMockBookingRepository()
	svc := newRetryFixture(payments, bookings, &MockGatewayClient{})

	userID := uuid.New()
	booking := newTestBooking(t, userID)
	_ = bookings.Create(context.Background(), booking)
	old := newTestPayment(t, booking)
	_ = payments.Create(context.Background(), old)

	// Action
	_, err := svc.Retry(context.Background(), old.TransactionRef, userID)

	// Assert
	if !application.IsErrorCode(err, application.ErrCodeInvalidState) {
		t.Fatalf("expected INVALID_STATE, got %v", err)
	}
}

func TestRetryService_Retry_WrongOwner(t *testing.T) {
	// Setup
	payments := NewMockPaymentRepository()
	bookings := NewMockBookingRepository()
	svc := newRetryFixture(payments, bookings, &MockGatewayClient{})

	booking := newTestBooking(t, uuid.New())
	_ = bookings.Create(context.Background(), booking)
	old := newTestPayment(t, booking)
	_ = old.MarkFailed()
	_ = payments.Create(context.Background(), old)

	// Action
	_, err := svc.Retry(context.Background(), old.TransactionRef, uuid.New())

	// Assert
	if !application.IsErrorCode(err, application.ErrCodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestRetryService_Retry_CanceledBookingRejected(t *testing.T) {
	// Setup
	payments := NewMockPaymentRepository()
	bookings := NewMockBookingRepository()
	svc := newRetryFixture(payments, bookings, &MockGatewayClient{})

	userID := uuid.New()
	booking := newTestBooking(t, userID)
	_ = bookings.Create(context.Background(), booking)
	old := newTestPayment(t, booking)
	_ = old.MarkFailed()
	_ = payments.Create(context.Background(), old)
	_ = booking.Cancel()

	// Action
	_, err := svc.Retry(context.Background(), old.TransactionRef, userID)

	// Assert
	if !application.IsErrorCode(err, application.ErrCodeInvalidState) {
		t.Fatalf("expected INVALID_STATE, got %v", err)
	}
}
