package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestBooking(t *testing.T, userID uuid.UUID) *domain.Booking {
	t.Helper()
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	booking, err := domain.NewBooking(
		uuid.New(),
		userID,
		"abel@example.com",
		checkIn,
		checkIn.AddDate(0, 0, 2),
		2,
		decimal.NewFromInt(1000),
	)
	if err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}
	return booking
}

func newTestPayment(t *testing.T, booking *domain.Booking) *domain.Payment {
	t.Helper()
	payment, err := domain.NewPayment(booking, booking.TotalPrice(), domain.CurrencyETB, domain.Customer{
		FirstName: "Abel",
		LastName:  "Tesfaye",
		Email:     "abel@example.com",
	})
	if err != nil {
		t.Fatalf("failed to create payment: %v", err)
	}
	return payment
}
