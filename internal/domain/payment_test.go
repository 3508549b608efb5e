package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func testBooking(t *testing.T) *Booking {
	t.Helper()
	checkIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	b, err := NewBooking(
		uuid.New(), uuid.New(), "abebe@example.com",
		checkIn, checkIn.AddDate(0, 0, 2),
		2, decimal.NewFromInt(1000),
	)
	if err != nil {
		t.Fatalf("unexpected error creating booking: %v", err)
	}
	return b
}

func testCustomer() Customer {
	return Customer{FirstName: "Abebe", LastName: "Bikila", Email: "abebe@example.com"}
}

func TestNewPayment_AmountMatchesBookingTotal(t *testing.T) {
	b := testBooking(t)

	p, err := NewPayment(b, decimal.NewFromInt(2000), CurrencyETB, testCustomer())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.Status != StatusPending {
		t.Errorf("expected status pending, got %s", p.Status)
	}
	if p.TransactionRef == "" {
		t.Error("expected transaction reference to be generated")
	}
	if p.CompletedAt != nil {
		t.Error("expected CompletedAt unset on creation")
	}
}

func TestNewPayment_AmountMismatchRejected(t *testing.T) {
	b := testBooking(t)

	// 2000 expected; 0.02 over tolerance
	_, err := NewPayment(b, decimal.NewFromFloat(2000.02), CurrencyETB, testCustomer())
	if err == nil {
		t.Fatal("expected amount mismatch error, got nil")
	}

	// within tolerance is accepted
	_, err = NewPayment(b, decimal.NewFromFloat(2000.01), CurrencyETB, testCustomer())
	if err != nil {
		t.Fatalf("expected amount within tolerance to be accepted, got %v", err)
	}
}

func TestSettle_SuccessIsMonotone(t *testing.T) {
	b := testBooking(t)
	p, _ := NewPayment(b, b.TotalPrice(), CurrencyETB, testCustomer())

	now := time.Now()
	if !p.Settle(StatusSuccess, now) {
		t.Fatal("expected first success signal to transition")
	}
	if p.Status != StatusSuccess {
		t.Errorf("expected status success, got %s", p.Status)
	}
	completedAt := *p.CompletedAt

	// duplicate and contradicting signals are no-ops
	for _, remote := range []PaymentStatus{StatusSuccess, StatusFailed, StatusCancelled, StatusPending} {
		if p.Settle(remote, now.Add(time.Hour)) {
			t.Errorf("expected no transition from success on remote %s", remote)
		}
	}
	if p.Status != StatusSuccess {
		t.Errorf("status downgraded to %s", p.Status)
	}
	if !p.CompletedAt.Equal(completedAt) {
		t.Error("CompletedAt was overwritten by a duplicate signal")
	}
}

func TestSettle_FailedAndCancelledMapToFailed(t *testing.T) {
	for _, remote := range []PaymentStatus{StatusFailed, StatusCancelled} {
		b := testBooking(t)
		p, _ := NewPayment(b, b.TotalPrice(), CurrencyETB, testCustomer())

		if !p.Settle(remote, time.Now()) {
			t.Fatalf("expected transition on remote %s", remote)
		}
		if p.Status != StatusFailed {
			t.Errorf("expected failed, got %s", p.Status)
		}
		if p.CompletedAt != nil {
			t.Error("CompletedAt must only be set on success")
		}
	}
}

func TestSettle_PendingRemoteIsNoop(t *testing.T) {
	b := testBooking(t)
	p, _ := NewPayment(b, b.TotalPrice(), CurrencyETB, testCustomer())

	if p.Settle(StatusPending, time.Now()) {
		t.Error("expected no transition on pending remote status")
	}
	if p.Status != StatusPending {
		t.Errorf("expected status pending, got %s", p.Status)
	}
}

func TestCanRetry(t *testing.T) {
	cases := map[PaymentStatus]bool{
		StatusPending:   false,
		StatusSuccess:   false,
		StatusFailed:    true,
		StatusCancelled: true,
	}
	for status, want := range cases {
		p := &Payment{Status: status}
		if got := p.CanRetry(); got != want {
			t.Errorf("CanRetry with status %s = %v, want %v", status, got, want)
		}
	}
}

func TestMarkCancelled_OnlyFromPending(t *testing.T) {
	p := &Payment{Status: StatusPending}
	if err := p.MarkCancelled(); err != nil {
		t.Fatalf("expected cancel of pending payment to succeed, got %v", err)
	}

	p = &Payment{Status: StatusSuccess}
	if err := p.MarkCancelled(); err == nil {
		t.Error("expected cancel of successful payment to be rejected")
	}
}

func TestParseRemoteStatus(t *testing.T) {
	cases := []struct {
		in         string
		want       PaymentStatus
		recognized bool
	}{
		{"success", StatusSuccess, true},
		{"SUCCESS", StatusSuccess, true},
		{" failed ", StatusFailed, true},
		{"cancelled", StatusCancelled, true},
		{"canceled", StatusCancelled, true},
		{"pending", StatusPending, true},
		{"refunded", StatusPending, false},
		{"", StatusPending, false},
	}
	for _, tc := range cases {
		got, ok := ParseRemoteStatus(tc.in)
		if got != tc.want || ok != tc.recognized {
			t.Errorf("ParseRemoteStatus(%q) = (%s, %v), want (%s, %v)", tc.in, got, ok, tc.want, tc.recognized)
		}
	}
}
