package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNewBooking_DateValidation(t *testing.T) {
	checkIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewBooking(uuid.New(), uuid.New(), "guest@example.com", checkIn, checkIn, 2, decimal.NewFromInt(500))
	if err == nil {
		t.Error("expected error when check-out equals check-in")
	}

	_, err = NewBooking(uuid.New(), uuid.New(), "guest@example.com", checkIn, checkIn.AddDate(0, 0, -1), 2, decimal.NewFromInt(500))
	if err == nil {
		t.Error("expected error when check-out precedes check-in")
	}

	_, err = NewBooking(uuid.New(), uuid.New(), "", checkIn, checkIn.AddDate(0, 0, 1), 2, decimal.NewFromInt(500))
	if err == nil {
		t.Error("expected error when contact email is missing")
	}

	b, err := NewBooking(uuid.New(), uuid.New(), "guest@example.com", checkIn, checkIn.AddDate(0, 0, 1), 2, decimal.NewFromInt(500))
	if err != nil {
		t.Fatalf("expected valid booking, got %v", err)
	}
	if b.Status != BookingPending {
		t.Errorf("expected new booking pending, got %s", b.Status)
	}
}

func TestTotalPrice(t *testing.T) {
	checkIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	b, _ := NewBooking(uuid.New(), uuid.New(), "guest@example.com", checkIn, checkIn.AddDate(0, 0, 2), 2, decimal.NewFromInt(1000))

	if b.TotalNights() != 2 {
		t.Errorf("expected 2 nights, got %d", b.TotalNights())
	}
	if !b.TotalPrice().Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected total 2000, got %s", b.TotalPrice())
	}
}

func TestConfirm_OnlyFromPending(t *testing.T) {
	b := &Booking{Status: BookingPending}
	if err := b.Confirm(); err != nil {
		t.Fatalf("expected confirm of pending booking to succeed, got %v", err)
	}
	if err := b.Confirm(); err == nil {
		t.Error("expected confirm of confirmed booking to be rejected")
	}

	b = &Booking{Status: BookingCanceled}
	if err := b.Confirm(); err != nil {
		// canceled bookings stay canceled
	} else {
		t.Error("expected confirm of canceled booking to be rejected")
	}
}

func TestOverlaps(t *testing.T) {
	checkIn := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 5)
	b := &Booking{CheckIn: checkIn, CheckOut: checkOut}

	cases := []struct {
		name     string
		in, out  time.Time
		overlaps bool
	}{
		{"identical", checkIn, checkOut, true},
		{"contained", checkIn.AddDate(0, 0, 1), checkOut.AddDate(0, 0, -1), true},
		{"straddles start", checkIn.AddDate(0, 0, -2), checkIn.AddDate(0, 0, 2), true},
		{"straddles end", checkOut.AddDate(0, 0, -1), checkOut.AddDate(0, 0, 3), true},
		{"back to back before", checkIn.AddDate(0, 0, -3), checkIn, false},
		{"back to back after", checkOut, checkOut.AddDate(0, 0, 3), false},
		{"disjoint", checkOut.AddDate(0, 0, 10), checkOut.AddDate(0, 0, 12), false},
	}
	for _, tc := range cases {
		if got := b.Overlaps(tc.in, tc.out); got != tc.overlaps {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.overlaps)
		}
	}
}
