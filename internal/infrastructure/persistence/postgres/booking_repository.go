package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `
	id, reference, property_id, user_id, email, check_in, check_out,
	guests, nightly_rate::text, status, created_at`

type BookingRepository struct {
	q Executor
}

func NewBookingRepository(db *DB) *BookingRepository {
	return &BookingRepository{q: db.Pool}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (
			id, reference, property_id, user_id, email, check_in, check_out,
			guests, nightly_rate, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.q.Exec(ctx, query,
		booking.ID,
		booking.Reference,
		booking.PropertyID,
		booking.UserID,
		booking.Email,
		booking.CheckIn,
		booking.CheckOut,
		booking.Guests,
		booking.NightlyRate.String(),
		string(booking.Status),
		booking.CreatedAt,
	)
	if err != nil {
		if IsExclusionViolation(err) {
			return fmt.Errorf("booking dates conflict with an existing reservation: %w", err)
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.q.QueryRow(ctx, query, id))
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return scanBooking(r.q.QueryRow(ctx, query, id))
}

// CountOverlapping counts pending and confirmed bookings for the property
// whose date range intersects the given one. Check-out is exclusive, so
// back-to-back stays do not count.
func (r *BookingRepository) CountOverlapping(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (int, error) {
	query := `
		SELECT count(*)
		FROM bookings
		WHERE property_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND check_in < $3
		  AND $2 < check_out
	`

	var count int
	if err := r.q.QueryRow(ctx, query, propertyID, checkIn, checkOut).Scan(&count); err != nil {
		return 0, fmt.Errorf("count overlapping bookings: %w", err)
	}
	return count, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, booking *domain.Booking) error {
	query := `UPDATE bookings SET status = $1 WHERE id = $2`

	results, err := r.q.Exec(ctx, query, string(booking.Status), booking.ID)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if results.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID)
	}

	return nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var m bookingModel
	err := row.Scan(
		&m.ID, &m.Reference, &m.PropertyID, &m.UserID, &m.Email, &m.CheckIn, &m.CheckOut,
		&m.Guests, &m.NightlyRate, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}
	return toDomainBooking(m)
}
