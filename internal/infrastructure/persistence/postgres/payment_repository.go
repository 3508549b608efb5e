package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const paymentColumns = `
	id, booking_id, transaction_ref, gateway_ref, amount::text, currency, status,
	first_name, last_name, email, phone_number,
	payment_method, checkout_url, gateway_payload,
	created_at, updated_at, completed_at`

type PaymentRepository struct {
	q Executor
}

func NewPaymentRepository(db *DB) *PaymentRepository {
	return &PaymentRepository{q: db.Pool}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			id, booking_id, transaction_ref, gateway_ref, amount, currency, status,
			first_name, last_name, email, phone_number,
			payment_method, checkout_url, gateway_payload,
			created_at, updated_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.q.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.TransactionRef,
		payment.GatewayRef,
		payment.Amount.String(),
		string(payment.Currency),
		string(payment.Status),
		payment.FirstName,
		payment.LastName,
		payment.Email,
		payment.PhoneNumber,
		payment.PaymentMethod,
		payment.CheckoutURL,
		payment.GatewayPayload,
		payment.CreatedAt,
		payment.UpdatedAt,
		payment.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.q.QueryRow(ctx, query, id))
}

func (r *PaymentRepository) FindByReference(ctx context.Context, transactionRef string) (*domain.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE transaction_ref = $1`
	return scanPayment(r.q.QueryRow(ctx, query, transactionRef))
}

// FindByReferenceForUpdate retrieves a payment with a row-level lock. Must run
// inside a transaction-scoped repository to be of any use.
func (r *PaymentRepository) FindByReferenceForUpdate(ctx context.Context, transactionRef string) (*domain.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE transaction_ref = $1 FOR UPDATE`
	return scanPayment(r.q.QueryRow(ctx, query, transactionRef))
}

// FindActiveByBookingID returns the booking's pending or successful payment.
// The partial unique index on (booking_id) guarantees at most one such row.
func (r *PaymentRepository) FindActiveByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.Payment, error) {
	query := `SELECT` + paymentColumns + `
		FROM payments
		WHERE booking_id = $1 AND status IN ('pending', 'success')`
	return scanPayment(r.q.QueryRow(ctx, query, bookingID))
}

func (r *PaymentRepository) FindLatestByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.Payment, error) {
	query := `SELECT` + paymentColumns + `
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at DESC
		LIMIT 1`
	return scanPayment(r.q.QueryRow(ctx, query, bookingID))
}

func (r *PaymentRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Payment, error) {
	query := `
		SELECT p.id, p.booking_id, p.transaction_ref, p.gateway_ref, p.amount::text, p.currency, p.status,
		       p.first_name, p.last_name, p.email, p.phone_number,
		       p.payment_method, p.checkout_url, p.gateway_payload,
		       p.created_at, p.updated_at, p.completed_at
		FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE b.user_id = $1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query payments by user: %w", err)
	}
	return collectPayments(rows)
}

// FindStalePending returns pending payments created before the cutoff, oldest
// first, for the periodic sweep.
func (r *PaymentRepository) FindStalePending(ctx context.Context, cutoff time.Time, limit int) ([]*domain.Payment, error) {
	query := `SELECT` + paymentColumns + `
		FROM payments
		WHERE status = 'pending' AND created_at <= $1
		ORDER BY created_at ASC
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("query stale pending payments: %w", err)
	}
	return collectPayments(rows)
}

func (r *PaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	query := `
		UPDATE payments
		SET status = $1, gateway_ref = $2, payment_method = $3, checkout_url = $4,
		    gateway_payload = $5, completed_at = $6, updated_at = now()
		WHERE id = $7
	`

	results, err := r.q.Exec(ctx, query,
		string(payment.Status),
		payment.GatewayRef,
		payment.PaymentMethod,
		payment.CheckoutURL,
		payment.GatewayPayload,
		payment.CompletedAt,
		payment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if results.RowsAffected() == 0 {
		return fmt.Errorf("payment %s not found", payment.ID)
	}

	return nil
}

func (r *PaymentRepository) SummaryByUser(ctx context.Context, userID uuid.UUID) (*application.PaymentSummary, error) {
	query := `
		SELECT
			count(*),
			count(*) FILTER (WHERE p.status = 'success'),
			count(*) FILTER (WHERE p.status = 'pending'),
			count(*) FILTER (WHERE p.status IN ('failed', 'cancelled')),
			coalesce(sum(p.amount) FILTER (WHERE p.status = 'success'), 0)::text,
			coalesce(max(p.currency), 'ETB')
		FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE b.user_id = $1
	`

	var (
		summary  application.PaymentSummary
		total    string
		currency string
	)
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&summary.TotalPayments,
		&summary.SuccessfulPayments,
		&summary.PendingPayments,
		&summary.FailedPayments,
		&total,
		&currency,
	)
	if err != nil {
		return nil, fmt.Errorf("query payment summary: %w", err)
	}

	spent, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("invalid summary total %q: %w", total, err)
	}
	summary.TotalSpent = spent
	summary.Currency = domain.Currency(currency)
	return &summary, nil
}

func collectPayments(rows pgx.Rows) ([]*domain.Payment, error) {
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Payment, error) {
		var m paymentModel
		if err := row.Scan(
			&m.ID, &m.BookingID, &m.TransactionRef, &m.GatewayRef, &m.Amount, &m.Currency, &m.Status,
			&m.FirstName, &m.LastName, &m.Email, &m.PhoneNumber,
			&m.PaymentMethod, &m.CheckoutURL, &m.GatewayPayload,
			&m.CreatedAt, &m.UpdatedAt, &m.CompletedAt,
		); err != nil {
			return nil, err
		}
		return toDomainPayment(m)
	})
	if err != nil {
		return nil, fmt.Errorf("scan payments: %w", err)
	}
	return results, nil
}

// scanPayment converts a database row into a domain Payment.
// A missing row returns (nil, nil); the caller decides whether that is an error.
func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var m paymentModel
	err := row.Scan(
		&m.ID, &m.BookingID, &m.TransactionRef, &m.GatewayRef, &m.Amount, &m.Currency, &m.Status,
		&m.FirstName, &m.LastName, &m.Email, &m.PhoneNumber,
		&m.PaymentMethod, &m.CheckoutURL, &m.GatewayPayload,
		&m.CreatedAt, &m.UpdatedAt, &m.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}
	return toDomainPayment(m)
}
