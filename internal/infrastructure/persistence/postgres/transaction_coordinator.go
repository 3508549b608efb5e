package postgres

import (
	"context"
	"fmt"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionCoordinator manages transactions across multiple repositories.
type TransactionCoordinator struct {
	pool *pgxpool.Pool
}

func NewTransactionCoordinator(db *DB) *TransactionCoordinator {
	return &TransactionCoordinator{
		pool: db.Pool,
	}
}

// WithTransaction executes a function within a database transaction.
// The function receives repository instances bound to the transaction, so a
// payment transition and its booking side effect commit or roll back together.
func (tc *TransactionCoordinator) WithTransaction(
	ctx context.Context,
	fn func(payments application.PaymentRepository, bookings application.BookingRepository) error,
) error {
	tx, err := tc.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txPayments := &PaymentRepository{q: tx}
	txBookings := &BookingRepository{q: tx}

	if err := fn(txPayments, txBookings); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
