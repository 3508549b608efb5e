// Package worker runs the periodic sweep over stale pending payments.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/application/services"
)

// SweepStats summarizes one sweep cycle.
type SweepStats struct {
	Examined     int
	Transitioned int
	Failed       int
}

// SweepWorker periodically reconciles payments stuck in pending, catching
// records whose gateway callback was lost and whose payer never returned to
// verify. It shares the reconcile path with the webhook and verify endpoints,
// so a concurrent signal for the same reference is harmless.
type SweepWorker struct {
	paymentRepo application.PaymentRepository
	reconciler  *services.ReconcileService
	interval    time.Duration
	staleAfter  time.Duration
	batchSize   int
	logger      *slog.Logger
}

func NewSweepWorker(
	paymentRepo application.PaymentRepository,
	reconciler *services.ReconcileService,
	interval time.Duration,
	staleAfter time.Duration,
	batchSize int,
	logger *slog.Logger,
) *SweepWorker {
	return &SweepWorker{
		paymentRepo: paymentRepo,
		reconciler:  reconciler,
		interval:    interval,
		staleAfter:  staleAfter,
		batchSize:   batchSize,
		logger:      logger,
	}
}

func (w *SweepWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("starting payment sweep worker",
		"interval", w.interval,
		"stale_after", w.staleAfter,
		"batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopping payment sweep worker")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single sweep cycle and reports what it did.
func (w *SweepWorker) RunOnce(ctx context.Context) SweepStats {
	var stats SweepStats

	cutoff := time.Now().Add(-w.staleAfter)
	stale, err := w.paymentRepo.FindStalePending(ctx, cutoff, w.batchSize)
	if err != nil {
		w.logger.Error("failed to fetch stale pending payments", "error", err)
		return stats
	}

	if len(stale) == 0 {
		return stats
	}

	w.logger.Info("sweeping stale pending payments", "count", len(stale))

	for _, p := range stale {
		select {
		case <-ctx.Done():
			return stats
		default:
		}

		stats.Examined++

		result, err := w.reconciler.Reconcile(ctx, p.TransactionRef)
		if err != nil {
			// One unreachable record must not starve the rest of the batch;
			// it stays pending and the next cycle picks it up again.
			stats.Failed++
			if application.IsErrorCode(err, application.ErrCodeGatewayUnavailable) {
				w.logger.Warn("gateway unavailable during sweep, skipping record",
					"transaction_ref", p.TransactionRef)
			} else {
				w.logger.Error("sweep reconciliation failed",
					"transaction_ref", p.TransactionRef,
					"error", err)
			}
			continue
		}

		if result.Transitioned {
			stats.Transitioned++
			w.logger.Info("sweep settled payment",
				"transaction_ref", p.TransactionRef,
				"status", result.Status)
		}
	}

	w.logger.Info("sweep cycle complete",
		"examined", stats.Examined,
		"transitioned", stats.Transitioned,
		"failed", stats.Failed)

	return stats
}
