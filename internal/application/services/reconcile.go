package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/domain"
)

// ReconcileResult reports the outcome of one reconciliation pass.
// Transitioned distinguishes a fresh signal from an already-settled record,
// which the periodic sweep needs for accurate counts.
type ReconcileResult struct {
	Status       domain.PaymentStatus
	Transitioned bool
}

// ReconcileService drives a payment through its state machine from the
// gateway's remote status. It is the single entry point for all three signal
// sources: the gateway-pushed callback, the user-triggered verify endpoint,
// and the periodic sweep. Any of them may race for the same reference; the
// monotone transition rule plus the locked check-then-set write make the
// operation idempotent without coordination between callers.
type ReconcileService struct {
	paymentRepo application.PaymentRepository
	gateway     application.GatewayClient
	tx          application.TransactionCoordinator
	notifier    application.NotificationDispatcher
	logger      *slog.Logger
}

func NewReconcileService(
	paymentRepo application.PaymentRepository,
	gateway application.GatewayClient,
	tx application.TransactionCoordinator,
	notifier application.NotificationDispatcher,
	logger *slog.Logger,
) *ReconcileService {
	return &ReconcileService{
		paymentRepo: paymentRepo,
		gateway:     gateway,
		tx:          tx,
		notifier:    notifier,
		logger:      logger,
	}
}

// Reconcile fetches the remote status for the referenced payment and applies
// the transition table. Already-settled records short-circuit without a
// gateway call. A gateway failure returns GatewayUnavailable with no local
// writes, so the next verify or sweep cycle can retry cleanly.
func (s *ReconcileService) Reconcile(ctx context.Context, transactionRef string) (*ReconcileResult, error) {
	payment, err := s.paymentRepo.FindByReference(ctx, transactionRef)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, application.NewNotFoundError("payment")
	}

	if payment.IsTerminal() {
		return &ReconcileResult{Status: payment.Status, Transitioned: false}, nil
	}

	verifyResp, err := s.gateway.Verify(ctx, transactionRef)
	if err != nil {
		s.logger.Error("gateway verify failed",
			"transaction_ref", transactionRef,
			"error", err)
		return nil, application.NewGatewayUnavailableError(err)
	}

	remote, recognized := domain.ParseRemoteStatus(verifyResp.Status)
	if !recognized {
		s.logger.Warn("unrecognized gateway status, treating as pending",
			"transaction_ref", transactionRef,
			"remote_status", verifyResp.Status)
	}

	var result ReconcileResult
	err = s.tx.WithTransaction(ctx, func(payments application.PaymentRepository, bookings application.BookingRepository) error {
		p, err := payments.FindByReferenceForUpdate(ctx, transactionRef)
		if err != nil {
			return err
		}
		if p == nil {
			return application.NewNotFoundError("payment")
		}

		// A concurrent caller settled the record between our read and the
		// lock. Benign lost race, not an error.
		if p.IsTerminal() {
			result = ReconcileResult{Status: p.Status, Transitioned: false}
			return nil
		}

		applyVerifyResponse(p, verifyResp)
		transitioned := p.Settle(remote, time.Now())
		if err := payments.Update(ctx, p); err != nil {
			return err
		}

		if transitioned && p.Status == domain.StatusSuccess {
			booking, err := bookings.FindByIDForUpdate(ctx, p.BookingID)
			if err != nil {
				return err
			}
			if booking.Status == domain.BookingPending {
				if err := booking.Confirm(); err != nil {
					return err
				}
				if err := bookings.UpdateStatus(ctx, booking); err != nil {
					return err
				}
			}
		}

		result = ReconcileResult{Status: p.Status, Transitioned: transitioned}
		return nil
	})
	if err != nil {
		if _, ok := application.IsServiceError(err); ok {
			return nil, err
		}
		return nil, application.NewInternalError(err)
	}

	// Notifications fire only after the transition is durably committed, so
	// no email can reference a state that never persisted.
	if result.Transitioned {
		switch result.Status {
		case domain.StatusSuccess:
			s.notifier.Enqueue(application.NotifyPaymentSucceeded, payment.ID)
			s.logger.Info("payment settled as success",
				"transaction_ref", transactionRef)
		case domain.StatusFailed:
			s.notifier.Enqueue(application.NotifyPaymentFailed, payment.ID)
			s.logger.Warn("payment settled as failed",
				"transaction_ref", transactionRef,
				"remote_status", verifyResp.Status)
		}
	}

	return &result, nil
}

// applyVerifyResponse records the gateway's latest answer on the payment for
// traceability, whatever the resulting status.
func applyVerifyResponse(p *domain.Payment, resp *application.VerifyResponse) {
	p.GatewayPayload = resp.RawPayload
	if resp.GatewayRef != "" {
		ref := resp.GatewayRef
		p.GatewayRef = &ref
	}
	if resp.PaymentMethod != "" {
		method := resp.PaymentMethod
		p.PaymentMethod = &method
	}
}
