package chapa

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/config"
)

// RetryClient wraps a gateway client with bounded exponential backoff.
// Initialize and Verify are both safe to retry: initialize is keyed by the
// local transaction reference and verify is a pure read.
type RetryClient struct {
	inner      application.GatewayClient
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryClient(inner application.GatewayClient, cfg config.RetryConfig) *RetryClient {
	return &RetryClient{
		inner:      inner,
		baseDelay:  time.Duration(cfg.BaseDelay) * time.Second,
		maxRetries: int(cfg.MaxRetries),
	}
}

func (r *RetryClient) Initialize(ctx context.Context, req application.InitializeRequest) (*application.InitializeResponse, error) {
	return retry(
		r,
		ctx,
		func(ctx context.Context) (*application.InitializeResponse, error) {
			return r.inner.Initialize(ctx, req)
		},
	)
}

func (r *RetryClient) Verify(ctx context.Context, transactionRef string) (*application.VerifyResponse, error) {
	return retry(
		r,
		ctx,
		func(ctx context.Context) (*application.VerifyResponse, error) {
			return r.inner.Verify(ctx, transactionRef)
		},
	)
}

func retry[T any](r *RetryClient, ctx context.Context, operation func(ctx context.Context) (*T, error)) (*T, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := operation(ctx)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}

		if attempt < r.maxRetries-1 {
			time.Sleep(r.backoff(attempt))
		}
	}

	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

func isRetryable(err error) bool {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.IsRetryable()
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	// Transport errors and timeouts are transient.
	return true
}

// Backoff calculation with exponential delay and jitter
func (r *RetryClient) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)

	jitter := time.Duration(rand.Intn(1000)) * time.Millisecond

	return base + jitter
}
