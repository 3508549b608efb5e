package chapa

import (
	"errors"
	"fmt"
)

// GatewayError is a non-2xx answer from Chapa.
type GatewayError struct {
	Message    string
	StatusCode int
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("chapa error: %s (status: %d)", e.Message, e.StatusCode)
}

// IsRetryable reports whether the failure is worth retrying. Client errors
// are final; server errors and rate limits are transient.
func (e *GatewayError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

func IsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	ok := errors.As(err, &gwErr)
	return gwErr, ok
}
