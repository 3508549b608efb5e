// Package rest carries the HTTP response envelope and error mapping shared by
// all handlers.
package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
)

// APIResponse is the uniform success envelope.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// WriteError maps application errors to HTTP responses. Unknown errors become
// opaque 500s so internals never leak to the caller.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	svcErr, ok := application.IsServiceError(err)
	if !ok {
		logger.Error("unhandled error reached the HTTP boundary", "error", err)
		svcErr = application.NewInternalError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(svcErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    svcErr.Code,
			Message: svcErr.Message,
		},
	})
}

// WriteValidationError responds 400 with the validation failure detail.
func WriteValidationError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    application.ErrCodeValidation,
			Message: message,
		},
	})
}
