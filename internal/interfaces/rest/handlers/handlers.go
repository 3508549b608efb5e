// Package handlers wires the HTTP API onto the application services.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/application/services"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/interfaces/rest"
	"github.com/go-playground/validator"
	"github.com/google/uuid"
)

type Handlers struct {
	bookingService   *services.BookingService
	initiateService  *services.InitiateService
	reconcileService *services.ReconcileService
	retryService     *services.RetryService
	cancelService    *services.CancelService
	queryService     *services.QueryService
	validate         *validator.Validate
	logger           *slog.Logger
}

func NewHandlers(
	bookingService *services.BookingService,
	initiateService *services.InitiateService,
	reconcileService *services.ReconcileService,
	retryService *services.RetryService,
	cancelService *services.CancelService,
	queryService *services.QueryService,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		bookingService:   bookingService,
		initiateService:  initiateService,
		reconcileService: reconcileService,
		retryService:     retryService,
		cancelService:    cancelService,
		queryService:     queryService,
		validate:         validator.New(),
		logger:           logger,
	}
}

// RegisterRoutes mounts every endpoint on the mux.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/bookings", h.CreateBooking)
	mux.HandleFunc("POST /api/v1/bookings/{id}/cancel", h.CancelBooking)
	mux.HandleFunc("GET /api/v1/bookings/{id}/payment-status", h.BookingPaymentStatus)

	mux.HandleFunc("POST /api/v1/payments/initiate", h.InitiatePayment)
	mux.HandleFunc("GET /api/v1/payments/verify/{tx_ref}", h.VerifyPayment)
	mux.HandleFunc("POST /api/v1/payments/webhook", h.Webhook)
	mux.HandleFunc("GET /api/v1/payments", h.ListPayments)
	mux.HandleFunc("GET /api/v1/payments/summary", h.PaymentSummary)
	mux.HandleFunc("GET /api/v1/payments/{tx_ref}", h.GetPayment)
	mux.HandleFunc("POST /api/v1/payments/{tx_ref}/retry", h.RetryPayment)
	mux.HandleFunc("POST /api/v1/payments/{tx_ref}/cancel", h.CancelPayment)
}

// userID extracts the authenticated caller's identity. Authentication itself
// lives at the edge proxy; this service trusts the forwarded header.
func (h *Handlers) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		h.writeUnauthenticated(w)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.writeUnauthenticated(w)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handlers) writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
		Success: false,
		Error: rest.ErrorDetail{
			Code:    application.ErrCodeUnauthorized,
			Message: "missing or invalid user identity",
		},
	})
}

func (h *Handlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		rest.WriteValidationError(w, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		rest.WriteValidationError(w, err.Error())
		return false
	}
	return true
}
