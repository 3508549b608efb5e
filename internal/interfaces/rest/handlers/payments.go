package handlers

import (
	"net/http"
	"strconv"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application/services"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/interfaces/rest"
	"github.com/google/uuid"
)

func (h *Handlers) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req initiatePaymentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		rest.WriteValidationError(w, "booking_id must be a valid UUID")
		return
	}

	payment, err := h.initiateService.Initiate(r.Context(), services.InitiateCommand{
		BookingID:   bookingID,
		UserID:      userID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, toPaymentResponse(payment), "payment initiated")
}

// VerifyPayment reconciles a payment on the payer's request, typically when
// they land back on the return URL after checkout.
func (h *Handlers) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.userID(w, r); !ok {
		return
	}

	txRef := r.PathValue("tx_ref")
	result, err := h.reconcileService.Reconcile(r.Context(), txRef)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, verifyResponse{
		TransactionRef: txRef,
		Status:         string(result.Status),
		Transitioned:   result.Transitioned,
	}, "")
}

func (h *Handlers) RetryPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	payment, err := h.retryService.Retry(r.Context(), r.PathValue("tx_ref"), userID)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, toPaymentResponse(payment), "payment retry initiated")
}

func (h *Handlers) CancelPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	payment, err := h.cancelService.Cancel(r.Context(), r.PathValue("tx_ref"), userID)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, toPaymentResponse(payment), "payment cancelled")
}

func (h *Handlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	payment, err := h.queryService.GetPayment(r.Context(), r.PathValue("tx_ref"), userID)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, toPaymentResponse(payment), "")
}

func (h *Handlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	payments, err := h.queryService.ListPayments(r.Context(), userID, limit, offset)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	results := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		results = append(results, toPaymentResponse(p))
	}

	rest.WriteJSON(w, http.StatusOK, results, "")
}

func (h *Handlers) PaymentSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	summary, err := h.queryService.Summary(r.Context(), userID)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, toSummaryResponse(summary), "")
}
