package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/interfaces/rest"
)

// Webhook receives Chapa's payment callback. The body's status field is
// advisory only: the reference is always re-verified against the gateway
// before any state changes, so a forged or stale callback cannot settle a
// payment.
func (h *Handlers) Webhook(w http.ResponseWriter, r *http.Request) {
	// A redirect-style callback arrives with no body at all, so a decode
	// failure is not fatal on its own.
	var req webhookRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	txRef := req.TxRef
	if txRef == "" {
		txRef = req.TrxRef
	}
	if txRef == "" {
		// Chapa's redirect-style callback carries the reference as a query
		// parameter instead of a body field.
		txRef = r.URL.Query().Get("tx_ref")
	}
	if txRef == "" {
		rest.WriteValidationError(w, "missing transaction reference")
		return
	}

	h.logger.Info("webhook received",
		"transaction_ref", txRef,
		"reported_status", req.Status)

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
