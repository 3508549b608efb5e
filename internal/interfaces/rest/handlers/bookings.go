package handlers

import (
	"net/http"
	"time"

	"github.com/KevTop1c/alx-travel-app-0x04/internal/application/services"
	"github.com/KevTop1c/alx-travel-app-0x04/internal/interfaces/rest"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req createBookingRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		rest.WriteValidationError(w, "property_id must be a valid UUID")
		return
	}
	checkIn, err := time.Parse("2006-01-02", req.CheckIn)
	if err != nil {
		rest.WriteValidationError(w, "check_in must be formatted as YYYY-MM-DD")
		return
	}
	checkOut, err := time.Parse("2006-01-02", req.CheckOut)
	if err != nil {
		rest.WriteValidationError(w, "check_out must be formatted as YYYY-MM-DD")
		return
	}

	booking, err := h.bookingService.Create(r.Context(), services.CreateBookingCommand{
		PropertyID:  propertyID,
		UserID:      userID,
		Email:       req.Email,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      req.Guests,
		NightlyRate: decimal.NewFromFloat(req.NightlyRate),
	})
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, toBookingResponse(booking), "booking created")
}

func (h *Handlers) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		rest.WriteValidationError(w, "booking id must be a valid UUID")
		return
	}

	booking, err := h.bookingService.Cancel(r.Context(), bookingID, userID)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, toBookingResponse(booking), "booking cancelled")
}

func (h *Handlers) BookingPaymentStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.userID(w, r); !ok {
		return
	}

	bookingID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		rest.WriteValidationError(w, "booking id must be a valid UUID")
		return
	}

	booking, payment, err := h.queryService.BookingPaymentStatus(r.Context(), bookingID)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	resp := bookingPaymentStatusResponse{Booking: toBookingResponse(booking)}
	if payment != nil {
		p := toPaymentResponse(payment)
		resp.Payment = &p
	}

	rest.WriteJSON(w, http.StatusOK, resp, "")
}
