package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"adselect/internal/core/port"
)

// handleRegisterImpression creates a delivery event for a served ad. The
// body carries the event id assigned by the caller, the identifier tokens
// and the keyword context. On success the minimal found-event payload is
// returned.
func (h *Handler) handleRegisterImpression(w http.ResponseWriter, r *http.Request) {
	var req port.ImpressionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	found, err := h.events.RegisterImpression(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, found)
}

type clickReq struct {
	ClickId   int64      `json:"click_id"`
	ClickTime *time.Time `json:"click_time"`
}

// handleClick attributes a click to the event identified by the {id} path
// parameter. Re-attributing the same click id is idempotent; a different
// click id is rejected with HTTP 409.
func (h *Handler) handleClick(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	var req clickReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	clickTime := time.Now().UTC()
	if req.ClickTime != nil {
		clickTime = *req.ClickTime
	}
	found, err := h.events.AttributeClick(r.Context(), eventID, req.ClickId, clickTime)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, found)
}

type paymentReq struct {
	PaymentId   int64      `json:"payment_id"`
	PaidAmount  float64    `json:"paid_amount"`
	PaymentTime *time.Time `json:"payment_time"`
}

// handlePayment attributes a payment to the event identified by the {id}
// path parameter. Payments accumulate; negative amounts yield HTTP 422.
func (h *Handler) handlePayment(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	var req paymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	paymentTime := time.Now().UTC()
	if req.PaymentTime != nil {
		paymentTime = *req.PaymentTime
	}
	found, err := h.events.AttributePayment(r.Context(), eventID, req.PaymentId, req.PaidAmount, paymentTime)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, found)
}

// handleGetEvent returns the full serialized projection of a stored event.
func (h *Handler) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.eventID(w, r)
	if !ok {
		return
	}
	ev, err := h.events.GetEvent(r.Context(), eventID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ev.ToMap())
}

func (h *Handler) eventID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
