package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
)

type Checkout interface {
	Open(ctx context.Context) (domain.CheckoutSession, error)
	Session() (domain.CheckoutSession, bool)
	SelectPaymentMethod(method domain.PaymentMethod) (domain.CheckoutSession, error)
	Confirm(ctx context.Context) (domain.CheckoutSession, error)
	Retry() (domain.CheckoutSession, error)
	Close() error
}

type CheckoutHandler struct {
	checkout Checkout
}

func NewCheckoutHandler(checkout Checkout) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type PaymentMethodRequestDTO struct {
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
}

func (h *CheckoutHandler) Open(w http.ResponseWriter, r *http.Request) {
	session, err := h.checkout.Open(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toSession(session))
}

func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := h.checkout.Session()
	if !ok {
		respondError(w, http.StatusNotFound, "no_session", "no checkout session is open")
		return
	}
	respondJSON(w, http.StatusOK, toSession(session))
}

func (h *CheckoutHandler) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req PaymentMethodRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session, err := h.checkout.SelectPaymentMethod(req.PaymentMethod)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSession(session))
}

// Confirm blocks until the payment capability answers. The charge survives the client disconnecting.
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	session, err := h.checkout.Confirm(context.WithoutCancel(r.Context()))
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSession(session))
}

func (h *CheckoutHandler) Retry(w http.ResponseWriter, r *http.Request) {
	session, err := h.checkout.Retry()
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toSession(session))
}

func (h *CheckoutHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.checkout.Close(); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
