package http

import (
	"context"
	"net/http"
	"time"

	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/domain"
)

const paymentSuccessMessage = "Payment processed successfully"

type Pricer interface {
	Calculate(ctx context.Context, items []domain.CartItem) (domain.Totals, error)
}

type Checkout interface {
	Checkout(ctx context.Context, req *domain.CheckoutRequest) (*domain.Receipt, error)
}

type CheckoutHandler struct {
	pricer   Pricer
	checkout Checkout
	timeout  time.Duration
}

func NewCheckoutHandler(p Pricer, c Checkout, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{pricer: p, checkout: c, timeout: timeout}
}

type CalculateRequestDTO struct {
	Items []domain.CartItem `json:"items"`
}

type CalculateResponse struct {
	Success     bool          `json:"success"`
	Calculation domain.Totals `json:"calculation"`
}

type CheckoutResponse struct {
	Success bool            `json:"success"`
	Receipt *domain.Receipt `json:"receipt"`
	Message string          `json:"message"`
}

func (h *CheckoutHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	totals, err := h.pricer.Calculate(ctx, req.Items)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, CalculateResponse{Success: true, Calculation: totals})
}

// Checkout charges the cart. The Idempotency-Key header makes resubmissions return the
// first receipt.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	req.IdempotencyKey = r.Header.Get("Idempotency-Key")

	// the receipt must be stored even if the kiosk hangs up mid request
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.timeout)
	defer cancel()

	receipt, err := h.checkout.Checkout(ctx, &req)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, CheckoutResponse{
		Success: true,
		Receipt: receipt,
		Message: paymentSuccessMessage,
	})
}
