package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/catalog"
	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/classifier"
	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/pricing"
	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/service"
)

// ErrorResponse keeps the {success:false, error} shape kiosks already parse.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

func handleError(w http.ResponseWriter, err error) {
	var declined *service.DeclinedError
	if errors.As(err, &declined) {
		respondError(w, http.StatusPaymentRequired, "payment_declined", declined.Reason)
		return
	}

	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrNoBillableItems),
		errors.Is(err, service.ErrInvalidImage),
		errors.Is(err, pricing.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, service.ErrInvalidPaymentMethod):
		respondError(w, http.StatusBadRequest, "invalid_payment_method", err.Error())
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", "Product not found")
	case errors.Is(err, service.ErrClassifierNotConfigured), errors.Is(err, classifier.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, "classifier_unavailable", err.Error())
	case errors.Is(err, classifier.ErrNoPredictions):
		respondError(w, http.StatusBadGateway, "classifier_failed", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
