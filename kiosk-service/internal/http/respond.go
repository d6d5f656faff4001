package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/checkout"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/client"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/normalizer"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/scanner"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleError maps domain errors to HTTP status codes.
func handleError(w http.ResponseWriter, err error) {
	var httpStatus int
	var code string

	switch {
	case errors.Is(err, normalizer.ErrInvalidItem), errors.Is(err, scanner.ErrEmptyImage):
		httpStatus, code = http.StatusBadRequest, "invalid_request"
	case errors.Is(err, checkout.ErrInvalidPaymentMethod):
		httpStatus, code = http.StatusBadRequest, "invalid_payment_method"
	case errors.Is(err, client.ErrProductNotFound):
		httpStatus, code = http.StatusNotFound, "not_found"
	case errors.Is(err, checkout.ErrNoSession):
		httpStatus, code = http.StatusNotFound, "no_session"
	case errors.Is(err, checkout.ErrSessionOpen):
		httpStatus, code = http.StatusConflict, "session_open"
	case errors.Is(err, checkout.ErrEmptyCart):
		httpStatus, code = http.StatusConflict, "empty_cart"
	case errors.Is(err, checkout.ErrPaymentInProgress):
		httpStatus, code = http.StatusConflict, "payment_in_progress"
	case errors.Is(err, checkout.ErrIllegalTransition):
		httpStatus, code = http.StatusConflict, "illegal_transition"
	case errors.Is(err, scanner.ErrScanInProgress):
		httpStatus, code = http.StatusConflict, "scan_in_progress"
	case errors.Is(err, client.ErrExternalCall):
		httpStatus, code = http.StatusBadGateway, "external_call_failed"
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondError(w, httpStatus, code, err.Error())
}
