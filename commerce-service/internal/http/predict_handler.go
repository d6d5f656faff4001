package http

import (
	"context"
	"net/http"
	"time"

	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/service"
)

type Predictor interface {
	Predict(ctx context.Context, image string) (*service.PredictionResult, error)
}

type PredictHandler struct {
	predictor Predictor
	timeout   time.Duration
}

func NewPredictHandler(p Predictor, timeout time.Duration) *PredictHandler {
	return &PredictHandler{predictor: p, timeout: timeout}
}

type PredictRequestDTO struct {
	Image string `json:"image"`
}

type PredictResponse struct {
	Success bool `json:"success"`
	*service.PredictionResult
}

func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if req.Image == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "No image data provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res, err := h.predictor.Predict(ctx, req.Image)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, PredictResponse{Success: true, PredictionResult: res})
}
