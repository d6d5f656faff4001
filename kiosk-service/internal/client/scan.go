package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
	"github.com/VidhyaES/scanova-ai-self-checkout/pkg/circuitbreaker"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

type Prediction struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// ScanResult is the prediction for one captured image. Product is nil when the label is not in the catalog.
type ScanResult struct {
	Success        bool            `json:"success"`
	Prediction     string          `json:"prediction"`
	Confidence     float64         `json:"confidence"`
	Product        *domain.Product `json:"product"`
	TopPredictions []Prediction    `json:"top_predictions"`
	Timestamp      string          `json:"timestamp"`
	Error          string          `json:"error,omitempty"`
}

type ScanClient struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[ScanResult]
}

func NewScanClient(baseURL string, hc *http.Client, log *zap.Logger) *ScanClient {
	return &ScanClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		breaker: circuitbreaker.New[ScanResult](circuitbreaker.Config{
			Name:   CapabilityScan,
			Ignore: isRejectedRequest,
		}, log),
	}
}

// Predict sends a base64 (or data URL) image to the prediction capability.
func (c *ScanClient) Predict(ctx context.Context, image string) (ScanResult, error) {
	result, err := c.breaker.Execute(func() (ScanResult, error) {
		var res ScanResult
		code, err := doJSON(ctx, c.http, http.MethodPost, c.baseURL+"/predict", nil, map[string]string{"image": image}, &res)
		if err != nil {
			return ScanResult{}, err
		}
		if !isSuccess(code) || !res.Success {
			return ScanResult{}, &StatusError{Code: code, Message: res.Error}
		}
		return res, nil
	})
	if err != nil {
		return ScanResult{}, &ExternalCallError{Capability: CapabilityScan, Err: err}
	}
	return result, nil
}
