package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
)

type checkoutResponse struct {
	Success bool            `json:"success"`
	Receipt *domain.Receipt `json:"receipt"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// PaymentClient submits checkouts. Calls are never retried.
type PaymentClient struct {
	baseURL string
	http    *http.Client
}

func NewPaymentClient(baseURL string, hc *http.Client) *PaymentClient {
	return &PaymentClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Checkout charges the request. idempotencyKey lets the server recognise a repeated submission.
// A refused payment is reported as ErrPaymentDeclined wrapped in an ExternalCallError.
func (c *PaymentClient) Checkout(ctx context.Context, idempotencyKey string, req domain.PaymentRequest) (domain.Receipt, error) {
	header := http.Header{}
	if idempotencyKey != "" {
		header.Set("Idempotency-Key", idempotencyKey)
	}

	var res checkoutResponse
	code, err := doJSON(ctx, c.http, http.MethodPost, c.baseURL+"/checkout", header, req, &res)
	if err != nil {
		return domain.Receipt{}, &ExternalCallError{Capability: CapabilityPayment, Err: err}
	}

	if !res.Success {
		if code == http.StatusPaymentRequired || isSuccess(code) {
			return domain.Receipt{}, &ExternalCallError{Capability: CapabilityPayment, Err: declined(res.Error)}
		}
		return domain.Receipt{}, &ExternalCallError{
			Capability: CapabilityPayment,
			Err:        &StatusError{Code: code, Message: res.Error},
		}
	}
	if !isSuccess(code) {
		return domain.Receipt{}, &ExternalCallError{Capability: CapabilityPayment, Err: &StatusError{Code: code}}
	}
	if res.Receipt == nil {
		return domain.Receipt{}, &ExternalCallError{Capability: CapabilityPayment, Err: errors.New("response has no receipt")}
	}
	return *res.Receipt, nil
}

func declined(reason string) error {
	if reason == "" {
		return ErrPaymentDeclined
	}
	return fmt.Errorf("%w: %s", ErrPaymentDeclined, reason)
}
