package checkout

import (
	"context"
	"time"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
)

// PaymentProcessor is the remote payment capability.
type PaymentProcessor interface {
	Checkout(ctx context.Context, idempotencyKey string, req domain.PaymentRequest) (domain.Receipt, error)
}

type PaymentHandler struct {
	paymentClient PaymentProcessor
	timeout       time.Duration
}

func NewPaymentHandler(paymentClient PaymentProcessor, timeout time.Duration) *PaymentHandler {
	return &PaymentHandler{
		paymentClient: paymentClient,
		timeout:       timeout,
	}
}

func (h *PaymentHandler) charge(ctx context.Context, sessionID string, req domain.PaymentRequest) (domain.Receipt, error) {
	if h.timeout <= 0 {
		return h.paymentClient.Checkout(ctx, sessionID, req)
	}
	paymentCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return h.paymentClient.Checkout(paymentCtx, sessionID, req)
}
