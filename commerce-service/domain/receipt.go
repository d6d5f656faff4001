package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCard   = "card"
	PaymentMethodWallet = "wallet"

	ReceiptStatusCompleted = "completed"

	EventTypeCheckoutCompleted = "checkout.completed"
)

// CartItem is one requested line. Price is whatever the kiosk displayed and is ignored for totals.
type CartItem struct {
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Price    *float64 `json:"price,omitempty"`
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

type Receipt struct {
	ReceiptID     string          `json:"receipt_id"`
	Timestamp     time.Time       `json:"timestamp"`
	Items         []CartItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
}

// CheckoutRequest is the body of POST /api/checkout.
type CheckoutRequest struct {
	Items          []CartItem `json:"items"`
	PaymentMethod  string     `json:"payment_method"`
	IdempotencyKey string     `json:"-"`
}
