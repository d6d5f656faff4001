package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutSession exists only while the checkout is open. Items and amounts are fixed at open.
type CheckoutSession struct {
	ID            string          `json:"id"`
	Items         []CartLineItem  `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	State         CheckoutState   `json:"state"`
	Receipt       *Receipt        `json:"receipt,omitempty"`
	Failure       string          `json:"failure,omitempty"`
	OpenedAt      time.Time       `json:"opened_at"`
}

type PaymentItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// PaymentRequest is the body sent to the payment capability.
type PaymentRequest struct {
	Items         []PaymentItem `json:"items"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// NewPaymentRequest builds the wire request from a session snapshot.
func NewPaymentRequest(s CheckoutSession) PaymentRequest {
	items := make([]PaymentItem, len(s.Items))
	for i, item := range s.Items {
		items[i] = PaymentItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price.InexactFloat64(),
		}
	}
	return PaymentRequest{Items: items, PaymentMethod: s.PaymentMethod}
}
