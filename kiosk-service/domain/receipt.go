package domain

import "github.com/shopspring/decimal"

type Receipt struct {
	ReceiptID     string          `json:"receipt_id"`
	Timestamp     string          `json:"timestamp,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"`
	Status        string          `json:"status,omitempty"`
}
