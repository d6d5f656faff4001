package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartLineItem struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Confidence *float64        `json:"confidence,omitempty"`
	Product    Product         `json:"product"`
	Timestamp  time.Time       `json:"timestamp"`
}

// LineTotal is price × quantity.
func (i CartLineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// DisplayName is the catalog name when known, the merge key otherwise.
func (i CartLineItem) DisplayName() string {
	if i.Product.Name != "" {
		return i.Product.Name
	}
	return i.Name
}

// Totals are derived from the line items, never stored.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}
