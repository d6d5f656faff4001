package domain

import "github.com/shopspring/decimal"

// Product is a catalog row as served on /api/products.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Barcode     string          `json:"barcode"`
	Description string          `json:"description,omitempty"`
	Nutrition   string          `json:"nutrition,omitempty"`
	Origin      string          `json:"origin,omitempty"`
}
