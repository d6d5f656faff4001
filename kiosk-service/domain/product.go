package domain

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryFruit     Category = "fruit"
	CategoryVegetable Category = "vegetable"
)

// Product is a catalog descriptor. Line items hold a copy, never a pointer into the catalog.
type Product struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit,omitempty"`
	Category    Category        `json:"category,omitempty"`
	Image       string          `json:"image,omitempty"`
	Barcode     string          `json:"barcode,omitempty"`
	Description string          `json:"description,omitempty"`
	Nutrition   string          `json:"nutrition,omitempty"`
	Origin      string          `json:"origin,omitempty"`
}
