package normalizer

import (
	"math"
	"strings"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
	"github.com/shopspring/decimal"
)

// RawItem is what a scan result or a catalog selection hands to the cart.
type RawItem struct {
	Name       string
	Price      *decimal.Decimal
	Confidence *float64
	Product    *domain.Product
}

// ItemInput is a validated item ready for the cart. Name is the lowercase merge key.
type ItemInput struct {
	Name       string
	Price      decimal.Decimal
	Confidence *float64
	Product    domain.Product
}

func Normalize(raw RawItem) (ItemInput, error) {
	name := strings.ToLower(strings.TrimSpace(raw.Name))
	if name == "" {
		return ItemInput{}, &InvalidItemError{Field: "name", Reason: "is required"}
	}
	if raw.Price == nil {
		return ItemInput{}, &InvalidItemError{Field: "price", Reason: "is required"}
	}
	if raw.Price.IsNegative() {
		return ItemInput{}, &InvalidItemError{Field: "price", Reason: "must not be negative"}
	}

	var confidence *float64
	if raw.Confidence != nil {
		c := *raw.Confidence
		if math.IsNaN(c) || c < 0 || c > 1 {
			return ItemInput{}, &InvalidItemError{Field: "confidence", Reason: "must be within [0,1]"}
		}
		confidence = &c
	}

	product := domain.Product{Name: strings.TrimSpace(raw.Name), Price: *raw.Price}
	if raw.Product != nil {
		product = *raw.Product
	}

	return ItemInput{
		Name:       name,
		Price:      *raw.Price,
		Confidence: confidence,
		Product:    product,
	}, nil
}
