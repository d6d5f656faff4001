package pricing

import (
	"context"
	"errors"
	"strings"

	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/domain"
	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/internal/catalog"
	"github.com/shopspring/decimal"
)

var DefaultTaxRate = decimal.RequireFromString("0.08")

var ErrInvalidQuantity = errors.New("quantity must be positive")

type Catalog interface {
	GetByName(ctx context.Context, name string) (domain.Product, error)
}

// Calculator totals a cart against catalog prices.
type Calculator struct {
	catalog Catalog
	taxRate decimal.Decimal
}

func NewCalculator(c Catalog, taxRate decimal.Decimal) *Calculator {
	return &Calculator{catalog: c, taxRate: taxRate}
}

// Calculate returns subtotal, tax and total rounded to cents. Tax and total are derived from the
// unrounded subtotal. Names the catalog does not know contribute nothing.
func (c *Calculator) Calculate(ctx context.Context, items []domain.CartItem) (domain.Totals, error) {
	subtotal := decimal.Zero
	for _, item := range items {
		if item.Quantity < 1 {
			return domain.Totals{}, ErrInvalidQuantity
		}
		if strings.TrimSpace(item.Name) == "" {
			continue
		}

		p, err := c.catalog.GetByName(ctx, item.Name)
		if errors.Is(err, catalog.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return domain.Totals{}, err
		}
		subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	tax := subtotal.Mul(c.taxRate)
	return domain.Totals{
		Subtotal: subtotal.Round(2),
		Tax:      tax.Round(2),
		Total:    subtotal.Add(tax).Round(2),
	}, nil
}
