package http

import (
	"context"
	"net/http"
	"time"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
)

type ProductHandler struct {
	scanner Scanner
	timeout time.Duration
}

func NewProductHandler(scanner Scanner, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		scanner: scanner,
		timeout: timeout,
	}
}

type ProductsResponse struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
}

// Get lists the catalog, optionally filtered with ?category=fruit.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	category := domain.Category(r.URL.Query().Get("category"))
	if category == "all" {
		category = ""
	}

	products, err := h.scanner.Products(ctx, category)
	if err != nil {
		handleError(w, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, ProductsResponse{Products: products, Count: len(products)})
}
