package http

import (
	"context"
	"net/http"
	"time"

	"github.com/VidhyaES/scanova-ai-self-checkout/commerce-service/domain"
	"github.com/go-chi/chi/v5"
)

const apiVersion = "1.0"

type Catalog interface {
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByName(ctx context.Context, name string) (domain.Product, error)
}

type CatalogHandler struct {
	catalog              Catalog
	classifierConfigured bool
	timeout              time.Duration
}

func NewCatalogHandler(c Catalog, classifierConfigured bool, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{catalog: c, classifierConfigured: classifierConfigured, timeout: timeout}
}

type StatusResponse struct {
	Status               string `json:"status"`
	Message              string `json:"message"`
	Version              string `json:"version"`
	ClassifierConfigured bool   `json:"classifier_configured"`
	TotalProducts        int    `json:"total_products"`
}

type ProductsResponse struct {
	Success  bool                      `json:"success"`
	Products map[string]domain.Product `json:"products"`
	Count    int                       `json:"count"`
}

type ProductResponse struct {
	Success bool           `json:"success"`
	Product domain.Product `json:"product"`
}

func (h *CatalogHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.GetAll(ctx)
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, StatusResponse{
		Status:               "online",
		Message:              "Smart Supermarket Self-Checkout API",
		Version:              apiVersion,
		ClassifierConfigured: h.classifierConfigured,
		TotalProducts:        len(products),
	})
}

func (h *CatalogHandler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

// Products returns the whole catalog keyed by product id.
func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.GetAll(ctx)
	if err != nil {
		handleError(w, err)
		return
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	respondJSON(w, http.StatusOK, ProductsResponse{Success: true, Products: byID, Count: len(byID)})
}

func (h *CatalogHandler) Product(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := h.catalog.GetByName(ctx, chi.URLParam(r, "name"))
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ProductResponse{Success: true, Product: p})
}
