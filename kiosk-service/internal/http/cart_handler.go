package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/client"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/scanner"
	"github.com/go-chi/chi/v5"
)

type CartStore interface {
	View() ([]domain.CartLineItem, domain.Totals)
	UpdateQuantity(id string, delta int) (domain.CartLineItem, bool)
	Remove(id string) (domain.CartLineItem, bool)
}

type Scanner interface {
	Scan(ctx context.Context, image string) (scanner.ScanOutcome, error)
	SelectProduct(ctx context.Context, key string) (domain.CartLineItem, bool, error)
	Products(ctx context.Context, category domain.Category) ([]domain.Product, error)
}

type CartHandler struct {
	cart    CartStore
	scanner Scanner
	timeout time.Duration
}

func NewCartHandler(cart CartStore, scanner Scanner, timeout time.Duration) *CartHandler {
	return &CartHandler{
		cart:    cart,
		scanner: scanner,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
}

type UpdateQuantityRequestDTO struct {
	Delta int `json:"delta"`
}

type ScanRequestDTO struct {
	Image string `json:"image"`
}

type ItemMutationResponse struct {
	Item    *LineItemResponse `json:"item,omitempty"`
	Merged  bool              `json:"merged,omitempty"`
	Changed bool              `json:"changed"`
	Cart    CartResponse      `json:"cart"`
}

type ScanResponse struct {
	Outcome        string              `json:"outcome"`
	Prediction     string              `json:"prediction"`
	Confidence     float64             `json:"confidence"`
	TopPredictions []client.Prediction `json:"top_predictions,omitempty"`
	Item           *LineItemResponse   `json:"item,omitempty"`
	Merged         bool                `json:"merged"`
	Cart           CartResponse        `json:"cart"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.snapshot())
}

// AddItem adds a product chosen in the catalog browser.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	key := strings.TrimSpace(req.ProductID)
	if key == "" {
		key = strings.TrimSpace(req.Name)
	}
	if key == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "product_id or name is required")
		return
	}

	item, merged, err := h.scanner.SelectProduct(ctx, key)
	if err != nil {
		handleError(w, err)
		return
	}

	status := http.StatusCreated
	if merged {
		status = http.StatusOK
	}
	respondJSON(w, status, ItemMutationResponse{
		Item:    lineItem(item),
		Merged:  merged,
		Changed: true,
		Cart:    h.snapshot(),
	})
}

// UpdateQuantity applies a signed delta. Unknown ids and results below one leave the cart unchanged.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	item, changed := h.cart.UpdateQuantity(id, req.Delta)
	resp := ItemMutationResponse{Changed: changed, Cart: h.snapshot()}
	if item.ID != "" {
		resp.Item = lineItem(item)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, removed := h.cart.Remove(id)
	resp := ItemMutationResponse{Changed: removed, Cart: h.snapshot()}
	if removed {
		resp.Item = lineItem(item)
	}
	respondJSON(w, http.StatusOK, resp)
}

// Scan classifies an image and adds the result. The prediction call is not cancelled when the client goes away.
func (h *CartHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	outcome, err := h.scanner.Scan(context.WithoutCancel(r.Context()), req.Image)
	if err != nil {
		handleError(w, err)
		return
	}

	resp := ScanResponse{
		Outcome:        string(outcome.Outcome),
		Prediction:     outcome.Result.Prediction,
		Confidence:     outcome.Result.Confidence,
		TopPredictions: outcome.Result.TopPredictions,
		Merged:         outcome.Merged,
		Cart:           h.snapshot(),
	}
	if outcome.Item != nil {
		resp.Item = lineItem(*outcome.Item)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *CartHandler) snapshot() CartResponse {
	items, totals := h.cart.View()
	return CartResponse{
		Items:          toLineItems(items),
		TotalsResponse: toTotals(totals),
	}
}

func lineItem(item domain.CartLineItem) *LineItemResponse {
	return &toLineItems([]domain.CartLineItem{item})[0]
}
