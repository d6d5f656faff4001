package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handlers struct {
	Cart         *CartHandler
	Products     *ProductHandler
	Checkout     *CheckoutHandler
	Notification *NotificationHandler
}

type RouterConfig struct {
	// HandlerTimeout must exceed the payment call timeout, confirm blocks on it.
	HandlerTimeout     time.Duration
	MaxRequestBodySize int64
}

func NewRouter(h Handlers, cfg RouterConfig, log *zap.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(log))
	if cfg.HandlerTimeout > 0 {
		r.Use(middleware.Timeout(cfg.HandlerTimeout))
	}
	if cfg.MaxRequestBodySize > 0 {
		r.Use(middleware.RequestSize(cfg.MaxRequestBodySize))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Post("/items", h.Cart.AddItem)
			r.Patch("/items/{id}", h.Cart.UpdateQuantity)
			r.Delete("/items/{id}", h.Cart.RemoveItem)
		})
		r.Post("/scan", h.Cart.Scan)
		r.Get("/products", h.Products.Get)
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", h.Checkout.Open)
			r.Get("/", h.Checkout.Get)
			r.Delete("/", h.Checkout.Close)
			r.Put("/payment-method", h.Checkout.SelectPaymentMethod)
			r.Post("/confirm", h.Checkout.Confirm)
			r.Post("/retry", h.Checkout.Retry)
		})
		r.Get("/notification", h.Notification.Get)
	})

	return r
}
