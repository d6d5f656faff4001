package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handlers struct {
	Catalog  *CatalogHandler
	Predict  *PredictHandler
	Checkout *CheckoutHandler
}

type RouterConfig struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
}

func NewRouter(h Handlers, cfg RouterConfig, log *zap.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog(log))
	r.Use(middleware.Recoverer)
	if cfg.MaxRequestBodySize > 0 {
		r.Use(middleware.RequestSize(cfg.MaxRequestBodySize))
	}
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/", h.Catalog.Status)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Catalog.Health)
		r.Get("/products", h.Catalog.Products)
		r.Get("/product/{name}", h.Catalog.Product)
		r.Post("/predict", h.Predict.Predict)
		r.Post("/cart/calculate", h.Checkout.Calculate)
		r.Post("/checkout", h.Checkout.Checkout)
	})

	return r
}
