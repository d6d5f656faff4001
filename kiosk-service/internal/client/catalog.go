package client

import (
	"cmp"
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
	"github.com/VidhyaES/scanova-ai-self-checkout/pkg/circuitbreaker"
	"github.com/jellydator/ttlcache/v3"
	"github.com/jpillora/backoff"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const catalogKey = "products"

type CatalogConfig struct {
	CacheTTL   time.Duration
	Attempts   int
	MinBackoff time.Duration
	MaxBackoff time.Duration
}

func (c CatalogConfig) withDefaults() CatalogConfig {
	if c.CacheTTL <= 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.Attempts <= 0 {
		c.Attempts = 3
	}
	if c.MinBackoff <= 0 {
		c.MinBackoff = 100 * time.Millisecond
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = 2 * time.Second
	}
	return c
}

type catalogResponse struct {
	Success  bool                      `json:"success"`
	Products map[string]domain.Product `json:"products"`
	Count    int                       `json:"count"`
	Error    string                    `json:"error,omitempty"`
}

// CatalogClient reads the product catalog. Results are cached and concurrent loads share one request.
type CatalogClient struct {
	baseURL string
	http    *http.Client
	cfg     CatalogConfig
	cache   *ttlcache.Cache[string, []domain.Product]
	group   singleflight.Group
	breaker *gobreaker.CircuitBreaker[[]domain.Product]
	log     *zap.Logger
}

func NewCatalogClient(baseURL string, hc *http.Client, cfg CatalogConfig, log *zap.Logger) *CatalogClient {
	cfg = cfg.withDefaults()
	return &CatalogClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		cfg:     cfg,
		cache: ttlcache.New[string, []domain.Product](
			ttlcache.WithTTL[string, []domain.Product](cfg.CacheTTL),
		),
		breaker: circuitbreaker.New[[]domain.Product](circuitbreaker.Config{Name: CapabilityCatalog}, log),
		log:     log,
	}
}

// Products returns the whole catalog ordered by id.
func (c *CatalogClient) Products(ctx context.Context) ([]domain.Product, error) {
	if item := c.cache.Get(catalogKey); item != nil {
		return item.Value(), nil
	}

	v, err, shared := c.group.Do(catalogKey, func() (any, error) {
		products, err := c.fetchWithRetry(ctx)
		if err != nil {
			return nil, err
		}
		c.cache.Set(catalogKey, products, ttlcache.DefaultTTL)
		return products, nil
	})
	if err != nil {
		return nil, &ExternalCallError{Capability: CapabilityCatalog, Err: err}
	}
	if shared {
		c.log.Debug("catalog load shared between callers")
	}
	return v.([]domain.Product), nil
}

// ByCategory filters the catalog. An empty category returns everything.
func (c *CatalogClient) ByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	products, err := c.Products(ctx)
	if err != nil || category == "" {
		return products, err
	}
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Lookup finds a product by id or case-insensitive name.
func (c *CatalogClient) Lookup(ctx context.Context, key string) (domain.Product, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range products {
		if p.ID == key || strings.EqualFold(p.Name, strings.TrimSpace(key)) {
			return p, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}

func (c *CatalogClient) fetchWithRetry(ctx context.Context) ([]domain.Product, error) {
	b := &backoff.Backoff{Min: c.cfg.MinBackoff, Max: c.cfg.MaxBackoff, Factor: 2, Jitter: true}
	for attempt := 1; ; attempt++ {
		products, err := c.breaker.Execute(func() ([]domain.Product, error) {
			return c.fetch(ctx)
		})
		if err == nil {
			return products, nil
		}
		if attempt >= c.cfg.Attempts || circuitbreaker.IsOpen(err) {
			return nil, err
		}

		wait := b.Duration()
		c.log.Warn("catalog fetch failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err))
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (c *CatalogClient) fetch(ctx context.Context) ([]domain.Product, error) {
	var res catalogResponse
	code, err := doJSON(ctx, c.http, http.MethodGet, c.baseURL+"/products", nil, nil, &res)
	if err != nil {
		return nil, err
	}
	if !isSuccess(code) || !res.Success {
		if res.Error != "" {
			return nil, errors.New(res.Error)
		}
		return nil, &StatusError{Code: code}
	}

	products := make([]domain.Product, 0, len(res.Products))
	for id, p := range res.Products {
		if p.ID == "" {
			p.ID = id
		}
		products = append(products, p)
	}
	// numeric ids sort naturally when compared by length first
	slices.SortFunc(products, func(a, b domain.Product) int {
		if n := cmp.Compare(len(a.ID), len(b.ID)); n != 0 {
			return n
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return products, nil
}
