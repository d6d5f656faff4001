package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const catalogBody = `{
	"success": true,
	"count": 3,
	"products": {
		"10": {"name": "Bell Pepper", "price": 3.99, "unit": "each", "category": "vegetable"},
		"2": {"id": "2", "name": "Banana", "price": 1.49, "unit": "per lb", "category": "fruit"},
		"1": {"id": "1", "name": "Apple", "price": 2.99, "unit": "per lb", "category": "fruit"}
	}
}`

func fastCatalogConfig() CatalogConfig {
	return CatalogConfig{CacheTTL: time.Minute, Attempts: 3, MinBackoff: time.Millisecond, MaxBackoff: 5 * time.Millisecond}
}

func newCatalogServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		calls.Add(1)
		_, _ = w.Write([]byte(catalogBody))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProducts_OrderedByID(t *testing.T) {
	var calls atomic.Int32
	srv := newCatalogServer(t, &calls)
	c := NewCatalogClient(srv.URL, NewHTTPClient(time.Second), fastCatalogConfig(), zap.NewNop())

	products, err := c.Products(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, []string{"1", "2", "10"}, []string{products[0].ID, products[1].ID, products[2].ID})
	assert.Equal(t, "Bell Pepper", products[2].Name)
}

func TestProducts_Cached(t *testing.T) {
	var calls atomic.Int32
	srv := newCatalogServer(t, &calls)
	c := NewCatalogClient(srv.URL, NewHTTPClient(time.Second), fastCatalogConfig(), zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := c.Products(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), calls.Load())
}

func TestProducts_ConcurrentLoadsShareRequest(t *testing.T) {
	var calls atomic.Int32
	gate := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-gate
		_, _ = w.Write([]byte(catalogBody))
	}))
	defer srv.Close()
	c := NewCatalogClient(srv.URL, NewHTTPClient(time.Second), fastCatalogConfig(), zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Products(context.Background())
			assert.NoError(t, err)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestProducts_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(catalogBody))
	}))
	defer srv.Close()
	c := NewCatalogClient(srv.URL, NewHTTPClient(time.Second), fastCatalogConfig(), zap.NewNop())

	products, err := c.Products(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Equal(t, int32(3), calls.Load())
}

func TestProducts_GivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success": false, "error": "db down"}`))
	}))
	defer srv.Close()
	c := NewCatalogClient(srv.URL, NewHTTPClient(time.Second), fastCatalogConfig(), zap.NewNop())

	_, err := c.Products(context.Background())

	require.ErrorIs(t, err, ErrExternalCall)
	assert.Contains(t, err.Error(), "db down")
	assert.Equal(t, int32(3), calls.Load())
}

func TestByCategory(t *testing.T) {
	var calls atomic.Int32
	srv := newCatalogServer(t, &calls)
	c := NewCatalogClient(srv.URL, NewHTTPClient(time.Second), fastCatalogConfig(), zap.NewNop())

	fruit, err := c.ByCategory(context.Background(), domain.CategoryFruit)
	require.NoError(t, err)
	assert.Len(t, fruit, 2)

	all, err := c.ByCategory(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLookup(t *testing.T) {
	var calls atomic.Int32
	srv := newCatalogServer(t, &calls)
	c := NewCatalogClient(srv.URL, NewHTTPClient(time.Second), fastCatalogConfig(), zap.NewNop())

	byName, err := c.Lookup(context.Background(), "bell pepper")
	require.NoError(t, err)
	assert.Equal(t, "10", byName.ID)

	byID, err := c.Lookup(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Banana", byID.Name)

	_, err = c.Lookup(context.Background(), "durian")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
