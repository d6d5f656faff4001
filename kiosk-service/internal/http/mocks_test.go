package http

import (
	"context"
	"strings"
	"sync"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/client"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/storage"
)

type memSnapshots struct {
	m    sync.Mutex
	data map[string][]byte
}

func (s *memSnapshots) Load(_ context.Context, key string) ([]byte, error) {
	s.m.Lock()
	defer s.m.Unlock()
	data, ok := s.data[key]
	if !ok {
		return nil, storage.ErrSnapshotNotFound
	}
	return data, nil
}

func (s *memSnapshots) Save(_ context.Context, key string, data []byte) error {
	s.m.Lock()
	defer s.m.Unlock()
	if s.data == nil {
		s.data = map[string][]byte{}
	}
	s.data[key] = data
	return nil
}

func (s *memSnapshots) Close() error { return nil }

type PredictorStub struct {
	result client.ScanResult
	err    error
}

func (p *PredictorStub) Predict(context.Context, string) (client.ScanResult, error) {
	return p.result, p.err
}

type CatalogStub struct {
	products []domain.Product
	err      error
}

func (c *CatalogStub) Lookup(_ context.Context, key string) (domain.Product, error) {
	if c.err != nil {
		return domain.Product{}, c.err
	}
	for _, p := range c.products {
		if p.ID == key || strings.EqualFold(p.Name, key) {
			return p, nil
		}
	}
	return domain.Product{}, client.ErrProductNotFound
}

func (c *CatalogStub) ByCategory(_ context.Context, category domain.Category) ([]domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	var out []domain.Product
	for _, p := range c.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

type PaymentStub struct {
	m       sync.Mutex
	receipt domain.Receipt
	err     error
}

func (p *PaymentStub) Checkout(context.Context, string, domain.PaymentRequest) (domain.Receipt, error) {
	p.m.Lock()
	defer p.m.Unlock()
	return p.receipt, p.err
}
