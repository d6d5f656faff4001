package scanner

import (
	"context"
	"strings"
	"sync"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/client"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/normalizer"
)

type MockPredictor struct {
	result  client.ScanResult
	err     error
	gate    chan struct{}
	started chan struct{}
}

func (p *MockPredictor) Predict(context.Context, string) (client.ScanResult, error) {
	if p.started != nil {
		close(p.started)
	}
	if p.gate != nil {
		<-p.gate
	}
	return p.result, p.err
}

type MockCatalog struct {
	products []domain.Product
	err      error
}

func (c *MockCatalog) Lookup(_ context.Context, key string) (domain.Product, error) {
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

func (c *MockCatalog) ByCategory(_ context.Context, category domain.Category) ([]domain.Product, error) {
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

type MockCart struct {
	m      sync.Mutex
	inputs []normalizer.ItemInput
}

func (c *MockCart) AddOrMerge(in normalizer.ItemInput) (domain.CartLineItem, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	merged := false
	for _, prev := range c.inputs {
		if prev.Name == in.Name {
			merged = true
		}
	}
	c.inputs = append(c.inputs, in)
	return domain.CartLineItem{ID: "item-1", Name: in.Name, Price: in.Price, Quantity: 1, Confidence: in.Confidence, Product: in.Product}, merged
}

type MockNotifier struct {
	m    sync.Mutex
	sent []domain.Notification
}

func (n *MockNotifier) Notify(message string, severity domain.Severity) domain.Notification {
	n.m.Lock()
	defer n.m.Unlock()
	notification := domain.Notification{Message: message, Severity: severity}
	n.sent = append(n.sent, notification)
	return notification
}
