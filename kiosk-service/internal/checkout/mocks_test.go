package checkout

import (
	"context"
	"sync"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
	"github.com/shopspring/decimal"
)

// MockCart implements Cart for testing
type MockCart struct {
	m       sync.Mutex
	items   []domain.CartLineItem
	cleared int
}

func (c *MockCart) Items() []domain.CartLineItem {
	c.m.Lock()
	defer c.m.Unlock()
	return append([]domain.CartLineItem(nil), c.items...)
}

func (c *MockCart) View() ([]domain.CartLineItem, domain.Totals) {
	c.m.Lock()
	defer c.m.Unlock()
	return append([]domain.CartLineItem(nil), c.items...), c.totalsLocked()
}

func (c *MockCart) totalsLocked() domain.Totals {
	subtotal := decimal.Zero
	count := 0
	for _, item := range c.items {
		subtotal = subtotal.Add(item.LineTotal())
		count += item.Quantity
	}
	tax := subtotal.Mul(decimal.RequireFromString("0.08"))
	return domain.Totals{Subtotal: subtotal, Tax: tax, Total: subtotal.Add(tax), ItemCount: count}
}

func (c *MockCart) Clear() {
	c.m.Lock()
	defer c.m.Unlock()
	c.items = nil
	c.cleared++
}

func (c *MockCart) clearCount() int {
	c.m.Lock()
	defer c.m.Unlock()
	return c.cleared
}

// MockPayment implements PaymentProcessor for testing. When gate is set, calls block until it is closed.
type MockPayment struct {
	m        sync.Mutex
	receipt  domain.Receipt
	err      error
	gate     chan struct{}
	started  chan struct{}
	requests []domain.PaymentRequest
	keys     []string
}

func (p *MockPayment) Checkout(_ context.Context, key string, req domain.PaymentRequest) (domain.Receipt, error) {
	p.m.Lock()
	p.requests = append(p.requests, req)
	p.keys = append(p.keys, key)
	gate, started := p.gate, p.started
	p.m.Unlock()

	if started != nil {
		close(started)
	}
	if gate != nil {
		<-gate
	}

	p.m.Lock()
	defer p.m.Unlock()
	return p.receipt, p.err
}

func (p *MockPayment) calls() int {
	p.m.Lock()
	defer p.m.Unlock()
	return len(p.requests)
}

// MockNotifier captures notifications.
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

func (n *MockNotifier) messages() []string {
	n.m.Lock()
	defer n.m.Unlock()
	out := make([]string, len(n.sent))
	for i, s := range n.sent {
		out[i] = s.Message
	}
	return out
}
