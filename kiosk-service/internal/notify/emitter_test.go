package notify

import (
	"testing"
	"time"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/cart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupEmitter(t *testing.T, ttl time.Duration) *Emitter {
	e := NewEmitter(ttl, zap.NewNop())
	t.Cleanup(e.Close)
	return e
}

func TestNotify_Current(t *testing.T) {
	e := setupEmitter(t, time.Minute)

	sent := e.Notify("Payment failed. Please try again.", domain.SeverityError)
	got, ok := e.Current()

	require.True(t, ok)
	assert.Equal(t, sent, got)
	assert.Equal(t, time.Minute, got.ExpiresAt.Sub(got.CreatedAt))
}

func TestNotify_ReplacesCurrent(t *testing.T) {
	e := setupEmitter(t, time.Minute)

	e.Notify("first", domain.SeverityInfo)
	second := e.Notify("second", domain.SeveritySuccess)
	got, ok := e.Current()

	require.True(t, ok)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, "second", got.Message)
}

func TestNotify_Expires(t *testing.T) {
	e := setupEmitter(t, 50*time.Millisecond)

	e.Notify("short lived", domain.SeverityInfo)

	assert.Eventually(t, func() bool {
		_, ok := e.Current()
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestNotify_ReplacementRestartsExpiry(t *testing.T) {
	e := setupEmitter(t, 200*time.Millisecond)

	e.Notify("first", domain.SeverityInfo)
	time.Sleep(120 * time.Millisecond)
	e.Notify("second", domain.SeverityInfo)
	time.Sleep(120 * time.Millisecond)

	got, ok := e.Current()
	require.True(t, ok)
	assert.Equal(t, "second", got.Message)
}

func TestCurrent_Empty(t *testing.T) {
	e := setupEmitter(t, time.Minute)

	_, ok := e.Current()

	assert.False(t, ok)
}

func TestNewEmitter_DefaultTTL(t *testing.T) {
	e := setupEmitter(t, 0)

	n := e.Notify("hello", domain.SeverityInfo)

	assert.Equal(t, DefaultTTL, n.ExpiresAt.Sub(n.CreatedAt))
}

func TestOnCartEvent(t *testing.T) {
	apple := domain.CartLineItem{Name: "apple", Product: domain.Product{Name: "Apple"}}
	unknown := domain.CartLineItem{Name: "dragonfruit"}

	tests := []struct {
		name     string
		event    cart.Event
		wantMsg  string
		wantSev  domain.Severity
		wantNone bool
	}{
		{name: "added", event: cart.Event{Kind: cart.EventAdded, Item: apple}, wantMsg: "Apple added to cart!", wantSev: domain.SeveritySuccess},
		{name: "merged", event: cart.Event{Kind: cart.EventMerged, Item: apple}, wantMsg: "Added another Apple!", wantSev: domain.SeveritySuccess},
		{name: "removed", event: cart.Event{Kind: cart.EventRemoved, Item: apple}, wantMsg: "Apple removed from cart", wantSev: domain.SeverityInfo},
		{name: "falls back to item name", event: cart.Event{Kind: cart.EventAdded, Item: unknown}, wantMsg: "dragonfruit added to cart!", wantSev: domain.SeveritySuccess},
		{name: "quantity change is silent", event: cart.Event{Kind: cart.EventQuantityChanged, Item: apple}, wantNone: true},
		{name: "clear is silent", event: cart.Event{Kind: cart.EventCleared}, wantNone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setupEmitter(t, time.Minute)

			e.OnCartEvent(tt.event)
			got, ok := e.Current()

			if tt.wantNone {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, got.Message)
			assert.Equal(t, tt.wantSev, got.Severity)
		})
	}
}
