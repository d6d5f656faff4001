package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/cart"
	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 3 * time.Second

const slotKey = "current"

// Emitter holds at most one notification. A newer one replaces the current one,
// and every notification expires on its own.
type Emitter struct {
	slot *ttlcache.Cache[string, domain.Notification]
	ttl  time.Duration
	now  func() time.Time
	log  *zap.Logger

	closeOnce sync.Once
}

func NewEmitter(ttl time.Duration, log *zap.Logger) *Emitter {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	slot := ttlcache.New[string, domain.Notification](
		ttlcache.WithTTL[string, domain.Notification](ttl),
		ttlcache.WithCapacity[string, domain.Notification](1),
		ttlcache.WithDisableTouchOnHit[string, domain.Notification](),
	)
	go slot.Start()

	return &Emitter{slot: slot, ttl: ttl, now: time.Now, log: log}
}

func (e *Emitter) Notify(message string, severity domain.Severity) domain.Notification {
	created := e.now().UTC()
	n := domain.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: created,
		ExpiresAt: created.Add(e.ttl),
	}
	e.slot.Set(slotKey, n, ttlcache.DefaultTTL)
	e.log.Debug("notification", zap.String("severity", string(severity)), zap.String("message", message))
	return n
}

// Current returns the visible notification, if any.
func (e *Emitter) Current() (domain.Notification, bool) {
	item := e.slot.Get(slotKey)
	if item == nil {
		return domain.Notification{}, false
	}
	return item.Value(), true
}

// OnCartEvent turns cart mutations into user-facing messages. Quantity changes and clears are silent.
func (e *Emitter) OnCartEvent(ev cart.Event) {
	switch ev.Kind {
	case cart.EventAdded:
		e.Notify(fmt.Sprintf("%s added to cart!", ev.Item.DisplayName()), domain.SeveritySuccess)
	case cart.EventMerged:
		e.Notify(fmt.Sprintf("Added another %s!", ev.Item.DisplayName()), domain.SeveritySuccess)
	case cart.EventRemoved:
		e.Notify(fmt.Sprintf("%s removed from cart", ev.Item.DisplayName()), domain.SeverityInfo)
	}
}

// Close stops the expiry loop.
func (e *Emitter) Close() {
	e.closeOnce.Do(e.slot.Stop)
}
