package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/normalizer"
	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SnapshotKey is the storage key of the serialized cart.
const SnapshotKey = "cart"

// DefaultTaxRate is applied to the subtotal unless overridden with WithTaxRate.
var DefaultTaxRate = decimal.RequireFromString("0.08")

// Store owns the cart line items. Every mutation runs to completion under the store lock,
// including observer delivery, so observers must not call back into the store.
type Store struct {
	mu        sync.Mutex
	items     []domain.CartLineItem
	observers []observer
	nextObsID int

	taxRate decimal.Decimal
	now     func() time.Time
	newID   func() string

	persist *persister
	log     *zap.Logger
}

type Option func(*Store)

func WithTaxRate(rate decimal.Decimal) Option {
	return func(s *Store) { s.taxRate = rate }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// Open restores the cart from snapshots and starts the background writer.
// A missing or unreadable snapshot yields an empty cart.
func Open(ctx context.Context, snapshots storage.SnapshotStore, log *zap.Logger, opts ...Option) *Store {
	s := &Store{
		items:   []domain.CartLineItem{},
		taxRate: DefaultTaxRate,
		now:     time.Now,
		newID:   uuid.NewString,
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}

	items, err := restore(ctx, snapshots)
	switch {
	case errors.Is(err, storage.ErrSnapshotNotFound):
		log.Info("no saved cart, starting empty")
	case err != nil:
		log.Warn("saved cart unreadable, starting empty", zap.Error(err))
	default:
		s.items = items
		log.Info("cart restored", zap.Int("line_items", len(items)))
	}

	s.persist = newPersister(snapshots, log)
	return s
}

func restore(ctx context.Context, snapshots storage.SnapshotStore) ([]domain.CartLineItem, error) {
	data, err := snapshots.Load(ctx, SnapshotKey)
	if err != nil {
		return nil, err
	}

	var items []domain.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.ID == "" || item.Name == "" || item.Quantity < 1 || item.Price.IsNegative() || seen[item.Name] {
			return nil, fmt.Errorf("saved cart violates line item invariants at %q", item.Name)
		}
		seen[item.Name] = true
	}
	if items == nil {
		items = []domain.CartLineItem{}
	}
	return items, nil
}

// AddOrMerge bumps the quantity of the line item with the same name, or inserts a new one.
// On merge the existing price and confidence win.
func (s *Store) AddOrMerge(in normalizer.ItemInput) (domain.CartLineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexByName(in.Name); i >= 0 {
		s.items[i].Quantity++
		item := s.items[i]
		s.commit(EventMerged, item)
		return item, true
	}

	item := domain.CartLineItem{
		ID:         s.newID(),
		Name:       in.Name,
		Price:      in.Price,
		Quantity:   1,
		Confidence: in.Confidence,
		Product:    in.Product,
		Timestamp:  s.now().UTC(),
	}
	s.items = append(s.items, item)
	s.commit(EventAdded, item)
	return item, false
}

// UpdateQuantity adds delta to the quantity. Unknown ids and results below 1 leave the cart as is.
func (s *Store) UpdateQuantity(id string, delta int) (domain.CartLineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return domain.CartLineItem{}, false
	}
	next := s.items[i].Quantity + delta
	if delta == 0 || next <= 0 {
		return s.items[i], false
	}

	s.items[i].Quantity = next
	item := s.items[i]
	s.commit(EventQuantityChanged, item)
	return item, true
}

func (s *Store) Remove(id string) (domain.CartLineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return domain.CartLineItem{}, false
	}
	item := s.items[i]
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.commit(EventRemoved, item)
	return item, true
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []domain.CartLineItem{}
	s.commit(EventCleared, domain.CartLineItem{})
}

// Items returns a copy in insertion order.
func (s *Store) Items() []domain.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartLineItem{}, s.items...)
}

func (s *Store) Subtotal() decimal.Decimal { return s.Totals().Subtotal }

func (s *Store) Tax() decimal.Decimal { return s.Totals().Tax }

func (s *Store) Total() decimal.Decimal { return s.Totals().Total }

func (s *Store) TotalItemCount() int { return s.Totals().ItemCount }

func (s *Store) Totals() domain.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalsLocked()
}

// View returns the items and their totals from the same cart state.
func (s *Store) View() ([]domain.CartLineItem, domain.Totals) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartLineItem{}, s.items...), s.totalsLocked()
}

// Snapshot returns the serialized cart exactly as it is persisted.
func (s *Store) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.Marshal(s.items)
}

// Subscribe registers fn for every subsequent mutation.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextObsID++
	id := s.nextObsID
	s.observers = append(s.observers, observer{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Close flushes the pending snapshot.
func (s *Store) Close(ctx context.Context) error {
	return s.persist.close(ctx)
}

func (s *Store) commit(kind EventKind, item domain.CartLineItem) {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.log.Error("marshal cart failed", zap.Error(err))
	} else {
		s.persist.enqueue(data)
	}

	ev := Event{Kind: kind, Item: item, Totals: s.totalsLocked()}
	for _, o := range s.observers {
		o.fn(ev)
	}
}

func (s *Store) totalsLocked() domain.Totals {
	subtotal := decimal.Zero
	count := 0
	for _, item := range s.items {
		subtotal = subtotal.Add(item.LineTotal())
		count += item.Quantity
	}
	tax := subtotal.Mul(s.taxRate)
	return domain.Totals{
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal.Add(tax),
		ItemCount: count,
	}
}

func (s *Store) indexByName(name string) int {
	for i, item := range s.items {
		if item.Name == name {
			return i
		}
	}
	return -1
}

func (s *Store) indexByID(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
