package cart

import "github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/domain"

type EventKind string

const (
	EventAdded           EventKind = "added"
	EventMerged          EventKind = "merged"
	EventQuantityChanged EventKind = "quantity_changed"
	EventRemoved         EventKind = "removed"
	EventCleared         EventKind = "cleared"
)

// Event describes one completed mutation. Item is zero for EventCleared.
type Event struct {
	Kind   EventKind
	Item   domain.CartLineItem
	Totals domain.Totals
}

type observer struct {
	id int
	fn func(Event)
}
