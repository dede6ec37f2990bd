package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Type identifies an event kind.
type Type string

const (
	// CollectionChanged is published after a kitchen collection is mutated.
	CollectionChanged Type = "collection.changed"
	// ShoppingRegenerated is published after the shopping list is rebuilt.
	ShoppingRegenerated Type = "shopping.regenerated"
)

// Collection names a kitchen collection.
type Collection string

const (
	Inventory      Collection = "inventory"
	Recipes        Collection = "recipes"
	Meals          Collection = "meals"
	FreezerMeals   Collection = "freezer_meals"
	Leftovers      Collection = "leftovers"
	ShoppingList   Collection = "shopping_list"
	ShoppingConfig Collection = "shopping_config"
)

// Event is a notification delivered to subscribers.
type Event struct {
	Type    Type
	Payload any
}

// CollectionChangedPayload names the collection a mutation touched.
type CollectionChangedPayload struct {
	Collection Collection
}

// ShoppingRegeneratedPayload describes a rebuilt shopping list.
type ShoppingRegeneratedPayload struct {
	Trigger     string
	Generated   int
	FromFreezer int
}

// NewCollectionChanged builds a CollectionChanged event.
func NewCollectionChanged(c Collection) Event {
	return Event{Type: CollectionChanged, Payload: CollectionChangedPayload{Collection: c}}
}

// NewShoppingRegenerated builds a ShoppingRegenerated event.
func NewShoppingRegenerated(trigger string, generated, fromFreezer int) Event {
	return Event{Type: ShoppingRegenerated, Payload: ShoppingRegeneratedPayload{
		Trigger:     trigger,
		Generated:   generated,
		FromFreezer: fromFreezer,
	}}
}

// Handler is a function that handles an event.
type Handler func(ctx context.Context, e Event) error

// Bus delivers events to subscribers.
type Bus interface {
	Publish(ctx context.Context, e Event) error
	Subscribe(t Type, h Handler)
}

// MemoryBus is an in-process Bus. Handlers run synchronously on the
// publisher's goroutine in subscription order.
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[Type][]Handler)}
}

// Publish calls every handler subscribed to e.Type. All handlers run even if
// one fails; failures are joined into the returned error.
func (b *MemoryBus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[e.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := h(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d handler(s) failed for %s: %w", len(errs), e.Type, errors.Join(errs...))
	}
	return nil
}

func (b *MemoryBus) Subscribe(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}
