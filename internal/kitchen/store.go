// Package kitchen owns the in-memory kitchen state. Every mutation goes
// through a Store method, which updates the collection, schedules a
// background save and publishes a collection-changed event.
package kitchen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/mealprep/internal/domain"
	"github.com/vbonduro/mealprep/internal/event"
	"github.com/vbonduro/mealprep/internal/planner"
)

var ErrNotFound = errors.New("not found")

// Saver accepts serialized collections for eventual persistence. Enqueue must
// not block.
type Saver interface {
	Enqueue(collection event.Collection, data []byte)
}

type Store struct {
	mu    sync.RWMutex
	state domain.Snapshot

	gen    *planner.Generator
	bus    event.Bus
	saver  Saver
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

type Option func(*Store)

// WithClock overrides the time source used for dates and quotas.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs overrides the identifier source for new records.
func WithIDs(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
		s.gen = planner.NewGeneratorWithIDs(newID)
	}
}

func New(bus event.Bus, saver Saver, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		gen:    planner.NewGenerator(),
		bus:    bus,
		saver:  saver,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a deep-enough copy of every collection: slices are copied
// so callers cannot mutate store state.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Snapshot{
		Inventory:      clone(s.state.Inventory),
		Recipes:        cloneRecipes(s.state.Recipes),
		Meals:          clone(s.state.Meals),
		FreezerMeals:   clone(s.state.FreezerMeals),
		Leftovers:      clone(s.state.Leftovers),
		ShoppingList:   clone(s.state.ShoppingList),
		ShoppingConfig: s.state.ShoppingConfig,
	}
}

// Now returns the store's clock reading.
func (s *Store) Now() time.Time {
	return s.now()
}

// Today returns the store's current calendar date.
func (s *Store) Today() time.Time {
	return domain.Today(s.now())
}

// Hydrate replaces state with previously persisted collections. A collection
// that fails to decode is left empty and its error is included in the
// returned error; the remaining collections still load.
func (s *Store) Hydrate(data map[string][]byte) error {
	var (
		next domain.Snapshot
		errs []error
	)
	decodeInto(data, event.Inventory, &next.Inventory, &errs)
	decodeInto(data, event.Recipes, &next.Recipes, &errs)
	decodeInto(data, event.Meals, &next.Meals, &errs)
	decodeInto(data, event.FreezerMeals, &next.FreezerMeals, &errs)
	decodeInto(data, event.Leftovers, &next.Leftovers, &errs)
	decodeInto(data, event.ShoppingList, &next.ShoppingList, &errs)
	decodeInto(data, event.ShoppingConfig, &next.ShoppingConfig, &errs)

	for _, err := range errs {
		s.logger.Error("discarding malformed collection", "error", err)
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
	return errors.Join(errs...)
}

func decodeInto[T any](data map[string][]byte, c event.Collection, dst *T, errs *[]error) {
	raw, ok := data[string(c)]
	if !ok || len(raw) == 0 {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		*errs = append(*errs, fmt.Errorf("failed to decode %s: %w", c, err))
		return
	}
	*dst = v
}

// Seed appends starter content and persists it. It is used once on first run.
func (s *Store) Seed(ctx context.Context, inventory []domain.InventoryItem, recipes []domain.Recipe, freezer []domain.FreezerMeal) {
	s.mu.Lock()
	s.state.Inventory = append(s.state.Inventory, inventory...)
	s.state.Recipes = append(s.state.Recipes, recipes...)
	s.state.FreezerMeals = append(s.state.FreezerMeals, freezer...)
	s.persistLocked(event.Inventory, event.Recipes, event.FreezerMeals)
	s.mu.Unlock()

	s.publish(ctx, event.Inventory, event.Recipes, event.FreezerMeals)
}

// Reset replaces inventory, recipes and freezer meals with the given content
// and clears every other collection.
func (s *Store) Reset(ctx context.Context, inventory []domain.InventoryItem, recipes []domain.Recipe, freezer []domain.FreezerMeal) {
	s.mu.Lock()
	s.state = domain.Snapshot{
		Inventory:    inventory,
		Recipes:      recipes,
		FreezerMeals: freezer,
	}
	all := []event.Collection{
		event.Inventory, event.Recipes, event.Meals, event.FreezerMeals,
		event.Leftovers, event.ShoppingList, event.ShoppingConfig,
	}
	s.persistLocked(all...)
	s.mu.Unlock()

	s.publish(ctx, all...)
}

// persistLocked serializes the named collections and hands them to the
// saver. Callers must hold s.mu so saves are enqueued in mutation order.
func (s *Store) persistLocked(collections ...event.Collection) {
	if s.saver == nil {
		return
	}
	for _, c := range collections {
		var v any
		switch c {
		case event.Inventory:
			v = s.state.Inventory
		case event.Recipes:
			v = s.state.Recipes
		case event.Meals:
			v = s.state.Meals
		case event.FreezerMeals:
			v = s.state.FreezerMeals
		case event.Leftovers:
			v = s.state.Leftovers
		case event.ShoppingList:
			v = s.state.ShoppingList
		case event.ShoppingConfig:
			v = s.state.ShoppingConfig
		default:
			continue
		}
		data, err := json.Marshal(v)
		if err != nil {
			s.logger.Error("failed to encode collection", "collection", c, "error", err)
			continue
		}
		s.saver.Enqueue(c, data)
	}
}

// publish announces changes. It must be called without s.mu held because
// subscribers may call back into the store.
func (s *Store) publish(ctx context.Context, collections ...event.Collection) {
	if s.bus == nil {
		return
	}
	for _, c := range collections {
		if err := s.bus.Publish(ctx, event.NewCollectionChanged(c)); err != nil {
			s.logger.Error("collection change handler failed", "collection", c, "error", err)
		}
	}
}

func clone[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneRecipes(in []domain.Recipe) []domain.Recipe {
	out := clone(in)
	for i := range out {
		out[i].Ingredients = clone(out[i].Ingredients)
		out[i].Tags = clone(out[i].Tags)
		out[i].Notes = clone(out[i].Notes)
	}
	return out
}

// indexOf returns the position of the element with the given id, or -1.
func indexOf[T any](items []T, id string, idOf func(T) string) int {
	for i, it := range items {
		if idOf(it) == id {
			return i
		}
	}
	return -1
}

// removeIDs filters out every element whose id is in ids and reports how many
// were removed.
func removeIDs[T any](items []T, ids []string, idOf func(T) string) ([]T, int) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := items[:0:0]
	for _, it := range items {
		if _, ok := drop[idOf(it)]; ok {
			continue
		}
		out = append(out, it)
	}
	return out, len(items) - len(out)
}
