package kitchen

import (
	"context"
	"log/slog"

	"github.com/vbonduro/mealprep/internal/event"
	"github.com/vbonduro/mealprep/internal/metrics"
)

// regenerationSources are the collections whose changes invalidate the
// generated shopping items.
var regenerationSources = map[event.Collection]bool{
	event.Meals:        true,
	event.Recipes:      true,
	event.FreezerMeals: true,
}

// WatchForRegeneration subscribes the store to its own change events so the
// shopping list is rebuilt whenever meals, recipes or freezer meals change
// and auto-update is on. Shopping-list changes are ignored, so a rebuild
// never triggers another one.
func WatchForRegeneration(bus event.Bus, store *Store, logger *slog.Logger) {
	bus.Subscribe(event.CollectionChanged, func(ctx context.Context, e event.Event) error {
		p, ok := e.Payload.(event.CollectionChangedPayload)
		if !ok || !regenerationSources[p.Collection] {
			return nil
		}
		if store.RegenerateShoppingList(ctx) {
			logger.Debug("shopping list regenerated", "cause", p.Collection)
		}
		return nil
	})
}

// ObserveRegenerations records every shopping-list rebuild in the metrics and
// the log.
func ObserveRegenerations(bus event.Bus, logger *slog.Logger) {
	bus.Subscribe(event.ShoppingRegenerated, func(_ context.Context, e event.Event) error {
		p, ok := e.Payload.(event.ShoppingRegeneratedPayload)
		if !ok {
			return nil
		}
		metrics.ShoppingRegenerations.WithLabelValues(p.Trigger).Inc()
		metrics.FreezerSubstitutions.Add(float64(p.FromFreezer))
		logger.Info("shopping list generated",
			"trigger", p.Trigger,
			"generated_items", p.Generated,
			"from_freezer", p.FromFreezer,
		)
		return nil
	})
}
