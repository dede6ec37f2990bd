package kitchen

import (
	"context"
	"fmt"

	"github.com/vbonduro/mealprep/internal/domain"
	"github.com/vbonduro/mealprep/internal/event"
	"github.com/vbonduro/mealprep/internal/metrics"
	"github.com/vbonduro/mealprep/internal/planner"
)

func shoppingID(it domain.ShoppingItem) string { return it.ID }

func (s *Store) ShoppingList() []domain.ShoppingItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.state.ShoppingList)
}

func (s *Store) ShoppingConfig() domain.ShoppingListConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ShoppingConfig
}

// AddShoppingItem appends a manual item. GeneratedFromMeal is always cleared
// so the item survives regeneration.
func (s *Store) AddShoppingItem(ctx context.Context, it domain.ShoppingItem) domain.ShoppingItem {
	s.mu.Lock()
	it.ID = s.newID()
	it.GeneratedFromMeal = false
	s.state.ShoppingList = append(s.state.ShoppingList, it)
	s.persistLocked(event.ShoppingList)
	s.mu.Unlock()

	s.publish(ctx, event.ShoppingList)
	return it
}

// ToggleShoppingItem flips the checked flag and returns the new value.
func (s *Store) ToggleShoppingItem(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	i := indexOf(s.state.ShoppingList, id, shoppingID)
	if i < 0 {
		s.mu.Unlock()
		return false, fmt.Errorf("shopping item %s: %w", id, ErrNotFound)
	}
	s.state.ShoppingList[i].Checked = !s.state.ShoppingList[i].Checked
	checked := s.state.ShoppingList[i].Checked
	s.persistLocked(event.ShoppingList)
	s.mu.Unlock()

	s.publish(ctx, event.ShoppingList)
	return checked, nil
}

func (s *Store) DeleteShoppingItem(ctx context.Context, id string) error {
	s.mu.Lock()
	var n int
	s.state.ShoppingList, n = removeIDs(s.state.ShoppingList, []string{id}, shoppingID)
	if n == 0 {
		s.mu.Unlock()
		return fmt.Errorf("shopping item %s: %w", id, ErrNotFound)
	}
	s.persistLocked(event.ShoppingList)
	s.mu.Unlock()

	s.publish(ctx, event.ShoppingList)
	return nil
}

// ClearCheckedShoppingItems removes every checked item and returns the count.
func (s *Store) ClearCheckedShoppingItems(ctx context.Context) int {
	return s.rewriteShopping(ctx, func(items []domain.ShoppingItem) ([]domain.ShoppingItem, int) {
		kept := items[:0:0]
		for _, it := range items {
			if !it.Checked {
				kept = append(kept, it)
			}
		}
		return kept, len(items) - len(kept)
	})
}

// UncheckAllShoppingItems clears every checked flag and returns the count.
func (s *Store) UncheckAllShoppingItems(ctx context.Context) int {
	return s.rewriteShopping(ctx, func(items []domain.ShoppingItem) ([]domain.ShoppingItem, int) {
		n := 0
		for i := range items {
			if items[i].Checked {
				items[i].Checked = false
				n++
			}
		}
		return items, n
	})
}

func (s *Store) rewriteShopping(ctx context.Context, fn func([]domain.ShoppingItem) ([]domain.ShoppingItem, int)) int {
	s.mu.Lock()
	items, n := fn(s.state.ShoppingList)
	if n == 0 {
		s.mu.Unlock()
		return 0
	}
	s.state.ShoppingList = items
	s.persistLocked(event.ShoppingList)
	s.mu.Unlock()

	s.publish(ctx, event.ShoppingList)
	return n
}

// GenerateShoppingList rebuilds the generated portion of the shopping list
// from the meal plan and stores the range as the new config. Either date may
// be empty, in which case every planned meal is used and auto-update is off.
func (s *Store) GenerateShoppingList(ctx context.Context, start, end string) planner.GenerateResult {
	s.mu.Lock()
	res := s.generateLocked(start, end)
	s.mu.Unlock()

	s.finishGeneration(ctx, metrics.TriggerManual, res)
	return res
}

// RegenerateShoppingList re-runs generation with the persisted range when
// auto-update is on. It reports whether anything ran.
func (s *Store) RegenerateShoppingList(ctx context.Context) bool {
	s.mu.Lock()
	cfg := s.state.ShoppingConfig
	if !cfg.AutoUpdate || !cfg.HasRange() {
		s.mu.Unlock()
		return false
	}
	res := s.generateLocked(cfg.StartDate, cfg.EndDate)
	s.mu.Unlock()

	s.finishGeneration(ctx, metrics.TriggerAuto, res)
	return true
}

func (s *Store) generateLocked(start, end string) planner.GenerateResult {
	res := s.gen.Generate(planner.GenerateInput{
		Meals:        s.state.Meals,
		Recipes:      s.state.Recipes,
		FreezerMeals: s.state.FreezerMeals,
		Current:      s.state.ShoppingList,
		StartDate:    start,
		EndDate:      end,
	})
	s.state.ShoppingList = res.Items
	s.state.ShoppingConfig = res.Config
	s.persistLocked(event.ShoppingList, event.ShoppingConfig)
	return res
}

func (s *Store) finishGeneration(ctx context.Context, trigger string, res planner.GenerateResult) {
	generated := 0
	for _, it := range res.Items {
		if it.GeneratedFromMeal {
			generated++
		}
	}
	for _, m := range res.FromFreezer {
		s.logger.Debug("meal served from freezer", "meal", m.Name, "date", m.Date)
	}
	s.logger.Debug("shopping list generated",
		"trigger", trigger,
		"start", res.Config.StartDate,
		"end", res.Config.EndDate,
	)

	s.publish(ctx, event.ShoppingList, event.ShoppingConfig)
	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewShoppingRegenerated(trigger, generated, len(res.FromFreezer))); err != nil {
			s.logger.Error("shopping regenerated handler failed", "error", err)
		}
	}
}
