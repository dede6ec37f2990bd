package service

import (
	"context"
	"fmt"

	"github.com/vbonduro/mealprep/internal/domain"
	"github.com/vbonduro/mealprep/internal/metrics"
	"github.com/vbonduro/mealprep/internal/planner"
)

// ListMeals returns planned meals ordered by date. Each meal says whether the
// freezer covers it and, when it does not, how many ingredients are missing
// or running low.
func (s *KitchenService) ListMeals(_ context.Context) []planner.MealView {
	return s.store.MealPlan()
}

// AddMealPlan stores a planned meal. It returns ErrQuotaExceeded when the
// restricted tier plans beyond its horizon.
func (s *KitchenService) AddMealPlan(ctx context.Context, m domain.MealPlan) (domain.MealPlan, error) {
	if err := s.check(m); err != nil {
		return domain.MealPlan{}, err
	}
	added, ok := s.store.AddMealPlan(ctx, m, s.unrestricted(ctx))
	if !ok {
		return domain.MealPlan{}, s.refused(metrics.QuotaMealHorizon)
	}
	return added, nil
}

func (s *KitchenService) UpdateMealPlan(ctx context.Context, id string, m domain.MealPlan) (domain.MealPlan, error) {
	m.ID = id
	if err := s.check(m); err != nil {
		return domain.MealPlan{}, err
	}
	ok, err := s.store.UpdateMealPlan(ctx, m, s.unrestricted(ctx))
	if err != nil {
		return domain.MealPlan{}, fmt.Errorf("failed to update meal: %w", err)
	}
	if !ok {
		return domain.MealPlan{}, s.refused(metrics.QuotaMealHorizon)
	}
	return m, nil
}

func (s *KitchenService) DeleteMealPlan(ctx context.Context, id string) error {
	return s.store.DeleteMealPlan(ctx, id)
}

func (s *KitchenService) FreezerGroups(_ context.Context) []planner.FreezerGroup {
	return s.store.FreezerGroups()
}

func (s *KitchenService) AddFreezerMeal(ctx context.Context, f domain.FreezerMeal) (domain.FreezerMeal, error) {
	if err := s.check(f); err != nil {
		return domain.FreezerMeal{}, err
	}
	return s.store.AddFreezerMeal(ctx, f), nil
}

func (s *KitchenService) UpdateFreezerMeal(ctx context.Context, id string, f domain.FreezerMeal) (domain.FreezerMeal, error) {
	f.ID = id
	if err := s.check(f); err != nil {
		return domain.FreezerMeal{}, err
	}
	if err := s.store.UpdateFreezerMeal(ctx, f); err != nil {
		return domain.FreezerMeal{}, fmt.Errorf("failed to update freezer meal: %w", err)
	}
	return f, nil
}

func (s *KitchenService) DeleteFreezerMeal(ctx context.Context, id string) error {
	return s.store.DeleteFreezerMeal(ctx, id)
}

func (s *KitchenService) Leftovers(_ context.Context) planner.LeftoverShelves {
	return s.store.Leftovers()
}

func (s *KitchenService) AddLeftover(ctx context.Context, l domain.Leftover) (domain.Leftover, error) {
	if err := s.checkLeftover(l); err != nil {
		return domain.Leftover{}, err
	}
	return s.store.AddLeftover(ctx, l), nil
}

func (s *KitchenService) UpdateLeftover(ctx context.Context, id string, l domain.Leftover) (domain.Leftover, error) {
	l.ID = id
	if err := s.checkLeftover(l); err != nil {
		return domain.Leftover{}, err
	}
	if err := s.store.UpdateLeftover(ctx, l); err != nil {
		return domain.Leftover{}, fmt.Errorf("failed to update leftover: %w", err)
	}
	return l, nil
}

// DeleteLeftover removes a leftover; it is also how one is marked as used.
func (s *KitchenService) DeleteLeftover(ctx context.Context, id string) error {
	return s.store.DeleteLeftover(ctx, id)
}

func (s *KitchenService) checkLeftover(l domain.Leftover) error {
	if err := s.check(l); err != nil {
		return err
	}
	if l.UseByDate < l.DateStored {
		return invalidField("useByDate", "Must not be before dateStored")
	}
	return nil
}
