package kitchen

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/vbonduro/mealprep/internal/domain"
	"github.com/vbonduro/mealprep/internal/event"
	"github.com/vbonduro/mealprep/internal/planner"
)

// FreePlanningDays is how far ahead the restricted tier may plan meals.
const FreePlanningDays = 14

func mealID(m domain.MealPlan) string { return m.ID }

// MealPlan returns every planned meal in date order, marked with freezer
// allocation and ingredient availability from one consistent snapshot.
func (s *Store) MealPlan() []planner.MealView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return planner.PlanMeals(s.state.Meals, s.state.Recipes, s.state.Inventory, s.state.FreezerMeals)
}

// withinHorizon reports whether date is at most FreePlanningDays after today.
// Unparseable dates are outside the horizon.
func withinHorizon(date string, now time.Time) bool {
	d, err := domain.ParseDate(date)
	if err != nil {
		return false
	}
	days := math.Ceil(d.Sub(domain.Today(now)).Hours() / 24)
	return days <= FreePlanningDays
}

// AddMealPlan stores a new meal. Unless unrestricted, meals dated more than
// FreePlanningDays ahead are refused and false is returned.
func (s *Store) AddMealPlan(ctx context.Context, m domain.MealPlan, unrestricted bool) (domain.MealPlan, bool) {
	if !unrestricted && !withinHorizon(m.Date, s.now()) {
		s.logger.Info("meal planning horizon exceeded", "date", m.Date, "days", FreePlanningDays)
		return domain.MealPlan{}, false
	}

	s.mu.Lock()
	m.ID = s.newID()
	s.state.Meals = append(s.state.Meals, m)
	s.persistLocked(event.Meals)
	s.mu.Unlock()

	s.publish(ctx, event.Meals)
	return m, true
}

// UpdateMealPlan replaces the meal with the same ID. The horizon check from
// AddMealPlan applies; a refusal returns false with a nil error.
func (s *Store) UpdateMealPlan(ctx context.Context, m domain.MealPlan, unrestricted bool) (bool, error) {
	if !unrestricted && !withinHorizon(m.Date, s.now()) {
		s.logger.Info("meal planning horizon exceeded", "date", m.Date, "days", FreePlanningDays)
		return false, nil
	}

	s.mu.Lock()
	i := indexOf(s.state.Meals, m.ID, mealID)
	if i < 0 {
		s.mu.Unlock()
		return false, fmt.Errorf("meal %s: %w", m.ID, ErrNotFound)
	}
	s.state.Meals[i] = m
	s.persistLocked(event.Meals)
	s.mu.Unlock()

	s.publish(ctx, event.Meals)
	return true, nil
}

func (s *Store) DeleteMealPlan(ctx context.Context, id string) error {
	s.mu.Lock()
	var n int
	s.state.Meals, n = removeIDs(s.state.Meals, []string{id}, mealID)
	if n == 0 {
		s.mu.Unlock()
		return fmt.Errorf("meal %s: %w", id, ErrNotFound)
	}
	s.persistLocked(event.Meals)
	s.mu.Unlock()

	s.publish(ctx, event.Meals)
	return nil
}

// SweepPastMeals removes meals dated before today and returns how many were
// removed. Meals with unparseable dates are kept.
func (s *Store) SweepPastMeals(ctx context.Context) int {
	today := s.Today().Format(domain.DateLayout)

	s.mu.Lock()
	kept := s.state.Meals[:0:0]
	for _, m := range s.state.Meals {
		if _, err := domain.ParseDate(m.Date); err == nil && m.Date < today {
			continue
		}
		kept = append(kept, m)
	}
	removed := len(s.state.Meals) - len(kept)
	if removed == 0 {
		s.mu.Unlock()
		return 0
	}
	s.state.Meals = kept
	s.persistLocked(event.Meals)
	s.mu.Unlock()

	s.publish(ctx, event.Meals)
	return removed
}
