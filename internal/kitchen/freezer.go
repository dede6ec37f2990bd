package kitchen

import (
	"context"
	"fmt"

	"github.com/vbonduro/mealprep/internal/domain"
	"github.com/vbonduro/mealprep/internal/event"
	"github.com/vbonduro/mealprep/internal/planner"
)

func freezerID(f domain.FreezerMeal) string { return f.ID }

// FreezerGroups returns freezer stock grouped by meal name.
func (s *Store) FreezerGroups() []planner.FreezerGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return planner.GroupFreezerMeals(s.state.FreezerMeals, s.now())
}

func (s *Store) AddFreezerMeal(ctx context.Context, f domain.FreezerMeal) domain.FreezerMeal {
	s.mu.Lock()
	f.ID = s.newID()
	s.state.FreezerMeals = append(s.state.FreezerMeals, f)
	s.persistLocked(event.FreezerMeals)
	s.mu.Unlock()

	s.publish(ctx, event.FreezerMeals)
	return f
}

func (s *Store) UpdateFreezerMeal(ctx context.Context, f domain.FreezerMeal) error {
	s.mu.Lock()
	i := indexOf(s.state.FreezerMeals, f.ID, freezerID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("freezer meal %s: %w", f.ID, ErrNotFound)
	}
	s.state.FreezerMeals[i] = f
	s.persistLocked(event.FreezerMeals)
	s.mu.Unlock()

	s.publish(ctx, event.FreezerMeals)
	return nil
}

func (s *Store) DeleteFreezerMeal(ctx context.Context, id string) error {
	s.mu.Lock()
	var n int
	s.state.FreezerMeals, n = removeIDs(s.state.FreezerMeals, []string{id}, freezerID)
	if n == 0 {
		s.mu.Unlock()
		return fmt.Errorf("freezer meal %s: %w", id, ErrNotFound)
	}
	s.persistLocked(event.FreezerMeals)
	s.mu.Unlock()

	s.publish(ctx, event.FreezerMeals)
	return nil
}
