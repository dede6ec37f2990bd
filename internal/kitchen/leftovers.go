package kitchen

import (
	"context"
	"fmt"

	"github.com/vbonduro/mealprep/internal/domain"
	"github.com/vbonduro/mealprep/internal/event"
	"github.com/vbonduro/mealprep/internal/planner"
)

func leftoverID(l domain.Leftover) string { return l.ID }

// Leftovers returns leftovers split by storage location, soonest first.
func (s *Store) Leftovers() planner.LeftoverShelves {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return planner.SortLeftovers(s.state.Leftovers, s.now())
}

func (s *Store) AddLeftover(ctx context.Context, l domain.Leftover) domain.Leftover {
	s.mu.Lock()
	l.ID = s.newID()
	s.state.Leftovers = append(s.state.Leftovers, l)
	s.persistLocked(event.Leftovers)
	s.mu.Unlock()

	s.publish(ctx, event.Leftovers)
	return l
}

func (s *Store) UpdateLeftover(ctx context.Context, l domain.Leftover) error {
	s.mu.Lock()
	i := indexOf(s.state.Leftovers, l.ID, leftoverID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("leftover %s: %w", l.ID, ErrNotFound)
	}
	s.state.Leftovers[i] = l
	s.persistLocked(event.Leftovers)
	s.mu.Unlock()

	s.publish(ctx, event.Leftovers)
	return nil
}

// DeleteLeftover removes a leftover, which is also how one is marked as used.
func (s *Store) DeleteLeftover(ctx context.Context, id string) error {
	s.mu.Lock()
	var n int
	s.state.Leftovers, n = removeIDs(s.state.Leftovers, []string{id}, leftoverID)
	if n == 0 {
		s.mu.Unlock()
		return fmt.Errorf("leftover %s: %w", id, ErrNotFound)
	}
	s.persistLocked(event.Leftovers)
	s.mu.Unlock()

	s.publish(ctx, event.Leftovers)
	return nil
}
