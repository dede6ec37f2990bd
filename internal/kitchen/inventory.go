package kitchen

import (
	"context"
	"fmt"

	"github.com/vbonduro/mealprep/internal/domain"
	"github.com/vbonduro/mealprep/internal/event"
	"github.com/vbonduro/mealprep/internal/planner"
)

func inventoryID(it domain.InventoryItem) string { return it.ID }

func (s *Store) Inventory() []domain.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.state.Inventory)
}

func (s *Store) AddInventoryItem(ctx context.Context, item domain.InventoryItem) domain.InventoryItem {
	s.mu.Lock()
	item.ID = s.newID()
	s.state.Inventory = append(s.state.Inventory, item)
	s.persistLocked(event.Inventory)
	s.mu.Unlock()

	s.publish(ctx, event.Inventory)
	return item
}

// UpdateInventoryItem replaces the item with the same ID.
func (s *Store) UpdateInventoryItem(ctx context.Context, item domain.InventoryItem) error {
	s.mu.Lock()
	i := indexOf(s.state.Inventory, item.ID, inventoryID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("inventory item %s: %w", item.ID, ErrNotFound)
	}
	s.state.Inventory[i] = item
	s.persistLocked(event.Inventory)
	s.mu.Unlock()

	s.publish(ctx, event.Inventory)
	return nil
}

func (s *Store) DeleteInventoryItem(ctx context.Context, id string) error {
	if s.DeleteInventoryItems(ctx, []string{id}) == 0 {
		return fmt.Errorf("inventory item %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteInventoryItems removes every listed item and returns how many were
// removed. Unknown IDs are ignored.
func (s *Store) DeleteInventoryItems(ctx context.Context, ids []string) int {
	s.mu.Lock()
	var n int
	s.state.Inventory, n = removeIDs(s.state.Inventory, ids, inventoryID)
	if n == 0 {
		s.mu.Unlock()
		return 0
	}
	s.persistLocked(event.Inventory)
	s.mu.Unlock()

	s.publish(ctx, event.Inventory)
	return n
}

// AddLowStockToShopping puts a manual shopping item for the inventory item on
// the list. The quantity is the item's low-stock threshold, or 5 if unset.
func (s *Store) AddLowStockToShopping(ctx context.Context, invID string) (domain.ShoppingItem, error) {
	s.mu.Lock()
	i := indexOf(s.state.Inventory, invID, inventoryID)
	if i < 0 {
		s.mu.Unlock()
		return domain.ShoppingItem{}, fmt.Errorf("inventory item %s: %w", invID, ErrNotFound)
	}
	src := s.state.Inventory[i]
	item := domain.ShoppingItem{
		ID:       s.newID(),
		Name:     src.Name,
		Quantity: planner.LowStockQuantity(src),
		Unit:     src.Unit,
		Category: domain.ToShoppingCategory(string(src.Category)),
	}
	s.state.ShoppingList = append(s.state.ShoppingList, item)
	s.persistLocked(event.ShoppingList)
	s.mu.Unlock()

	s.publish(ctx, event.ShoppingList)
	return item, nil
}

// FindInventory looks up the inventory item an ingredient name would match.
func (s *Store) FindInventory(name string) (domain.InventoryItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return planner.FindInventoryMatch(name, s.state.Inventory)
}

// CheckRecipe reports ingredient availability for a recipe against current
// inventory.
func (s *Store) CheckRecipe(recipeID string) planner.Availability {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return planner.CheckAvailability(recipeID, s.state.Recipes, s.state.Inventory)
}
