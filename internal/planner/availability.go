package planner

import "github.com/vbonduro/mealprep/internal/domain"

// lowStockFactor is the multiple of the required quantity below which a
// matched inventory item counts as low stock.
const lowStockFactor = 1.5

// Availability partitions a recipe's ingredients by what the inventory can
// cover. Every ingredient lands in exactly one list, in recipe order.
type Availability struct {
	Missing   []domain.Ingredient `json:"missing"`
	LowStock  []domain.Ingredient `json:"lowStock"`
	Available []domain.Ingredient `json:"available"`
}

// CheckAvailability classifies each ingredient of the recipe with the given
// ID. An unknown recipe yields three empty lists.
func CheckAvailability(recipeID string, recipes []domain.Recipe, inventory []domain.InventoryItem) Availability {
	out := Availability{
		Missing:   []domain.Ingredient{},
		LowStock:  []domain.Ingredient{},
		Available: []domain.Ingredient{},
	}

	recipe, ok := findRecipe(recipeID, recipes)
	if !ok {
		return out
	}

	for _, ing := range recipe.Ingredients {
		match, found := FindInventoryMatch(ing.Name, inventory)
		switch {
		case !found, match.Quantity < ing.Quantity:
			out.Missing = append(out.Missing, ing)
		case match.Quantity < ing.Quantity*lowStockFactor:
			out.LowStock = append(out.LowStock, ing)
		default:
			out.Available = append(out.Available, ing)
		}
	}
	return out
}

// CanCook reports whether nothing is missing.
func (a Availability) CanCook() bool {
	return len(a.Missing) == 0
}
