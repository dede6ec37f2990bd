// Package planner derives read-only views from kitchen state: inventory
// matching, recipe availability, freezer substitution and shopping-list
// generation. Every function here is pure; callers pass snapshots in and get
// new values back.
package planner

import (
	"strings"

	"github.com/vbonduro/mealprep/internal/domain"
)

// FindInventoryMatch returns the first inventory item whose lowercased name
// contains the lowercased ingredient name or is contained by it. Inventory
// order decides ties. Names are not trimmed or tokenized, so "oil" matches
// "Olive Oil" and an empty inventory name matches every ingredient.
func FindInventoryMatch(ingredientName string, inventory []domain.InventoryItem) (domain.InventoryItem, bool) {
	needle := strings.ToLower(ingredientName)
	for _, item := range inventory {
		name := strings.ToLower(item.Name)
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			return item, true
		}
	}
	return domain.InventoryItem{}, false
}

// findRecipe resolves a recipe ID. A dangling reference is reported as absent.
func findRecipe(id string, recipes []domain.Recipe) (domain.Recipe, bool) {
	if id == "" {
		return domain.Recipe{}, false
	}
	for _, r := range recipes {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Recipe{}, false
}
