package planner

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/vbonduro/mealprep/internal/domain"
)

// GenerateInput is everything the shopping-list generator reads.
// StartDate and EndDate are YYYY-MM-DD and may be empty.
type GenerateInput struct {
	Meals        []domain.MealPlan
	Recipes      []domain.Recipe
	FreezerMeals []domain.FreezerMeal
	Current      []domain.ShoppingItem
	StartDate    string
	EndDate      string
}

// GenerateResult is the replacement shopping list and the config to persist.
// FromFreezer lists the planned meals served from the freezer, in date order.
type GenerateResult struct {
	Items       []domain.ShoppingItem
	Config      domain.ShoppingListConfig
	FromFreezer []domain.MealPlan
}

// Generator builds shopping lists from a meal plan.
type Generator struct {
	newID func() string
}

// NewGenerator returns a Generator that assigns UUIDs to generated items.
func NewGenerator() *Generator {
	return &Generator{newID: uuid.NewString}
}

// NewGeneratorWithIDs returns a Generator using newID for item identifiers.
func NewGeneratorWithIDs(newID func() string) *Generator {
	return &Generator{newID: newID}
}

type aggregate struct {
	name     string
	unit     string
	category string
	quantity float64
}

// Generate replaces every generated item in in.Current with a fresh set
// derived from the meals in range. Manual items are kept in their original
// order ahead of the generated ones. Meals served from the freezer and meals
// without a resolvable recipe contribute nothing.
func (g *Generator) Generate(in GenerateInput) GenerateResult {
	items := make([]domain.ShoppingItem, 0, len(in.Current))
	for _, it := range in.Current {
		if !it.GeneratedFromMeal {
			items = append(items, it)
		}
	}

	meals := MealsInRange(in.Meals, in.StartDate, in.EndDate)
	alloc := AllocateFreezer(meals, in.FreezerMeals)

	var order []string
	byKey := make(map[string]*aggregate)
	var fromFreezer []domain.MealPlan
	for _, d := range alloc.Decisions {
		if d.FromFreezer {
			fromFreezer = append(fromFreezer, d.Meal)
			continue
		}
		recipe, ok := findRecipe(d.Meal.RecipeID, in.Recipes)
		if !ok {
			continue
		}
		for _, ing := range recipe.Ingredients {
			key := MergeKey(ing.Name, ing.Unit)
			if agg, seen := byKey[key]; seen {
				agg.quantity += ing.Quantity
				continue
			}
			byKey[key] = &aggregate{
				name:     ing.Name,
				unit:     ing.Unit,
				category: ing.Category,
				quantity: ing.Quantity,
			}
			order = append(order, key)
		}
	}

	for _, key := range order {
		agg := byKey[key]
		items = append(items, domain.ShoppingItem{
			ID:                g.newID(),
			Name:              agg.name,
			Quantity:          agg.quantity,
			Unit:              agg.unit,
			Category:          domain.ToShoppingCategory(agg.category),
			Checked:           false,
			GeneratedFromMeal: true,
		})
	}

	return GenerateResult{
		Items: items,
		Config: domain.ShoppingListConfig{
			StartDate:  in.StartDate,
			EndDate:    in.EndDate,
			AutoUpdate: in.StartDate != "" && in.EndDate != "",
		},
		FromFreezer: fromFreezer,
	}
}

// MergeKey identifies ingredients that aggregate into one shopping line.
// Names compare case-insensitively; units are compared exactly.
func MergeKey(name, unit string) string {
	return strings.ToLower(name) + "-" + unit
}

// MealsInRange returns a date-sorted copy of meals. When both bounds are set
// only meals dated within [start, end] inclusive are kept. Dates are
// YYYY-MM-DD so string order is calendar order. Equal dates keep their input
// order.
func MealsInRange(meals []domain.MealPlan, start, end string) []domain.MealPlan {
	out := make([]domain.MealPlan, 0, len(meals))
	for _, m := range meals {
		if start != "" && end != "" && (m.Date < start || m.Date > end) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// LowStockQuantity is the quantity used when a running-low inventory item is
// pushed to the shopping list.
func LowStockQuantity(item domain.InventoryItem) float64 {
	if item.LowStockThreshold > 0 {
		return item.LowStockThreshold
	}
	return 5
}

// ShoppingProgress counts checked items against the total.
func ShoppingProgress(items []domain.ShoppingItem) (checked, total int) {
	for _, it := range items {
		if it.Checked {
			checked++
		}
	}
	return checked, len(items)
}

// CategoryGroup is one non-empty category section of a grouped list.
type CategoryGroup[T any] struct {
	Category string `json:"category"`
	Items    []T    `json:"items"`
}

// GroupShoppingByCategory buckets items in the fixed shopping category order,
// omitting empty categories. Items with an unknown category fall under other.
func GroupShoppingByCategory(items []domain.ShoppingItem) []CategoryGroup[domain.ShoppingItem] {
	buckets := make(map[domain.ShoppingCategory][]domain.ShoppingItem)
	for _, it := range items {
		c := domain.ToShoppingCategory(string(it.Category))
		buckets[c] = append(buckets[c], it)
	}
	out := []CategoryGroup[domain.ShoppingItem]{}
	for _, c := range domain.ShoppingCategories {
		if len(buckets[c]) > 0 {
			out = append(out, CategoryGroup[domain.ShoppingItem]{Category: string(c), Items: buckets[c]})
		}
	}
	return out
}

// GroupInventoryByCategory buckets items in the fixed inventory category order.
func GroupInventoryByCategory(items []domain.InventoryItem) []CategoryGroup[domain.InventoryItem] {
	buckets := make(map[domain.InventoryCategory][]domain.InventoryItem)
	for _, it := range items {
		c := it.Category
		switch c {
		case domain.InventoryProduce, domain.InventoryDairy, domain.InventoryMeat, domain.InventoryPantry:
		default:
			c = domain.InventoryOther
		}
		buckets[c] = append(buckets[c], it)
	}
	out := []CategoryGroup[domain.InventoryItem]{}
	for _, c := range domain.InventoryCategories {
		if len(buckets[c]) > 0 {
			out = append(out, CategoryGroup[domain.InventoryItem]{Category: string(c), Items: buckets[c]})
		}
	}
	return out
}
