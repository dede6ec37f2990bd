package planner

import "github.com/vbonduro/mealprep/internal/domain"

// MealView is a planned meal annotated for the meal-plan screen. Meals served
// from the freezer carry no ingredient counts since nothing is cooked.
type MealView struct {
	domain.MealPlan
	FromFreezer  bool `json:"fromFreezer"`
	FreezerStock int  `json:"freezerStock"`
	Missing      int  `json:"missing"`
	LowStock     int  `json:"lowStock"`
	CanCook      bool `json:"canCook"`
}

// PlanMeals sorts meals by date and runs one freezer allocation over the
// whole plan, so the earliest meals of a name claim the freezer units first.
// Meals cooked from scratch get their recipe's availability counts; a meal
// without a resolvable recipe reports zero counts and cannot be cooked.
func PlanMeals(meals []domain.MealPlan, recipes []domain.Recipe, inventory []domain.InventoryItem, freezerMeals []domain.FreezerMeal) []MealView {
	alloc := AllocateFreezer(MealsInRange(meals, "", ""), freezerMeals)

	out := make([]MealView, 0, len(alloc.Decisions))
	for _, d := range alloc.Decisions {
		v := MealView{
			MealPlan:     d.Meal,
			FromFreezer:  d.FromFreezer,
			FreezerStock: FreezerCount(d.Meal.Name, freezerMeals),
		}
		if !d.FromFreezer {
			if _, ok := findRecipe(d.Meal.RecipeID, recipes); ok {
				a := CheckAvailability(d.Meal.RecipeID, recipes, inventory)
				v.Missing = len(a.Missing)
				v.LowStock = len(a.LowStock)
				v.CanCook = a.CanCook()
			}
		}
		out = append(out, v)
	}
	return out
}
