package planner

import (
	"sort"
	"time"

	"github.com/vbonduro/mealprep/internal/domain"
)

const (
	// savingsPerMeal is the estimated amount saved by each home-cooked meal.
	savingsPerMeal = 15
	topRecipes     = 5
)

// RecipeRank is a short recipe reference used in rankings.
type RecipeRank struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TimesMade int    `json:"timesMade"`
	Rating    int    `json:"rating"`
}

type Stats struct {
	MealsThisMonth     int          `json:"mealsThisMonth"`
	EstimatedSavings   int          `json:"estimatedSavings"`
	TotalRecipes       int          `json:"totalRecipes"`
	TotalFreezerMeals  int          `json:"totalFreezerMeals"`
	MostCooked         []RecipeRank `json:"mostCooked"`
	HighestRated       []RecipeRank `json:"highestRated"`
	FavoriteCount      int          `json:"favoriteCount"`
	PantryStapleCount  int          `json:"pantryStapleCount"`
	RunningLowCount    int          `json:"runningLowCount"`
	ExpiringLeftovers  int          `json:"expiringLeftovers"`
	LeftoverCount      int          `json:"leftoverCount"`
	ShoppingItemsOpen  int          `json:"shoppingItemsOpen"`
	ShoppingItemsTotal int          `json:"shoppingItemsTotal"`
}

// Summarize computes kitchen analytics as of today.
func Summarize(s domain.Snapshot, today time.Time) Stats {
	st := Stats{
		TotalRecipes:      len(s.Recipes),
		TotalFreezerMeals: len(s.FreezerMeals),
		LeftoverCount:     len(s.Leftovers),
		MostCooked:        []RecipeRank{},
		HighestRated:      []RecipeRank{},
	}

	year, month, _ := today.Date()
	for _, m := range s.Meals {
		d, err := domain.ParseDate(m.Date)
		if err != nil {
			continue
		}
		if d.Year() == year && d.Month() == month {
			st.MealsThisMonth++
		}
	}
	st.EstimatedSavings = st.MealsThisMonth * savingsPerMeal

	var cooked, rated []domain.Recipe
	for _, r := range s.Recipes {
		if r.IsFavorite {
			st.FavoriteCount++
		}
		if r.TimesMade > 0 {
			cooked = append(cooked, r)
		}
		if r.Rating > 0 {
			rated = append(rated, r)
		}
	}
	sort.SliceStable(cooked, func(i, j int) bool { return cooked[i].TimesMade > cooked[j].TimesMade })
	sort.SliceStable(rated, func(i, j int) bool { return rated[i].Rating > rated[j].Rating })
	st.MostCooked = rank(cooked)
	st.HighestRated = rank(rated)

	for _, it := range s.Inventory {
		if it.IsPantryStaple {
			st.PantryStapleCount++
		}
		if it.IsRunningLow {
			st.RunningLowCount++
		}
	}

	for _, l := range s.Leftovers {
		status, _ := LeftoverExpiry(l, today)
		if status == Today || status == Tomorrow || status == Soon {
			st.ExpiringLeftovers++
		}
	}

	checked, total := ShoppingProgress(s.ShoppingList)
	st.ShoppingItemsOpen = total - checked
	st.ShoppingItemsTotal = total
	return st
}

func rank(recipes []domain.Recipe) []RecipeRank {
	out := []RecipeRank{}
	for i, r := range recipes {
		if i == topRecipes {
			break
		}
		out = append(out, RecipeRank{ID: r.ID, Name: r.Name, TimesMade: r.TimesMade, Rating: r.Rating})
	}
	return out
}
