package planner

import (
	"sort"
	"strings"
	"time"

	"github.com/vbonduro/mealprep/internal/domain"
)

// NormalizeName is the join key between meal plans and freezer meals.
func NormalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

// FreezerCount returns how many freezer units carry the given meal name.
func FreezerCount(mealName string, freezerMeals []domain.FreezerMeal) int {
	key := NormalizeName(mealName)
	n := 0
	for _, fm := range freezerMeals {
		if NormalizeName(fm.Name) == key {
			n++
		}
	}
	return n
}

// FreezerDecision records whether a planned meal is served from the freezer.
type FreezerDecision struct {
	Meal        domain.MealPlan
	FromFreezer bool
}

// Allocation is the result of one freezer allocation pass. Used maps a
// normalized meal name to the number of freezer units consumed.
type Allocation struct {
	Decisions []FreezerDecision
	Used      map[string]int
}

// AllocateFreezer walks meals in the given order and serves each one from the
// freezer while units with a matching name remain. Earlier meals win, so the
// caller must sort by date first. The usage ledger starts empty on each call.
func AllocateFreezer(meals []domain.MealPlan, freezerMeals []domain.FreezerMeal) Allocation {
	totals := make(map[string]int)
	for _, fm := range freezerMeals {
		totals[NormalizeName(fm.Name)]++
	}

	alloc := Allocation{
		Decisions: make([]FreezerDecision, 0, len(meals)),
		Used:      make(map[string]int),
	}
	for _, meal := range meals {
		key := NormalizeName(meal.Name)
		fromFreezer := alloc.Used[key] < totals[key]
		if fromFreezer {
			alloc.Used[key]++
		}
		alloc.Decisions = append(alloc.Decisions, FreezerDecision{Meal: meal, FromFreezer: fromFreezer})
	}
	return alloc
}

// FreezerGroup collects freezer units that share a normalized name.
type FreezerGroup struct {
	Name          string               `json:"name"`
	Meals         []domain.FreezerMeal `json:"meals"`
	Count         int                  `json:"count"`
	TotalServings int                  `json:"totalServings"`
	OldestDate    string               `json:"oldestDate"`
	OldestDays    int                  `json:"oldestDays"`
}

// GroupFreezerMeals groups units by normalized name. A group takes the display
// name of its first member; members are listed newest first and groups are
// ordered by their oldest prep date, most recent first.
func GroupFreezerMeals(freezerMeals []domain.FreezerMeal, today time.Time) []FreezerGroup {
	index := make(map[string]int)
	var groups []FreezerGroup
	for _, fm := range freezerMeals {
		key := NormalizeName(fm.Name)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, FreezerGroup{Name: fm.Name, OldestDate: fm.PrepDate})
		}
		g := &groups[i]
		g.Meals = append(g.Meals, fm)
		g.Count++
		g.TotalServings += fm.Servings
		if fm.PrepDate < g.OldestDate {
			g.OldestDate = fm.PrepDate
		}
	}

	for i := range groups {
		sort.SliceStable(groups[i].Meals, func(a, b int) bool {
			return groups[i].Meals[a].PrepDate > groups[i].Meals[b].PrepDate
		})
		groups[i].OldestDays = DaysInFreezer(groups[i].OldestDate, today)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].OldestDate > groups[b].OldestDate
	})
	return groups
}

// DaysInFreezer returns the absolute number of days between prepDate and
// today. An unparseable date counts as zero days.
func DaysInFreezer(prepDate string, today time.Time) int {
	prep, err := domain.ParseDate(prepDate)
	if err != nil {
		return 0
	}
	d := domain.DaysBetween(prep, domain.Today(today))
	if d < 0 {
		return -d
	}
	return d
}
