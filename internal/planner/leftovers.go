package planner

import (
	"sort"
	"time"

	"github.com/vbonduro/mealprep/internal/domain"
)

type ExpiryStatus string

const (
	Expired  ExpiryStatus = "expired"
	Today    ExpiryStatus = "today"
	Tomorrow ExpiryStatus = "tomorrow"
	Soon     ExpiryStatus = "soon"
	Fresh    ExpiryStatus = "fresh"
)

// soonDays is the largest day count still reported as Soon.
const soonDays = 2

// LeftoverView pairs a leftover with its expiry status.
type LeftoverView struct {
	domain.Leftover
	Status    ExpiryStatus `json:"status"`
	DaysUntil int          `json:"daysUntil"`
}

// LeftoverExpiry classifies a leftover against today. An unparseable use-by
// date is treated as expired.
func LeftoverExpiry(l domain.Leftover, today time.Time) (ExpiryStatus, int) {
	useBy, err := domain.ParseDate(l.UseByDate)
	if err != nil {
		return Expired, -1
	}
	days := domain.DaysBetween(domain.Today(today), useBy)
	switch {
	case days < 0:
		return Expired, days
	case days == 0:
		return Today, days
	case days == 1:
		return Tomorrow, days
	case days <= soonDays:
		return Soon, days
	default:
		return Fresh, days
	}
}

// LeftoverShelves holds leftovers split by storage location, soonest use-by
// date first.
type LeftoverShelves struct {
	Fridge  []LeftoverView `json:"fridge"`
	Freezer []LeftoverView `json:"freezer"`
}

// SortLeftovers annotates and splits leftovers by storage location.
func SortLeftovers(leftovers []domain.Leftover, today time.Time) LeftoverShelves {
	shelves := LeftoverShelves{Fridge: []LeftoverView{}, Freezer: []LeftoverView{}}
	sorted := make([]domain.Leftover, len(leftovers))
	copy(sorted, leftovers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].UseByDate < sorted[j].UseByDate })

	for _, l := range sorted {
		status, days := LeftoverExpiry(l, today)
		v := LeftoverView{Leftover: l, Status: status, DaysUntil: days}
		if l.StorageLocation == domain.Freezer {
			shelves.Freezer = append(shelves.Freezer, v)
		} else {
			shelves.Fridge = append(shelves.Fridge, v)
		}
	}
	return shelves
}
