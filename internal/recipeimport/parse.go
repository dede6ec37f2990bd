package recipeimport

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vbonduro/mealprep/internal/domain"
)

const (
	defaultQuantity = 1
	defaultUnit     = "item"
	defaultCategory = "pantry"
)

var (
	ingredientRE = regexp.MustCompile(`^([\d\.\s\/]+)?\s*([\w]+)?\s+(.+)`)
	durationRE   = regexp.MustCompile(`PT(\d+H)?(\d+M)?`)
	leadingNumRE = regexp.MustCompile(`^\s*[-+]?(\d+\.?\d*|\.\d+)`)
)

// ParseIngredient splits a free-text line such as "2 cups flour" into
// quantity, unit and name. Missing parts fall back to 1 and "item".
func ParseIngredient(line string) domain.Ingredient {
	ing := domain.Ingredient{
		Name:     strings.TrimSpace(line),
		Quantity: defaultQuantity,
		Unit:     defaultUnit,
		Category: defaultCategory,
	}

	m := ingredientRE.FindStringSubmatch(line)
	if m == nil {
		return ing
	}
	if m[1] != "" {
		if q := parseQuantity(m[1]); q > 0 {
			ing.Quantity = q
		}
	}
	if m[2] != "" {
		ing.Unit = m[2]
	}
	if name := strings.TrimSpace(m[3]); name != "" {
		ing.Name = name
	}
	return ing
}

// parseQuantity reads whole numbers, decimals, simple fractions and mixed
// numbers ("1 1/2"). It returns 0 when nothing usable is found.
func parseQuantity(s string) float64 {
	var total float64
	for _, field := range strings.Fields(s) {
		if num, den, ok := strings.Cut(field, "/"); ok {
			n, err1 := strconv.ParseFloat(num, 64)
			d, err2 := strconv.ParseFloat(den, 64)
			if err1 != nil || err2 != nil || d == 0 {
				continue
			}
			total += n / d
			continue
		}
		if v, err := strconv.ParseFloat(field, 64); err == nil {
			total += v
		}
	}
	return total
}

// FormatDuration turns an ISO-8601 duration like PT1H30M into "1h 30min".
// Strings that are not durations are returned unchanged and zero durations
// become empty.
func FormatDuration(iso string) string {
	if iso == "" {
		return ""
	}
	m := durationRE.FindStringSubmatch(iso)
	if m == nil {
		return iso
	}
	hours := atoiSuffix(m[1], "H")
	minutes := atoiSuffix(m[2], "M")

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dmin", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 0:
		return fmt.Sprintf("%dmin", minutes)
	}
	return ""
}

func atoiSuffix(s, suffix string) int {
	n, _ := strconv.Atoi(strings.TrimSuffix(s, suffix))
	return n
}

// leadingFloat parses the number at the start of s, ignoring trailing text
// such as "250 calories". ok is false when s does not start with a number.
func leadingFloat(s string) (float64, bool) {
	m := leadingNumRE.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	return v, err == nil
}
