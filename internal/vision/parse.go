package vision

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vbonduro/mealprep/internal/domain"
)

const (
	defaultQuantity = 1
	defaultUnit     = "item"
)

var preamblePrefixes = []string{"Here", "I see", "Based on"}

// ParseResponse parses a vision model response in the format
// name | quantity | unit | category, one item per line.
func ParseResponse(raw string) []DetectedItem {
	items := make([]DetectedItem, 0)
	for _, line := range strings.Split(raw, "\n") {
		if item := ParseLine(line); item != nil {
			items = append(items, *item)
		}
	}
	return items
}

// ParseLine parses a single response line. Lines without a pipe separator are
// indistinguishable from preamble and return nil.
func ParseLine(line string) *DetectedItem {
	line = strings.TrimSpace(line)
	if line == "" || !strings.Contains(line, "|") {
		return nil
	}
	for _, p := range preamblePrefixes {
		if strings.HasPrefix(line, p) {
			return nil
		}
	}

	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	name := strings.Trim(parts[0], "-*• ")
	if name == "" {
		return nil
	}

	item := &DetectedItem{
		Name:     cases.Title(language.English).String(name),
		Quantity: defaultQuantity,
		Unit:     defaultUnit,
		Category: domain.InventoryOther,
	}

	if len(parts) >= 2 {
		qty, unit := splitQuantity(parts[1])
		if qty > 0 {
			item.Quantity = qty
		}
		if unit != "" {
			item.Unit = unit
		}
	}
	if len(parts) >= 3 && parts[2] != "" {
		item.Unit = strings.ToLower(parts[2])
	}
	if len(parts) >= 4 {
		item.Category = category(parts[3])
	}
	return item
}

// splitQuantity separates "2 liters" into 2 and "liters". Models sometimes
// fold the unit into the quantity column.
func splitQuantity(s string) (float64, string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, ""
	}
	q, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, ""
	}
	return q, strings.ToLower(strings.Join(fields[1:], " "))
}

func category(s string) domain.InventoryCategory {
	s = strings.ToLower(s)
	for _, c := range domain.InventoryCategories {
		if string(c) == s {
			return c
		}
	}
	return domain.InventoryOther
}
