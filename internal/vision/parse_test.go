package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vbonduro/mealprep/internal/domain"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected *DetectedItem
	}{
		{
			name:     "full item",
			line:     "milk | 2 | liters | dairy",
			expected: &DetectedItem{Name: "Milk", Quantity: 2, Unit: "liters", Category: domain.InventoryDairy},
		},
		{
			name:     "unit folded into quantity",
			line:     "Eggs | 12 count",
			expected: &DetectedItem{Name: "Eggs", Quantity: 12, Unit: "count", Category: domain.InventoryOther},
		},
		{
			name:     "unparseable quantity falls back",
			line:     "olive oil | some | bottle | Pantry",
			expected: &DetectedItem{Name: "Olive Oil", Quantity: 1, Unit: "bottle", Category: domain.InventoryPantry},
		},
		{
			name:     "unknown category",
			line:     "Ice cream | 1 | tub | frozen",
			expected: &DetectedItem{Name: "Ice Cream", Quantity: 1, Unit: "tub", Category: domain.InventoryOther},
		},
		{
			name:     "bullet stripped",
			line:     "- carrots | 6 | item | produce",
			expected: &DetectedItem{Name: "Carrots", Quantity: 6, Unit: "item", Category: domain.InventoryProduce},
		},
		{
			// Lines without a pipe separator are indistinguishable from preamble;
			// require at least one | for a line to be treated as an item.
			name:     "name only without pipe",
			line:     "Butter",
			expected: nil,
		},
		{name: "empty line", line: "", expected: nil},
		{name: "whitespace only", line: "   ", expected: nil},
		{name: "empty name", line: " | 2 | kg | meat", expected: nil},
		{name: "header line Here", line: "Here are the items | count:", expected: nil},
		{name: "header line Based on", line: "Based on the image:", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLine(tt.line))
		})
	}
}

func TestParseResponse(t *testing.T) {
	raw := `Here are the items I see:
Milk | 1 | liter | dairy

Butter | 1 | block | dairy`

	assert.Equal(t, []DetectedItem{
		{Name: "Milk", Quantity: 1, Unit: "liter", Category: domain.InventoryDairy},
		{Name: "Butter", Quantity: 1, Unit: "block", Category: domain.InventoryDairy},
	}, ParseResponse(raw))

	assert.Equal(t, []DetectedItem{}, ParseResponse("I see nothing"))
}

func TestDetectedItemInventoryItem(t *testing.T) {
	it := DetectedItem{Name: "Rice", Quantity: 2, Unit: "lbs", Category: domain.InventoryPantry}.InventoryItem()
	assert.Equal(t, domain.InventoryItem{Name: "Rice", Quantity: 2, Unit: "lbs", Category: domain.InventoryPantry}, it)
}
