package vision

import (
	"context"
	"io"

	"github.com/vbonduro/mealprep/internal/domain"
)

// AnalysisPrompt is the shared prompt used by all vision adapters.
const AnalysisPrompt = `List every food item you can see in this refrigerator/freezer/pantry photo.
For each item provide: name, approximate quantity as a number, unit, and a
category from: produce, dairy, meat, pantry, other.
Respond in plain text, one item per line,
format: name | quantity | unit | category`

type VisionAnalyzer interface {
	Analyze(ctx context.Context, r io.Reader, mimeType string) (*AnalysisResult, error)
}

type AnalysisResult struct {
	Items       []DetectedItem
	RawResponse string
}

type DetectedItem struct {
	Name     string
	Quantity float64
	Unit     string
	Category domain.InventoryCategory
}

// InventoryItem converts a detection into an unsaved inventory record.
func (d DetectedItem) InventoryItem() domain.InventoryItem {
	return domain.InventoryItem{
		Name:     d.Name,
		Quantity: d.Quantity,
		Unit:     d.Unit,
		Category: d.Category,
	}
}
