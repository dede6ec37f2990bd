package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/vbonduro/mealprep/internal/domain"
	"github.com/vbonduro/mealprep/internal/metrics"
	"github.com/vbonduro/mealprep/internal/planner"
)

func (s *KitchenService) ListInventory(_ context.Context) []planner.CategoryGroup[domain.InventoryItem] {
	return planner.GroupInventoryByCategory(s.store.Inventory())
}

func (s *KitchenService) AddInventoryItem(ctx context.Context, item domain.InventoryItem) (domain.InventoryItem, error) {
	normalizeInventory(&item)
	if err := s.check(item); err != nil {
		return domain.InventoryItem{}, err
	}
	return s.store.AddInventoryItem(ctx, item), nil
}

func (s *KitchenService) UpdateInventoryItem(ctx context.Context, id string, item domain.InventoryItem) (domain.InventoryItem, error) {
	item.ID = id
	normalizeInventory(&item)
	if err := s.check(item); err != nil {
		return domain.InventoryItem{}, err
	}
	if err := s.store.UpdateInventoryItem(ctx, item); err != nil {
		return domain.InventoryItem{}, fmt.Errorf("failed to update inventory item: %w", err)
	}
	return item, nil
}

func (s *KitchenService) DeleteInventoryItem(ctx context.Context, id string) error {
	return s.store.DeleteInventoryItem(ctx, id)
}

func (s *KitchenService) DeleteInventoryItems(ctx context.Context, ids []string) int {
	return s.store.DeleteInventoryItems(ctx, ids)
}

// RestockToShopping adds a manual shopping item for a running-low inventory
// item.
func (s *KitchenService) RestockToShopping(ctx context.Context, id string) (domain.ShoppingItem, error) {
	return s.store.AddLowStockToShopping(ctx, id)
}

// ScanInventory asks the vision backend which items appear in a pantry photo.
// When add is true the detections are stored as new inventory items and the
// stored records are returned.
func (s *KitchenService) ScanInventory(ctx context.Context, imageData []byte, mimeType string, add bool) ([]domain.InventoryItem, error) {
	if s.visionAPI == nil {
		return nil, ErrScanUnavailable
	}

	s.logger.Info("vision analysis started", "mime_type", mimeType, "bytes", len(imageData))
	result, err := s.visionAPI.Analyze(ctx, bytes.NewReader(imageData), mimeType)
	if err != nil {
		metrics.InventoryScans.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("failed to analyze image: %w", err)
	}
	metrics.InventoryScans.WithLabelValues(metrics.OutcomeOK).Inc()
	s.logger.Info("vision analysis complete", "items_detected", len(result.Items))

	items := make([]domain.InventoryItem, 0, len(result.Items))
	for _, detected := range result.Items {
		item := detected.InventoryItem()
		if !add {
			items = append(items, item)
			continue
		}
		if err := s.check(item); err != nil {
			s.logger.Error("skipping detected item", "name", detected.Name, "error", err)
			continue
		}
		items = append(items, s.store.AddInventoryItem(ctx, item))
	}
	return items, nil
}

func normalizeInventory(item *domain.InventoryItem) {
	if item.Category == "" {
		item.Category = domain.InventoryOther
	}
}
