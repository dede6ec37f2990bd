package service

import (
	"context"

	"github.com/vbonduro/mealprep/internal/domain"
	"github.com/vbonduro/mealprep/internal/planner"
)

// ShoppingOverview is the shopping list grouped for display together with
// progress and the active generation range.
type ShoppingOverview struct {
	Groups  []planner.CategoryGroup[domain.ShoppingItem] `json:"groups"`
	Checked int                                          `json:"checked"`
	Total   int                                          `json:"total"`
	Config  domain.ShoppingListConfig                    `json:"config"`
}

func (s *KitchenService) ShoppingOverview(_ context.Context) ShoppingOverview {
	items := s.store.ShoppingList()
	checked, total := planner.ShoppingProgress(items)
	return ShoppingOverview{
		Groups:  planner.GroupShoppingByCategory(items),
		Checked: checked,
		Total:   total,
		Config:  s.store.ShoppingConfig(),
	}
}

func (s *KitchenService) AddShoppingItem(ctx context.Context, it domain.ShoppingItem) (domain.ShoppingItem, error) {
	if it.Category == "" {
		it.Category = domain.ShoppingOther
	}
	if err := s.check(it); err != nil {
		return domain.ShoppingItem{}, err
	}
	return s.store.AddShoppingItem(ctx, it), nil
}

func (s *KitchenService) ToggleShoppingItem(ctx context.Context, id string) (bool, error) {
	return s.store.ToggleShoppingItem(ctx, id)
}

func (s *KitchenService) DeleteShoppingItem(ctx context.Context, id string) error {
	return s.store.DeleteShoppingItem(ctx, id)
}

func (s *KitchenService) ClearCheckedShoppingItems(ctx context.Context) int {
	return s.store.ClearCheckedShoppingItems(ctx)
}

func (s *KitchenService) UncheckAllShoppingItems(ctx context.Context) int {
	return s.store.UncheckAllShoppingItems(ctx)
}

// GenerateRequest carries the optional date range for generation.
type GenerateRequest struct {
	StartDate string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// GenerateShoppingList rebuilds the generated part of the shopping list.
// With both dates set only meals in the inclusive range count and the list
// then follows meal-plan changes automatically.
func (s *KitchenService) GenerateShoppingList(ctx context.Context, req GenerateRequest) (planner.GenerateResult, error) {
	if err := s.check(req); err != nil {
		return planner.GenerateResult{}, err
	}
	if req.StartDate != "" && req.EndDate != "" && req.EndDate < req.StartDate {
		return planner.GenerateResult{}, invalidField("endDate", "Must not be before startDate")
	}
	return s.store.GenerateShoppingList(ctx, req.StartDate, req.EndDate), nil
}
