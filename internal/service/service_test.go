package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/mealprep/internal/domain"
	"github.com/vbonduro/mealprep/internal/entitlement"
	"github.com/vbonduro/mealprep/internal/event"
	"github.com/vbonduro/mealprep/internal/kitchen"
	"github.com/vbonduro/mealprep/internal/metrics"
	"github.com/vbonduro/mealprep/internal/photostore"
	"github.com/vbonduro/mealprep/internal/recipeimport"
	"github.com/vbonduro/mealprep/internal/vision"
)

var fixedNow = time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

type nopSaver struct{}

func (nopSaver) Enqueue(event.Collection, []byte) {}

// mockVision is a testify mock of vision.VisionAnalyzer.
type mockVision struct {
	mock.Mock
}

func (m *mockVision) Analyze(ctx context.Context, r io.Reader, mimeType string) (*vision.AnalysisResult, error) {
	args := m.Called(ctx, r, mimeType)
	res, _ := args.Get(0).(*vision.AnalysisResult)
	return res, args.Error(1)
}

// stubPhotoStore is a minimal in-memory photostore.PhotoStore for tests.
type stubPhotoStore struct {
	saved map[string][]byte
	n     int
}

func newStubPhotoStore() *stubPhotoStore {
	return &stubPhotoStore{saved: make(map[string][]byte)}
}

func (s *stubPhotoStore) Save(_ context.Context, prefix, _ string, r io.Reader) (string, error) {
	data, _ := io.ReadAll(r)
	s.n++
	key := fmt.Sprintf("%s_%d.jpg", prefix, s.n)
	s.saved[key] = data
	return key, nil
}

func (s *stubPhotoStore) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	data, ok := s.saved[key]
	if !ok {
		return nil, "", photostore.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), "image/jpeg", nil
}

func (s *stubPhotoStore) Delete(_ context.Context, key string) error {
	if _, ok := s.saved[key]; !ok {
		return photostore.ErrNotFound
	}
	delete(s.saved, key)
	return nil
}

type stubImporter struct {
	recipe domain.Recipe
	err    error
}

func (s *stubImporter) Import(_ context.Context, rawURL string) (domain.Recipe, error) {
	if !recipeimport.ValidURL(rawURL) {
		return domain.Recipe{}, recipeimport.ErrInvalidURL
	}
	return s.recipe, s.err
}

type memFlags struct{ loaded bool }

func (f *memFlags) DefaultsLoaded(context.Context) (bool, error) { return f.loaded, nil }
func (f *memFlags) MarkDefaultsLoaded(context.Context) error {
	f.loaded = true
	return nil
}

type testDeps struct {
	store    *kitchen.Store
	vision   *mockVision
	photos   *stubPhotoStore
	importer *stubImporter
	flags    *memFlags
}

func newTestService(t *testing.T, unrestricted bool) (*KitchenService, *testDeps) {
	t.Helper()
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	deps := &testDeps{
		store: kitchen.New(event.NewMemoryBus(), nopSaver{}, slog.Default(),
			kitchen.WithClock(func() time.Time { return fixedNow }), kitchen.WithIDs(ids)),
		vision:   &mockVision{},
		photos:   newStubPhotoStore(),
		importer: &stubImporter{},
		flags:    &memFlags{},
	}
	svc := NewKitchenService(
		deps.store,
		entitlement.Static(unrestricted),
		deps.importer,
		deps.vision,
		deps.photos,
		deps.flags,
		slog.Default(),
	)
	return svc, deps
}

func recipe(name string) domain.Recipe {
	return domain.Recipe{
		Name:     name,
		Servings: 2,
		Ingredients: []domain.Ingredient{
			{Name: "flour", Quantity: 2, Unit: "cup", Category: "pantry"},
		},
	}
}

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, field)
}

func TestAddRecipe_Validation(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	r := recipe("Bread")
	r.Ingredients = nil
	_, err := svc.AddRecipe(ctx, r)
	requireValidation(t, err, "ingredients")

	r = recipe("Bread")
	r.Servings = 0
	_, err = svc.AddRecipe(ctx, r)
	requireValidation(t, err, "servings")

	r = recipe("Bread")
	r.Ingredients[0].Name = ""
	_, err = svc.AddRecipe(ctx, r)
	requireValidation(t, err, "ingredients[0].name")

	r = recipe("Bread")
	r.Difficulty = "Impossible"
	_, err = svc.AddRecipe(ctx, r)
	requireValidation(t, err, "difficulty")
}

func TestAddRecipe_Quota(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	for i := 0; i < kitchen.FreeRecipeLimit; i++ {
		_, err := svc.AddRecipe(ctx, recipe(fmt.Sprintf("Recipe %d", i)))
		require.NoError(t, err)
	}

	before := testutil.ToFloat64(metrics.QuotaRefusals.WithLabelValues(metrics.QuotaRecipes))
	_, err := svc.AddRecipe(ctx, recipe("One too many"))
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.QuotaRefusals.WithLabelValues(metrics.QuotaRecipes)))

	_, err = svc.AddRecipe(entitlement.WithOverride(ctx), recipe("Maintenance"))
	assert.NoError(t, err)
}

func TestAddRecipe_SampleFlagCannotBypassQuota(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	for i := 0; i < kitchen.FreeRecipeLimit; i++ {
		r := recipe(fmt.Sprintf("Sample %d", i))
		r.IsSampleRecipe = true
		added, err := svc.AddRecipe(ctx, r)
		require.NoError(t, err)
		assert.False(t, added.IsSampleRecipe)
	}
	_, err := svc.AddRecipe(ctx, recipe("Blocked"))
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestAddRecipe_Unrestricted(t *testing.T) {
	svc, _ := newTestService(t, true)
	ctx := context.Background()

	for i := 0; i <= kitchen.FreeRecipeLimit; i++ {
		_, err := svc.AddRecipe(ctx, recipe(fmt.Sprintf("Recipe %d", i)))
		require.NoError(t, err)
	}
	assert.Len(t, svc.ListRecipes(ctx), kitchen.FreeRecipeLimit+1)
}

func TestUpdateRecipe_KeepsHistory(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	added, err := svc.AddRecipe(ctx, recipe("Bread"))
	require.NoError(t, err)
	_, err = svc.MarkRecipeMade(ctx, added.ID)
	require.NoError(t, err)
	_, err = svc.AddRecipeNote(ctx, added.ID, "  needs more salt ")
	require.NoError(t, err)

	edit := recipe("Sourdough")
	edit.TimesMade = 99
	updated, err := svc.UpdateRecipe(ctx, added.ID, edit)
	require.NoError(t, err)

	assert.Equal(t, "Sourdough", updated.Name)
	assert.Equal(t, 1, updated.TimesMade)
	require.NotNil(t, updated.DateLastMade)
	require.Len(t, updated.Notes, 1)
	assert.Equal(t, "needs more salt", updated.Notes[0].Text)
	assert.NotEmpty(t, updated.Ingredients[0].ID)

	_, err = svc.UpdateRecipe(ctx, "missing", recipe("X"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddRecipeNote_Empty(t *testing.T) {
	svc, _ := newTestService(t, false)
	added, err := svc.AddRecipe(context.Background(), recipe("Bread"))
	require.NoError(t, err)

	_, err = svc.AddRecipeNote(context.Background(), added.ID, "   ")
	requireValidation(t, err, "text")
}

func TestMealPlanHorizon(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	ok, err := svc.AddMealPlan(ctx, domain.MealPlan{Date: "2024-05-24", MealType: domain.Dinner, Name: "Tacos"})
	require.NoError(t, err)

	_, err = svc.AddMealPlan(ctx, domain.MealPlan{Date: "2024-05-25", MealType: domain.Dinner, Name: "Tacos"})
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	ok.Date = "2024-06-30"
	_, err = svc.UpdateMealPlan(ctx, ok.ID, ok)
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	_, err = svc.UpdateMealPlan(ctx, "missing", domain.MealPlan{Date: "2024-05-11", MealType: domain.Lunch, Name: "Soup"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMealPlanValidation(t *testing.T) {
	svc, _ := newTestService(t, true)
	ctx := context.Background()

	_, err := svc.AddMealPlan(ctx, domain.MealPlan{Date: "05/11/2024", MealType: domain.Dinner, Name: "Tacos"})
	requireValidation(t, err, "date")

	_, err = svc.AddMealPlan(ctx, domain.MealPlan{Date: "2024-05-11", MealType: "brunch", Name: "Tacos"})
	requireValidation(t, err, "mealType")
}

func TestListMealsSortedByDate(t *testing.T) {
	svc, _ := newTestService(t, true)
	ctx := context.Background()

	for _, d := range []string{"2024-05-13", "2024-05-11", "2024-05-12"} {
		_, err := svc.AddMealPlan(ctx, domain.MealPlan{Date: d, MealType: domain.Dinner, Name: d})
		require.NoError(t, err)
	}
	meals := svc.ListMeals(ctx)
	require.Len(t, meals, 3)
	assert.Equal(t, "2024-05-11", meals[0].Date)
	assert.Equal(t, "2024-05-13", meals[2].Date)
}

func TestListMeals_FreezerCoversEarliestMeals(t *testing.T) {
	svc, _ := newTestService(t, true)
	ctx := context.Background()

	r, err := svc.AddRecipe(ctx, recipe("Chili"))
	require.NoError(t, err)
	for _, prep := range []string{"2024-05-01", "2024-05-03"} {
		_, err := svc.AddFreezerMeal(ctx, domain.FreezerMeal{Name: "chili", PrepDate: prep, Servings: 4})
		require.NoError(t, err)
	}
	for _, d := range []string{"2024-05-15", "2024-05-11", "2024-05-13"} {
		_, err := svc.AddMealPlan(ctx, domain.MealPlan{Date: d, MealType: domain.Dinner, Name: "Chili", RecipeID: r.ID})
		require.NoError(t, err)
	}

	meals := svc.ListMeals(ctx)

	require.Len(t, meals, 3)
	assert.Equal(t, "2024-05-11", meals[0].Date)
	assert.True(t, meals[0].FromFreezer)
	assert.True(t, meals[1].FromFreezer)
	assert.False(t, meals[2].FromFreezer)
	assert.Equal(t, "2024-05-15", meals[2].Date)
	for _, m := range meals {
		assert.Equal(t, 2, m.FreezerStock)
	}
	assert.Zero(t, meals[0].Missing)
	assert.Equal(t, len(r.Ingredients), meals[2].Missing, "empty inventory")
	assert.False(t, meals[2].CanCook)
}

func TestScanInventory(t *testing.T) {
	svc, deps := newTestService(t, false)
	ctx := context.Background()

	deps.vision.On("Analyze", mock.Anything, mock.Anything, "image/jpeg").Return(&vision.AnalysisResult{
		Items: []vision.DetectedItem{
			{Name: "Milk", Quantity: 1, Unit: "liter", Category: domain.InventoryDairy},
			{Name: "Butter", Quantity: 250, Unit: "g", Category: domain.InventoryDairy},
		},
	}, nil)

	preview, err := svc.ScanInventory(ctx, []byte{0xFF, 0xD8}, "image/jpeg", false)
	require.NoError(t, err)
	assert.Len(t, preview, 2)
	assert.Empty(t, preview[0].ID)
	assert.Empty(t, deps.store.Inventory())

	added, err := svc.ScanInventory(ctx, []byte{0xFF, 0xD8}, "image/jpeg", true)
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.NotEmpty(t, added[0].ID)
	assert.Len(t, deps.store.Inventory(), 2)

	deps.vision.AssertNumberOfCalls(t, "Analyze", 2)
}

func TestScanInventory_Errors(t *testing.T) {
	svc, deps := newTestService(t, false)
	ctx := context.Background()

	deps.vision.On("Analyze", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("model offline"))
	_, err := svc.ScanInventory(ctx, []byte{1}, "image/png", true)
	assert.ErrorContains(t, err, "model offline")

	svc.visionAPI = nil
	_, err = svc.ScanInventory(ctx, []byte{1}, "image/png", true)
	assert.ErrorIs(t, err, ErrScanUnavailable)
}

func TestImportRecipe(t *testing.T) {
	svc, deps := newTestService(t, false)
	ctx := context.Background()
	deps.importer.recipe = recipe("Imported Chili")

	draft, err := svc.ImportRecipe(ctx, "https://example.com/chili", false)
	require.NoError(t, err)
	assert.Empty(t, draft.ID)
	assert.Empty(t, svc.ListRecipes(ctx))

	saved, err := svc.ImportRecipe(ctx, "https://example.com/chili", true)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Len(t, svc.ListRecipes(ctx), 1)

	_, err = svc.ImportRecipe(ctx, "ftp://example.com/chili", false)
	requireValidation(t, err, "url")

	deps.importer.err = recipeimport.ErrNoRecipe
	_, err = svc.ImportRecipe(ctx, "https://example.com/blog", false)
	assert.ErrorIs(t, err, recipeimport.ErrNoRecipe)

	svc.importer = nil
	_, err = svc.ImportRecipe(ctx, "https://example.com/chili", false)
	assert.ErrorIs(t, err, ErrImportUnavailable)
}

func TestSetRecipePhoto_ReplacesPrevious(t *testing.T) {
	svc, deps := newTestService(t, false)
	ctx := context.Background()

	added, err := svc.AddRecipe(ctx, recipe("Bread"))
	require.NoError(t, err)

	first, err := svc.SetRecipePhoto(ctx, added.ID, []byte("one"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, PhotoURLPrefix+"recipe_1.jpg", first.ImageURL)

	second, err := svc.SetRecipePhoto(ctx, added.ID, []byte("two"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, PhotoURLPrefix+"recipe_2.jpg", second.ImageURL)
	assert.NotContains(t, deps.photos.saved, "recipe_1.jpg")

	rc, _, err := svc.Photo(ctx, "recipe_2.jpg")
	require.NoError(t, err)
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "two", string(data))

	_, err = svc.SetRecipePhoto(ctx, "missing", []byte("x"), "image/jpeg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLeftoverValidation(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	_, err := svc.AddLeftover(ctx, domain.Leftover{
		Name: "Soup", DateStored: "2024-05-10", UseByDate: "2024-05-08", StorageLocation: domain.Fridge,
	})
	requireValidation(t, err, "useByDate")

	_, err = svc.AddLeftover(ctx, domain.Leftover{
		Name: "Soup", DateStored: "2024-05-10", UseByDate: "2024-05-12", StorageLocation: "counter",
	})
	requireValidation(t, err, "storageLocation")

	l, err := svc.AddLeftover(ctx, domain.Leftover{
		Name: "Soup", DateStored: "2024-05-10", UseByDate: "2024-05-11", StorageLocation: domain.Fridge,
	})
	require.NoError(t, err)

	shelves := svc.Leftovers(ctx)
	require.Len(t, shelves.Fridge, 1)
	assert.Equal(t, l.ID, shelves.Fridge[0].ID)
}

func TestShoppingFlow(t *testing.T) {
	svc, _ := newTestService(t, true)
	ctx := context.Background()

	r, err := svc.AddRecipe(ctx, recipe("Bread"))
	require.NoError(t, err)
	_, err = svc.AddMealPlan(ctx, domain.MealPlan{Date: "2024-05-11", MealType: domain.Dinner, Name: "Bread", RecipeID: r.ID})
	require.NoError(t, err)

	manual, err := svc.AddShoppingItem(ctx, domain.ShoppingItem{Name: "Coffee", Quantity: 1, Unit: "bag", GeneratedFromMeal: true})
	require.NoError(t, err)
	assert.False(t, manual.GeneratedFromMeal)
	assert.Equal(t, domain.ShoppingOther, manual.Category)

	res, err := svc.GenerateShoppingList(ctx, GenerateRequest{StartDate: "2024-05-10", EndDate: "2024-05-12"})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.True(t, res.Config.AutoUpdate)

	_, err = svc.ToggleShoppingItem(ctx, manual.ID)
	require.NoError(t, err)

	ov := svc.ShoppingOverview(ctx)
	assert.Equal(t, 1, ov.Checked)
	assert.Equal(t, 2, ov.Total)
	assert.Equal(t, "2024-05-10", ov.Config.StartDate)

	assert.Equal(t, 1, svc.ClearCheckedShoppingItems(ctx))
	assert.Equal(t, 0, svc.UncheckAllShoppingItems(ctx))
}

func TestGenerateShoppingList_InvalidRange(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	_, err := svc.GenerateShoppingList(ctx, GenerateRequest{StartDate: "2024-05-12", EndDate: "2024-05-10"})
	requireValidation(t, err, "endDate")

	_, err = svc.GenerateShoppingList(ctx, GenerateRequest{StartDate: "tomorrow"})
	requireValidation(t, err, "startDate")
}

func TestRestockToShopping(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	item, err := svc.AddInventoryItem(ctx, domain.InventoryItem{Name: "Rice", Quantity: 1, Unit: "lb", IsPantryStaple: true, LowStockThreshold: 3})
	require.NoError(t, err)
	assert.Equal(t, domain.InventoryOther, item.Category)

	it, err := svc.RestockToShopping(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, it.Quantity)

	_, err = svc.RestockToShopping(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResetToDefaults(t *testing.T) {
	svc, deps := newTestService(t, false)
	ctx := context.Background()

	_, err := svc.AddShoppingItem(ctx, domain.ShoppingItem{Name: "Coffee", Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.ResetToDefaults(ctx))
	assert.True(t, deps.flags.loaded)
	assert.Len(t, svc.ListRecipes(ctx), 3)
	assert.Empty(t, svc.ShoppingOverview(ctx).Groups)

	st := svc.Stats(ctx)
	assert.Equal(t, 3, st.TotalFreezerMeals)
	assert.Equal(t, 15, st.PantryStapleCount)
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"name": "This field is required", "date": "bad"}}
	assert.Equal(t, "invalid input: date: bad, name: This field is required", err.Error())
}
