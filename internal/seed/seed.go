// Package seed provides the starter kitchen content applied on first run.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vbonduro/mealprep/internal/domain"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type file struct {
	Inventory    []domain.InventoryItem `yaml:"inventory"`
	Recipes      []recipeEntry          `yaml:"recipes"`
	FreezerMeals []freezerEntry         `yaml:"freezerMeals"`
}

type recipeEntry struct {
	Key          string                `yaml:"key"`
	Name         string                `yaml:"name"`
	Servings     int                   `yaml:"servings"`
	PrepTime     string                `yaml:"prepTime"`
	CookTime     string                `yaml:"cookTime"`
	TotalTime    string                `yaml:"totalTime"`
	Difficulty   string                `yaml:"difficulty"`
	Tags         []string              `yaml:"tags"`
	Macros       domain.MacroNutrients `yaml:"macros"`
	Ingredients  []domain.Ingredient   `yaml:"ingredients"`
	Instructions string                `yaml:"instructions"`
	Note         string                `yaml:"note"`
}

type freezerEntry struct {
	Name      string `yaml:"name"`
	Recipe    string `yaml:"recipe"`
	PrepDays  int    `yaml:"prepDays"`
	UseByDays int    `yaml:"useByDays"`
	Servings  int    `yaml:"servings"`
	Notes     string `yaml:"notes"`
	Reheat    string `yaml:"reheat"`
}

// Content is a ready-to-insert set of starter records.
type Content struct {
	Inventory    []domain.InventoryItem
	Recipes      []domain.Recipe
	FreezerMeals []domain.FreezerMeal
}

// Defaults builds the starter content with fresh IDs and dates relative to
// now. Every inventory item is a pantry staple and every recipe is a sample.
func Defaults(now time.Time) (Content, error) {
	var f file
	if err := yaml.Unmarshal(defaultsYAML, &f); err != nil {
		return Content{}, fmt.Errorf("failed to parse default content: %w", err)
	}

	today := domain.Today(now)
	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format(domain.DateLayout)
	}

	var c Content
	for _, it := range f.Inventory {
		it.ID = uuid.NewString()
		it.IsPantryStaple = true
		c.Inventory = append(c.Inventory, it)
	}

	recipeIDs := make(map[string]string, len(f.Recipes))
	for _, e := range f.Recipes {
		macros := e.Macros
		r := domain.Recipe{
			ID:             uuid.NewString(),
			Name:           e.Name,
			Servings:       e.Servings,
			PrepTime:       e.PrepTime,
			CookTime:       e.CookTime,
			TotalTime:      e.TotalTime,
			Difficulty:     e.Difficulty,
			Tags:           e.Tags,
			Macros:         &macros,
			Instructions:   e.Instructions,
			IsSampleRecipe: true,
		}
		for _, ing := range e.Ingredients {
			ing.ID = uuid.NewString()
			r.Ingredients = append(r.Ingredients, ing)
		}
		if e.Note != "" {
			r.Notes = []domain.RecipeNote{{ID: uuid.NewString(), Date: now, Text: e.Note}}
		}
		recipeIDs[e.Key] = r.ID
		c.Recipes = append(c.Recipes, r)
	}

	for _, e := range f.FreezerMeals {
		rid, ok := recipeIDs[e.Recipe]
		if !ok {
			return Content{}, fmt.Errorf("freezer meal %q references unknown recipe %q", e.Name, e.Recipe)
		}
		c.FreezerMeals = append(c.FreezerMeals, domain.FreezerMeal{
			ID:                 uuid.NewString(),
			Name:               e.Name,
			RecipeID:           rid,
			PrepDate:           day(e.PrepDays),
			UseByDate:          day(e.UseByDays),
			Servings:           e.Servings,
			Notes:              e.Notes,
			ReheatInstructions: e.Reheat,
		})
	}
	return c, nil
}

// Flags records whether the starter content was already applied.
type Flags interface {
	DefaultsLoaded(ctx context.Context) (bool, error)
	MarkDefaultsLoaded(ctx context.Context) error
}

// Target receives the starter content.
type Target interface {
	Seed(ctx context.Context, inventory []domain.InventoryItem, recipes []domain.Recipe, freezer []domain.FreezerMeal)
}

// ApplyOnce seeds target unless flags say it already happened. It returns
// true when content was added.
func ApplyOnce(ctx context.Context, flags Flags, target Target, now time.Time, logger *slog.Logger) (bool, error) {
	loaded, err := flags.DefaultsLoaded(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read defaults flag: %w", err)
	}
	if loaded {
		return false, nil
	}

	c, err := Defaults(now)
	if err != nil {
		return false, err
	}
	target.Seed(ctx, c.Inventory, c.Recipes, c.FreezerMeals)
	if err := flags.MarkDefaultsLoaded(ctx); err != nil {
		return true, fmt.Errorf("failed to record defaults flag: %w", err)
	}

	logger.Info("loaded default content",
		"inventory", len(c.Inventory),
		"recipes", len(c.Recipes),
		"freezer_meals", len(c.FreezerMeals),
	)
	return true, nil
}

// Resetter replaces kitchen content wholesale.
type Resetter interface {
	Reset(ctx context.Context, inventory []domain.InventoryItem, recipes []domain.Recipe, freezer []domain.FreezerMeal)
}

// Reset discards all kitchen data and reloads the starter content.
func Reset(ctx context.Context, flags Flags, target Resetter, now time.Time, logger *slog.Logger) error {
	c, err := Defaults(now)
	if err != nil {
		return err
	}
	target.Reset(ctx, c.Inventory, c.Recipes, c.FreezerMeals)
	if err := flags.MarkDefaultsLoaded(ctx); err != nil {
		return fmt.Errorf("failed to record defaults flag: %w", err)
	}
	logger.Info("reset kitchen to default content")
	return nil
}
