package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vbonduro/mealprep/internal/domain"
	"github.com/vbonduro/mealprep/internal/metrics"
	"github.com/vbonduro/mealprep/internal/planner"
	"github.com/vbonduro/mealprep/internal/recipeimport"
)

// PhotoURLPrefix is the path under which stored recipe photos are served.
const PhotoURLPrefix = "/photos/"

var ErrImportUnavailable = errors.New("recipe import is not configured")

func (s *KitchenService) ListRecipes(_ context.Context) []domain.Recipe {
	return s.store.Recipes()
}

func (s *KitchenService) GetRecipe(_ context.Context, id string) (domain.Recipe, error) {
	r, ok := s.store.Recipe(id)
	if !ok {
		return domain.Recipe{}, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	return r, nil
}

// AddRecipe validates and stores a user recipe. It returns ErrQuotaExceeded
// when the restricted tier already holds the maximum number of recipes.
func (s *KitchenService) AddRecipe(ctx context.Context, r domain.Recipe) (domain.Recipe, error) {
	r.IsSampleRecipe = false
	if err := s.check(r); err != nil {
		return domain.Recipe{}, err
	}
	added, ok := s.store.AddRecipe(ctx, r, s.unrestricted(ctx))
	if !ok {
		return domain.Recipe{}, s.refused(metrics.QuotaRecipes)
	}
	return added, nil
}

// UpdateRecipe replaces the editable fields of a recipe. Cooking history,
// notes and the sample flag are kept from the stored recipe.
func (s *KitchenService) UpdateRecipe(ctx context.Context, id string, r domain.Recipe) (domain.Recipe, error) {
	if err := s.check(r); err != nil {
		return domain.Recipe{}, err
	}
	cur, err := s.GetRecipe(ctx, id)
	if err != nil {
		return domain.Recipe{}, err
	}
	r.ID = id
	r.TimesMade = cur.TimesMade
	r.DateLastMade = cur.DateLastMade
	r.Notes = cur.Notes
	r.IsSampleRecipe = cur.IsSampleRecipe

	if err := s.store.UpdateRecipe(ctx, r); err != nil {
		return domain.Recipe{}, fmt.Errorf("failed to update recipe: %w", err)
	}
	return s.GetRecipe(ctx, id)
}

func (s *KitchenService) DeleteRecipe(ctx context.Context, id string) error {
	return s.store.DeleteRecipe(ctx, id)
}

func (s *KitchenService) DeleteRecipes(ctx context.Context, ids []string) int {
	return s.store.DeleteRecipes(ctx, ids)
}

func (s *KitchenService) MarkRecipeMade(ctx context.Context, id string) (domain.Recipe, error) {
	if err := s.store.MarkRecipeAsMade(ctx, id); err != nil {
		return domain.Recipe{}, err
	}
	return s.GetRecipe(ctx, id)
}

func (s *KitchenService) AddRecipeNote(ctx context.Context, id, text string) (domain.RecipeNote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.RecipeNote{}, invalidField("text", "This field is required")
	}
	return s.store.AddRecipeNote(ctx, id, text)
}

// RecipeAvailability partitions a recipe's ingredients by inventory stock.
// An unknown recipe yields three empty lists.
func (s *KitchenService) RecipeAvailability(_ context.Context, id string) planner.Availability {
	return s.store.CheckRecipe(id)
}

// ImportRecipe builds a draft recipe from a web page. When save is true the
// draft goes through AddRecipe, including its quota check.
func (s *KitchenService) ImportRecipe(ctx context.Context, rawURL string, save bool) (domain.Recipe, error) {
	if s.importer == nil {
		return domain.Recipe{}, ErrImportUnavailable
	}
	draft, err := s.importer.Import(ctx, rawURL)
	if errors.Is(err, recipeimport.ErrInvalidURL) {
		return domain.Recipe{}, invalidField("url", "Must be an http or https URL")
	}
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("failed to import recipe: %w", err)
	}
	if !save {
		return draft, nil
	}
	return s.AddRecipe(ctx, draft)
}

// SetRecipePhoto stores an image for a recipe and points its ImageURL at it.
// A previously stored photo is removed.
func (s *KitchenService) SetRecipePhoto(ctx context.Context, id string, imageData []byte, mimeType string) (domain.Recipe, error) {
	cur, err := s.GetRecipe(ctx, id)
	if err != nil {
		return domain.Recipe{}, err
	}

	key, err := s.photoStg.Save(ctx, "recipe", mimeType, bytes.NewReader(imageData))
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("failed to save photo: %w", err)
	}
	s.logger.Debug("photo saved", "recipe_id", id, "storage_key", key)

	if err := s.store.SetRecipeImage(ctx, id, PhotoURLPrefix+key); err != nil {
		if derr := s.photoStg.Delete(ctx, key); derr != nil {
			s.logger.Error("failed to roll back photo file", "storage_key", key, "error", derr)
		}
		return domain.Recipe{}, err
	}

	if old, ok := strings.CutPrefix(cur.ImageURL, PhotoURLPrefix); ok {
		if err := s.photoStg.Delete(ctx, old); err != nil {
			s.logger.Error("failed to delete previous photo", "storage_key", old, "error", err)
		}
	}
	return s.GetRecipe(ctx, id)
}

// Photo opens a stored recipe photo.
func (s *KitchenService) Photo(ctx context.Context, key string) (io.ReadCloser, string, error) {
	return s.photoStg.Get(ctx, key)
}
