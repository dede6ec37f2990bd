package kitchen

import (
	"context"
	"fmt"

	"github.com/vbonduro/mealprep/internal/domain"
	"github.com/vbonduro/mealprep/internal/event"
)

// FreeRecipeLimit is the number of user recipes allowed on the restricted
// tier. Sample recipes do not count.
const FreeRecipeLimit = 5

func recipeID(r domain.Recipe) string { return r.ID }

func (s *Store) Recipes() []domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecipes(s.state.Recipes)
}

// Recipe returns the recipe with the given ID.
func (s *Store) Recipe(id string) (domain.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.state.Recipes, id, recipeID)
	if i < 0 {
		return domain.Recipe{}, false
	}
	return cloneRecipes(s.state.Recipes[i : i+1])[0], true
}

// AddRecipe stores a new recipe with a fresh ID and TimesMade reset to zero.
// Unless unrestricted, it refuses once FreeRecipeLimit non-sample recipes
// exist and reports false.
func (s *Store) AddRecipe(ctx context.Context, r domain.Recipe, unrestricted bool) (domain.Recipe, bool) {
	s.mu.Lock()
	if !unrestricted && s.userRecipeCountLocked() >= FreeRecipeLimit {
		s.mu.Unlock()
		s.logger.Info("recipe limit reached", "limit", FreeRecipeLimit)
		return domain.Recipe{}, false
	}
	r.ID = s.newID()
	r.TimesMade = 0
	s.assignIngredientIDs(&r)
	s.state.Recipes = append(s.state.Recipes, r)
	s.persistLocked(event.Recipes)
	s.mu.Unlock()

	s.publish(ctx, event.Recipes)
	return r, true
}

func (s *Store) userRecipeCountLocked() int {
	n := 0
	for _, r := range s.state.Recipes {
		if !r.IsSampleRecipe {
			n++
		}
	}
	return n
}

// UpdateRecipe replaces the recipe with the same ID. Ingredients without an
// ID get one.
func (s *Store) UpdateRecipe(ctx context.Context, r domain.Recipe) error {
	s.assignIngredientIDs(&r)
	return s.mutateRecipe(ctx, r.ID, func(cur *domain.Recipe) {
		*cur = r
	})
}

func (s *Store) assignIngredientIDs(r *domain.Recipe) {
	for i := range r.Ingredients {
		if r.Ingredients[i].ID == "" {
			r.Ingredients[i].ID = s.newID()
		}
	}
}

func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	if s.DeleteRecipes(ctx, []string{id}) == 0 {
		return fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteRecipes removes every listed recipe. Meal plans and freezer meals
// that reference them keep their dangling IDs.
func (s *Store) DeleteRecipes(ctx context.Context, ids []string) int {
	s.mu.Lock()
	var n int
	s.state.Recipes, n = removeIDs(s.state.Recipes, ids, recipeID)
	if n == 0 {
		s.mu.Unlock()
		return 0
	}
	s.persistLocked(event.Recipes)
	s.mu.Unlock()

	s.publish(ctx, event.Recipes)
	return n
}

// MarkRecipeAsMade bumps the cooked counter and records when.
func (s *Store) MarkRecipeAsMade(ctx context.Context, id string) error {
	now := s.now()
	return s.mutateRecipe(ctx, id, func(cur *domain.Recipe) {
		cur.TimesMade++
		cur.DateLastMade = &now
	})
}

func (s *Store) AddRecipeNote(ctx context.Context, id, text string) (domain.RecipeNote, error) {
	note := domain.RecipeNote{ID: s.newID(), Date: s.now(), Text: text}
	err := s.mutateRecipe(ctx, id, func(cur *domain.Recipe) {
		cur.Notes = append(cur.Notes, note)
	})
	if err != nil {
		return domain.RecipeNote{}, err
	}
	return note, nil
}

// SetRecipeImage records where the recipe's photo can be fetched.
func (s *Store) SetRecipeImage(ctx context.Context, id, imageURL string) error {
	return s.mutateRecipe(ctx, id, func(cur *domain.Recipe) {
		cur.ImageURL = imageURL
	})
}

func (s *Store) mutateRecipe(ctx context.Context, id string, fn func(*domain.Recipe)) error {
	s.mu.Lock()
	i := indexOf(s.state.Recipes, id, recipeID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("recipe %s: %w", id, ErrNotFound)
	}
	fn(&s.state.Recipes[i])
	s.persistLocked(event.Recipes)
	s.mu.Unlock()

	s.publish(ctx, event.Recipes)
	return nil
}
