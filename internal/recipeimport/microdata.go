package recipeimport

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vbonduro/mealprep/internal/domain"
)

// recipeFromMicrodata reads itemprop attributes, scoped to a schema.org
// Recipe itemscope when the page declares one.
func recipeFromMicrodata(doc *goquery.Document) (domain.Recipe, bool) {
	scope := doc.Find(`[itemtype*="schema.org/Recipe"]`).First()
	if scope.Length() == 0 {
		scope = doc.Selection
	}

	name := strings.TrimSpace(scope.Find(`[itemprop="name"]`).First().Text())
	if name == "" {
		return domain.Recipe{}, false
	}

	r := domain.Recipe{Name: name}
	scope.Find(`[itemprop="recipeIngredient"], [itemprop="ingredients"]`).Each(func(_ int, s *goquery.Selection) {
		if line := strings.TrimSpace(s.Text()); line != "" {
			r.Ingredients = append(r.Ingredients, ParseIngredient(line))
		}
	})

	var steps []any
	scope.Find(`[itemprop="recipeInstructions"]`).Each(func(_ int, s *goquery.Selection) {
		steps = append(steps, s.Text())
	})
	r.Instructions = instructions(steps)

	if y, ok := scope.Find(`[itemprop="recipeYield"]`).First().Attr("content"); ok {
		r.Servings = servings(y)
	} else {
		r.Servings = servings(scope.Find(`[itemprop="recipeYield"]`).First().Text())
	}
	return r, true
}
