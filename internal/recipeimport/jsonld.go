package recipeimport

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vbonduro/mealprep/internal/domain"
)

// findJSONLDRecipe returns the first schema.org Recipe object embedded in a
// JSON-LD script, looking inside @graph containers and top-level arrays.
func findJSONLDRecipe(doc *goquery.Document) map[string]any {
	var found map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var v any
		if err := json.Unmarshal([]byte(s.Text()), &v); err != nil {
			return true
		}
		found = recipeNode(v)
		return found == nil
	})
	return found
}

func recipeNode(v any) map[string]any {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if r := recipeNode(item); r != nil {
				return r
			}
		}
	case map[string]any:
		if isRecipeType(t["@type"]) {
			return t
		}
		if graph, ok := t["@graph"]; ok {
			return recipeNode(graph)
		}
	}
	return nil
}

func isRecipeType(v any) bool {
	switch t := v.(type) {
	case string:
		return t == "Recipe"
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

func recipeFromJSONLD(node map[string]any) domain.Recipe {
	r := domain.Recipe{
		Name:         strings.TrimSpace(str(node["name"])),
		Servings:     servings(node["recipeYield"]),
		PrepTime:     FormatDuration(str(node["prepTime"])),
		CookTime:     FormatDuration(str(node["cookTime"])),
		TotalTime:    FormatDuration(str(node["totalTime"])),
		Instructions: instructions(node["recipeInstructions"]),
		ImageURL:     image(node["image"]),
	}
	for _, line := range list(node["recipeIngredient"]) {
		if s := str(line); strings.TrimSpace(s) != "" {
			r.Ingredients = append(r.Ingredients, ParseIngredient(s))
		}
	}
	if n, ok := node["nutrition"].(map[string]any); ok {
		r.Macros = macros(n)
	}
	return r
}

func str(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprint(t)
	}
	return ""
}

func list(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case nil:
		return nil
	}
	return []any{v}
}

// servings reads recipeYield, which sites publish as a number, a string like
// "4 servings" or a list of either.
func servings(v any) int {
	for _, item := range list(v) {
		if n, ok := leadingFloat(str(item)); ok && n >= 1 {
			return int(n)
		}
	}
	return 0
}

func image(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		return str(t["url"])
	case []any:
		for _, item := range t {
			if s := image(item); s != "" {
				return s
			}
		}
	}
	return ""
}

// instructions flattens recipeInstructions into numbered steps. HowToSection
// entries contribute their nested steps.
func instructions(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}

	var steps []string
	var walk func(items []any)
	walk = func(items []any) {
		for _, item := range items {
			switch t := item.(type) {
			case string:
				if s := strings.TrimSpace(t); s != "" {
					steps = append(steps, s)
				}
			case map[string]any:
				if nested, ok := t["itemListElement"]; ok {
					walk(list(nested))
					continue
				}
				text := str(t["text"])
				if text == "" {
					text = str(t["name"])
				}
				if s := strings.TrimSpace(text); s != "" {
					steps = append(steps, s)
				}
			}
		}
	}
	walk(list(v))

	var b strings.Builder
	for i, s := range steps {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%d. %s", i+1, s)
	}
	return b.String()
}

func macros(n map[string]any) *domain.MacroNutrients {
	num := func(key string) float64 {
		v, _ := leadingFloat(str(n[key]))
		return v
	}
	m := domain.MacroNutrients{
		Calories: num("calories"),
		Protein:  num("proteinContent"),
		Carbs:    num("carbohydrateContent"),
		Fat:      num("fatContent"),
		Fiber:    num("fiberContent"),
		Sugar:    num("sugarContent"),
		Sodium:   num("sodiumContent"),
	}
	if m == (domain.MacroNutrients{}) {
		return nil
	}
	return &m
}
