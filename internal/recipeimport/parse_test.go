package recipeimport

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIngredient(t *testing.T) {
	tests := []struct {
		line     string
		quantity float64
		unit     string
		name     string
	}{
		{"2 cups flour", 2, "cups", "flour"},
		{"1.5 lb ground beef", 1.5, "lb", "ground beef"},
		{"1/2 tsp salt", 0.5, "tsp", "salt"},
		{"1 1/2 cups milk", 1.5, "cups", "milk"},
		{"2 eggs", 2, "item", "eggs"},
		{"eggs", 1, "item", "eggs"},
		{"salt to taste", 1, "salt", "to taste"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			ing := ParseIngredient(tt.line)
			assert.Equal(t, tt.quantity, ing.Quantity)
			assert.Equal(t, tt.unit, ing.Unit)
			assert.Equal(t, tt.name, ing.Name)
			assert.Equal(t, "pantry", ing.Category)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[string]string{
		"PT1H30M": "1h 30min",
		"PT2H":    "2h",
		"PT45M":   "45min",
		"PT0M":    "",
		"":        "",
		"20 mins": "20 mins",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatDuration(in), in)
	}
}

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func TestParse_JSONLDGraph(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">not json</script>
<script type="application/ld+json">
{"@context":"https://schema.org","@graph":[
  {"@type":"WebPage","name":"Blog"},
  {"@type":["Recipe","NewsArticle"],"name":"Weeknight Chili",
   "recipeYield":["6","6 bowls"],
   "prepTime":"PT15M","cookTime":"PT1H","totalTime":"PT1H15M",
   "image":{"@type":"ImageObject","url":"https://example.com/chili.jpg"},
   "recipeIngredient":["1 lb ground beef","2 cans beans",""],
   "recipeInstructions":[
     {"@type":"HowToSection","name":"Prep","itemListElement":[{"@type":"HowToStep","text":"Chop onions"}]},
     {"@type":"HowToStep","text":"Brown the beef"},
     "Simmer"
   ],
   "nutrition":{"calories":"410 calories","proteinContent":"30 g"}}
]}
</script></head><body></body></html>`

	r, ok := Parse(doc(t, html))
	require.True(t, ok)

	assert.Equal(t, "Weeknight Chili", r.Name)
	assert.Equal(t, 6, r.Servings)
	assert.Equal(t, "15min", r.PrepTime)
	assert.Equal(t, "1h", r.CookTime)
	assert.Equal(t, "1h 15min", r.TotalTime)
	assert.Equal(t, "https://example.com/chili.jpg", r.ImageURL)
	assert.Equal(t, "1. Chop onions\n\n2. Brown the beef\n\n3. Simmer", r.Instructions)

	require.Len(t, r.Ingredients, 2)
	assert.Equal(t, "ground beef", r.Ingredients[0].Name)
	assert.Equal(t, "cans", r.Ingredients[1].Unit)

	require.NotNil(t, r.Macros)
	assert.Equal(t, 410.0, r.Macros.Calories)
	assert.Equal(t, 30.0, r.Macros.Protein)
}

func TestParse_MicrodataFallback(t *testing.T) {
	html := `<html><body>
<span itemprop="name">Site name</span>
<div itemscope itemtype="https://schema.org/Recipe">
  <h1 itemprop="name">Pancakes</h1>
  <meta itemprop="recipeYield" content="8">
  <li itemprop="recipeIngredient">2 cups flour</li>
  <li itemprop="recipeIngredient">1 cup milk</li>
  <p itemprop="recipeInstructions">Mix and fry</p>
</div></body></html>`

	r, ok := Parse(doc(t, html))
	require.True(t, ok)
	assert.Equal(t, "Pancakes", r.Name)
	assert.Equal(t, 8, r.Servings)
	assert.Len(t, r.Ingredients, 2)
	assert.Equal(t, "1. Mix and fry", r.Instructions)
}

func TestParse_DefaultServings(t *testing.T) {
	html := `<script type="application/ld+json">{"@type":"Recipe","name":"Toast","recipeIngredient":["bread"]}</script>`
	r, ok := Parse(doc(t, html))
	require.True(t, ok)
	assert.Equal(t, defaultServings, r.Servings)
}

func TestParse_NoRecipe(t *testing.T) {
	_, ok := Parse(doc(t, `<html><body><p>Just a blog post</p></body></html>`))
	assert.False(t, ok)
}
