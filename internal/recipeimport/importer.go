// Package recipeimport builds draft recipes from recipe web pages using their
// schema.org markup.
package recipeimport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/vbonduro/mealprep/internal/domain"
	"github.com/vbonduro/mealprep/internal/metrics"
)

const (
	defaultServings = 4
	maxPageBytes    = 5 << 20
)

var (
	ErrInvalidURL = errors.New("url must be absolute http or https")
	ErrNoRecipe   = errors.New("no recipe found on page")
)

type Options struct {
	Timeout   time.Duration
	CacheSize int
	CacheTTL  time.Duration
}

type Importer struct {
	client *http.Client
	cache  *expirable.LRU[string, domain.Recipe]
	logger *slog.Logger
}

func New(opts Options, logger *slog.Logger) *Importer {
	return NewWithClient(&http.Client{Timeout: opts.Timeout}, opts, logger)
}

// NewWithClient lets tests point the importer at an httptest server.
func NewWithClient(client *http.Client, opts Options, logger *slog.Logger) *Importer {
	size := opts.CacheSize
	if size <= 0 {
		size = 1
	}
	return &Importer{
		client: client,
		cache:  expirable.NewLRU[string, domain.Recipe](size, nil, opts.CacheTTL),
		logger: logger,
	}
}

// ValidURL reports whether raw is an absolute http or https URL.
func ValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Import fetches rawURL and returns a draft recipe. The draft has no IDs and
// is not stored. Results are cached per URL.
func (im *Importer) Import(ctx context.Context, rawURL string) (domain.Recipe, error) {
	if !ValidURL(rawURL) {
		return domain.Recipe{}, ErrInvalidURL
	}

	if r, ok := im.cache.Get(rawURL); ok {
		metrics.RecipeImports.WithLabelValues(metrics.OutcomeCached).Inc()
		return cloneDraft(r), nil
	}

	r, err := im.fetch(ctx, rawURL)
	if err != nil {
		metrics.RecipeImports.WithLabelValues(metrics.OutcomeError).Inc()
		im.logger.Warn("recipe import failed", "url", rawURL, "error", err)
		return domain.Recipe{}, err
	}

	im.cache.Add(rawURL, r)
	metrics.RecipeImports.WithLabelValues(metrics.OutcomeOK).Inc()
	im.logger.Info("recipe imported", "url", rawURL, "name", r.Name, "ingredients", len(r.Ingredients))
	return cloneDraft(r), nil
}

func (im *Importer) fetch(ctx context.Context, rawURL string) (domain.Recipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := im.client.Do(req)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("failed to fetch url: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			im.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return domain.Recipe{}, fmt.Errorf("failed to fetch url: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("failed to parse html: %w", err)
	}

	r, ok := Parse(doc)
	if !ok {
		return domain.Recipe{}, ErrNoRecipe
	}
	r.SourceURL = rawURL
	return r, nil
}

// Parse extracts a recipe from an HTML document, preferring JSON-LD over
// microdata. ok is false when neither yields a named recipe.
func Parse(doc *goquery.Document) (domain.Recipe, bool) {
	var r domain.Recipe
	if node := findJSONLDRecipe(doc); node != nil {
		r = recipeFromJSONLD(node)
	} else if md, ok := recipeFromMicrodata(doc); ok {
		r = md
	} else {
		return domain.Recipe{}, false
	}
	if r.Name == "" {
		return domain.Recipe{}, false
	}
	if r.Servings < 1 {
		r.Servings = defaultServings
	}
	return r, true
}

func cloneDraft(r domain.Recipe) domain.Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	r.Tags = slices.Clone(r.Tags)
	if r.Macros != nil {
		m := *r.Macros
		r.Macros = &m
	}
	return r
}
