package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/vbonduro/mealprep/internal/domain"
	"github.com/vbonduro/mealprep/internal/entitlement"
	"github.com/vbonduro/mealprep/internal/kitchen"
	"github.com/vbonduro/mealprep/internal/metrics"
	"github.com/vbonduro/mealprep/internal/photostore"
	"github.com/vbonduro/mealprep/internal/planner"
	"github.com/vbonduro/mealprep/internal/seed"
	"github.com/vbonduro/mealprep/internal/vision"
)

var (
	// ErrQuotaExceeded is returned when the restricted tier refuses a mutation.
	ErrQuotaExceeded = errors.New("free tier limit reached")
	// ErrScanUnavailable is returned when no vision backend is configured.
	ErrScanUnavailable = errors.New("inventory scanning is not configured")
	// ErrNotFound aliases the store's sentinel so callers need one import.
	ErrNotFound = kitchen.ErrNotFound
)

// recipeImporter is the subset of recipeimport.Importer that KitchenService
// requires.
type recipeImporter interface {
	Import(ctx context.Context, rawURL string) (domain.Recipe, error)
}

// KitchenService validates caller input, applies entitlements and delegates
// to the kitchen store and its collaborators.
type KitchenService struct {
	store     *kitchen.Store
	entitled  entitlement.Checker
	importer  recipeImporter
	visionAPI vision.VisionAnalyzer
	photoStg  photostore.PhotoStore
	flags     seed.Flags
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewKitchenService wires the service. visionAPI and importer may be nil, in
// which case scanning and importing report that they are unavailable.
func NewKitchenService(
	store *kitchen.Store,
	entitled entitlement.Checker,
	importer recipeImporter,
	visionAPI vision.VisionAnalyzer,
	photoStg photostore.PhotoStore,
	flags seed.Flags,
	logger *slog.Logger,
) *KitchenService {
	return &KitchenService{
		store:     store,
		entitled:  entitled,
		importer:  importer,
		visionAPI: visionAPI,
		photoStg:  photoStg,
		flags:     flags,
		validate:  newValidator(),
		logger:    logger,
	}
}

func (s *KitchenService) unrestricted(ctx context.Context) bool {
	return entitlement.Resolve(ctx, s.entitled)
}

func (s *KitchenService) refused(kind string) error {
	metrics.QuotaRefusals.WithLabelValues(kind).Inc()
	return ErrQuotaExceeded
}

// Stats summarizes the kitchen as of today.
func (s *KitchenService) Stats(_ context.Context) planner.Stats {
	return planner.Summarize(s.store.Snapshot(), s.store.Today())
}

// ResetToDefaults discards all data and reloads the starter content.
func (s *KitchenService) ResetToDefaults(ctx context.Context) error {
	return seed.Reset(ctx, s.flags, s.store, s.store.Now(), s.logger)
}
