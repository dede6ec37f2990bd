package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vbonduro/mealprep/internal/config"
	"github.com/vbonduro/mealprep/internal/db"
	"github.com/vbonduro/mealprep/internal/entitlement"
	"github.com/vbonduro/mealprep/internal/event"
	"github.com/vbonduro/mealprep/internal/kitchen"
	"github.com/vbonduro/mealprep/internal/logging"
	"github.com/vbonduro/mealprep/internal/photostore/local"
	"github.com/vbonduro/mealprep/internal/recipeimport"
	"github.com/vbonduro/mealprep/internal/seed"
	"github.com/vbonduro/mealprep/internal/service"
	"github.com/vbonduro/mealprep/internal/store"
	"github.com/vbonduro/mealprep/internal/store/filestore"
	"github.com/vbonduro/mealprep/internal/vision"
	claudevision "github.com/vbonduro/mealprep/internal/vision/claude"
	ollamavision "github.com/vbonduro/mealprep/internal/vision/ollama"
)

// app holds the wired components shared by every command.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *kitchen.Store
	service *service.KitchenService

	saver    *kitchen.AsyncSaver
	database *sql.DB
	closeLog func()
}

type persistence interface {
	kitchen.Persister
	seed.Flags
}

// sqlitePersistence keeps collections and the defaults flag in one database.
type sqlitePersistence struct {
	*store.CollectionStore
	*store.SettingsStore
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.Load()

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Format: cfg.LogFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	a := &app{cfg: cfg, logger: logger, closeLog: closeLog}

	persist, err := a.openPersistence()
	if err != nil {
		a.close()
		return nil, err
	}

	data, err := persist.Load(ctx)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to load collections: %w", err)
	}

	a.saver = kitchen.NewAsyncSaver(persist, logger)
	bus := event.NewMemoryBus()
	a.store = kitchen.New(bus, a.saver, logger)
	if err := a.store.Hydrate(data); err != nil {
		logger.Warn("some collections could not be loaded", "error", err)
	}
	kitchen.WatchForRegeneration(bus, a.store, logger)
	kitchen.ObserveRegenerations(bus, logger)

	if _, err := seed.ApplyOnce(ctx, persist, a.store, a.store.Now(), logger); err != nil {
		logger.Error("failed to load default content", "error", err)
	}

	photoStg, err := local.NewLocalPhotoStore(cfg.PhotoPath)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to initialize photo store: %w", err)
	}

	importer := recipeimport.New(recipeimport.Options{
		Timeout:   cfg.ImportTimeout,
		CacheSize: cfg.ImportCacheSize,
		CacheTTL:  cfg.ImportCacheTTL,
	}, logger)

	a.service = service.NewKitchenService(
		a.store,
		entitlement.Static(cfg.Unrestricted),
		importer,
		newVisionAnalyzer(cfg, logger),
		photoStg,
		persist,
		logger,
	)
	return a, nil
}

func (a *app) openPersistence() (persistence, error) {
	switch a.cfg.PersistBackend {
	case "sqlite":
		database, err := db.Open(a.cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.database = database
		a.logger.Info("using sqlite persistence", "path", a.cfg.DBPath)
		return sqlitePersistence{
			CollectionStore: store.NewCollectionStore(database),
			SettingsStore:   store.NewSettingsStore(database),
		}, nil
	case "file":
		fs, err := filestore.New(a.cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open data directory: %w", err)
		}
		a.logger.Info("using file persistence", "dir", a.cfg.DataDir)
		return fs, nil
	default:
		return nil, fmt.Errorf("unknown PERSIST_BACKEND %q", a.cfg.PersistBackend)
	}
}

// close flushes pending saves before releasing the database and log file.
func (a *app) close() {
	if a.saver != nil {
		a.saver.Close()
	}
	if a.database != nil {
		if err := a.database.Close(); err != nil {
			a.logger.Error("failed to close database", "error", err)
		}
	}
	if a.closeLog != nil {
		a.closeLog()
	}
}

// newVisionAnalyzer returns nil when scanning is disabled or misconfigured.
func newVisionAnalyzer(cfg *config.Config, logger *slog.Logger) vision.VisionAnalyzer {
	switch cfg.VisionBackend {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			logger.Error("CLAUDE_API_KEY is required when VISION_BACKEND=claude")
			return nil
		}
		logger.Info("using Claude vision backend", "model", cfg.ClaudeModel)
		return claudevision.NewClaudeAnalyzer(cfg.ClaudeAPIKey, cfg.ClaudeModel)
	case "ollama":
		logger.Info("using Ollama vision backend", "model", cfg.OllamaModel)
		return ollamavision.NewOllamaAnalyzer(cfg.OllamaHost, cfg.OllamaModel)
	default:
		logger.Info("inventory scanning disabled")
		return nil
	}
}
