package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vbonduro/mealprep/internal/metrics"
	"github.com/vbonduro/mealprep/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	service *service.KitchenService
	mux     *http.ServeMux
	logger  *slog.Logger
}

func NewServer(svc *service.KitchenService, logger *slog.Logger) *Server {
	s := &Server{
		service: svc,
		mux:     http.NewServeMux(),
		logger:  logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.Handler())
	s.mux.HandleFunc("GET /stats", s.handleStats)
	s.mux.HandleFunc("POST /reset", s.handleReset)

	s.mux.HandleFunc("GET /inventory", s.handleListInventory)
	s.mux.HandleFunc("POST /inventory", s.handleAddInventory)
	s.mux.HandleFunc("POST /inventory/delete", s.handleDeleteInventoryBatch)
	s.mux.HandleFunc("POST /inventory/scan", s.handleScanInventory)
	s.mux.HandleFunc("PUT /inventory/{id}", s.handleUpdateInventory)
	s.mux.HandleFunc("DELETE /inventory/{id}", s.handleDeleteInventory)
	s.mux.HandleFunc("POST /inventory/{id}/restock", s.handleRestock)

	s.mux.HandleFunc("GET /recipes", s.handleListRecipes)
	s.mux.HandleFunc("POST /recipes", s.handleAddRecipe)
	s.mux.HandleFunc("POST /recipes/delete", s.handleDeleteRecipeBatch)
	s.mux.HandleFunc("POST /recipes/import", s.handleImportRecipe)
	s.mux.HandleFunc("GET /recipes/{id}", s.handleGetRecipe)
	s.mux.HandleFunc("PUT /recipes/{id}", s.handleUpdateRecipe)
	s.mux.HandleFunc("DELETE /recipes/{id}", s.handleDeleteRecipe)
	s.mux.HandleFunc("POST /recipes/{id}/made", s.handleMarkMade)
	s.mux.HandleFunc("POST /recipes/{id}/notes", s.handleAddNote)
	s.mux.HandleFunc("GET /recipes/{id}/availability", s.handleAvailability)
	s.mux.HandleFunc("POST /recipes/{id}/photo", s.handleUploadRecipePhoto)
	s.mux.HandleFunc("GET /photos/{key}", s.handleGetPhoto)

	s.mux.HandleFunc("GET /meals", s.handleListMeals)
	s.mux.HandleFunc("POST /meals", s.handleAddMeal)
	s.mux.HandleFunc("PUT /meals/{id}", s.handleUpdateMeal)
	s.mux.HandleFunc("DELETE /meals/{id}", s.handleDeleteMeal)

	s.mux.HandleFunc("GET /freezer", s.handleListFreezer)
	s.mux.HandleFunc("POST /freezer", s.handleAddFreezer)
	s.mux.HandleFunc("PUT /freezer/{id}", s.handleUpdateFreezer)
	s.mux.HandleFunc("DELETE /freezer/{id}", s.handleDeleteFreezer)

	s.mux.HandleFunc("GET /leftovers", s.handleListLeftovers)
	s.mux.HandleFunc("POST /leftovers", s.handleAddLeftover)
	s.mux.HandleFunc("PUT /leftovers/{id}", s.handleUpdateLeftover)
	s.mux.HandleFunc("DELETE /leftovers/{id}", s.handleDeleteLeftover)

	s.mux.HandleFunc("GET /shopping", s.handleShopping)
	s.mux.HandleFunc("POST /shopping", s.handleAddShopping)
	s.mux.HandleFunc("POST /shopping/generate", s.handleGenerateShopping)
	s.mux.HandleFunc("POST /shopping/clear-checked", s.handleClearChecked)
	s.mux.HandleFunc("POST /shopping/uncheck-all", s.handleUncheckAll)
	s.mux.HandleFunc("POST /shopping/{id}/toggle", s.handleToggleShopping)
	s.mux.HandleFunc("DELETE /shopping/{id}", s.handleDeleteShopping)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; img-src 'self'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLogger logs each request and records it in the HTTP metrics under
// the matched route pattern, which the mux sets on r while routing.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)
		metrics.ObserveRequest(r.Method, r.Pattern, rec.status, elapsed)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
