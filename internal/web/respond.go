package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/vbonduro/mealprep/internal/photostore"
	"github.com/vbonduro/mealprep/internal/recipeimport"
	"github.com/vbonduro/mealprep/internal/service"
)

const maxJSONBody = 1 << 20

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps service errors onto HTTP statuses. Unexpected errors are
// logged and reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request", Fields: ve.Fields}, s.logger)
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, photostore.ErrNotFound),
		errors.Is(err, photostore.ErrInvalidKey):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"}, s.logger)
	case errors.Is(err, service.ErrQuotaExceeded):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()}, s.logger)
	case errors.Is(err, service.ErrScanUnavailable), errors.Is(err, service.ErrImportUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()}, s.logger)
	case errors.Is(err, recipeimport.ErrNoRecipe):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()}, s.logger)
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"}, s.logger)
	}
}

// decodeJSON reads a JSON body into dst and writes a 400 response on failure.
// It reports whether the handler should continue.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		msg := "invalid JSON body"
		if errors.Is(err, io.EOF) {
			msg = "request body required"
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg}, s.logger)
		return false
	}
	return true
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

type countResponse struct {
	Count int `json:"count"`
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}

// nonNil keeps empty collections encoding as [] rather than null.
func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
