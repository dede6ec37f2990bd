package web

import (
	"net/http"

	"github.com/vbonduro/mealprep/internal/domain"
)

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.service.ListRecipes(r.Context())), s.logger)
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := s.service.GetRecipe(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe, s.logger)
}

func (s *Server) handleAddRecipe(w http.ResponseWriter, r *http.Request) {
	var recipe domain.Recipe
	if !s.decodeJSON(w, r, &recipe) {
		return
	}
	created, err := s.service.AddRecipe(r.Context(), recipe)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created, s.logger)
}

func (s *Server) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	var recipe domain.Recipe
	if !s.decodeJSON(w, r, &recipe) {
		return
	}
	updated, err := s.service.UpdateRecipe(r.Context(), r.PathValue("id"), recipe)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated, s.logger)
}

func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteRecipe(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteRecipeBatch(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	n := s.service.DeleteRecipes(r.Context(), req.IDs)
	writeJSON(w, http.StatusOK, countResponse{Count: n}, s.logger)
}

func (s *Server) handleMarkMade(w http.ResponseWriter, r *http.Request) {
	recipe, err := s.service.MarkRecipeMade(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe, s.logger)
}

type noteRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	note, err := s.service.AddRecipeNote(r.Context(), r.PathValue("id"), req.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, note, s.logger)
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.RecipeAvailability(r.Context(), r.PathValue("id")), s.logger)
}

type importRequest struct {
	URL  string `json:"url"`
	Save bool   `json:"save"`
}

// handleImportRecipe returns the draft parsed from a recipe page. With
// "save": true the draft is also stored and 201 is returned.
func (s *Server) handleImportRecipe(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	recipe, err := s.service.ImportRecipe(r.Context(), req.URL, req.Save)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if req.Save {
		status = http.StatusCreated
	}
	writeJSON(w, status, recipe, s.logger)
}
