package web

import (
	"net/http"

	"github.com/vbonduro/mealprep/internal/domain"
	"github.com/vbonduro/mealprep/internal/service"
)

func (s *Server) handleShopping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.ShoppingOverview(r.Context()), s.logger)
}

func (s *Server) handleAddShopping(w http.ResponseWriter, r *http.Request) {
	var it domain.ShoppingItem
	if !s.decodeJSON(w, r, &it) {
		return
	}
	created, err := s.service.AddShoppingItem(r.Context(), it)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created, s.logger)
}

type toggleResponse struct {
	Checked bool `json:"checked"`
}

func (s *Server) handleToggleShopping(w http.ResponseWriter, r *http.Request) {
	checked, err := s.service.ToggleShoppingItem(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{Checked: checked}, s.logger)
}

func (s *Server) handleDeleteShopping(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteShoppingItem(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearChecked(w http.ResponseWriter, r *http.Request) {
	n := s.service.ClearCheckedShoppingItems(r.Context())
	writeJSON(w, http.StatusOK, countResponse{Count: n}, s.logger)
}

func (s *Server) handleUncheckAll(w http.ResponseWriter, r *http.Request) {
	n := s.service.UncheckAllShoppingItems(r.Context())
	writeJSON(w, http.StatusOK, countResponse{Count: n}, s.logger)
}

type generateResponse struct {
	Items       []domain.ShoppingItem     `json:"items"`
	Config      domain.ShoppingListConfig `json:"config"`
	FromFreezer []domain.MealPlan         `json:"fromFreezer"`
}

// handleGenerateShopping rebuilds the generated part of the shopping list.
// An empty body generates from every planned meal.
func (s *Server) handleGenerateShopping(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateRequest
	if r.ContentLength != 0 && !s.decodeJSON(w, r, &req) {
		return
	}
	res, err := s.service.GenerateShoppingList(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{
		Items:       nonNil(res.Items),
		Config:      res.Config,
		FromFreezer: nonNil(res.FromFreezer),
	}, s.logger)
}
