package web

import (
	"net/http"

	"github.com/vbonduro/mealprep/internal/domain"
)

func (s *Server) handleListMeals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.service.ListMeals(r.Context())), s.logger)
}

func (s *Server) handleAddMeal(w http.ResponseWriter, r *http.Request) {
	var m domain.MealPlan
	if !s.decodeJSON(w, r, &m) {
		return
	}
	created, err := s.service.AddMealPlan(r.Context(), m)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created, s.logger)
}

func (s *Server) handleUpdateMeal(w http.ResponseWriter, r *http.Request) {
	var m domain.MealPlan
	if !s.decodeJSON(w, r, &m) {
		return
	}
	updated, err := s.service.UpdateMealPlan(r.Context(), r.PathValue("id"), m)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated, s.logger)
}

func (s *Server) handleDeleteMeal(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteMealPlan(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFreezer(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.service.FreezerGroups(r.Context())), s.logger)
}

func (s *Server) handleAddFreezer(w http.ResponseWriter, r *http.Request) {
	var f domain.FreezerMeal
	if !s.decodeJSON(w, r, &f) {
		return
	}
	created, err := s.service.AddFreezerMeal(r.Context(), f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created, s.logger)
}

func (s *Server) handleUpdateFreezer(w http.ResponseWriter, r *http.Request) {
	var f domain.FreezerMeal
	if !s.decodeJSON(w, r, &f) {
		return
	}
	updated, err := s.service.UpdateFreezerMeal(r.Context(), r.PathValue("id"), f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated, s.logger)
}

func (s *Server) handleDeleteFreezer(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteFreezerMeal(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListLeftovers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Leftovers(r.Context()), s.logger)
}

func (s *Server) handleAddLeftover(w http.ResponseWriter, r *http.Request) {
	var l domain.Leftover
	if !s.decodeJSON(w, r, &l) {
		return
	}
	created, err := s.service.AddLeftover(r.Context(), l)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created, s.logger)
}

func (s *Server) handleUpdateLeftover(w http.ResponseWriter, r *http.Request) {
	var l domain.Leftover
	if !s.decodeJSON(w, r, &l) {
		return
	}
	updated, err := s.service.UpdateLeftover(r.Context(), r.PathValue("id"), l)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated, s.logger)
}

func (s *Server) handleDeleteLeftover(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteLeftover(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
