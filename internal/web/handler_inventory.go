package web

import (
	"net/http"

	"github.com/vbonduro/mealprep/internal/domain"
)

func (s *Server) handleListInventory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.ListInventory(r.Context()), s.logger)
}

func (s *Server) handleAddInventory(w http.ResponseWriter, r *http.Request) {
	var item domain.InventoryItem
	if !s.decodeJSON(w, r, &item) {
		return
	}
	created, err := s.service.AddInventoryItem(r.Context(), item)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created, s.logger)
}

func (s *Server) handleUpdateInventory(w http.ResponseWriter, r *http.Request) {
	var item domain.InventoryItem
	if !s.decodeJSON(w, r, &item) {
		return
	}
	updated, err := s.service.UpdateInventoryItem(r.Context(), r.PathValue("id"), item)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated, s.logger)
}

func (s *Server) handleDeleteInventory(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteInventoryItem(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteInventoryBatch(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	n := s.service.DeleteInventoryItems(r.Context(), req.IDs)
	writeJSON(w, http.StatusOK, countResponse{Count: n}, s.logger)
}

func (s *Server) handleRestock(w http.ResponseWriter, r *http.Request) {
	item, err := s.service.RestockToShopping(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item, s.logger)
}
