package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/procureflow/procureflow/internal/services"
)

func (s *Server) handleListVendors(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.vendors.List())
}

func (s *Server) handleGetVendor(w http.ResponseWriter, r *http.Request) {
	v, err := s.vendors.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleCreateVendor(w http.ResponseWriter, r *http.Request) {
	var draft services.VendorDraft
	if err := decodeJSON(r, &draft); err != nil {
		s.writeError(w, err)
		return
	}
	v, err := s.vendors.Create(draft)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, v)
}

func (s *Server) handleUpdateVendor(w http.ResponseWriter, r *http.Request) {
	var draft services.VendorDraft
	if err := decodeJSON(r, &draft); err != nil {
		s.writeError(w, err)
		return
	}
	v, err := s.vendors.Update(chi.URLParam(r, "id"), draft)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleDeleteVendor(w http.ResponseWriter, r *http.Request) {
	if err := s.vendors.Delete(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
