package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/procureflow/procureflow/internal/services"
)

func (s *Server) handleListRfps(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.rfps.List())
}

func (s *Server) handleRecentRfps(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.rfps.Recent(6))
}

func (s *Server) handleGetRfp(w http.ResponseWriter, r *http.Request) {
	rfp, err := s.rfps.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rfp)
}

func (s *Server) handleCreateRfp(w http.ResponseWriter, r *http.Request) {
	var draft services.RfpDraft
	if err := decodeJSON(r, &draft); err != nil {
		s.writeError(w, err)
		return
	}
	rfp, err := s.rfps.Create(draft)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, rfp)
}

// handleRfpFromNL extracts an RFP draft from prose and stores it.
func (s *Server) handleRfpFromNL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	draft, err := s.intake.ExtractRfp(r.Context(), req.Text)
	if err != nil {
		s.writeError(w, err)
		return
	}
	rfp, err := s.rfps.Create(*draft)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"rfp": rfp})
}

func (s *Server) handleUpdateRfp(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if err := decodeJSON(r, &patch); err != nil {
		s.writeError(w, err)
		return
	}
	rfp, err := s.rfps.Update(chi.URLParam(r, "id"), patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rfp)
}

func (s *Server) handleDeleteRfp(w http.ResponseWriter, r *http.Request) {
	if err := s.rfps.Delete(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSendRfp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VendorIDs []string `json:"vendorIds"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	sent, total, err := s.rfps.Send(r.Context(), chi.URLParam(r, "id"), req.VendorIDs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"message":   fmt.Sprintf("RFP sent to %d of %d vendors", sent, total),
		"sentCount": sent,
	})
}

func (s *Server) handleRfpProposals(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.proposals.ListByRfp(chi.URLParam(r, "id")))
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	result, err := s.comparisons.Compare(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}
