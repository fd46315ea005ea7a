package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/procureflow/procureflow/internal/services"
)

func (s *Server) handleListProposals(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.proposals.List())
}

func (s *Server) handleGetProposal(w http.ResponseWriter, r *http.Request) {
	p, err := s.proposals.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// handleEmailWebhook accepts inbound vendor replies. Unmatched senders and
// subjects are acknowledged with 200 so the mail provider does not retry;
// only malformed payloads and downstream failures are error statuses.
func (s *Server) handleEmailWebhook(w http.ResponseWriter, r *http.Request) {
	var msg services.InboundEmail
	if err := decodeJSON(r, &msg); err != nil {
		s.writeError(w, err)
		return
	}
	if msg.From == "" || msg.Subject == "" {
		s.writeError(w, services.NewInvalidError("from and subject are required"))
		return
	}

	p, err := s.proposals.IngestEmail(r.Context(), msg)
	switch {
	case errors.Is(err, services.ErrUnknownSender):
		s.writeJSON(w, http.StatusOK, errorBody{Message: "Sender not recognized as a vendor"})
	case errors.Is(err, services.ErrNoMatchingRfp):
		s.writeJSON(w, http.StatusOK, errorBody{Message: "Could not match to an RFP"})
	case err != nil:
		s.writeError(w, err)
	default:
		s.writeJSON(w, http.StatusCreated, map[string]string{
			"message":    "Proposal created",
			"proposalId": p.ID,
		})
	}
}
