// Package api exposes the procurement workflow over HTTP. Handlers stay
// thin: decode, call a service, map the error code to a status.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/procureflow/procureflow/internal/middleware"
	"github.com/procureflow/procureflow/internal/services"
)

// Server bundles the services behind the HTTP surface.
type Server struct {
	rfps        *services.RfpService
	vendors     *services.VendorService
	proposals   *services.ProposalService
	comparisons *services.ComparisonService
	intake      *services.IntakeService
	log         *zap.Logger
}

func NewServer(
	rfps *services.RfpService,
	vendors *services.VendorService,
	proposals *services.ProposalService,
	comparisons *services.ComparisonService,
	intake *services.IntakeService,
	log *zap.Logger,
) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		rfps:        rfps,
		vendors:     vendors,
		proposals:   proposals,
		comparisons: comparisons,
		intake:      intake,
		log:         log,
	}
}

// Routes builds the full route tree, middleware included.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(s.log))
	r.Use(middleware.CORS)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard/stats", s.handleDashboardStats)

		r.Route("/rfps", func(r chi.Router) {
			r.Get("/", s.handleListRfps)
			r.Post("/", s.handleCreateRfp)
			r.Get("/recent", s.handleRecentRfps)
			r.Post("/from-nl", s.handleRfpFromNL)
			r.Get("/{id}", s.handleGetRfp)
			r.Patch("/{id}", s.handleUpdateRfp)
			r.Delete("/{id}", s.handleDeleteRfp)
			r.Post("/{id}/send", s.handleSendRfp)
			r.Get("/{id}/proposals", s.handleRfpProposals)
			r.Get("/{id}/comparison", s.handleComparison)
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", s.handleListVendors)
			r.Post("/", s.handleCreateVendor)
			r.Get("/{id}", s.handleGetVendor)
			r.Patch("/{id}", s.handleUpdateVendor)
			r.Delete("/{id}", s.handleDeleteVendor)
		})

		r.Route("/proposals", func(r chi.Router) {
			r.Get("/", s.handleListProposals)
			r.Get("/{id}", s.handleGetProposal)
		})

		r.Post("/email/webhook", s.handleEmailWebhook)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.rfps.Stats())
}
