package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/procureflow/procureflow/internal/services"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

// writeError maps service error codes onto HTTP statuses. Anything that is
// not a ServiceError is a 500 with a generic body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	se, ok := services.AsServiceError(err)
	if !ok {
		s.log.Error("internal error", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorBody{Message: "internal server error"})
		return
	}
	status := http.StatusInternalServerError
	switch se.Code {
	case services.ErrorInvalid, services.ErrorInsufficientData:
		status = http.StatusBadRequest
	case services.ErrorNotFound:
		status = http.StatusNotFound
	case services.ErrorBadGateway:
		status = http.StatusBadGateway
	}
	s.writeJSON(w, status, errorBody{Message: se.Message})
}

type errorBody struct {
	Message string `json:"message"`
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return services.NewInvalidError("invalid JSON body")
	}
	return nil
}
