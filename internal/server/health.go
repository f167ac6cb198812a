package server

import (
	"context"
	"net/http"
	"time"
)

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.submissions.Ping(ctx); err != nil {
		s.logger.WithError(err).Error("health check failed")
		s.writeJSON(w, http.StatusServiceUnavailable, envelope{Success: false, Message: msgDatabaseDown})
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{Success: true})
}
