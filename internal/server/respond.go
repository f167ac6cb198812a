package server

import (
	"encoding/json"
	"net/http"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("failed to write json response")
	}
}

func (s *Service) writeError(w http.ResponseWriter, rerr *requestError) {
	s.writeJSON(w, rerr.kind.Status(), envelope{Success: false, Message: rerr.message})
}

func (s *Service) writePlainText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)

	if _, err := w.Write([]byte(body)); err != nil {
		s.logger.WithError(err).Error("failed to write text response")
	}
}
