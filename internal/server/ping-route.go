package server

import (
	"net/http"
)

func (s *Server) handlePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(r.Context(), w, "PONG", http.StatusOK)
	}
}
