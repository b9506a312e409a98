package server

import (
	"github.com/gorilla/mux"
)

func (s *Server) routes() {
	// Create and set up http router
	s.router = mux.NewRouter()
	s.router.HandleFunc("/ping", s.handlePing()).Methods("GET", "HEAD")
	s.router.HandleFunc("/render/{name}", s.handleRender()).Methods("GET", "POST")
}
