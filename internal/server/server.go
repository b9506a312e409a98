package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/raphaelreyna/filerender/pkg/log"
	"github.com/raphaelreyna/filerender/pkg/renderer"
)

type Config struct {
	Renderer *renderer.Renderer
	// AccessLog receives one line per request in Apache combined log
	// format. Defaults to os.Stdout.
	AccessLog io.Writer
	// AllowedOrigins for CORS requests. Defaults to any origin.
	AllowedOrigins []string
}

func (c *Config) validate() error {
	if c.Renderer == nil {
		return errors.New("renderer is required")
	}

	if c.AccessLog == nil {
		c.AccessLog = os.Stdout
	}

	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}

	return nil
}

// Server previews templates over HTTP. Requests share a single Renderer
// and are served one render at a time.
type Server struct {
	router  *mux.Router
	handler http.Handler

	mu       sync.Mutex
	renderer *renderer.Renderer
}

func NewServer(c *Config) (*Server, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	s := &Server{renderer: c.Renderer}
	s.routes()

	var h http.Handler = s.router
	h = cors.New(cors.Options{
		AllowedOrigins: c.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"X-Requested-With", "Content-Type", "Authorization"},
	}).Handler(h)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	h = handlers.CombinedLoggingHandler(c.AccessLog, h)
	s.handler = h

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) respond(ctx context.Context, w http.ResponseWriter, payload any, code int) {
	switch p := payload.(type) {
	case nil:
		w.WriteHeader(code)
	case string:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(code)
		w.Write([]byte(p))
	case []byte:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(code)
		w.Write(p)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		if err := json.NewEncoder(w).Encode(p); err != nil {
			log.Error(ctx, "error encoding response", err)
		}
	}
}
