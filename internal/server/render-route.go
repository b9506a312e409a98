package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/raphaelreyna/filerender/pkg/escape"
	"github.com/raphaelreyna/filerender/pkg/escaper"
	"github.com/raphaelreyna/filerender/pkg/log"
	"github.com/raphaelreyna/filerender/pkg/renderer"
)

func (s *Server) handleRender() http.HandlerFunc {
	type request struct {
		// Data must be a json object
		Data     renderer.Data  `json:"data"`
		Encoding string         `json:"encoding"`
		Escape   escape.KeySets `json:"escape"`
	}

	type errorResponse struct {
		Error       string   `json:"error"`
		Name        string   `json:"name,omitempty"`
		SearchPaths []string `json:"searchPaths,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var (
			ctx  = r.Context()
			name = mux.Vars(r)["name"]
			req  request
		)

		if r.Method == http.MethodPost {
			err := json.NewDecoder(r.Body).Decode(&req)
			if err != nil && !errors.Is(err, io.EOF) {
				s.respond(ctx, w, &errorResponse{Error: "invalid request body: " + err.Error()}, http.StatusBadRequest)
				return
			}
		} else {
			// query parameters become string data
			query := r.URL.Query()
			req.Data = make(renderer.Data, len(query))
			for k, v := range query {
				req.Data[k] = v[len(v)-1]
			}
		}

		var buf bytes.Buffer

		s.mu.Lock()
		err := s.renderer.Render(ctx, &buf, name, req.Data, &renderer.Options{
			Encoding:   req.Encoding,
			EscapeKeys: req.Escape,
		})
		s.mu.Unlock()

		if err != nil {
			var (
				fnf    *renderer.FileNotFoundError
				encErr *escaper.EncodingError
			)
			switch {
			case errors.As(err, &fnf):
				s.respond(ctx, w, &errorResponse{
					Error:       err.Error(),
					Name:        fnf.Name,
					SearchPaths: fnf.SearchPaths,
				}, http.StatusNotFound)
			case errors.As(err, &encErr):
				s.respond(ctx, w, &errorResponse{Error: err.Error()}, http.StatusBadRequest)
			default:
				log.Error(ctx, "error rendering template", err, "name", name)
				s.respond(ctx, w, &errorResponse{Error: err.Error()}, http.StatusInternalServerError)
			}
			return
		}

		s.respond(ctx, w, buf.Bytes(), http.StatusOK)
	}
}
