package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cxx2rs/cxx2rs/internal/transpiler"
)

// TranspileRequest is one C++ translation unit submitted for conversion.
type TranspileRequest struct {
	// Filename is used for diagnostics only; defaults to input.cpp.
	Filename string `json:"filename,omitempty"`
	Source   string `json:"source"`
}

// TranspileResponse carries the generated Rust source.
type TranspileResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Rust     string `json:"rust"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) transpile(w http.ResponseWriter, r *http.Request) {
	s.handleTranspile(w, r, transpiler.Options{})
}

func (s *Server) stubs(w http.ResponseWriter, r *http.Request) {
	s.handleTranspile(w, r, transpiler.Options{Stubs: true})
}

func (s *Server) handleTranspile(w http.ResponseWriter, r *http.Request, opts transpiler.Options) {
	var req TranspileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Source == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "source is required"})
		return
	}
	if req.Filename == "" {
		req.Filename = "input.cpp"
	}

	id := uuid.New().String()
	tr := transpiler.New(opts)
	rust, err := tr.TranspileSource(r.Context(), req.Filename, []byte(req.Source))
	if err != nil {
		log.Error().Err(err).Str("id", id).Str("filename", req.Filename).Msg("transpile failed")
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	log.Info().
		Str("id", id).
		Str("filename", req.Filename).
		Int("source_bytes", len(req.Source)).
		Bool("stubs", opts.Stubs).
		Msg("transpile complete")

	writeJSON(w, http.StatusOK, TranspileResponse{
		ID:       id,
		Filename: transpiler.OutputPath("", req.Filename),
		Rust:     rust,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
