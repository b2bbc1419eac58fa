package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/neurotopo/trisect/pkg/errors"
	"github.com/neurotopo/trisect/pkg/graph"
	"github.com/neurotopo/trisect/pkg/pipeline"
	"github.com/neurotopo/trisect/pkg/store"
)

// maxRequestBody caps analysis request bodies. Graph documents are small;
// anything larger is almost certainly a mistake.
const maxRequestBody = 8 << 20

// analysisRequest is the POST /api/v1/analyses body: a graph document in
// the pkg/graph JSON format plus pipeline options.
type analysisRequest struct {
	Graph   json.RawMessage  `json:"graph"`
	Options pipeline.Options `json:"options"`
}

// listResponse is the GET /api/v1/analyses body.
type listResponse struct {
	Runs  []*store.Run `json:"runs"`
	Count int          `json:"count"`
}

func (s *Server) createAnalysis(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if len(req.Graph) == 0 {
		s.respondError(w, r, errors.New(errors.ErrCodeInvalidInput, "graph is required"))
		return
	}

	g, err := graph.ReadJSON(bytes.NewReader(req.Graph))
	if err != nil {
		s.respondError(w, r, errors.Wrap(errors.ErrCodeInvalidGraph, err, "read graph"))
		return
	}

	result, err := s.runner.Execute(r.Context(), g, req.Options)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.runs.Put(r.Context(), result.Run); err != nil {
		s.respondError(w, r, errors.Wrap(errors.ErrCodeUnavailable, err, "store run"))
		return
	}

	respondJSON(w, http.StatusCreated, result.Run)
}

func (s *Server) listAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			s.respondError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer, got %q", raw))
			return
		}
		limit = v
	}

	runs, err := s.runs.List(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, errors.Wrap(errors.ErrCodeUnavailable, err, "list runs"))
		return
	}
	if runs == nil {
		runs = []*store.Run{}
	}

	respondJSON(w, http.StatusOK, listResponse{Runs: runs, Count: len(runs)})
}

func (s *Server) getAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := s.runs.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, errors.Wrap(errors.ErrCodeUnavailable, err, "get run"))
		return
	}
	if run == nil {
		s.respondError(w, r, errors.New(errors.ErrCodeRunNotFound, "run %s not found", id))
		return
	}

	respondJSON(w, http.StatusOK, run)
}

func (s *Server) deleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.runs.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, errors.Wrap(errors.ErrCodeUnavailable, err, "delete run"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
