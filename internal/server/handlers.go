package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/mkarlsen/argmap/pkg/errors"
	"github.com/mkarlsen/argmap/pkg/graph"
	"github.com/mkarlsen/argmap/pkg/layout"
	"github.com/mkarlsen/argmap/pkg/observability"
	"github.com/mkarlsen/argmap/pkg/pipeline"
	"github.com/mkarlsen/argmap/pkg/store"
)

// layoutRequest is the POST /api/layout body.
type layoutRequest struct {
	Graph graph.Graph `json:"graph"`

	NodeSpacing     int `json:"node_spacing,omitempty"`
	LayerSeparation int `json:"layer_separation,omitempty"`
	Iterations      int `json:"iterations,omitempty"`

	// Formats requests rendered artifacts alongside the positions.
	// Binary formats are base64-encoded in the response.
	Formats []string `json:"formats,omitempty"`

	// Archive persists the run and returns its ID.
	Archive bool   `json:"archive,omitempty"`
	Name    string `json:"name,omitempty"`
}

// layoutResponse is the POST /api/layout response.
type layoutResponse struct {
	RunID     string             `json:"run_id"`
	ArchiveID string             `json:"archive_id,omitempty"`
	GraphHash string             `json:"graph_hash"`
	Nodes     []graph.Node       `json:"nodes"`
	Edges     []graph.Edge       `json:"edges"`
	Layers    map[string]int     `json:"layers"`
	Metrics   layout.Metrics     `json:"metrics"`
	Artifacts map[string][]byte  `json:"artifacts,omitempty"`
	Cache     pipeline.CacheInfo `json:"cache"`
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "decode request: %v", err))
		return
	}
	if len(req.Graph.Nodes) == 0 {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidGraph, "graph has no nodes"))
		return
	}

	opts := pipeline.Options{
		Graph:           &req.Graph,
		NodeSpacing:     req.NodeSpacing,
		LayerSeparation: req.LayerSeparation,
		Iterations:      req.Iterations,
		Formats:         req.Formats,
	}
	if len(opts.Formats) == 0 {
		// Positions alone satisfy most API clients; artifacts are opt-in.
		opts.Formats = []string{pipeline.FormatDOT}
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := layoutResponse{
		RunID:     result.RunID,
		GraphHash: result.GraphHash,
		Nodes:     layout.Apply(req.Graph.Nodes, result.Layout.Positions),
		Edges:     req.Graph.Edges,
		Layers:    result.Layout.Layers,
		Metrics:   result.Layout.Metrics,
		Cache:     result.CacheInfo,
	}
	if len(req.Formats) > 0 {
		resp.Artifacts = result.Artifacts
	}

	if req.Archive {
		if s.archive == nil {
			writeError(w, apperrors.New(apperrors.ErrCodeUnsupported, "archive is not configured"))
			return
		}
		entry := &store.Entry{
			Name:    req.Name,
			Graph:   req.Graph,
			Options: opts.LayoutOptions().WithDefaults(),
			Result:  result.Layout,
		}
		if err := s.archive.Save(r.Context(), entry); err != nil {
			writeError(w, err)
			return
		}
		resp.ArchiveID = entry.ID
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeError(w, apperrors.New(apperrors.ErrCodeUnsupported, "archive is not configured"))
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid limit: %q", v))
			return
		}
		limit = n
	}

	entries, err := s.archive.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"layouts": entries})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeError(w, apperrors.New(apperrors.ErrCodeUnsupported, "archive is not configured"))
		return
	}

	entry, err := s.archive.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeError(w, apperrors.New(apperrors.ErrCodeUnsupported, "archive is not configured"))
		return
	}

	if err := s.archive.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// observe reports request events to the registered server hooks and logs
// completed requests.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, ww.status, duration)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.status,
			"duration", duration)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps application error codes onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidGraph,
		apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound,
		apperrors.ErrCodeLayoutNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	}

	code := string(apperrors.GetCode(err))
	if code == "" {
		code = string(apperrors.ErrCodeInternal)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: apperrors.UserMessage(err)})
}
