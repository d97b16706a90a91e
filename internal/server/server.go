// Package server implements the tabviz HTTP API.
//
// The API exposes the conversion pipeline over chi:
//
//	POST /v1/convert      run a conversion, optionally persist the result
//	GET  /v1/graphs/{id}  fetch a previously persisted conversion
//	GET  /healthz         liveness probe
//	GET  /metrics         Prometheus metrics
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tabviz/tabviz/pkg/errors"
	"github.com/tabviz/tabviz/pkg/pipeline"
	"github.com/tabviz/tabviz/pkg/store"
	"github.com/tabviz/tabviz/pkg/table"
)

// Server handles conversion requests through a shared pipeline runner.
type Server struct {
	Runner *pipeline.Runner
	Store  store.Store
	Logger *log.Logger
}

// New creates a server. A nil store disables persistence endpoints'
// storage (requests with persist=true fall back to an in-memory store);
// a nil logger falls back to log.Default().
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Runner: runner, Store: st, Logger: logger}
}

// Handler builds the chi router for the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
		r.Get("/graphs/{id}", s.handleGetGraph)
	})
	return r
}

// convertRequest is the POST /v1/convert payload.
type convertRequest struct {
	// Columns and Rows carry the source table.
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`

	// Descriptor and rules drive the conversion.
	Descriptor string   `json:"descriptor"`
	NodeRules  []string `json:"node_rules,omitempty"`
	EdgeRules  []string `json:"edge_rules,omitempty"`
	Labels     bool     `json:"labels,omitempty"`

	// Name and Rankdir tune DOT serialization.
	Name    string `json:"name,omitempty"`
	Rankdir string `json:"rankdir,omitempty"`

	// Persist stores the result and returns its id.
	Persist bool `json:"persist,omitempty"`
}

// convertResponse is the POST /v1/convert reply.
type convertResponse struct {
	RunID    string              `json:"run_id"`
	GraphID  string              `json:"graph_id,omitempty"`
	Directed bool                `json:"directed"`
	Nodes    []map[string]string `json:"nodes"`
	Edges    []map[string]string `json:"edges"`
	DOT      string              `json:"dot"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	src, err := buildTable(&req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.Runner.Execute(r.Context(), src, pipeline.Options{
		Descriptor: req.Descriptor,
		NodeRules:  req.NodeRules,
		EdgeRules:  req.EdgeRules,
		Labels:     req.Labels,
		Name:       req.Name,
		Rankdir:    req.Rankdir,
		Formats:    []string{pipeline.FormatDOT},
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := convertResponse{
		RunID:    res.RunID,
		Directed: res.Graph.Directed,
		Nodes:    res.Graph.Nodes.Records(),
		Edges:    res.Graph.Edges.Records(),
		DOT:      res.DOT,
	}

	if req.Persist {
		doc := store.FromResult(res.Graph, res.DOT)
		if err := s.Store.Save(r.Context(), doc); err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "persist graph"))
			return
		}
		resp.GraphID = doc.ID
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := s.Store.Load(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

// buildTable assembles the request's table, validating the column set.
func buildTable(req *convertRequest) (*table.Table, error) {
	if len(req.Columns) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no columns given")
	}
	src, err := table.New(req.Columns...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build table")
	}
	for _, row := range req.Rows {
		src.Append(table.Row(row))
	}
	return src, nil
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps structured error codes onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDescriptor,
		errors.ErrCodeMissingColumn, errors.ErrCodeMalformedRule,
		errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode response", "err", err)
	}
}
