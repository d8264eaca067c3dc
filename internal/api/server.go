// Package api exposes the sorting engine over HTTP.
//
// Endpoints:
//
//	GET  /healthz          liveness probe
//	GET  /v1/presets       built-in and stored presets
//	POST /v1/presets       save a user preset (requires a preset store)
//	POST /v1/sort          multipart image upload, returns the sorted PNG
//	GET  /v1/runs          run history, newest first
//	GET  /v1/runs/{id}     one run record
//
// Sorting is synchronous: the response body is the sorted image and the
// X-Run-Id header carries the run record created for it. Results are cached
// by source digest, parameters and seed, so identical uploads are served
// without recomputation.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/AutumnsGrove/Pixelsorting/pkg/cache"
	"github.com/AutumnsGrove/Pixelsorting/pkg/errors"
	"github.com/AutumnsGrove/Pixelsorting/pkg/preset"
	"github.com/AutumnsGrove/Pixelsorting/pkg/session"
)

// Server handles HTTP requests against the engine.
type Server struct {
	log     *log.Logger
	runs    session.Store
	presets preset.Store
	results cache.Cache
	router  chi.Router

	// maxUploadBytes bounds multipart image uploads.
	maxUploadBytes int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithPresetStore enables user preset persistence.
func WithPresetStore(store preset.Store) Option {
	return func(s *Server) { s.presets = store }
}

// WithResultCache enables result caching.
func WithResultCache(c cache.Cache) Option {
	return func(s *Server) { s.results = c }
}

// WithMaxUploadBytes bounds the accepted image size.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) { s.maxUploadBytes = n }
}

// NewServer builds the HTTP server around a run store.
func NewServer(runs session.Store, opts ...Option) *Server {
	s := &Server{
		runs:           runs,
		maxUploadBytes: 32 << 20,
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = log.Default()
	}
	if s.results == nil {
		s.results = cache.NewNullCache()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/presets", s.handleListPresets)
		r.Post("/presets", s.handleSavePreset)
		r.Post("/sort", s.handleSort)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeError maps structured error codes to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeUnknownFunction, errors.ErrCodeInvalidParameter,
		errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPreset,
		errors.ErrCodeInvalidPath, errors.ErrCodeDimensionMismatch:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound,
		errors.ErrCodePresetNotFound, errors.ErrCodeRunNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeEffectPrecondition:
		status = http.StatusUnprocessableEntity
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		status = http.StatusBadGateway
	case errors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	}

	if status >= 500 {
		s.log.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: string(code)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
