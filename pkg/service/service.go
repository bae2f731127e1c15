// Package service exposes the layout pipeline over HTTP.
//
// Routes:
//
//	POST /v1/layout     resolve a scene, archive the run, return the layout
//	GET  /v1/runs       list archived runs, newest first
//	GET  /v1/runs/{id}  fetch one archived run
//	GET  /healthz       liveness probe
//
// Error responses are JSON objects {"error": message, "code": CODE} with
// the structured codes from pkg/errors.
package service

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/placemat/pkg/errors"
	"github.com/matzehuels/placemat/pkg/pipeline"
	"github.com/matzehuels/placemat/pkg/scene"
	"github.com/matzehuels/placemat/pkg/store"
)

// MaxSceneBytes caps the request body size for scene uploads.
const MaxSceneBytes = 4 << 20

// Config configures the HTTP service.
type Config struct {
	// Runner executes the layout pipeline. Required.
	Runner *pipeline.Runner

	// Store archives completed runs. Optional; without it the run
	// endpoints answer 404 and POST /v1/layout skips archiving.
	Store store.RunStore

	// Logger receives request logs. Defaults to log.Default().
	Logger *log.Logger
}

// Server handles layout requests.
type Server struct {
	runner *pipeline.Runner
	store  store.RunStore
	logger *log.Logger
}

// New creates a server from the config.
func New(cfg Config) (*Server, error) {
	if cfg.Runner == nil {
		return nil, errors.New(errors.ErrCodeInternal, "service requires a pipeline runner")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Server{
		runner: cfg.Runner,
		store:  cfg.Store,
		logger: cfg.Logger,
	}, nil
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})
	return r
}

// LayoutResponse is the body of a successful POST /v1/layout.
type LayoutResponse struct {
	RunID  string        `json:"run_id"`
	Cached bool          `json:"cached"`
	Layout *scene.Layout `json:"layout"`
}

// handleLayout resolves a posted scene.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, MaxSceneBytes)
	scn, err := scene.ReadScene(body)
	if err != nil {
		writeError(w, wrapSceneError(err))
		return
	}

	opts := pipeline.Options{
		Refresh: r.URL.Query().Get("refresh") == "true",
		Logger:  s.logger,
	}
	result, err := s.runner.Execute(r.Context(), scn, opts)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "resolve layout for %s", scn.Name))
		return
	}

	if s.store != nil {
		run := &store.Run{
			ID:        result.RunID,
			SceneName: result.SceneName,
			CreatedAt: time.Now().UTC(),
			Cached:    result.CacheInfo.Hit,
			Stats:     result.Layout.Stats,
			Layout:    result.Layout,
		}
		if err := s.store.Put(r.Context(), run); err != nil {
			s.logger.Error("archive run", "run_id", result.RunID, "err", err)
		}
	}

	writeJSON(w, http.StatusOK, LayoutResponse{
		RunID:  result.RunID,
		Cached: result.CacheInfo.Hit,
		Layout: result.Layout,
	})
}

// RunsResponse is the body of GET /v1/runs.
type RunsResponse struct {
	Runs []store.Summary `json:"runs"`
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, errors.New(errors.ErrCodeNotFound, "run archive not configured"))
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %q", v))
			return
		}
		limit = n
	}

	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "list runs"))
		return
	}
	if runs == nil {
		runs = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, RunsResponse{Runs: runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, errors.New(errors.ErrCodeNotFound, "run archive not configured"))
		return
	}

	id := chi.URLParam(r, "id")
	if err := errors.ValidateRunID(id); err != nil {
		writeError(w, err)
		return
	}

	run, err := s.store.Get(r.Context(), id)
	if err == store.ErrNotFound {
		writeError(w, errors.New(errors.ErrCodeRunNotFound, "run %s not found", id))
		return
	}
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "load run %s", id))
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// wrapSceneError keeps structured scene validation codes and tags plain
// decode failures as invalid input.
func wrapSceneError(err error) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "read scene")
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorBody{
		Error: errors.UserMessage(err),
		Code:  code,
	})
}

// statusFor maps error codes to HTTP statuses.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeRunNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInternal:
		return http.StatusInternalServerError
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		// All INVALID_* codes.
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
