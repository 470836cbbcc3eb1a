// Package server is the local development server. It exposes the project
// spec, its validation report and on-demand generation over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ChicagoDave/citygen/pkg/cache"
	"github.com/ChicagoDave/citygen/pkg/pipeline"
	"github.com/ChicagoDave/citygen/pkg/scene2d"
	"github.com/ChicagoDave/citygen/pkg/spec"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

// Config configures a Server.
type Config struct {
	ProjectPath string
	Port        int
	Cache       cache.Cache
	CacheTTL    time.Duration
	Logger      *log.Logger
}

// Server serves one project directory. The project is reloaded on every
// request so edits to the spec file show up without a restart.
type Server struct {
	projectPath string
	port        int
	runner      *pipeline.Runner
	logger      *log.Logger
}

// New creates a server for the given project directory.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		projectPath: cfg.ProjectPath,
		port:        cfg.Port,
		runner:      pipeline.NewRunner(cfg.Cache, cfg.CacheTTL, logger),
		logger:      logger,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/spec", s.handleSpec)
		r.Get("/validation", s.handleValidation)
		r.Post("/generate", s.handleGenerate)
		r.Post("/plan", s.handlePlan)
	})
	return r
}

// Start listens on the configured port until ctx is canceled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("citygen server starting", "url", fmt.Sprintf("http://localhost%s", srv.Addr), "project", s.projectPath)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleSpec(w http.ResponseWriter, r *http.Request) {
	project, ok := s.loadProject(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	project, ok := s.loadProject(w, r)
	if !ok {
		return
	}
	report := validation.Validate(project.City)
	writeJSON(w, http.StatusOK, map[string]any{
		"messages": report.Messages(),
		"report":   report,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if _, result, ok := s.generate(w, r); ok {
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	if project, result, ok := s.generate(w, r); ok {
		writeJSON(w, http.StatusOK, scene2d.Assemble2D(project.City, result.Seed, result.Buildings))
	}
}

// generate runs the pipeline for the request's seed. On failure it has
// already written the response and returns false.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) (*spec.Project, *pipeline.Result, bool) {
	var seed uint64
	if raw := r.URL.Query().Get("seed"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid seed %q: %w", raw, err))
			return nil, nil, false
		}
		seed = v
	}

	project, ok := s.loadProject(w, r)
	if !ok {
		return nil, nil, false
	}

	result, err := s.runner.Execute(r.Context(), project, seed)
	var cfgErr *validation.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":    cfgErr.Error(),
			"messages": result.Validation.Messages(),
			"report":   result.Validation,
		})
		return nil, nil, false
	case err != nil:
		s.writeError(w, r, http.StatusInternalServerError, err)
		return nil, nil, false
	}
	return project, result, true
}

func (s *Server) loadProject(w http.ResponseWriter, r *http.Request) (*spec.Project, bool) {
	project, err := spec.LoadProject(s.projectPath)
	if err == nil {
		return project, true
	}
	status := http.StatusInternalServerError
	if errors.Is(err, os.ErrNotExist) {
		status = http.StatusNotFound
	}
	s.writeError(w, r, status, fmt.Errorf("loading spec: %w", err))
	return nil, false
}
