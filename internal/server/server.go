// internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xeipuuv/gojsonschema"

	"vibe-planner/internal/common/auth"
	"vibe-planner/internal/common/config"
	commonerrors "vibe-planner/internal/common/errors"
	"vibe-planner/internal/common/observability"
	"vibe-planner/internal/models"
	"vibe-planner/pkg/registry"
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// VibePlanner runs the vibe_planner tool.
type VibePlanner interface {
	Plan(ctx context.Context, request *models.VibeRequest) (*models.VibeResponse, error)
}

// Server exposes the tool-invocation protocol over HTTP.
type Server struct {
	config       *config.Config
	registry     *registry.ToolRegistry
	planner      VibePlanner
	verifier     *auth.BearerVerifier
	errorHandler *commonerrors.ErrorHandler
	obs          *observability.Observability
	logger       Logger
	schemas      map[string]*gojsonschema.Schema
	handler      http.Handler
	httpServer   *http.Server
}

func New(cfg *config.Config, reg *registry.ToolRegistry, vibePlanner VibePlanner, obs *observability.Observability, log Logger) (*Server, error) {
	schemas, err := compileSchemas(reg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:       cfg,
		registry:     reg,
		planner:      vibePlanner,
		verifier:     auth.NewBearerVerifier(cfg.Auth.BearerToken),
		errorHandler: commonerrors.NewErrorHandler(log),
		obs:          obs,
		logger: log.With(map[string]interface{}{
			"component": "server",
		}),
		schemas: schemas,
	}
	s.handler = s.routes()
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.handler,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	return s, nil
}

// compileSchemas compiles every tool's input schema once at startup so
// a bad schema fails the boot, not the first request.
func compileSchemas(reg *registry.ToolRegistry) (map[string]*gojsonschema.Schema, error) {
	schemas := make(map[string]*gojsonschema.Schema, len(reg.Tools))
	for _, tool := range reg.Tools {
		if tool.InputSchema == nil {
			continue
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(tool.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("compiling input schema of %s: %w", tool.Name, err)
		}
		schemas[tool.Name] = schema
	}
	return schemas, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/mcp", s.handleToolInvocation)
		r.Get("/tools", s.handleListTools)
	})

	return r
}

// Handler returns the assembled router. Exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{
		"addr":  s.httpServer.Addr,
		"tools": s.registry.Names(),
	})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
