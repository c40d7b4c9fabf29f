package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fmaa-dev/fmaa/internal/ratelimit"
	"github.com/fmaa-dev/fmaa/internal/recommend"
	"github.com/fmaa-dev/fmaa/internal/sentiment"
	"github.com/fmaa-dev/fmaa/internal/storage"
)

// Server is the FMAA HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	handlers   *Handlers
	logger     *slog.Logger
}

// Handler returns the root HTTP handler for use in tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ServerConfig holds all dependencies and configuration for creating a Server.
// Optional (nil-safe): Limiter, Analyzer, Recommender.
type ServerConfig struct {
	// Required dependencies.
	DB     *storage.DB
	Logger *slog.Logger

	// Optional dependencies.
	Limiter     ratelimit.Limiter
	Analyzer    *sentiment.Analyzer
	Recommender *recommend.Recommender

	// HTTP server settings.
	Port                int
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	Version             string
	MaxRequestBodyBytes int64
	AllowedOrigins      []string
}

// New creates a new HTTP server with all routes configured.
func New(cfg ServerConfig) *Server {
	h := NewHandlers(HandlersDeps{
		DB:                  cfg.DB,
		Analyzer:            cfg.Analyzer,
		Recommender:         cfg.Recommender,
		Logger:              cfg.Logger,
		Version:             cfg.Version,
		MaxRequestBodyBytes: cfg.MaxRequestBodyBytes,
	})

	mux := http.NewServeMux()

	// One route per resource; each handler dispatches on method itself so
	// unsupported methods get the JSON 405 envelope.
	mux.HandleFunc("/api/sentiment-agent", h.HandleSentiment)
	mux.HandleFunc("/api/agent-factory", h.HandleAgents)
	mux.HandleFunc("/api/performance-monitor", h.HandlePerformance)
	mux.HandleFunc("/api/recommendation-agent", h.HandleRecommendations)
	mux.HandleFunc("/api/health", h.HandleHealth)

	// Middleware chain (outermost executes first):
	// request ID → CORS → tracing → logging → rate limit → recovery → handler.
	// CORS runs before rate limiting so preflights are never throttled.
	var handler http.Handler = mux
	handler = recoveryMiddleware(cfg.Logger, handler)
	if cfg.Limiter != nil {
		handler = rateLimitMiddleware(cfg.Limiter, cfg.Logger, handler)
	}
	handler = loggingMiddleware(cfg.Logger, handler)
	handler = tracingMiddleware(handler)
	handler = corsMiddleware(cfg.AllowedOrigins, handler)
	handler = requestIDMiddleware(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		handler:  handler,
		handlers: h,
		logger:   cfg.Logger,
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
