// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/remark/internal/comment"
	"github.com/taibuivan/remark/internal/platform/apperr"
	"github.com/taibuivan/remark/internal/platform/config"
	"github.com/taibuivan/remark/internal/platform/constants"
	"github.com/taibuivan/remark/internal/platform/metrics"
	"github.com/taibuivan/remark/internal/platform/middleware"
	"github.com/taibuivan/remark/internal/platform/ratelimit"
	"github.com/taibuivan/remark/internal/platform/respond"
	"github.com/taibuivan/remark/internal/users/account"
	"github.com/taibuivan/remark/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Metrics records request metrics and serves /metrics.
	Metrics *metrics.Metrics

	// Auth is the authentication provider mounted under /auth.
	Auth *auth.Provider

	// Comment handles the public comment board.
	Comment *comment.Handler

	// Account handles the caller's own identity and sessions.
	Account *account.Handler

	// Limiter throttles /api/v1 per client IP. Nil disables rate limiting.
	Limiter ratelimit.Limiter
}

// # Router

// NewRouter builds the chi router with the full middleware chain and
// registers all route groups.
func NewRouter(cfg *config.Config, log *slog.Logger, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.Metrics(h.Metrics))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.ErrorVerbosity(cfg.IsDevelopment()))
	r.Use(middleware.Language())
	r.Use(middleware.CORS(middleware.CORSOptions{
		AllowedOrigin:  cfg.FrontendOrigin,
		AllowedMethods: []string{http.MethodPost, http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{constants.HeaderContentType, constants.HeaderAuthorization},
	}))
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(chimw.CleanPath)
	r.Use(chimw.GetHead)

	// Set before any Mount so every sub-router inherits them.
	// An unknown method on a known path is reported as an unknown route.
	r.NotFound(routeNotFound)
	r.MethodNotAllowed(routeNotFound)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		if h.Limiter != nil {
			api.Use(middleware.RateLimit(h.Limiter, h.Metrics))
		}
		api.Use(middleware.Authenticate(h.Auth))

		api.Mount("/auth", h.Auth.Handler)
		api.Mount("/comment", h.Comment.Routes())
		api.Mount("/me", h.Account.Routes())
	})

	return r
}

func routeNotFound(writer http.ResponseWriter, request *http.Request) {
	respond.Error(writer, request, apperr.RouteNotFound(request.Method, request.URL.Path))
}

// # Server Initialization

// NewServer constructs the [http.Server] around [NewRouter].
func NewServer(cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := NewRouter(cfg, log, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
