// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/remark/internal/platform/apperr"
	"github.com/taibuivan/remark/internal/platform/constants"
	"github.com/taibuivan/remark/internal/platform/respond"
)

// readinessTimeout bounds each dependency check.
const readinessTimeout = 2 * time.Second

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func(context.Context) error

	// CheckCache pings the Redis client. Nil when Redis is not configured.
	CheckCache func(context.Context) error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
	startedAt    time.Time
	now          func() time.Time
}

type livenessResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"` // seconds
}

type checkResult struct {
	Name string `json:"name"`
	IsOK bool   `json:"ok"`
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger, startedAt: time.Now(), now: time.Now}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	now := handler.now()
	respond.OK(writer, livenessResponse{
		Status:    "ok",
		Timestamp: now.UTC(),
		Uptime:    now.Sub(handler.startedAt).Seconds(),
	})
}

// readiness handles GET /ready (Readiness probe).
//
// A failed check answers 503 through the error envelope, one detail per
// dependency. Causes are logged, never returned.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]checkResult, 0, 2)
	var failed []apperr.FieldError

	check := func(name string, probe func(context.Context) error) {
		if probe == nil {
			return
		}
		ctx, cancel := context.WithTimeout(request.Context(), readinessTimeout)
		defer cancel()

		if err := probe(ctx); err != nil {
			failed = append(failed, apperr.FieldError{Field: name, Message: "unreachable"})
			handler.logger.ErrorContext(ctx, "readiness_check_failed", slog.String("dependency", name), slog.Any("error", err))
			return
		}
		results = append(results, checkResult{Name: name, IsOK: true})
	}

	check("postgres", handler.dependencies.CheckDatabase)
	check("redis", handler.dependencies.CheckCache)

	if len(failed) > 0 {
		unavailable := apperr.ServiceUnavailable("Dependencies unavailable")
		unavailable.Details = failed
		respond.Error(writer, request, unavailable)
		return
	}

	respond.OK(writer, map[string]any{
		constants.FieldStatus: "ready",
		constants.FieldChecks: results,
	})
}
