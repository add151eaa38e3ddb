// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/taibuivan/remark/internal/api"
	"github.com/taibuivan/remark/internal/comment"
	"github.com/taibuivan/remark/internal/platform/config"
	"github.com/taibuivan/remark/internal/platform/constants"
	"github.com/taibuivan/remark/internal/platform/metrics"
	"github.com/taibuivan/remark/internal/platform/migration"
	pgstore "github.com/taibuivan/remark/internal/platform/postgres"
	"github.com/taibuivan/remark/internal/platform/ratelimit"
	redisstore "github.com/taibuivan/remark/internal/platform/redis"
	"github.com/taibuivan/remark/internal/platform/sec"
	"github.com/taibuivan/remark/internal/users/account"
	"github.com/taibuivan/remark/internal/users/auth"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, log)
		},
	}
}

// serve runs the startup sequence and blocks until ctx is cancelled.
//
// # Startup Sequence
//
//  1. Connect to PostgreSQL (pgxpool).
//  2. Connect to Redis when configured.
//  3. Run database migrations (idempotent).
//  4. Wire HTTP handlers.
//  5. Start HTTP server with graceful shutdown.
func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	log.Info("configuration_loaded",
		slog.String("environment", string(cfg.Environment)),
		slog.String("port", cfg.ServerPort),
		slog.Bool("rate_limit", cfg.RateLimitEnabled),
	)

	startupCtx, startupCancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer startupCancel()

	// ── 1. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, cfg.RequestTimeout, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 2. Redis ──────────────────────────────────────────────────────────
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
	}

	// ── 3. Migrations ─────────────────────────────────────────────────────
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// ── 4. Domain Wiring ──────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.AuthSecret, constants.AuthIssuer)
	if err != nil {
		return fmt.Errorf("initialize token service: %w", err)
	}

	collector := metrics.New()

	commentService := comment.NewService(comment.NewPostgresRepository(pool), collector)

	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	authService := auth.NewService(userRepository, sessionRepository, tokens, constants.SessionTTL)

	accountService := account.NewService(sessionRepository)

	go auth.RunJanitor(ctx, authService, constants.SessionJanitorInterval, log)

	dependencies := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}
	if rdb != nil {
		dependencies.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	}
	liveness, readiness := api.NewHealthHandlers(dependencies, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   collector,
		Auth:      auth.NewProvider(authService, cfg.IsProduction()),
		Comment:   comment.NewHandler(commentService),
		Account:   account.NewHandler(accountService),
		Limiter:   newLimiter(ctx, cfg, rdb),
	}

	// ── 5. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(cfg, log, handlers)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	}

	// Give in-flight requests enough time to complete.
	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped cleanly")
	return nil
}

// newLimiter selects the rate limit backend. It returns nil when rate limiting is disabled.
func newLimiter(ctx context.Context, cfg *config.Config, rdb *goredis.Client) ratelimit.Limiter {
	if !cfg.RateLimitEnabled {
		return nil
	}
	if rdb != nil {
		return ratelimit.NewRedis(rdb, constants.RedisPrefixRateLimit, cfg.RateLimitPoints, cfg.RateLimitWindow)
	}
	return ratelimit.NewMemory(ctx, cfg.RateLimitPoints, cfg.RateLimitWindow, constants.RateLimitCleanupInterval)
}
