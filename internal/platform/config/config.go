// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
loaded first when present; variables already set in the process environment win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, middleware) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// minSecretLength is the minimum byte length accepted for AUTH_SECRET.
const minSecretLength = 32

// # Environment

// Environment selects error verbosity, log formatting and cookie security.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// UnmarshalText implements [encoding.TextUnmarshaler] so env can parse NODE_ENV.
func (e *Environment) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "dev", "development":
		*e = Development
	case "prod", "production":
		*e = Production
	default:
		return fmt.Errorf("unknown environment %q (want development or production)", string(text))
	}
	return nil
}

// # Configuration Schema

// Config holds all runtime configuration for the remark API server.
type Config struct {

	// Server settings
	ServerPort     string        `env:"PORT"            envDefault:"3000"`
	Environment    Environment   `env:"NODE_ENV"        envDefault:"development"`
	LogLevel       slog.Level    `env:"LOG_LEVEL"       envDefault:"info"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// Cross-Origin Resource Sharing: the single trusted frontend origin.
	FrontendOrigin string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// AuthSecret signs session tokens (HS256).
	AuthSecret string `env:"AUTH_SECRET,required,notEmpty"`

	// Key-Value store (Redis). Optional; only the rate limiter uses it.
	RedisURL string `env:"REDIS_URL"`

	// Rate limiting (disabled by default)
	RateLimitEnabled bool          `env:"RATE_LIMIT_ENABLED" envDefault:"false"`
	RateLimitPoints  int           `env:"RATE_LIMIT_POINTS"  envDefault:"100"`
	RateLimitWindow  time.Duration `env:"RATE_LIMIT_WINDOW"  envDefault:"60s"`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a [Config].
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}
	return Parse()
}

// Parse maps the current process environment into a [Config] and validates it.
func Parse() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.AuthSecret) < minSecretLength {
		return fmt.Errorf("AUTH_SECRET must be at least %d bytes", minSecretLength)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	if c.RateLimitEnabled && (c.RateLimitPoints <= 0 || c.RateLimitWindow <= 0) {
		return errors.New("RATE_LIMIT_POINTS and RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}
