// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, header names, cookie settings and JSON field names
that are shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Janitor cadence for in-memory token buckets.
  - Security: Session cookie and token issuer configuration.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "remark-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// It must stay above the per-request deadline so timeouts can still be reported.
	DefaultWriteTimeout = 40 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// StartupTimeout bounds the connection and migration phase of startup.
	StartupTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// RateLimitCleanupInterval is how often idle IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RedisPrefixRateLimit namespaces fixed-window counters in Redis.
	RedisPrefixRateLimit = "ratelimit:"
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in session tokens.
	AuthIssuer = "remark.api"

	// SessionCookieName is the name of the cookie that carries the session token.
	SessionCookieName = "remark.session_token"

	// SessionCookiePath scopes the session cookie to the whole API.
	SessionCookiePath = "/"

	// SessionTTL is how long a session stays valid after sign-in.
	SessionTTL = 7 * 24 * time.Hour

	// SessionJanitorInterval is how often expired sessions are purged.
	SessionJanitorInterval = 1 * time.Hour
)

// # HTTP Headers

const (
	HeaderXRequestID         = "X-Request-ID"
	HeaderXRealIP            = "X-Real-IP"
	HeaderXForwardedFor      = "X-Forwarded-For"
	HeaderOrigin             = "Origin"
	HeaderAuthorization      = "Authorization"
	HeaderContentType        = "Content-Type"
	HeaderAcceptLanguage     = "Accept-Language"
	HeaderRetryAfter         = "Retry-After"
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset" // seconds until the window resets
)

// # JSON Field Identifiers

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)
