// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for remark.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing a machine-readable Code, the HTTP status title
    and a user-friendly message.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be an [AppError] (or wrap one)
to ensure consistent API responses. Anything else is treated as Internal.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
)

// AppError is the canonical error type for the remark API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// Cause and Stack are for server-side logging (and development responses) only.
// They are never sent to clients in production.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string
	// Title is the short error label, the HTTP status text ("Not Found").
	Title string
	// Message is a human-readable description safe to return to the client.
	Message string
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int
	// Cause is the underlying error, used for server-side logging only.
	Cause error
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError
	// RetryAfter is the number of seconds a rate-limited client should wait.
	RetryAfter int
	// Stack is captured for Internal errors and exposed only in development.
	Stack string
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

func newError(status int, code, msg string) *AppError {
	return &AppError{
		Code:       code,
		Title:      http.StatusText(status),
		Message:    msg,
		HTTPStatus: status,
	}
}

// # Client Errors (4xx)

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	e := newError(http.StatusBadRequest, "VALIDATION_ERROR", msg)
	e.Details = details
	return e
}

// InvalidArgument creates a 400 [AppError] for malformed input that is not
// tied to a request body field (e.g. a non-numeric path segment).
func InvalidArgument(msg string) *AppError {
	return newError(http.StatusBadRequest, "INVALID_ARGUMENT", msg)
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return newError(http.StatusUnauthorized, "UNAUTHORIZED", msg)
}

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Comment") // Returns "Comment not found"
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, "NOT_FOUND", resource+" not found")
}

// RouteNotFound creates the 404 [AppError] returned for unmatched routes.
func RouteNotFound(method, path string) *AppError {
	return newError(http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("Route %s %s not found", method, path))
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return newError(http.StatusConflict, "CONFLICT", msg)
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	e := newError(http.StatusTooManyRequests, "RATE_LIMITED", "Rate limit exceeded. Please try again later.")
	e.RetryAfter = retryAfterSeconds
	return e
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client in production.
func Internal(cause error) *AppError {
	e := newError(http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	e.Cause = cause
	e.Stack = string(debug.Stack())
	return e
}

// ServiceUnavailable creates a 503 [AppError] for an unreachable dependency.
func ServiceUnavailable(msg string) *AppError {
	return newError(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", msg)
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
