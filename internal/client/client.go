// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package client is the typed data layer over the remark HTTP API.

It mirrors the server contracts: comment queries are cached by name, inputs are
validated with the same schemas before any request is sent, and the session
travels in a cookie jar (optionally also as a bearer token).

Usage:

	c, err := client.New("http://localhost:3000")
	comments, err := c.ListComments(ctx)
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/remark/internal/platform/apperr"
	"github.com/taibuivan/remark/internal/platform/constants"
)

// DefaultStaleTime is how long a cached query is served without refetching.
const DefaultStaleTime = 30 * time.Second

// # Errors

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status     int                 `json:"-"`
	Title      string              `json:"error"`
	Code       string              `json:"code"`
	Message    string              `json:"message"`
	Details    []apperr.FieldError `json:"details"`
	RetryAfter int                 `json:"retryAfter"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remark: %d %s", e.Status, e.Title)
	}
	return fmt.Sprintf("remark: %d %s: %s", e.Status, e.Title, e.Message)
}

// IsStatus reports whether err is an [*APIError] with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.Status == status
}

// # Definitions & Constructors

// Client talks to one remark server. It is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	cache      *QueryCache
	language   string

	mu    sync.RWMutex
	token string
}

// Option customizes a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its Jar, when nil, is replaced by a fresh cookie jar.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithStaleTime sets how long cached queries stay fresh.
func WithStaleTime(staleTime time.Duration) Option {
	return func(c *Client) { c.cache = NewQueryCache(staleTime) }
}

// WithLanguage sets the Accept-Language sent to the server.
func WithLanguage(language string) Option {
	return func(c *Client) { c.language = language }
}

// New returns a client for the server at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client: invalid base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("client: base URL %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      NewQueryCache(DefaultStaleTime),
	}
	for _, apply := range options {
		apply(c)
	}

	if c.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("client: cookie jar: %w", err)
		}
		c.httpClient.Jar = jar
	}

	return c, nil
}

// Token returns the bearer token of the current session, if any.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Cache exposes the query cache.
func (c *Client) Cache() *QueryCache {
	return c.cache
}

// # Transport

// do sends one JSON request. out may be nil; a JSON null leaves it untouched.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set(constants.HeaderContentType, "application/json")
	}
	if c.language != "" {
		request.Header.Set(constants.HeaderAcceptLanguage, c.language)
	}
	if token := c.Token(); token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(response)
	}

	if out == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(response *http.Response) error {
	apiError := &APIError{Status: response.StatusCode}
	if err := json.NewDecoder(response.Body).Decode(apiError); err != nil || apiError.Title == "" {
		apiError.Title = http.StatusText(response.StatusCode)
	}
	return apiError
}
