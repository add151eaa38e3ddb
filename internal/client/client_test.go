// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/remark/internal/api"
	"github.com/taibuivan/remark/internal/client"
	"github.com/taibuivan/remark/internal/comment"
	"github.com/taibuivan/remark/internal/platform/apperr"
	"github.com/taibuivan/remark/internal/platform/config"
	"github.com/taibuivan/remark/internal/platform/metrics"
	"github.com/taibuivan/remark/internal/platform/sec"
	"github.com/taibuivan/remark/internal/users/account"
	"github.com/taibuivan/remark/internal/users/auth"
)

// countingServer runs the real router and counts requests per method and path.
type countingServer struct {
	*httptest.Server
	mu    sync.Mutex
	calls map[string]int
}

func (s *countingServer) count(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method+" "+path]
}

func newServer(t *testing.T) *countingServer {
	t.Helper()

	tokens, err := sec.NewTokenService("client-test-secret-0123456789abcdef", "remark.test")
	require.NoError(t, err)

	store := auth.NewMemoryStore()
	authService := auth.NewService(store.Users(), store.Sessions(), tokens, time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{}, logger)

	router := api.NewRouter(&config.Config{
		Environment:    config.Production,
		RequestTimeout: 5 * time.Second,
		FrontendOrigin: "http://localhost:5173",
	}, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   metrics.New(),
		Auth:      auth.NewProvider(authService, false),
		Comment:   comment.NewHandler(comment.NewService(comment.NewMemoryRepository(), nil)),
		Account:   account.NewHandler(account.NewService(store.Sessions())),
	})

	server := &countingServer{calls: make(map[string]int)}
	server.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		server.mu.Lock()
		server.calls[request.Method+" "+request.URL.Path]++
		server.mu.Unlock()
		router.ServeHTTP(writer, request)
	}))
	t.Cleanup(server.Close)
	return server
}

func newClient(t *testing.T, server *countingServer, options ...client.Option) *client.Client {
	t.Helper()
	c, err := client.New(server.URL, options...)
	require.NoError(t, err)
	return c
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := client.New("localhost:3000/api")
	assert.Error(t, err)
}

func TestClient_CommentQueries(t *testing.T) {
	server := newServer(t)
	c := newClient(t, server)
	ctx := context.Background()

	empty, err := c.ListComments(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)

	created, err := c.CreateComment(ctx, "  spaced  ")
	require.NoError(t, err)
	assert.Equal(t, "  spaced  ", created.Comment)

	// The create primed the single-comment query.
	got, err := c.GetComment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)
	assert.Zero(t, server.count(http.MethodGet, "/api/v1/comment/1"))

	// The create invalidated the list.
	list, err := c.ListComments(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 2, server.count(http.MethodGet, "/api/v1/comment"))

	// Fresh list is served from cache.
	_, err = c.ListComments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, server.count(http.MethodGet, "/api/v1/comment"))
}

func TestClient_StaleTimeZeroAlwaysFetches(t *testing.T) {
	server := newServer(t)
	c := newClient(t, server, client.WithStaleTime(0))

	for i := 0; i < 3; i++ {
		_, err := c.ListComments(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, server.count(http.MethodGet, "/api/v1/comment"))
}

func TestClient_ValidatesBeforeSending(t *testing.T) {
	server := newServer(t)
	c := newClient(t, server)

	for _, content := range []string{"", strings.Repeat("x", comment.MaxContentLength+1)} {
		_, err := c.CreateComment(context.Background(), content)
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	}

	_, err := c.SignUp(context.Background(), auth.SignUpInput{Email: "nope", Password: "x"})
	assert.NotNil(t, apperr.As(err))

	assert.Zero(t, server.count(http.MethodPost, "/api/v1/comment"))
	assert.Zero(t, server.count(http.MethodPost, "/api/v1/auth/sign-up/email"))
}

func TestClient_APIErrors(t *testing.T) {
	server := newServer(t)
	c := newClient(t, server, client.WithLanguage("en"))

	_, err := c.GetComment(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, client.IsStatus(err, http.StatusNotFound))

	var apiError *client.APIError
	require.ErrorAs(t, err, &apiError)
	assert.Equal(t, "Not Found", apiError.Title)
	assert.Equal(t, "NOT_FOUND", apiError.Code)
	assert.Equal(t, "Comment not found", apiError.Message)

	// Errors are not cached.
	_, err = c.GetComment(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, 2, server.count(http.MethodGet, "/api/v1/comment/404"))
}

/*
TestClient_SessionLifecycle keeps the session in the cookie jar across calls.
*/
func TestClient_SessionLifecycle(t *testing.T) {
	server := newServer(t)
	c := newClient(t, server)
	ctx := context.Background()

	view, err := c.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, view)

	_, err = c.Me(ctx)
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized))

	result, err := c.SignUp(ctx, auth.SignUpInput{Email: "ada@example.com", Password: "correct horse", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, result.Token, c.Token())

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", me.User.Email)
	assert.True(t, me.Session.IsCurrent)

	view, err = c.Session(ctx)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, "Ada", view.User.Name)

	require.NoError(t, c.SignOut(ctx))
	assert.Empty(t, c.Token())

	_, err = c.Me(ctx)
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized))

	// Email is normalized before local validation, as the server does.
	again, err := c.SignIn(ctx, auth.SignInInput{Email: " Ada@Example.com ", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, again.User.ID)
}

func TestClient_BearerTokenOnly(t *testing.T) {
	server := newServer(t)
	ctx := context.Background()

	first := newClient(t, server)
	result, err := first.SignUp(ctx, auth.SignUpInput{Email: "ada@example.com", Password: "correct horse", Name: "Ada"})
	require.NoError(t, err)

	// A second client with an empty jar resumes the session from the token alone.
	second := newClient(t, server, client.WithToken(result.Token))
	me, err := second.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, me.User.UserID)
}

func TestQueryCache_SharesConcurrentFetches(t *testing.T) {
	server := newServer(t)
	c := newClient(t, server)

	var wg sync.WaitGroup
	var failures atomic.Int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.ListComments(context.Background()); err != nil {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, failures.Load())
	assert.LessOrEqual(t, server.count(http.MethodGet, "/api/v1/comment"), 8)
	assert.GreaterOrEqual(t, server.count(http.MethodGet, "/api/v1/comment"), 1)

	c.Cache().Clear()
	_, ok := c.Cache().Get(client.KeyComments)
	assert.False(t, ok)
}
