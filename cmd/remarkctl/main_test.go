// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
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

func startServer(t *testing.T) string {
	t.Helper()

	tokens, err := sec.NewTokenService("cli-test-secret-0123456789abcdef0123", "remark.test")
	require.NoError(t, err)

	store := auth.NewMemoryStore()
	authService := auth.NewService(store.Users(), store.Sessions(), tokens, time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{}, logger)

	server := httptest.NewServer(api.NewRouter(&config.Config{
		Environment:    config.Production,
		RequestTimeout: 5 * time.Second,
	}, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   metrics.New(),
		Auth:      auth.NewProvider(authService, false),
		Comment:   comment.NewHandler(comment.NewService(comment.NewMemoryRepository(), nil)),
		Account:   account.NewHandler(account.NewService(store.Sessions())),
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func run(t *testing.T, serverURL, tokenFile string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer

	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--server", serverURL, "--token-file", tokenFile}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_Comments(t *testing.T) {
	serverURL := startServer(t)
	tokenFile := filepath.Join(t.TempDir(), "token")

	out, err := run(t, serverURL, tokenFile, "comment", "post", "Hello", "board")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"comment":"Hello board"}`, out)

	out, err = run(t, serverURL, tokenFile, "comment", "list")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"comment":"Hello board"}]`, out)

	_, err = run(t, serverURL, tokenFile, "comment", "get", "abc")
	assert.Error(t, err)

	_, err = run(t, serverURL, tokenFile, "comment", "get", "7")
	assert.True(t, client.IsStatus(err, 404))
}

/*
TestCLI_SessionPersistsAcrossInvocations signs in once and reuses the token file.
*/
func TestCLI_SessionPersistsAcrossInvocations(t *testing.T) {
	serverURL := startServer(t)
	tokenFile := filepath.Join(t.TempDir(), "nested", "token")

	_, err := run(t, serverURL, tokenFile, "me")
	assert.True(t, client.IsStatus(err, 401))

	_, err = run(t, serverURL, tokenFile, "auth", "sign-up", "--email", "ada@example.com", "--password", "correct horse", "--name", "Ada")
	require.NoError(t, err)

	info, err := os.Stat(tokenFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err := run(t, serverURL, tokenFile, "me")
	require.NoError(t, err)
	var me map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &me))
	assert.Equal(t, "ada@example.com", me["user"]["email"])

	_, err = run(t, serverURL, tokenFile, "auth", "sign-out")
	require.NoError(t, err)
	_, err = os.Stat(tokenFile)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	out, err = run(t, serverURL, tokenFile, "auth", "session")
	require.NoError(t, err)
	assert.Equal(t, "null\n", out)
}

func TestReport_PrintsDetails(t *testing.T) {
	var out bytes.Buffer
	report(&out, apperr.ValidationError("Validation failed", apperr.FieldError{Field: "content", Message: "Comment cannot be empty"}))

	assert.Contains(t, out.String(), "error: Validation failed")
	assert.Contains(t, out.String(), "content: Comment cannot be empty")
}
