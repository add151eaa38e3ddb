// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/remark/internal/platform/apperr"
	"github.com/taibuivan/remark/internal/platform/migration"
	"github.com/taibuivan/remark/internal/platform/postgres"
	"github.com/taibuivan/remark/internal/users/auth"
	"github.com/taibuivan/remark/pkg/uuid"
)

// TestPostgresRepositories runs against a real database when TEST_DATABASE_URL is set.
func TestPostgresRepositories(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migration.RunUp(dsn, "../../../data/migrations", logger))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn, 5*time.Second, logger)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, "TRUNCATE users.account CASCADE")
	require.NoError(t, err)

	users := auth.NewUserRepository(pool)
	sessions := auth.NewSessionRepository(pool)

	user := &auth.User{ID: uuid.New(), Email: "ada@example.com", Name: "Ada", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, user))

	duplicate := &auth.User{ID: uuid.New(), Email: "ada@example.com", Name: "Two", PasswordHash: "hash"}
	appError := apperr.As(users.Create(ctx, duplicate))
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)

	found, err := users.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = users.FindByID(ctx, uuid.New())
	require.NotNil(t, apperr.As(err))
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	now := time.Now()
	current := &auth.Session{ID: uuid.New(), UserID: user.ID, ExpiresAt: now.Add(time.Hour)}
	other := &auth.Session{ID: uuid.New(), UserID: user.ID, ExpiresAt: now.Add(time.Hour)}
	expired := &auth.Session{ID: uuid.New(), UserID: user.ID, ExpiresAt: now.Add(-time.Minute)}
	for _, session := range []*auth.Session{current, other, expired} {
		require.NoError(t, sessions.Create(ctx, session))
	}

	active, err := sessions.ListActive(ctx, user.ID, now)
	require.NoError(t, err)
	assert.Len(t, active, 2)
	assert.Nil(t, active[0].RevokedAt)

	revoked, err := sessions.RevokeOthers(ctx, user.ID, current.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, revoked)

	require.NoError(t, sessions.Revoke(ctx, current.ID))
	require.NoError(t, sessions.Revoke(ctx, current.ID))
	loaded, err := sessions.FindByID(ctx, current.ID)
	require.NoError(t, err)
	assert.False(t, loaded.Active(now))
	assert.NotNil(t, loaded.RevokedAt)

	deleted, err := sessions.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
}
