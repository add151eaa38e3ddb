// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/remark/internal/comment"
	"github.com/taibuivan/remark/internal/platform/migration"
	"github.com/taibuivan/remark/internal/platform/postgres"
)

// TestPostgresRepository runs against a real database when TEST_DATABASE_URL is set.
func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migration.RunUp(dsn, "../../data/migrations", logger))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn, 5*time.Second, logger)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, "TRUNCATE board.comment RESTART IDENTITY")
	require.NoError(t, err)

	repo := comment.NewPostgresRepository(pool)

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	first, err := repo.Create(ctx, "  Bonjour  ")
	require.NoError(t, err)
	second, err := repo.Create(ctx, "Hello")
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	found, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "  Bonjour  ", found.Comment)

	_, err = repo.FindByID(ctx, 999999)
	assert.Error(t, err)

	comments, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, second.ID, comments[0].ID)
}
