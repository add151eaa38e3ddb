// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/remark/internal/platform/database/schema"
	"github.com/taibuivan/remark/internal/platform/dberr"
)

const resourceName = "Comment"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed comment store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	commentColumns = strings.Join(schema.BoardComment.Columns(), ", ")

	insertQuery = fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s`,
		schema.BoardComment.Table, schema.BoardComment.Comment, commentColumns)

	listQuery = fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC`,
		commentColumns, schema.BoardComment.Table, schema.BoardComment.ID)

	findQuery = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		commentColumns, schema.BoardComment.Table, schema.BoardComment.ID)
)

/*
Create persists a new comment.

Description: A single INSERT ... RETURNING round trip. The identity column
assigns the ID; duplicate content is accepted.
*/
func (repository *PostgresRepository) Create(ctx context.Context, content string) (*Comment, error) {
	created := &Comment{}
	err := repository.pool.QueryRow(ctx, insertQuery, content).Scan(&created.ID, &created.Comment)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "create_comment")
	}
	return created, nil
}

// List returns all comments ordered by ID descending.
func (repository *PostgresRepository) List(ctx context.Context) ([]Comment, error) {
	rows, err := repository.pool.Query(ctx, listQuery)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "list_comments")
	}
	defer rows.Close()

	comments := make([]Comment, 0)
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Comment); err != nil {
			return nil, dberr.Wrap(err, resourceName, "scan_comment")
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceName, "list_comments")
	}

	return comments, nil
}

// FindByID looks up a single comment.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Comment, error) {
	found := &Comment{}
	err := repository.pool.QueryRow(ctx, findQuery, id).Scan(&found.ID, &found.Comment)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "get_comment")
	}
	return found, nil
}
