// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/remark/internal/platform/database/schema"
	"github.com/taibuivan/remark/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var (
	userColumns = strings.Join(schema.UserAccount.Columns(), ", ")

	insertUserQuery = fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.UserAccount.Table, userColumns)

	findUserByEmailQuery = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.Email)

	findUserByIDQuery = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.ID)
)

/*
Create persists a new user record into the users.account table.

Description: Timestamps are initialized when not provided. The unique index
on email turns a concurrent duplicate registration into a Conflict.
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = user.CreatedAt

	_, err := repository.pool.Exec(ctx, insertUserQuery,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "User", "create_user")
	}
	return nil
}

// FindByEmail retrieves a user record by its unique email address.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(repository.pool.QueryRow(ctx, findUserByEmailQuery, email), "find_user_by_email")
}

// FindByID retrieves a user record by its ID.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return scanUser(repository.pool.QueryRow(ctx, findUserByIDQuery, id), "find_user_by_id")
}

func scanUser(row pgx.Row, action string) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User", action)
	}
	return user, nil
}

// # Session Repository

// PostgresSessionRepository implements the SessionRepository interface using pgx.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of the SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

var (
	sessionColumns = strings.Join(schema.UserSession.Columns(), ", ")

	insertSessionQuery = fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.UserSession.Table, sessionColumns)

	findSessionQuery = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		sessionColumns, schema.UserSession.Table, schema.UserSession.ID)

	listActiveSessionsQuery = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = FALSE AND %s > $2 ORDER BY %s DESC`,
		sessionColumns, schema.UserSession.Table, schema.UserSession.UserID,
		schema.UserSession.IsRevoked, schema.UserSession.ExpiresAt, schema.UserSession.CreatedAt)

	revokeSessionQuery = fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = COALESCE(%s, NOW()) WHERE %s = $1`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.RevokedAt,
		schema.UserSession.RevokedAt, schema.UserSession.ID)

	revokeOtherSessionsQuery = fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND %s <> $2 AND %s = FALSE`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.RevokedAt,
		schema.UserSession.UserID, schema.UserSession.ID, schema.UserSession.IsRevoked)

	deleteExpiredSessionsQuery = fmt.Sprintf(`DELETE FROM %s WHERE %s <= $1`,
		schema.UserSession.Table, schema.UserSession.ExpiresAt)
)

/*
Create initializes a new persistent session.

Description: Stores metadata (UserAgent, IP) to allow users to audit their
active devices.
*/
func (repository *PostgresSessionRepository) Create(ctx context.Context, session *Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(ctx, insertSessionQuery,
		session.ID,
		session.UserID,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.IsRevoked,
		session.RevokedAt,
		session.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Session", "create_session")
	}
	return nil
}

// FindByID loads a session row.
func (repository *PostgresSessionRepository) FindByID(ctx context.Context, id string) (*Session, error) {
	session := &Session{}
	err := repository.pool.QueryRow(ctx, findSessionQuery, id).Scan(sessionFields(session)...)
	if err != nil {
		return nil, dberr.Wrap(err, "Session", "find_session")
	}
	return session, nil
}

// ListActive returns the live sessions of a user, newest first.
func (repository *PostgresSessionRepository) ListActive(ctx context.Context, userID string, now time.Time) ([]Session, error) {
	rows, err := repository.pool.Query(ctx, listActiveSessionsQuery, userID, now)
	if err != nil {
		return nil, dberr.Wrap(err, "Session", "list_sessions")
	}
	defer rows.Close()

	sessions := make([]Session, 0)
	for rows.Next() {
		var session Session
		if err := rows.Scan(sessionFields(&session)...); err != nil {
			return nil, dberr.Wrap(err, "Session", "scan_session")
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Session", "list_sessions")
	}
	return sessions, nil
}

// Revoke invalidates a single session. The first revocation time is kept.
func (repository *PostgresSessionRepository) Revoke(ctx context.Context, sessionID string) error {
	if _, err := repository.pool.Exec(ctx, revokeSessionQuery, sessionID); err != nil {
		return dberr.Wrap(err, "Session", "revoke_session")
	}
	return nil
}

// RevokeOthers signs a user out everywhere except the current session.
func (repository *PostgresSessionRepository) RevokeOthers(ctx context.Context, userID, currentSessionID string) (int64, error) {
	tag, err := repository.pool.Exec(ctx, revokeOtherSessionsQuery, userID, currentSessionID)
	if err != nil {
		return 0, dberr.Wrap(err, "Session", "revoke_other_sessions")
	}
	return tag.RowsAffected(), nil
}

/*
DeleteExpired cleans up obsolete session data.

Description: Periodic maintenance task to keep the session table lean.
*/
func (repository *PostgresSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := repository.pool.Exec(ctx, deleteExpiredSessionsQuery, now)
	if err != nil {
		return 0, dberr.Wrap(err, "Session", "delete_expired_sessions")
	}
	return tag.RowsAffected(), nil
}

func sessionFields(session *Session) []any {
	return []any{
		&session.ID,
		&session.UserID,
		&session.UserAgent,
		&session.IPAddress,
		&session.ExpiresAt,
		&session.IsRevoked,
		&session.RevokedAt,
		&session.CreatedAt,
	}
}
