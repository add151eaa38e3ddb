// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		Create persists a brand-new user account.

		Returns:
		  - error: apperr Conflict when the email is taken, or persistence failures
	*/
	Create(ctx context.Context, user *User) error

	/*
		FindByEmail returns the account with the given (normalized) email.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr NotFound or database failures
	*/
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID returns the account with the given ID.
	FindByID(ctx context.Context, id string) (*User, error)
}

// # Session Data Access

// SessionRepository defines the data access contract for sign-in sessions.
type SessionRepository interface {

	// Create persists a new session.
	Create(ctx context.Context, session *Session) error

	/*
		FindByID returns the session row whatever its state.

		Callers decide liveness with [Session.Active].
	*/
	FindByID(ctx context.Context, id string) (*Session, error)

	// ListActive returns the live sessions of a user, newest first.
	ListActive(ctx context.Context, userID string, now time.Time) ([]Session, error)

	// Revoke marks a session as permanently invalidated. Revoking twice is not an error.
	Revoke(ctx context.Context, sessionID string) error

	// RevokeOthers revokes all sessions of userID except currentSessionID.
	RevokeOthers(ctx context.Context, userID, currentSessionID string) (int64, error)

	// DeleteExpired physically removes sessions that expired before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
