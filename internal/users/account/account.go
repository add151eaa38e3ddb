// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account exposes the signed-in user's own view of their identity and
active device sessions.

# Architecture

  - Entities: SessionInfo (DTO), Me.
  - Domain: This package reads through the auth repositories. It never writes users.
  - Security: Every route sits behind the session guard.
*/
package account

import (
	"time"

	"github.com/taibuivan/remark/internal/platform/sec"
	"github.com/taibuivan/remark/internal/users/auth"
)

// # Domain Entities

// SessionInfo provides a safety-mapped view of an active user session.
type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"userAgent"`
	IPAddress string    `json:"ipAddress"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsCurrent bool      `json:"isCurrent"` // True if this session authenticated the current request
}

// Me is the body of GET /api/v1/me.
type Me struct {
	User    *sec.Identity `json:"user"`
	Session *SessionInfo  `json:"session"`
}

// RevokeResult is the body of POST /api/v1/me/sessions/revoke-others.
type RevokeResult struct {
	Revoked int64 `json:"revoked"`
}

func newSessionInfo(session auth.Session, currentID string) SessionInfo {
	return SessionInfo{
		ID:        session.ID,
		UserAgent: session.UserAgent,
		IPAddress: session.IPAddress,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
		IsCurrent: session.ID == currentID,
	}
}
