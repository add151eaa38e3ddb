// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/remark/internal/platform/ctxutil"
	"github.com/taibuivan/remark/internal/platform/sec"
	"github.com/taibuivan/remark/internal/users/auth"
)

// # Service Layer

// Service answers questions about the caller's own account.
//
// The identity it receives has already been revalidated by the session guard.
type Service struct {
	sessionRepository auth.SessionRepository
	now               func() time.Time
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(sessions auth.SessionRepository) *Service {
	return &Service{sessionRepository: sessions, now: time.Now}
}

/*
Me returns the caller's identity and current session.

Returns:
  - *Me: Read-only identity projection and the session it arrived on
  - error: Storage failures
*/
func (service *Service) Me(ctx context.Context, identity *sec.Identity) (*Me, error) {
	session, err := service.sessionRepository.FindByID(ctx, identity.SessionID)
	if err != nil {
		return nil, fmt.Errorf("account_service_session_lookup_failed: %w", err)
	}

	info := newSessionInfo(*session, identity.SessionID)
	return &Me{User: identity, Session: &info}, nil
}

// ListSessions returns the caller's active sessions, newest first.
func (service *Service) ListSessions(ctx context.Context, identity *sec.Identity) ([]SessionInfo, error) {
	sessions, err := service.sessionRepository.ListActive(ctx, identity.UserID, service.now())
	if err != nil {
		return nil, fmt.Errorf("account_service_list_sessions_failed: %w", err)
	}

	infos := make([]SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, newSessionInfo(session, identity.SessionID))
	}
	return infos, nil
}

/*
RevokeOtherSessions signs out every device except the one making the request.

Description: Used after a suspected credential leak. The current session
stays valid so the caller is not logged out.
*/
func (service *Service) RevokeOtherSessions(ctx context.Context, identity *sec.Identity) (*RevokeResult, error) {
	revoked, err := service.sessionRepository.RevokeOthers(ctx, identity.UserID, identity.SessionID)
	if err != nil {
		return nil, fmt.Errorf("account_service_revoke_others_failed: %w", err)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "sessions_revoked",
		slog.String("user_id", identity.UserID),
		slog.Int64("revoked", revoked),
	)
	return &RevokeResult{Revoked: revoked}, nil
}
