// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taibuivan/remark/internal/platform/apperr"
	"github.com/taibuivan/remark/internal/platform/ctxutil"
	"github.com/taibuivan/remark/internal/platform/i18n"
	"github.com/taibuivan/remark/internal/platform/middleware"
	"github.com/taibuivan/remark/internal/platform/sec"
	"github.com/taibuivan/remark/internal/platform/validate"
	"github.com/taibuivan/remark/pkg/uuid"
)

// # Contracts & Types

// TokenProvider signs and verifies session tokens. [*sec.TokenService] satisfies it.
type TokenProvider interface {
	Issue(userID, sessionID string, expiresAt time.Time) (string, error)
	Verify(token string) (*sec.SessionClaims, error)
}

// ClientInfo describes the device a session is opened from.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// SignInResult is returned by sign-up and sign-in.
type SignInResult struct {
	Token   string
	User    *User
	Session *Session
}

// SessionView is the body of GET /get-session.
type SessionView struct {
	Session *Session `json:"session"`
	User    *User    `json:"user"`
}

// Service implements the email/password authentication provider.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or session validation logic must be reviewed carefully.
type Service struct {
	users      UserRepository
	sessions   SessionRepository
	tokens     TokenProvider
	sessionTTL time.Duration
	now        func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(users UserRepository, sessions SessionRepository, tokens TokenProvider, sessionTTL time.Duration) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// # Registration Flow

/*
SignUp validates, hashes, and persists a new account, then opens a session.

Returns:
  - *SignInResult: Token and projections of the new user and session
  - error: Validation (400), Conflict (409) or storage errors
*/
func (service *Service) SignUp(ctx context.Context, input SignUpInput, client ClientInfo) (*SignInResult, error) {
	input.Email = NormalizeEmail(input.Email)
	if err := input.Validate(validate.ForContext(ctx)).Err(); err != nil {
		return nil, err
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	if _, err := service.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	} else if !isNotFound(err) {
		return nil, err
	}

	// Prevent storing plain-text passwords.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hashedPassword,
		CreatedAt:    service.now(),
	}

	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "user_registered", slog.String("user_id", user.ID))

	return service.openSession(ctx, user, client)
}

// # Authentication Flow

/*
SignIn verifies credentials and opens a session.

Description: Unknown emails and wrong passwords take the same time and yield
the same generic 401, so the endpoint cannot be used to enumerate accounts.
*/
func (service *Service) SignIn(ctx context.Context, input SignInInput, client ClientInfo) (*SignInResult, error) {
	input.Email = NormalizeEmail(input.Email)
	if err := input.Validate(validate.ForContext(ctx)).Err(); err != nil {
		return nil, err
	}

	invalid := apperr.Unauthorized(i18n.PrinterFromContext(ctx).Sprintf(i18n.MsgInvalidCredential))

	user, err := service.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		sec.BurnPasswordCheck(input.Password)
		return nil, invalid
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, invalid
	}

	return service.openSession(ctx, user, client)
}

/*
SignOut revokes the session the token was minted for.

Description: Idempotent. A missing, malformed or already revoked token is
not an error; only store failures are reported.
*/
func (service *Service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := service.tokens.Verify(token)
	if err != nil || !uuid.IsValid(claims.SessionID()) {
		return nil
	}

	if err := service.sessions.Revoke(ctx, claims.SessionID()); err != nil {
		return fmt.Errorf("auth_service_sign_out_failed: %w", err)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "session_revoked", slog.String("session_id", claims.SessionID()))
	return nil
}

// # Session Validation

/*
ValidateSession resolves a token to the identity of a live session.

Description: The signature only proves which session the token was minted
for. The session and user rows are read on every call, so revocation and
expiry take effect immediately.

Returns:
  - *sec.Identity: Read-only projection for the request context
  - error: wraps [middleware.ErrInvalidSession] when the token is not usable,
    any other error is a provider failure
*/
func (service *Service) ValidateSession(ctx context.Context, token string) (*sec.Identity, error) {
	view, err := service.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	return &sec.Identity{
		UserID:           view.User.ID,
		Name:             view.User.Name,
		Email:            view.User.Email,
		SessionID:        view.Session.ID,
		SessionExpiresAt: view.Session.ExpiresAt,
	}, nil
}

// GetSession returns the current session and user, or nil when the token is not usable.
func (service *Service) GetSession(ctx context.Context, token string) (*SessionView, error) {
	if token == "" {
		return nil, nil
	}

	view, err := service.resolve(ctx, token)
	if errors.Is(err, middleware.ErrInvalidSession) {
		return nil, nil
	}
	return view, err
}

// # Session Maintenance

// DeleteExpired removes sessions that can no longer authenticate anyone.
func (service *Service) DeleteExpired(ctx context.Context) (int64, error) {
	return service.sessions.DeleteExpired(ctx, service.now())
}

// # Internals

func (service *Service) openSession(ctx context.Context, user *User, client ClientInfo) (*SignInResult, error) {
	userAgent := truncateUTF8(client.UserAgent, maxUserAgentLength)

	now := service.now()
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: client.IPAddress,
		ExpiresAt: now.Add(service.sessionTTL),
		CreatedAt: now,
	}

	if err := service.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	token, err := service.tokens.Issue(user.ID, session.ID, session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &SignInResult{Token: token, User: user, Session: session}, nil
}

func (service *Service) resolve(ctx context.Context, token string) (*SessionView, error) {
	claims, err := service.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", middleware.ErrInvalidSession, err)
	}

	if !uuid.IsValid(claims.SessionID()) || !uuid.IsValid(claims.UserID()) {
		return nil, fmt.Errorf("%w: malformed claims", middleware.ErrInvalidSession)
	}

	session, err := service.sessions.FindByID(ctx, claims.SessionID())
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: unknown session", middleware.ErrInvalidSession)
		}
		return nil, err
	}

	if session.UserID != claims.UserID() || !session.Active(service.now()) {
		return nil, fmt.Errorf("%w: session revoked or expired", middleware.ErrInvalidSession)
	}

	user, err := service.users.FindByID(ctx, session.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: unknown user", middleware.ErrInvalidSession)
		}
		return nil, err
	}

	return &SessionView{Session: session, User: user}, nil
}

// truncateUTF8 cuts s to at most limit bytes without splitting a character.
// Invalid sequences are replaced so the result is always valid UTF-8.
func truncateUTF8(s string, limit int) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func isNotFound(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.HTTPStatus == http.StatusNotFound
}
