// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/remark/internal/platform/apperr"
	"github.com/taibuivan/remark/internal/platform/constants"
	"github.com/taibuivan/remark/internal/platform/ctxutil"
	"github.com/taibuivan/remark/internal/platform/i18n"
	"github.com/taibuivan/remark/internal/platform/respond"
	"github.com/taibuivan/remark/internal/platform/sec"
)

// ErrInvalidSession is returned by a [SessionValidator] when the token does not
// resolve to a live session. Any other error is a provider failure.
var ErrInvalidSession = errors.New("invalid session")

// SessionValidator resolves a session token to the identity it belongs to.
//
// # Why an interface?
//
// Defining SessionValidator here decouples the middleware from the auth
// provider, allowing us to inject fakes during unit testing.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*sec.Identity, error)
}

type identitySlotKey struct{}

// identitySlot lets the outer logger see the identity attached further down the chain.
type identitySlot struct {
	userID string
}

func withIdentitySlot(ctx context.Context, slot *identitySlot) context.Context {
	return context.WithValue(ctx, identitySlotKey{}, slot)
}

func reportIdentity(ctx context.Context, identity *sec.Identity) {
	if slot, ok := ctx.Value(identitySlotKey{}).(*identitySlot); ok {
		slot.userID = identity.UserID
	}
}

// SessionToken extracts the credential material of a request.
//
// # Flow
//  1. 'Authorization: Bearer <token>' wins when present.
//  2. Otherwise the session cookie is used.
//  3. An empty string means no credential was presented.
func SessionToken(request *http.Request) string {
	if authHeader := request.Header.Get(constants.HeaderAuthorization); authHeader != "" {
		scheme, token, found := strings.Cut(authHeader, " ")
		if found && strings.EqualFold(scheme, "bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}

	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Authenticate resolves the session of the request, if any.
//
// # Flow
//  1. No credential: the request proceeds as anonymous.
//  2. Credential present: validate it against the provider (every request, no cache).
//  3. On success, inject [*sec.Identity] into the request context.
//  4. On failure, proceed as anonymous; [RequireAuth] turns that into a 401.
func Authenticate(validator SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token := SessionToken(request)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Session Verification ───────────────────────────────────────
			ctx := request.Context()
			identity, err := validator.ValidateSession(ctx, token)
			if err != nil {
				level := slog.LevelDebug
				if !errors.Is(err, ErrInvalidSession) {
					level = slog.LevelWarn
				}
				ctxutil.GetLogger(ctx).Log(ctx, level, "session_rejected", slog.Any("error", err))
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			reportIdentity(ctx, identity)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithIdentity(ctx, identity)))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetIdentity(request.Context()) == nil {
			message := i18n.PrinterFromContext(request.Context()).Sprintf(i18n.MsgAuthRequired)
			respond.Error(writer, request, apperr.Unauthorized(message))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
