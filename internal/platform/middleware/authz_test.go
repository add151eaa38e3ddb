// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/remark/internal/platform/ctxutil"
	"github.com/taibuivan/remark/internal/platform/middleware"
	"github.com/taibuivan/remark/internal/platform/sec"
)

type fakeValidator struct {
	sessions map[string]*sec.Identity
	err      error
	calls    int
}

func (f *fakeValidator) ValidateSession(_ context.Context, token string) (*sec.Identity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	identity, ok := f.sessions[token]
	if !ok {
		return nil, middleware.ErrInvalidSession
	}
	return identity, nil
}

func guarded(validator middleware.SessionValidator, seen **sec.Identity) http.Handler {
	return middleware.Authenticate(validator)(middleware.RequireAuth(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*seen = ctxutil.GetIdentity(request.Context())
		writer.WriteHeader(http.StatusOK)
	})))
}

func TestSessionToken(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, middleware.SessionToken(request))

	request.AddCookie(&http.Cookie{Name: "remark.session_token", Value: "cookie-token"})
	assert.Equal(t, "cookie-token", middleware.SessionToken(request))

	request.Header.Set("Authorization", "Bearer header-token")
	assert.Equal(t, "header-token", middleware.SessionToken(request))

	request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Empty(t, middleware.SessionToken(request))
}

func TestRequireAuth(t *testing.T) {
	ada := &sec.Identity{UserID: "u-1", Name: "Ada", Email: "ada@example.com", SessionID: "s-1"}

	tests := []struct {
		name       string
		validator  *fakeValidator
		prepare    func(*http.Request)
		wantStatus int
	}{
		{
			name:       "missing_credentials",
			validator:  &fakeValidator{},
			prepare:    func(*http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:      "unknown_token",
			validator: &fakeValidator{sessions: map[string]*sec.Identity{}},
			prepare: func(request *http.Request) {
				request.Header.Set("Authorization", "Bearer forged")
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:      "provider_failure",
			validator: &fakeValidator{err: errors.New("db down")},
			prepare: func(request *http.Request) {
				request.AddCookie(&http.Cookie{Name: "remark.session_token", Value: "t"})
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:      "valid_cookie",
			validator: &fakeValidator{sessions: map[string]*sec.Identity{"good": ada}},
			prepare: func(request *http.Request) {
				request.AddCookie(&http.Cookie{Name: "remark.session_token", Value: "good"})
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *sec.Identity
			request := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			tt.prepare(request)
			recorder := httptest.NewRecorder()

			guarded(tt.validator, &seen).ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, ada, seen)
				return
			}

			assert.Nil(t, seen)
			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, "Unauthorized", body["error"])
			assert.Equal(t, "UNAUTHORIZED", body["code"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestAuthenticate_RevalidatesEveryRequest(t *testing.T) {
	validator := &fakeValidator{sessions: map[string]*sec.Identity{"good": {UserID: "u-1"}}}
	var seen *sec.Identity
	handler := guarded(validator, &seen)

	for i := 0; i < 3; i++ {
		request := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		request.Header.Set("Authorization", "Bearer good")
		handler.ServeHTTP(httptest.NewRecorder(), request)
	}
	assert.Equal(t, 3, validator.calls)

	delete(validator.sessions, "good")
	request := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	request.Header.Set("Authorization", "Bearer good")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticate_InvalidTokenStaysAnonymousOnPublicRoutes(t *testing.T) {
	handler := middleware.Authenticate(&fakeValidator{})(okHandler)

	request := httptest.NewRequest(http.MethodGet, "/api/v1/comment", nil)
	request.Header.Set("Authorization", "Bearer stale")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
