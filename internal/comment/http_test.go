// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/remark/internal/comment"
	"github.com/taibuivan/remark/internal/platform/middleware"
)

// spyRepository records whether the store was reached at all.
type spyRepository struct {
	*comment.MemoryRepository
	calls int
}

func (s *spyRepository) Create(ctx context.Context, content string) (*comment.Comment, error) {
	s.calls++
	return s.MemoryRepository.Create(ctx, content)
}

func (s *spyRepository) List(ctx context.Context) ([]comment.Comment, error) {
	s.calls++
	return s.MemoryRepository.List(ctx)
}

func (s *spyRepository) FindByID(ctx context.Context, id int64) (*comment.Comment, error) {
	s.calls++
	return s.MemoryRepository.FindByID(ctx, id)
}

func newRouter(repo comment.Repository) http.Handler {
	return middleware.Language()(comment.NewHandler(comment.NewService(repo, nil)).Routes())
}

func do(t *testing.T, handler http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var decoded map[string]any
	if strings.HasPrefix(strings.TrimSpace(recorder.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	}
	return recorder, decoded
}

/*
TestHTTP_Scenario walks through create, get, missing and malformed IDs, and list.
*/
func TestHTTP_Scenario(t *testing.T) {
	handler := newRouter(comment.NewMemoryRepository())

	recorder, body := do(t, handler, http.MethodPost, "/", `{"content":"Hello"}`)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"id":1,"comment":"Hello"}`, recorder.Body.String())
	assert.EqualValues(t, 1, body["id"])

	recorder, _ = do(t, handler, http.MethodGet, "/1", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"id":1,"comment":"Hello"}`, recorder.Body.String())

	recorder, body = do(t, handler, http.MethodGet, "/999", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Not Found", body["error"])

	recorder, body = do(t, handler, http.MethodGet, "/abc", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Identifiant invalide", body["message"])

	recorder, _ = do(t, handler, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[{"id":1,"comment":"Hello"}]`, recorder.Body.String())
}

func TestHTTP_InvalidIDNeverReachesStore(t *testing.T) {
	spy := &spyRepository{MemoryRepository: comment.NewMemoryRepository()}
	handler := newRouter(spy)

	for _, segment := range []string{"abc", "1.5", "1e3", "0x10", "%20", "12abc"} {
		recorder, _ := do(t, handler, http.MethodGet, "/"+segment, "")
		assert.Equal(t, http.StatusBadRequest, recorder.Code, segment)
	}
	assert.Zero(t, spy.calls)
}

func TestHTTP_EmptyListIsArray(t *testing.T) {
	recorder, _ := do(t, newRouter(comment.NewMemoryRepository()), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, recorder.Body.String())
}

func TestHTTP_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty_content", `{"content":""}`, "Le commentaire ne peut pas être vide"},
		{"missing_content", `{}`, "Le commentaire ne peut pas être vide"},
		{"too_long", `{"content":"` + strings.Repeat("a", 501) + `"}`, "Le commentaire est trop long"},
		{"wrong_type", `{"content":123}`, "Type invalide : string attendu, number reçu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spy := &spyRepository{MemoryRepository: comment.NewMemoryRepository()}
			recorder, body := do(t, newRouter(spy), http.MethodPost, "/", tt.body)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Equal(t, "VALIDATION_ERROR", body["code"])

			details, ok := body["details"].([]any)
			require.True(t, ok)
			require.Len(t, details, 1)
			detail := details[0].(map[string]any)
			assert.Equal(t, "content", detail["field"])
			assert.Equal(t, tt.want, detail["message"])

			assert.Zero(t, spy.calls)
		})
	}
}

func TestHTTP_MalformedJSON(t *testing.T) {
	spy := &spyRepository{MemoryRepository: comment.NewMemoryRepository()}

	for _, body := range []string{`{"content":`, `not json`, `{"content":"a"} trailing`, `{"content":"a"}{}`} {
		recorder, decoded := do(t, newRouter(spy), http.MethodPost, "/", body)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, body)
		assert.Equal(t, "VALIDATION_ERROR", decoded["code"])
	}
	assert.Zero(t, spy.calls)
}

func TestHTTP_EnglishMessages(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"content":""}`))
	request.Header.Set("Accept-Language", "en")
	recorder := httptest.NewRecorder()

	newRouter(comment.NewMemoryRepository()).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Comment cannot be empty")
}

func TestHTTP_StoreFailureIs500(t *testing.T) {
	repo := comment.NewMemoryRepository()
	repo.Err = errors.New("dial tcp: connection refused")

	recorder, body := do(t, newRouter(repo), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "Internal Server Error", body["error"])
	assert.NotContains(t, recorder.Body.String(), "connection refused")
}
