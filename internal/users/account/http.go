// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/remark/internal/platform/middleware"
	requestutil "github.com/taibuivan/remark/internal/platform/request"
	"github.com/taibuivan/remark/internal/platform/respond"
)

// Handler implements the HTTP layer for the caller's account.
//
// # Security
//
// Every endpoint runs behind [middleware.RequireAuth]. The guard is attached
// per route, so unknown paths still resolve to 404 before authentication.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	protected := router.With(middleware.RequireAuth)

	protected.Get("/", handler.getMe)

	// Session Security
	protected.Get("/sessions", handler.listSessions)
	protected.Post("/sessions/revoke-others", handler.revokeOtherSessions)

	return router
}

/*
GET /api/v1/me

Response:
  - 200: {user, session}
  - 401: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	me, err := handler.accountService.Me(request.Context(), identity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, me)
}

/*
GET /api/v1/me/sessions

Response:
  - 200: SessionInfo[] (current session flagged)
*/
func (handler *Handler) listSessions(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessions, err := handler.accountService.ListSessions(request.Context(), identity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessions)
}

/*
POST /api/v1/me/sessions/revoke-others

Response:
  - 200: {revoked}
*/
func (handler *Handler) revokeOtherSessions(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.accountService.RevokeOtherSessions(request.Context(), identity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
