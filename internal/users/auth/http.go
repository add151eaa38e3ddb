// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/remark/internal/platform/constants"
	"github.com/taibuivan/remark/internal/platform/middleware"
	requestutil "github.com/taibuivan/remark/internal/platform/request"
	"github.com/taibuivan/remark/internal/platform/respond"
)

// # Definitions & Constructors

// Handler is the authentication provider mounted under /api/v1/auth.
//
// # Scope
//
// It owns the whole credential exchange. The rest of the API only sees the
// [middleware.SessionValidator] side of [Service].
type Handler struct {
	authService   *Service
	secureCookies bool
}

// NewHandler constructs a new [Handler]. secureCookies must be true behind HTTPS.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{authService: service, secureCookies: secureCookies}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /sign-up/email : Creates an account and signs in.
//   - POST /sign-in/email : Exchanges credentials for a session.
//   - POST /sign-out      : Revokes the current session.
//   - GET  /get-session   : Returns the current session or null.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/sign-up/email", handler.signUp)
	router.Post("/sign-in/email", handler.signIn)
	router.Post("/sign-out", handler.signOut)
	router.Get("/get-session", handler.getSession)

	return router
}

// signInResponse is the body of sign-up and sign-in.
type signInResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

/*
POST /api/v1/auth/sign-up/email

Response:
  - 200: {token, user} and the session cookie
  - 400: Validation failure
  - 409: Email already registered
*/
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	var input SignUpInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.SignUp(request.Context(), input, clientInfo(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, result.Token, result.Session.ExpiresAt)
	respond.OK(writer, signInResponse{Token: result.Token, User: result.User})
}

/*
POST /api/v1/auth/sign-in/email

Response:
  - 200: {token, user} and the session cookie
  - 401: Invalid credentials
*/
func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request) {
	var input SignInInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.SignIn(request.Context(), input, clientInfo(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, result.Token, result.Session.ExpiresAt)
	respond.OK(writer, signInResponse{Token: result.Token, User: result.User})
}

/*
POST /api/v1/auth/sign-out

Description: Always clears the cookie. Succeeds even without a session.
*/
func (handler *Handler) signOut(writer http.ResponseWriter, request *http.Request) {
	if err := handler.authService.SignOut(request.Context(), middleware.SessionToken(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearSessionCookie(writer)
	respond.OK(writer, map[string]bool{FieldSuccess: true})
}

/*
GET /api/v1/auth/get-session

Response:
  - 200: {session, user} or null
*/
func (handler *Handler) getSession(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.authService.GetSession(request.Context(), middleware.SessionToken(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// A nil view encodes as null.
	respond.OK(writer, view)
}

// # Cookie Helpers

func (handler *Handler) setSessionCookie(writer http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (handler *Handler) clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clientInfo(request *http.Request) ClientInfo {
	return ClientInfo{
		UserAgent: request.UserAgent(),
		IPAddress: middleware.RealIP(request),
	}
}

// # Adapter

// Provider adapts the authentication sub-application to the API. It serves
// the /api/v1/auth routes and validates sessions for the guard.
type Provider struct {
	*Service
	http.Handler
}

// NewProvider binds a [Service] to its routes.
func NewProvider(service *Service, secureCookies bool) *Provider {
	return &Provider{
		Service: service,
		Handler: NewHandler(service, secureCookies).Routes(),
	}
}
