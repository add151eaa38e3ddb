// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"net/http"

	"github.com/taibuivan/remark/internal/platform/validate"
	"github.com/taibuivan/remark/internal/users/account"
	"github.com/taibuivan/remark/internal/users/auth"
)

const authPath = "/api/v1/auth"

// AuthResult is the body of sign-up and sign-in.
type AuthResult struct {
	Token string     `json:"token"`
	User  *auth.User `json:"user"`
}

// SignUp registers an account and keeps the new session.
func (c *Client) SignUp(ctx context.Context, input auth.SignUpInput) (*AuthResult, error) {
	input.Email = auth.NormalizeEmail(input.Email)
	if err := input.Validate(validate.ForContext(ctx)).Err(); err != nil {
		return nil, err
	}
	return c.exchange(ctx, authPath+"/sign-up/email", input)
}

// SignIn exchanges credentials for a session and keeps it.
func (c *Client) SignIn(ctx context.Context, input auth.SignInInput) (*AuthResult, error) {
	input.Email = auth.NormalizeEmail(input.Email)
	if err := input.Validate(validate.ForContext(ctx)).Err(); err != nil {
		return nil, err
	}
	return c.exchange(ctx, authPath+"/sign-in/email", input)
}

// SignOut revokes the current session and forgets the token.
func (c *Client) SignOut(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, authPath+"/sign-out", nil, nil); err != nil {
		return err
	}
	c.setToken("")
	return nil
}

// Session returns the current session, or nil when signed out.
func (c *Client) Session(ctx context.Context) (*auth.SessionView, error) {
	var view *auth.SessionView
	if err := c.do(ctx, http.MethodGet, authPath+"/get-session", nil, &view); err != nil {
		return nil, err
	}
	return view, nil
}

// Me calls the protected /me route. A missing or dead session is a 401 [*APIError].
func (c *Client) Me(ctx context.Context) (*account.Me, error) {
	var me account.Me
	if err := c.do(ctx, http.MethodGet, "/api/v1/me", nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

func (c *Client) exchange(ctx context.Context, path string, input any) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, path, input, &result); err != nil {
		return nil, err
	}
	c.setToken(result.Token)
	return &result, nil
}
