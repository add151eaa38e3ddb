// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session) and the email/password
authentication provider mounted under /api/v1/auth.

# Architecture

The rest of the API never reads these tables directly. It only receives the
read-only [sec.Identity] projection that [Service.ValidateSession] builds.
*/
package auth

import (
	"strings"
	"time"

	"github.com/taibuivan/remark/internal/platform/i18n"
	"github.com/taibuivan/remark/internal/platform/validate"
)

// # Domain Entities

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Session represents one signed-in device.
type Session struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	UserAgent string     `json:"userAgent"`
	IPAddress string     `json:"ipAddress"`
	ExpiresAt time.Time  `json:"expiresAt"`
	IsRevoked bool       `json:"-"`
	RevokedAt *time.Time `json:"-"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Active reports whether the session can still authenticate requests at now.
func (session *Session) Active(now time.Time) bool {
	return !session.IsRevoked && now.Before(session.ExpiresAt)
}

// # Field Identifiers

// Field names for validation and payload mapping in the authentication domain.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
	FieldSuccess  = "success"
)

// # Inputs

// SignUpInput is the payload of POST /sign-up/email.
type SignUpInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Validate applies the registration rules to v.
func (input SignUpInput) Validate(v *validate.Validator) *validate.Validator {
	return v.
		Email(FieldEmail, input.Email).
		MinLen(FieldPassword, input.Password, PasswordMinLength).
		Custom(FieldPassword, len(input.Password) > PasswordMaxBytes, v.T(i18n.MsgMaxLen, PasswordMaxBytes)).
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, NameMaxLength)
}

// SignInInput is the payload of POST /sign-in/email.
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate applies the sign-in rules to v.
func (input SignInInput) Validate(v *validate.Validator) *validate.Validator {
	return v.
		Email(FieldEmail, input.Email).
		Custom(FieldPassword, input.Password == "", v.T(i18n.MsgPasswordRequired))
}

// NormalizeEmail is the stored form of an email address. It runs before validation.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
