// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package i18n negotiates the response language and renders localized messages.

French is the default language; English is served when the client prefers it
through Accept-Language. Messages are looked up by key in an x/text catalog.

Usage:

	tag := i18n.Negotiate(request.Header.Get("Accept-Language"))
	printer := i18n.Printer(tag)
	printer.Sprintf(i18n.MsgCommentEmpty)
*/
package i18n

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/taibuivan/remark/internal/platform/ctxkey"
)

// # Message Keys

const (
	MsgValidationFailed  = "validation.failed"
	MsgInvalidJSON       = "validation.invalid_json"
	MsgRequired          = "validation.required"
	MsgMinLen            = "validation.min_len"
	MsgMaxLen            = "validation.max_len"
	MsgEmail             = "validation.email"
	MsgInvalidType       = "validation.invalid_type"
	MsgCommentEmpty      = "comment.content.empty"
	MsgCommentTooLong    = "comment.content.too_long"
	MsgPasswordRequired  = "auth.password.required"
	MsgInvalidCommentID  = "comment.id.invalid"
	MsgCommentNotFound   = "comment.not_found"
	MsgAuthRequired      = "auth.required"
	MsgInvalidCredential = "auth.invalid_credentials"
)

// Default is the language used when negotiation finds no better match.
var Default = language.French

var supported = []language.Tag{language.French, language.English}

var matcher = language.NewMatcher(supported)

var messages = map[string]map[language.Tag]string{
	MsgValidationFailed: {
		language.French:  "La validation a échoué",
		language.English: "Validation failed",
	},
	MsgInvalidJSON: {
		language.French:  "Corps de requête JSON invalide",
		language.English: "Invalid JSON payload",
	},
	MsgRequired: {
		language.French:  "Ce champ est obligatoire",
		language.English: "This field is required",
	},
	MsgMinLen: {
		language.French:  "Minimum %d caractères",
		language.English: "Minimum %d characters",
	},
	MsgMaxLen: {
		language.French:  "Maximum %d caractères",
		language.English: "Maximum %d characters",
	},
	MsgEmail: {
		language.French:  "Adresse e-mail invalide",
		language.English: "Invalid email address",
	},
	MsgInvalidType: {
		language.French:  "Type invalide : %s attendu, %s reçu",
		language.English: "Expected %s, received %s",
	},
	MsgCommentEmpty: {
		language.French:  "Le commentaire ne peut pas être vide",
		language.English: "Comment cannot be empty",
	},
	MsgCommentTooLong: {
		language.French:  "Le commentaire est trop long",
		language.English: "Comment is too long",
	},
	MsgPasswordRequired: {
		language.French:  "Le mot de passe est obligatoire",
		language.English: "Password is required",
	},
	MsgInvalidCommentID: {
		language.French:  "Identifiant invalide",
		language.English: "Invalid ID",
	},
	MsgCommentNotFound: {
		language.French:  "Commentaire introuvable",
		language.English: "Comment not found",
	},
	MsgAuthRequired: {
		language.French:  "Authentification requise pour accéder à cette ressource",
		language.English: "Authentication required to access this resource",
	},
	MsgInvalidCredential: {
		language.French:  "Identifiants invalides",
		language.English: "Invalid email or password",
	},
}

var cat = buildCatalog()

func buildCatalog() catalog.Catalog {
	builder := catalog.NewBuilder(catalog.Fallback(Default))
	for key, translations := range messages {
		for tag, text := range translations {
			// SetString only fails on malformed message syntax, which the table above never contains.
			_ = builder.SetString(tag, key, text)
		}
	}
	return builder
}

// # Negotiation

// Negotiate picks the best supported language for an Accept-Language header value.
func Negotiate(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return Default
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	return supported[index]
}

// Printer returns a message printer bound to the catalog for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(cat))
}

// # Context

// WithLanguage returns a new context carrying the negotiated language.
func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLanguage, tag)
}

// FromContext returns the negotiated language, or [Default] when absent.
func FromContext(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(ctxkey.KeyLanguage).(language.Tag); ok {
		return tag
	}
	return Default
}

// PrinterFromContext is shorthand for Printer(FromContext(ctx)).
func PrinterFromContext(ctx context.Context) *message.Printer {
	return Printer(FromContext(ctx))
}
