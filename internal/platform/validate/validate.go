// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Localization
//
// Messages are rendered through an x/text printer. The zero Validator uses the
// default language; [New] binds one to a negotiated language.
package validate

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/message"

	"github.com/taibuivan/remark/internal/platform/apperr"
	"github.com/taibuivan/remark/internal/platform/i18n"
)

// InvalidJSON returns the localized invalid-body error for ctx's language.
func InvalidJSON(ctx context.Context) *apperr.AppError {
	return apperr.ValidationError(i18n.PrinterFromContext(ctx).Sprintf(i18n.MsgInvalidJSON))
}

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs    []apperr.FieldError
	printer *message.Printer
}

// New returns a Validator whose messages are rendered by printer.
func New(printer *message.Printer) *Validator {
	return &Validator{printer: printer}
}

// ForContext returns a Validator localized to the language negotiated for ctx.
func ForContext(ctx context.Context) *Validator {
	return New(i18n.PrinterFromContext(ctx))
}

// T renders a catalog message in the validator's language.
func (v *Validator) T(key string, args ...any) string {
	if v.printer == nil {
		v.printer = i18n.Printer(i18n.Default)
	}
	return v.printer.Sprintf(key, args...)
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, v.T(i18n.MsgRequired))
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, v.T(i18n.MsgMaxLen, max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, v.T(i18n.MsgMinLen, min))
	}
	return v
}

// Email fails if the value is not a bare RFC 5322 address ("a@b.c", no display name).
func (v *Validator) Email(field, value string) *Validator {
	address, err := mail.ParseAddress(value)
	if err != nil || address.Address != value {
		v.add(field, v.T(i18n.MsgEmail))
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("content", len(content) == 0, v.T(i18n.MsgCommentEmpty))
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method. Call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError(v.T(i18n.MsgValidationFailed), v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
