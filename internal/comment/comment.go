// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment implements the comment board: an append-only list of short
anonymous messages stored in PostgreSQL.

A comment is created once and never updated or deleted. Identifiers are
assigned by the database and grow with creation order.
*/
package comment

import (
	"unicode/utf8"

	"github.com/taibuivan/remark/internal/platform/i18n"
	"github.com/taibuivan/remark/internal/platform/validate"
)

// # Domain Constants

const (
	// FieldContent is the request field carrying the comment text.
	FieldContent = "content"

	// MaxContentLength is the maximum number of characters in a comment.
	MaxContentLength = 500
)

// # Domain Entities

// Comment is a single persisted message.
type Comment struct {
	ID      int64  `json:"id"`
	Comment string `json:"comment"`
}

// CreateInput is the inbound payload of a create request.
type CreateInput struct {
	Content string `json:"content"`
}

// Validate applies the comment rules to v.
//
// Length is counted in Unicode code points, as the column's char_length check
// does, so an emoji counts once. Whitespace is significant: "   " is a
// valid comment. The same rules run on the client before a request is sent.
func (input CreateInput) Validate(v *validate.Validator) *validate.Validator {
	length := utf8.RuneCountInString(input.Content)
	return v.
		Custom(FieldContent, length == 0, v.T(i18n.MsgCommentEmpty)).
		Custom(FieldContent, length > MaxContentLength, v.T(i18n.MsgCommentTooLong))
}
