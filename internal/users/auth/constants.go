// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Authentication Constraints

const (
	// PasswordMinLength is the minimum number of characters in a password.
	PasswordMinLength = 8

	// PasswordMaxBytes is bcrypt's input limit; longer passwords are rejected by the hasher.
	PasswordMaxBytes = 72

	// NameMaxLength is the maximum number of characters in a display name.
	NameMaxLength = 100

	// maxUserAgentLength bounds the user agent stored with a session.
	maxUserAgentLength = 512
)
