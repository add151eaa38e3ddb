// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "time"

// Identity is the read-only projection of a verified session attached to a request.
//
// It is rebuilt from the session store on every protected request and never cached.
type Identity struct {
	UserID           string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	SessionID        string    `json:"-"`
	SessionExpiresAt time.Time `json:"-"`
}
