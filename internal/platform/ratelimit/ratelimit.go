// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ratelimit decides whether a client may issue another request.

Two backends implement [Limiter]:

  - [Memory]: per-key token buckets (golang.org/x/time/rate), local to one process.
  - [Redis]: fixed-window counters shared by every process pointed at the same Redis.

Both allow Points requests per Window per key.
*/
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of one rate-limit check.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds (minimum 1 when denied).
func (d Decision) RetryAfterSeconds() int {
	if d.Allowed {
		return 0
	}
	seconds := int((d.RetryAfter + time.Second - 1) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return seconds
}

// ResetSeconds is the number of whole seconds from now until the window
// resets, rounded up. It is never negative.
func (d Decision) ResetSeconds(now time.Time) int {
	remaining := d.ResetAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int((remaining + time.Second - 1) / time.Second)
}

// Limiter consumes one point for key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}
