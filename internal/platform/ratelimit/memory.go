// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Memory is an in-process token bucket limiter keyed by client.
//
// A bucket holds Points tokens and refills at Points per Window.
type Memory struct {
	points int
	window time.Duration
	every  rate.Limit
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewMemory builds the limiter and starts a janitor that drops buckets idle for
// longer than cleanup. The janitor stops when ctx is cancelled.
func NewMemory(ctx context.Context, points int, window, cleanup time.Duration) *Memory {
	m := &Memory{
		points:  points,
		window:  window,
		every:   rate.Limit(float64(points) / window.Seconds()),
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}

	go func() {
		ticker := time.NewTicker(cleanup)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.sweep(window)
			case <-ctx.Done():
				return
			}
		}
	}()

	return m
}

// Allow implements [Limiter].
func (m *Memory) Allow(_ context.Context, key string) (Decision, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, found := m.buckets[key]
	if !found {
		entry = &bucket{limiter: rate.NewLimiter(m.every, m.points)}
		m.buckets[key] = entry
	}
	entry.lastSeen = now

	decision := Decision{Limit: m.points}

	reservation := entry.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		decision.RetryAfter = delay
		decision.ResetAt = now.Add(delay)
		return decision, nil
	}

	decision.Allowed = true
	tokens := entry.limiter.TokensAt(now)
	decision.Remaining = int(tokens)
	missing := float64(m.points) - tokens
	decision.ResetAt = now.Add(time.Duration(missing / float64(m.every) * float64(time.Second)))
	return decision, nil
}

// Len reports how many keys are currently tracked.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buckets)
}

func (m *Memory) sweep(idle time.Duration) {
	cutoff := m.now().Add(-idle)

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, entry := range m.buckets {
		if entry.lastSeen.Before(cutoff) {
			delete(m.buckets, key)
		}
	}
}
