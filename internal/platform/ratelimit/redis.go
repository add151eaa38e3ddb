// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a fixed-window limiter backed by INCR and PEXPIRE.
type Redis struct {
	client redis.UniversalClient
	prefix string
	points int
	window time.Duration
	now    func() time.Time
}

// NewRedis returns a limiter storing counters under prefix.
func NewRedis(client redis.UniversalClient, prefix string, points int, window time.Duration) *Redis {
	return &Redis{
		client: client,
		prefix: prefix,
		points: points,
		window: window,
		now:    time.Now,
	}
}

// Allow implements [Limiter].
func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	now := r.now()
	windowStart := now.Truncate(r.window)
	resetAt := windowStart.Add(r.window)
	counterKey := r.prefix + key + ":" + strconv.FormatInt(windowStart.Unix(), 10)

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, counterKey)
		pipe.PExpire(ctx, counterKey, r.window)
		return nil
	})
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit: redis incr: %w", err)
	}

	count := int(incr.Val())
	decision := Decision{
		Limit:   r.points,
		ResetAt: resetAt,
	}

	if count > r.points {
		decision.RetryAfter = resetAt.Sub(now)
		return decision, nil
	}

	decision.Allowed = true
	decision.Remaining = r.points - count
	return decision, nil
}
