// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Query keys.
const (
	KeyComments = "comments"
)

// CommentKey is the cache key of a single comment query.
func CommentKey(id int64) string {
	return "comment:" + strconv.FormatInt(id, 10)
}

// sharedFetchTimeout bounds a fetch that outlives the caller which started it.
const sharedFetchTimeout = 30 * time.Second

type cacheEntry struct {
	value     any
	fetchedAt time.Time
}

// QueryCache holds query results by name. Concurrent misses for the same key share one fetch.
//
// Every write or invalidation of a key bumps its generation. A fetch only
// stores its result if the generation it started under is still current, so
// a response that was in flight during an invalidation is returned to its
// callers but never cached.
type QueryCache struct {
	staleTime time.Duration
	now       func() time.Time

	mu          sync.RWMutex
	entries     map[string]cacheEntry
	generations map[string]uint64
	epoch       uint64
	group       singleflight.Group
}

// NewQueryCache returns an empty cache whose entries stay fresh for staleTime.
func NewQueryCache(staleTime time.Duration) *QueryCache {
	return &QueryCache{
		staleTime:   staleTime,
		now:         time.Now,
		entries:     make(map[string]cacheEntry),
		generations: make(map[string]uint64),
	}
}

// Get returns the fresh value stored under key.
func (cache *QueryCache) Get(key string) (any, bool) {
	cache.mu.RLock()
	defer cache.mu.RUnlock()

	entry, ok := cache.entries[key]
	if !ok || cache.now().Sub(entry.fetchedAt) >= cache.staleTime {
		return nil, false
	}
	return entry.value, true
}

// Set stores value under key as freshly fetched.
func (cache *QueryCache) Set(key string, value any) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.generations[key]++
	cache.entries[key] = cacheEntry{value: value, fetchedAt: cache.now()}
}

// Invalidate drops the listed keys so the next read refetches.
func (cache *QueryCache) Invalidate(keys ...string) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	for _, key := range keys {
		cache.generations[key]++
		delete(cache.entries, key)
	}
}

// Clear drops every entry.
func (cache *QueryCache) Clear() {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.epoch++
	clear(cache.entries)
}

// generation identifies the current version of key. It only grows.
func (cache *QueryCache) generation(key string) uint64 {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	return cache.epoch + cache.generations[key]
}

// setIfCurrent stores value unless key was written or invalidated since gen.
func (cache *QueryCache) setIfCurrent(key string, gen uint64, value any) bool {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if cache.epoch+cache.generations[key] != gen {
		return false
	}
	cache.entries[key] = cacheEntry{value: value, fetchedAt: cache.now()}
	return true
}

// query serves key from cache, or runs fetch once for all concurrent callers.
// Errors are never cached.
//
// The shared fetch is detached from the caller that started it, so one
// caller giving up does not fail the others. Each caller still returns as
// soon as its own ctx is done.
func query[T any](ctx context.Context, cache *QueryCache, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if value, ok := cache.Get(key); ok {
		return value.(T), nil
	}

	gen := cache.generation(key)
	flight := cache.group.DoChan(key+"@"+strconv.FormatUint(gen, 10), func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()

		result, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		cache.setIfCurrent(key, gen, result)
		return result, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case shared := <-flight:
		if shared.Err != nil {
			return zero, shared.Err
		}
		return shared.Val.(T), nil
	}
}
