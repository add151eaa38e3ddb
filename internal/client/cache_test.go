// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingFetch returns value once released and reports each start on started.
type blockingFetch struct {
	value    string
	started  chan struct{}
	release  chan struct{}
	calls    atomic.Int32
	observed atomic.Value
}

func newBlockingFetch(value string) *blockingFetch {
	return &blockingFetch{value: value, started: make(chan struct{}, 4), release: make(chan struct{})}
}

func (f *blockingFetch) fetch(ctx context.Context) (string, error) {
	f.calls.Add(1)
	f.started <- struct{}{}
	<-f.release
	f.observed.Store(ctx.Err() == nil)
	return f.value, nil
}

func runQuery(ctx context.Context, cache *QueryCache, f *blockingFetch) <-chan error {
	done := make(chan error, 1)
	go func() {
		_, err := query(ctx, cache, KeyComments, f.fetch)
		done <- err
	}()
	return done
}

/*
TestQuery_CallerCancellationDoesNotFailFollowers keeps the shared fetch alive
after the caller that started it gives up.
*/
func TestQuery_CallerCancellationDoesNotFailFollowers(t *testing.T) {
	cache := NewQueryCache(time.Minute)
	f := newBlockingFetch("fresh")

	leaderCtx, cancel := context.WithCancel(context.Background())
	leader := runQuery(leaderCtx, cache, f)
	<-f.started

	follower := runQuery(context.Background(), cache, f)

	cancel()
	assert.ErrorIs(t, <-leader, context.Canceled)

	close(f.release)
	require.NoError(t, <-follower)
	assert.Equal(t, true, f.observed.Load())

	value, ok := cache.Get(KeyComments)
	require.True(t, ok)
	assert.Equal(t, "fresh", value)
}

/*
TestQuery_InvalidationDuringFetchIsNotCached drops a response that was in
flight when the key was invalidated.
*/
func TestQuery_InvalidationDuringFetchIsNotCached(t *testing.T) {
	cache := NewQueryCache(time.Minute)
	f := newBlockingFetch("stale")

	done := runQuery(context.Background(), cache, f)
	<-f.started

	cache.Invalidate(KeyComments)
	close(f.release)
	require.NoError(t, <-done)

	_, ok := cache.Get(KeyComments)
	assert.False(t, ok)

	// The next read fetches again instead of joining the old flight.
	value, err := query(context.Background(), cache, KeyComments, func(context.Context) (string, error) {
		return "current", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "current", value)
	assert.EqualValues(t, 1, f.calls.Load())
}

// TestQuery_PrimedValueWinsOverInFlightFetch keeps a value set by a mutation.
func TestQuery_PrimedValueWinsOverInFlightFetch(t *testing.T) {
	cache := NewQueryCache(time.Minute)
	f := newBlockingFetch("old")

	done := runQuery(context.Background(), cache, f)
	<-f.started

	cache.Set(KeyComments, "primed")
	close(f.release)
	require.NoError(t, <-done)

	value, ok := cache.Get(KeyComments)
	require.True(t, ok)
	assert.Equal(t, "primed", value)
}

func TestQuery_ClearDuringFetchIsNotCached(t *testing.T) {
	cache := NewQueryCache(time.Minute)
	f := newBlockingFetch("stale")

	done := runQuery(context.Background(), cache, f)
	<-f.started

	cache.Clear()
	close(f.release)
	require.NoError(t, <-done)

	_, ok := cache.Get(KeyComments)
	assert.False(t, ok)
}
