// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/remark/internal/platform/apperr"
)

// MemoryStore keeps users and sessions in process memory.
// It implements both [UserRepository] and [SessionRepository] for tests and local demos.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]User
	sessions map[string]Session

	// Err, when set, is returned by every call.
	Err error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]User),
		sessions: make(map[string]Session),
	}
}

// Users exposes the store as a [UserRepository].
func (store *MemoryStore) Users() UserRepository { return memoryUsers{store} }

// Sessions exposes the store as a [SessionRepository].
func (store *MemoryStore) Sessions() SessionRepository { return memorySessions{store} }

// SessionCount reports how many session rows exist, revoked ones included.
func (store *MemoryStore) SessionCount() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.sessions)
}

type memoryUsers struct{ *MemoryStore }

func (store memoryUsers) Create(_ context.Context, user *User) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.Err != nil {
		return store.Err
	}
	for _, existing := range store.users {
		if existing.Email == user.Email {
			return apperr.Conflict("User already exists")
		}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	user.UpdatedAt = user.CreatedAt
	store.users[user.ID] = *user
	return nil
}

func (store memoryUsers) FindByEmail(_ context.Context, email string) (*User, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if store.Err != nil {
		return nil, store.Err
	}
	for _, user := range store.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (store memoryUsers) FindByID(_ context.Context, id string) (*User, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if store.Err != nil {
		return nil, store.Err
	}
	user, ok := store.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return &user, nil
}

type memorySessions struct{ *MemoryStore }

func (store memorySessions) Create(_ context.Context, session *Session) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.Err != nil {
		return store.Err
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	store.sessions[session.ID] = *session
	return nil
}

func (store memorySessions) FindByID(_ context.Context, id string) (*Session, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if store.Err != nil {
		return nil, store.Err
	}
	session, ok := store.sessions[id]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	return &session, nil
}

func (store memorySessions) ListActive(_ context.Context, userID string, now time.Time) ([]Session, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if store.Err != nil {
		return nil, store.Err
	}
	sessions := make([]Session, 0)
	for _, session := range store.sessions {
		if session.UserID == userID && session.Active(now) {
			sessions = append(sessions, session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}

func (store memorySessions) Revoke(_ context.Context, sessionID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.Err != nil {
		return store.Err
	}
	if session, ok := store.sessions[sessionID]; ok {
		revoke(&session)
		store.sessions[sessionID] = session
	}
	return nil
}

func (store memorySessions) RevokeOthers(_ context.Context, userID, currentSessionID string) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.Err != nil {
		return 0, store.Err
	}
	var revoked int64
	for id, session := range store.sessions {
		if session.UserID == userID && id != currentSessionID && !session.IsRevoked {
			revoke(&session)
			store.sessions[id] = session
			revoked++
		}
	}
	return revoked, nil
}

func (store memorySessions) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.Err != nil {
		return 0, store.Err
	}
	var deleted int64
	for id, session := range store.sessions {
		if !session.ExpiresAt.After(now) {
			delete(store.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

func revoke(session *Session) {
	session.IsRevoked = true
	if session.RevokedAt == nil {
		now := time.Now()
		session.RevokedAt = &now
	}
}
