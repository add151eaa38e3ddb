// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"sync"

	"github.com/taibuivan/remark/internal/platform/apperr"
)

// MemoryRepository is an in-process [Repository] used by tests and local demos.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	comments []Comment

	// Err, when set, is returned by every call.
	Err error
}

// NewMemoryRepository returns an empty store whose first ID is 1.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

// Create implements [Repository].
func (repository *MemoryRepository) Create(_ context.Context, content string) (*Comment, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.Err != nil {
		return nil, repository.Err
	}

	created := Comment{ID: repository.nextID, Comment: content}
	repository.nextID++
	repository.comments = append(repository.comments, created)
	return &created, nil
}

// List implements [Repository].
func (repository *MemoryRepository) List(_ context.Context) ([]Comment, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	if repository.Err != nil {
		return nil, repository.Err
	}

	comments := make([]Comment, 0, len(repository.comments))
	for i := len(repository.comments) - 1; i >= 0; i-- {
		comments = append(comments, repository.comments[i])
	}
	return comments, nil
}

// FindByID implements [Repository].
func (repository *MemoryRepository) FindByID(_ context.Context, id int64) (*Comment, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	if repository.Err != nil {
		return nil, repository.Err
	}

	for _, c := range repository.comments {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, apperr.NotFound(resourceName)
}

// Len reports how many comments are stored.
func (repository *MemoryRepository) Len() int {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	return len(repository.comments)
}
