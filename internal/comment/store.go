// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// Repository is the persistence gateway for comments.
type Repository interface {
	// Create stores content and returns the record with its assigned ID.
	Create(ctx context.Context, content string) (*Comment, error)

	// List returns every comment, highest ID first. An empty board is an empty slice.
	List(ctx context.Context) ([]Comment, error)

	// FindByID returns the comment or an apperr NotFound.
	FindByID(ctx context.Context, id int64) (*Comment, error)
}
