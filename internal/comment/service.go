// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/remark/internal/platform/apperr"
	"github.com/taibuivan/remark/internal/platform/ctxutil"
	"github.com/taibuivan/remark/internal/platform/i18n"
	"github.com/taibuivan/remark/internal/platform/validate"
)

// Observer is notified of persisted comments. [*metrics.Metrics] satisfies it.
type Observer interface {
	CommentCreated()
}

// # Service Layer

// Service orchestrates validation and persistence for comments.
type Service struct {
	repo     Repository
	observer Observer
}

// NewService constructs a new [Service]. observer may be nil.
func NewService(repo Repository, observer Observer) *Service {
	return &Service{repo: repo, observer: observer}
}

// List returns the whole board, most recent first.
func (service *Service) List(ctx context.Context) ([]Comment, error) {
	comments, err := service.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []Comment{}
	}
	return comments, nil
}

/*
Get fetches a single comment.

Description: IDs start at 1, so a non-positive ID is answered with NotFound
without querying the store.

Returns:
  - *Comment: The stored record, verbatim
  - error: NotFound (localized) or store errors
*/
func (service *Service) Get(ctx context.Context, id int64) (*Comment, error) {
	if id <= 0 {
		return nil, notFound(ctx)
	}

	found, err := service.repo.FindByID(ctx, id)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusNotFound {
			return nil, notFound(ctx)
		}
		return nil, err
	}
	return found, nil
}

/*
Create validates the input and persists it.

Description: Validation completes before the store is touched; a rejected
input never produces a record. There is no idempotency key, so identical
submissions create identical comments with distinct IDs.
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*Comment, error) {
	if err := input.Validate(validate.ForContext(ctx)).Err(); err != nil {
		return nil, err
	}

	created, err := service.repo.Create(ctx, input.Content)
	if err != nil {
		return nil, err
	}

	if service.observer != nil {
		service.observer.CommentCreated()
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "comment_created",
		slog.Int64("comment_id", created.ID),
		slog.Int("bytes", len(created.Comment)),
	)

	return created, nil
}

func notFound(ctx context.Context) *apperr.AppError {
	appError := apperr.NotFound(resourceName)
	appError.Message = i18n.PrinterFromContext(ctx).Sprintf(i18n.MsgCommentNotFound)
	return appError
}
