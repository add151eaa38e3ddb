// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"net/http"
	"slices"
	"strconv"

	"github.com/taibuivan/remark/internal/comment"
	"github.com/taibuivan/remark/internal/platform/validate"
)

const commentPath = "/api/v1/comment"

// ListComments returns every comment, newest first. Served from cache while fresh.
func (c *Client) ListComments(ctx context.Context) ([]comment.Comment, error) {
	comments, err := query(ctx, c.cache, KeyComments, func(ctx context.Context) ([]comment.Comment, error) {
		comments := make([]comment.Comment, 0)
		if err := c.do(ctx, http.MethodGet, commentPath, nil, &comments); err != nil {
			return nil, err
		}
		return comments, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(comments), nil
}

// GetComment returns one comment. Served from cache while fresh.
func (c *Client) GetComment(ctx context.Context, id int64) (*comment.Comment, error) {
	found, err := query(ctx, c.cache, CommentKey(id), func(ctx context.Context) (comment.Comment, error) {
		var found comment.Comment
		err := c.do(ctx, http.MethodGet, commentPath+"/"+strconv.FormatInt(id, 10), nil, &found)
		return found, err
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

/*
CreateComment posts a new comment.

Description: The content is validated locally first, so an invalid comment
never reaches the network. On success the list query is invalidated and the
new comment's own query is primed.
*/
func (c *Client) CreateComment(ctx context.Context, content string) (*comment.Comment, error) {
	input := comment.CreateInput{Content: content}
	if err := input.Validate(validate.ForContext(ctx)).Err(); err != nil {
		return nil, err
	}

	var created comment.Comment
	if err := c.do(ctx, http.MethodPost, commentPath, input, &created); err != nil {
		return nil, err
	}

	c.cache.Invalidate(KeyComments)
	c.cache.Set(CommentKey(created.ID), created)
	return &created, nil
}
