// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"log/slog"
	"time"
)

// RunJanitor deletes expired sessions every interval until ctx is cancelled.
// It blocks; run it in its own goroutine.
func RunJanitor(ctx context.Context, service *Service, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deleted, err := service.DeleteExpired(ctx)
			if err != nil {
				logger.ErrorContext(ctx, "session_janitor_failed", slog.Any("error", err))
				continue
			}
			if deleted > 0 {
				logger.InfoContext(ctx, "session_janitor_swept", slog.Int64("deleted", deleted))
			}
		case <-ctx.Done():
			return
		}
	}
}
