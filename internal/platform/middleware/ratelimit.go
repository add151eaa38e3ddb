// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/taibuivan/remark/internal/platform/apperr"
	"github.com/taibuivan/remark/internal/platform/constants"
	"github.com/taibuivan/remark/internal/platform/ctxutil"
	"github.com/taibuivan/remark/internal/platform/metrics"
	"github.com/taibuivan/remark/internal/platform/ratelimit"
	"github.com/taibuivan/remark/internal/platform/respond"
)

// RateLimit limits requests per client IP.
//
// When the limiter backend fails, the request is let through and the failure logged.
// collector may be nil.
func RateLimit(limiter ratelimit.Limiter, collector *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			decision, err := limiter.Allow(ctx, RealIP(request))
			if err != nil {
				ctxutil.GetLogger(ctx).WarnContext(ctx, "rate_limit_unavailable", slog.Any("error", err))
				next.ServeHTTP(writer, request)
				return
			}

			header := writer.Header()
			header.Set(constants.HeaderRateLimitLimit, strconv.Itoa(decision.Limit))
			header.Set(constants.HeaderRateLimitRemaining, strconv.Itoa(decision.Remaining))
			header.Set(constants.HeaderRateLimitReset, strconv.Itoa(decision.ResetSeconds(time.Now())))

			if !decision.Allowed {
				if collector != nil {
					collector.RateLimited()
				}
				respond.Error(writer, request, apperr.RateLimited(decision.RetryAfterSeconds()))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
