// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package logger builds the process-wide [*slog.Logger].
//
// Production emits JSON lines for log shippers. Development emits the
// human-readable text format. Both carry the "app" attribute.
package logger

import (
	"io"
	"log/slog"

	"github.com/taibuivan/remark/internal/platform/config"
)

// New returns a logger writing to out at the given level, formatted for env.
func New(out io.Writer, env config.Environment, level slog.Level) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if env == config.Production {
		handler = slog.NewJSONHandler(out, options)
	} else {
		handler = slog.NewTextHandler(out, options)
	}

	return slog.New(handler).With(slog.String("app", "remark"))
}
