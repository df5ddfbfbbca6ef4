// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package diag threads a per-parse correlation ID and structured logger
// through context.Context, so a parser or a demo CLI wrapping it can
// attribute log lines to one invocation without every call site taking a
// logger argument.
package diag

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type contextKey int

const loggerKey contextKey = iota

// NewContext returns a context carrying a logger scoped to a fresh
// correlation ID, derived from parent. The logger is slog.Default() with a
// "correlation_id" attribute attached; callers that want a different base
// logger should use WithLogger instead.
func NewContext(parent context.Context) context.Context {
	id := uuid.New().String()
	logger := slog.Default().With(slog.String("correlation_id", id))
	return context.WithValue(parent, loggerKey, logger)
}

// WithLogger returns a context carrying logger directly, for callers that
// already have a correlation ID (e.g. propagated from an upstream request).
func WithLogger(parent context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(parent, loggerKey, logger)
}

// Logger returns the logger attached to ctx by NewContext/WithLogger, or
// slog.Default() if none was attached.
func Logger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
