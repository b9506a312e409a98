// Package log holds the leveled logging helpers used across filerender.
package log

import (
	"context"
	"sync/atomic"

	"golang.org/x/exp/slog"
)

var logger atomic.Pointer[slog.Logger]

// SetLogger replaces the logger used by the package helpers. A nil logger
// restores slog's default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logger returns the logger used by the package helpers.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

func Error(ctx context.Context, msg string, err error, args ...any) {
	Logger().ErrorContext(ctx, msg, withError(err, args)...)
}

func Warn(ctx context.Context, msg string, err error, args ...any) {
	Logger().WarnContext(ctx, msg, withError(err, args)...)
}

func Info(ctx context.Context, msg string, err error, args ...any) {
	Logger().InfoContext(ctx, msg, withError(err, args)...)
}

func Debug(ctx context.Context, msg string, err error, args ...any) {
	Logger().DebugContext(ctx, msg, withError(err, args)...)
}

func withError(err error, args []any) []any {
	if err == nil {
		return args
	}
	return append([]any{"error", err}, args...)
}
