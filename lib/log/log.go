// Package log is a context wrapper around slog.Logger
package log

import (
	"context"
	"os"
	"runtime/debug"
	"testing"
	"time"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/sloghuman"
	"cdr.dev/slog/sloggers/slogtest"

	"oss.terrastruct.com/arrange/lib/env"
)

var _default = slog.Make(sloghuman.Sink(os.Stderr)).Named("default")

type loggerKey struct{}

// From returns the logger carried by ctx, or a default stderr logger with a
// warning when there is none.
func From(ctx context.Context) slog.Logger {
	l, ok := ctx.Value(loggerKey{}).(slog.Logger)
	if !ok {
		_default.Warn(ctx, "missing slog.Logger in context, see lib/log.With", slog.F("stack", string(debug.Stack())))
		return _default
	}
	return l
}

func With(ctx context.Context, l slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// WithTB calls With with the result of slogtest.Make.
func WithTB(ctx context.Context, t testing.TB, opts *slogtest.Options) context.Context {
	l := slogtest.Make(t, opts)
	if env.Debug() {
		l = l.Leveled(slog.LevelDebug)
	}
	return With(ctx, l)
}

// Leveled returns ctx with its logger filtered at level.
func Leveled(ctx context.Context, level slog.Level) context.Context {
	return With(ctx, From(ctx).Leveled(level))
}

// Fields returns ctx with a logger that attaches fields to every entry.
func Fields(ctx context.Context, fields ...slog.Field) context.Context {
	return With(ctx, From(ctx).With(fields...))
}

func Debug(ctx context.Context, msg string, fields ...slog.Field) {
	slog.Helper()
	From(ctx).Debug(ctx, msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...slog.Field) {
	slog.Helper()
	From(ctx).Warn(ctx, msg, fields...)
}

// WithTimeout is context.WithTimeout with $ARRANGE_TIMEOUT taking precedence
// over timeout. A non-positive timeout means none.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if d, ok := env.Timeout(); ok {
		timeout = d
	}
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
