package log

import (
	"context"
	"log/slog"
	"os"
)

// DefaultContextProvider returns the default context used by context-unaware
// logging functions.
var DefaultContextProvider = context.TODO

// defaultLog is the logger used by the package-level functions.
var defaultLog = Make(os.Stderr)

// Default returns the package default logger.
func Default() Logger { return defaultLog }

// Config updates the default logger with the given options.
func Config(opts ...Option) {
	defaultLog = defaultLog.Wrap(opts...)
}

type skipKey struct{}

// baseSkip is the runtime.Callers skip reaching the caller of a Logger
// method: 0=runtime.Callers, 1=logContext, 2=method, 3=caller.
const baseSkip = 3

// callerSkip returns the runtime.Callers skip for the logging call site.
// Package-level functions mark ctx with one extra frame.
func callerSkip(ctx context.Context) int {
	if ctx == nil {
		return baseSkip
	}

	if n, ok := ctx.Value(skipKey{}).(int); ok {
		return baseSkip + n
	}

	return baseSkip
}

func pkgContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = DefaultContextProvider()
	}

	return context.WithValue(ctx, skipKey{}, 1)
}

// TraceContext logs a message at Trace level using the default logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.TraceContext(pkgContext(ctx), msg, attrs...)
}

// DebugContext logs a message at Debug level using the default logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.DebugContext(pkgContext(ctx), msg, attrs...)
}

// Debug logs a message at Debug level using the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	defaultLog.DebugContext(pkgContext(DefaultContextProvider()), msg, attrs...)
}

// InfoContext logs a message at Info level using the default logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.InfoContext(pkgContext(ctx), msg, attrs...)
}

// Info logs a message at Info level using the default logger.
func Info(msg string, attrs ...slog.Attr) {
	defaultLog.InfoContext(pkgContext(DefaultContextProvider()), msg, attrs...)
}

// WarnContext logs a message at Warn level using the default logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.WarnContext(pkgContext(ctx), msg, attrs...)
}

// Warn logs a message at Warn level using the default logger.
func Warn(msg string, attrs ...slog.Attr) {
	defaultLog.WarnContext(pkgContext(DefaultContextProvider()), msg, attrs...)
}

// ErrorContext logs a message at Error level using the default logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.ErrorContext(pkgContext(ctx), msg, attrs...)
}

// Error logs a message at Error level using the default logger.
func Error(msg string, attrs ...slog.Attr) {
	defaultLog.ErrorContext(pkgContext(DefaultContextProvider()), msg, attrs...)
}

// With returns a new [Logger] derived from the default logger that includes
// the given attributes in each log message.
func With(attrs ...slog.Attr) Logger {
	return defaultLog.With(attrs...)
}
