// Package log is the structured logging facade used across the module.
//
// Components accept a Logger and never reach for a global. ZapLogger is the
// production implementation; NoopLogger is the default wherever none is given.
package log

import "context"

// Logger is a structured, leveled logger.
// keysAndValues are alternating keys and values, e.g. "method", "getinfo".
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	// WithKV returns a logger that adds key/value to every entry.
	WithKV(key string, value any) Logger
	// WithName returns a logger for a named subsystem, e.g. "transport".
	WithName(name string) Logger
	Name() string
}

// Level is the minimum severity a logger emits.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type contextKey struct{}

// SetContextLogger attaches lg to ctx. A nil lg stores a NoopLogger.
func SetContextLogger(ctx context.Context, lg Logger) context.Context {
	if lg == nil {
		lg = NewNoopLogger()
	}
	return context.WithValue(ctx, contextKey{}, lg)
}

// FromContext returns the logger attached to ctx, or a NoopLogger.
func FromContext(ctx context.Context) Logger {
	if lg, ok := ctx.Value(contextKey{}).(Logger); ok {
		return lg
	}
	return NewNoopLogger()
}
