package log

var _ Logger = NoopLogger{}

// NoopLogger discards everything.
type NoopLogger struct{}

func NewNoopLogger() Logger {
	return NoopLogger{}
}

func (NoopLogger) Debug(string, ...any) {}
func (NoopLogger) Info(string, ...any) {}
func (NoopLogger) Warn(string, ...any) {}
func (NoopLogger) Error(string, ...any) {}
func (n NoopLogger) WithKV(string, any) Logger { return n }
func (n NoopLogger) WithName(string) Logger { return n }
func (NoopLogger) Name() string { return "noop" }
