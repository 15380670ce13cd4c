package log

import (
	"os"
	"time"

	zaplogfmt "github.com/jsternberg/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ Logger = &ZapLogger{}

// ZapLogger is a Logger backed by a zap SugaredLogger.
type ZapLogger struct {
	lg *zap.SugaredLogger
}

// Config selects the encoding, threshold and destination of a ZapLogger.
// The env tags let cleanenv fill it straight from the environment.
type Config struct {
	Format string `env:"LTC_RPC_LOG_FORMAT" env-default:"console" yaml:"format"` // console, logfmt or json
	Level  Level  `env:"LTC_RPC_LOG_LEVEL" env-default:"info" yaml:"level"`
	Output string `env:"LTC_RPC_LOG_OUTPUT" env-default:"stderr" yaml:"output"` // stderr or stdout
}

// NewZapLogger builds a logger from conf. Extra write syncers receive a copy
// of every entry, which is how tests capture output.
func NewZapLogger(conf Config, extraWriters ...zapcore.WriteSyncer) Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = func(ts time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(ts.UTC().Format(time.RFC3339))
	}

	var encoder zapcore.Encoder
	switch conf.Format {
	case "logfmt":
		encoder = zaplogfmt.NewEncoder(encCfg)
	case "json":
		encoder = zapcore.NewJSONEncoder(encCfg)
	default:
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	var ws zapcore.WriteSyncer
	switch conf.Output {
	case "stdout":
		ws = zapcore.Lock(os.Stdout)
	case "discard":
		ws = zapcore.AddSync(discard{})
	default:
		ws = zapcore.Lock(os.Stderr)
	}
	wss := zapcore.NewMultiWriteSyncer(append(extraWriters, ws)...)

	core := zapcore.NewCore(encoder, wss, toZapLevel(conf.Level))
	return &ZapLogger{lg: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()}
}

func (l *ZapLogger) Debug(msg string, keysAndValues ...any) { l.lg.Debugw(msg, keysAndValues...) }
func (l *ZapLogger) Info(msg string, keysAndValues ...any) { l.lg.Infow(msg, keysAndValues...) }
func (l *ZapLogger) Warn(msg string, keysAndValues ...any) { l.lg.Warnw(msg, keysAndValues...) }
func (l *ZapLogger) Error(msg string, keysAndValues ...any) { l.lg.Errorw(msg, keysAndValues...) }

func (l *ZapLogger) WithKV(key string, value any) Logger {
	return &ZapLogger{lg: l.lg.With(key, value)}
}

// WithName appends name to the logger hierarchy, separated by dots.
func (l *ZapLogger) WithName(name string) Logger {
	return &ZapLogger{lg: l.lg.Named(name)}
}

func (l *ZapLogger) Name() string {
	return l.lg.Desugar().Name()
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.lg.Sync()
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
