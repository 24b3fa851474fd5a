package logger

import (
	"io"
	"os"

	"github.com/labybel/labybel/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger logs the given object as a single structured field named `key`.
type ZapLogger struct {
	l *zap.Logger
}

// Package-level logger to be used across packages after Init.
var S *ZapLogger

// Init initializes the package logger using settings from config.
// Output goes to stderr so command output on stdout stays machine readable.
func Init(cfg *config.Config) (*ZapLogger, error) {
	l := New(cfg.LogLevel, os.Stderr)
	S = l
	return l, nil
}

// New builds a JSON zap logger writing to w at the named level.
func New(levelName string, w io.Writer) *ZapLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		parseLevel(levelName),
	)

	return &ZapLogger{l: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))}
}

func parseLevel(name string) zapcore.Level {
	switch name {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Close flushes any buffered loggers.
func Close() error {
	if S == nil {
		return nil
	}
	return S.Sync()
}

// Sync flushes buffered entries.
func (z *ZapLogger) Sync() error { return z.l.Sync() }

func (z *ZapLogger) InfoObj(msg, key string, obj interface{}) {
	z.l.Info(msg, zap.Any(key, obj))
}

func (z *ZapLogger) DebugObj(msg, key string, obj interface{}) {
	z.l.Debug(msg, zap.Any(key, obj))
}

func (z *ZapLogger) WarnObj(msg, key string, obj interface{}) {
	z.l.Warn(msg, zap.Any(key, obj))
}

func (z *ZapLogger) ErrorObj(msg, key string, obj interface{}) {
	z.l.Error(msg, zap.Any(key, obj))
}
