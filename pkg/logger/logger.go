// Package logger предоставляет структурированный JSON-логгер поверх zap.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger — интерфейс логгера, используемый во всех слоях приложения.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(err error, format string, args ...any)
	With(args ...any) Logger
}

type zapLogger struct {
	log *zap.SugaredLogger
}

// NewZapLogger создаёт JSON-логгер, пишущий в stdout.
// Уровень задаётся переменной окружения LOG_LEVEL (debug, info, warn, error).
func NewZapLogger() Logger {
	return New(os.Stdout, levelFromEnv(os.Getenv("LOG_LEVEL")))
}

// New создаёт JSON-логгер с указанным writer и уровнем.
func New(w io.Writer, level zapcore.Level) Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), level)

	return &zapLogger{
		log: zap.New(core).With(zap.String("service.name", "storefront")).Sugar(),
	}
}

// NewNop возвращает логгер, который ничего не пишет.
func NewNop() Logger {
	return &zapLogger{log: zap.NewNop().Sugar()}
}

func (l *zapLogger) Debugf(format string, args ...any) {
	l.log.Debugf(format, args...)
}

func (l *zapLogger) Infof(format string, args ...any) {
	l.log.Infof(format, args...)
}

func (l *zapLogger) Warnf(format string, args ...any) {
	l.log.Warnf(format, args...)
}

func (l *zapLogger) Errorf(err error, format string, args ...any) {
	l.log.With(zap.Error(err)).Errorf(format, args...)
}

func (l *zapLogger) With(args ...any) Logger {
	return &zapLogger{log: l.log.With(args...)}
}

func levelFromEnv(v string) zapcore.Level {
	switch v {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
