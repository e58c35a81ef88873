package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin leveled wrapper around zap's sugared logger so call
// sites can use printf-style messages.
type Logger struct {
	sugar *zap.SugaredLogger
}

func New() *Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.TimeKey = "ts"

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// Config above is static; Build only fails on bad output paths.
		l = zap.NewNop()
	}
	return &Logger{sugar: l.Sugar()}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}
