// Package rlog provides the injectable logging interface used throughout
// the reactor, replacing the original core's global __FILE__/__LINE__
// logger macro with a Logger value each component is constructed with.
package rlog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging surface every reactor component depends on.
// Components take a Logger at construction time rather than reaching
// for a package-level global, so tests can inject a no-op or recording
// implementation.
type Logger interface {
	Debugf(template string, args ...any)
	Infof(template string, args ...any)
	Warnf(template string, args ...any)
	Errorf(template string, args ...any)
}

// zapLogger is the default Logger, backed by a zap.SugaredLogger.
type zapLogger struct {
	sugared *zap.SugaredLogger
}

// New builds a console-encoded Logger writing to stdout at the given
// level ("debug", "info", "warn", or "error"; unrecognized values fall
// back to debug).
func New(level string) Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)
	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), toZapLevel(level))
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return &zapLogger{sugared: logger.Sugar()}
}

func toZapLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.DebugLevel
	}
}

func (l *zapLogger) Debugf(template string, args ...any) { l.sugared.Debugf(template, args...) }
func (l *zapLogger) Infof(template string, args ...any)  { l.sugared.Infof(template, args...) }
func (l *zapLogger) Warnf(template string, args ...any)  { l.sugared.Warnf(template, args...) }
func (l *zapLogger) Errorf(template string, args ...any) { l.sugared.Errorf(template, args...) }

// Nop is a Logger that discards everything, for tests and for callers
// that do not configure a Config.Logger.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Nop returns a Logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}
