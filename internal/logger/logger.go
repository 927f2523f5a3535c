package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a sugared zap logger with key/value helpers.
type Logger struct {
	*zap.SugaredLogger
}

// New builds a logger for the given level name (debug, info, warn, error).
// Dev mode switches to the console encoder with colored levels.
// An empty logFile logs to stdout.
func New(level string, logFile string, dev bool) *Logger {
	var config zap.Config
	if dev {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	}
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	if logFile != "" {
		config.OutputPaths = []string{logFile}
	}
	config.ErrorOutputPaths = []string{"stderr"}

	base, err := config.Build(
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		base = zap.NewExample()
	}

	return &Logger{SugaredLogger: base.Sugar()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func parseLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// WithFields returns a logger with additional structured fields.
func (l *Logger) WithFields(fields ...any) *Logger {
	return &Logger{SugaredLogger: l.With(fields...)}
}

// WithError returns a logger with an error field attached.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return &Logger{SugaredLogger: l.With("error", err.Error())}
}

func (l *Logger) Debug(msg string, fields ...any) {
	l.Debugw(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...any) {
	l.Infow(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...any) {
	l.Warnw(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...any) {
	l.Errorw(msg, fields...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.SugaredLogger.Sync()
}
