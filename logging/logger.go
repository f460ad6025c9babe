// Package logging handles logging throughout the library.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/flowtask/ghlib/runctx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	logurzap "logur.dev/adapter/zap"
	"logur.dev/logur"
)

// Logger is the logging interface used throughout the code.
type Logger interface {
	logur.Logger
	logur.LoggerContext
	io.Closer
}

type logger struct {
	logur.LoggerFacade
	io.Closer
}

func NewLoggerFromLevel(lvl LogLevel) (Logger, error) {
	structuredLogger, err := NewStructuredLoggerFromLevel(lvl)
	if err != nil {
		return nil, err
	}

	ctxLogger := logur.WithContextExtractor(
		structuredLogger,
		func(ctx context.Context) map[string]interface{} {
			return runctx.ExtractFields(ctx)
		},
	)

	return &logger{
		LoggerFacade: ctxLogger,
		Closer:       structuredLogger,
	}, nil
}

type StructuredLogger struct {
	z     *zap.SugaredLogger
	level zap.AtomicLevel
	logur.Logger
}

func NewStructuredLoggerFromLevel(lvl LogLevel) (*StructuredLogger, error) {
	cfg := zap.NewProductionConfig()

	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(lvl.zLevel)
	return newStructuredLogger(cfg)
}

func newStructuredLogger(cfg zap.Config) (*StructuredLogger, error) {
	baseLogger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "initializing structured logger")
	}

	baseLogger = baseLogger.
		WithOptions(zap.AddCallerSkip(1)).
		WithOptions(zap.AddStacktrace(zapcore.WarnLevel)).
		// creates isolated context for all future kv pairs
		With(zap.Namespace("json"))

	return &StructuredLogger{
		z:      baseLogger.Sugar(),
		level:  cfg.Level,
		Logger: logurzap.New(baseLogger),
	}, nil
}

func (l *StructuredLogger) SetLevel(lvl LogLevel) {
	if l != nil {
		l.level.SetLevel(lvl.zLevel)
	}
}

func (l *StructuredLogger) Close() error {
	return l.z.Sync()
}

// NewNoopCtxLogger creates a logger instance backed by the test's own log
// buffer. Used for testing.
func NewNoopCtxLogger(t *testing.T) Logger {
	level := zap.DebugLevel
	zapLogger := zaptest.NewLogger(t, zaptest.Level(level))
	sLogger := &StructuredLogger{
		z:      zapLogger.Sugar(),
		level:  zap.NewAtomicLevelAt(level),
		Logger: logurzap.New(zapLogger),
	}

	return &logger{
		LoggerFacade: logur.WithContextExtractor(
			sLogger,
			func(ctx context.Context) map[string]interface{} {
				return runctx.ExtractFields(ctx)
			},
		),
		Closer: io.NopCloser(nil),
	}
}

type LogLevel struct {
	zLevel   zapcore.Level
	shortStr string
}

var (
	Debug = LogLevel{
		zLevel:   zapcore.DebugLevel,
		shortStr: "debug",
	}
	Info = LogLevel{
		zLevel:   zapcore.InfoLevel,
		shortStr: "info",
	}
	Warn = LogLevel{
		zLevel:   zapcore.WarnLevel,
		shortStr: "warn",
	}
	Error = LogLevel{
		zLevel:   zapcore.ErrorLevel,
		shortStr: "error",
	}
)

func (l LogLevel) String() string {
	return l.shortStr
}

// ParseLogLevel maps a config/env string onto a level.
func ParseLogLevel(raw string) (LogLevel, error) {
	switch strings.ToLower(raw) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warn":
		return Warn, nil
	case "error":
		return Error, nil
	}
	return LogLevel{}, fmt.Errorf("log level %q is not supported", raw)
}

// UnmarshalText lets LogLevel be used directly in yaml/json config records.
func (l *LogLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseLogLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
