// Package log builds the structured logr.Logger used throughout the
// scanning engine, backed by zap and zapr. It has no remote error-reporting
// sink: this engine makes no network calls, so there is nothing to report
// to a remote crash-tracking service.
package log

import (
	"io"
	"strconv"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	levelMu      sync.Mutex
	currentLevel = zap.NewAtomicLevel()
)

// Option configures the logger constructed by New.
type Option func(*options)

type options struct {
	jsonSinks    []io.Writer
	consoleSinks []io.Writer
}

// WithJSONSink adds a JSON-encoded output destination.
func WithJSONSink(w io.Writer) Option {
	return func(o *options) { o.jsonSinks = append(o.jsonSinks, w) }
}

// WithConsoleSink adds a human-readable, tab-separated output destination.
func WithConsoleSink(w io.Writer) Option {
	return func(o *options) { o.consoleSinks = append(o.consoleSinks, w) }
}

// SetLevel adjusts the global minimum verbosity. Level 0 is Info; higher
// levels are progressively more verbose (logr's V(n) convention).
func SetLevel(level int) {
	levelMu.Lock()
	defer levelMu.Unlock()
	currentLevel.SetLevel(zapcore.Level(-level))
}

// New builds a named logr.Logger and a flush function that must be called
// before process exit to drain any buffered writes.
func New(serviceName string, opts ...Option) (logr.Logger, func() error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeLevel = levelEncoder
	encoderCfg.TimeKey = "ts"

	var cores []zapcore.Core
	for _, w := range o.jsonSinks {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(w), currentLevel))
	}
	consoleCfg := encoderCfg
	consoleCfg.ConsoleSeparator = "\t"
	for _, w := range o.consoleSinks {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.AddSync(w), currentLevel))
	}

	core := zapcore.NewNopCore()
	if len(cores) > 0 {
		core = zapcore.NewTee(cores...)
	}

	zapLogger := zap.New(core).Named(serviceName)
	logger := zapr.NewLogger(zapLogger)
	return logger, zapLogger.Sync
}

// levelEncoder renders logr's numeric V-levels as "info-0", "info-1", ... and
// "error" for zap's error level, matching the verbosity scheme logr/zapr maps
// V(n) onto (zap level -n).
func levelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if level == zapcore.ErrorLevel {
		enc.AppendString("error")
		return
	}
	enc.AppendString("info-" + strconv.Itoa(int(-level)))
}
