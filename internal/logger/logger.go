// Package logger builds the zap loggers used by contract-mapper.
//
// The engine itself never owns a global logger: callers inject a
// *zap.SugaredLogger through codec.Options and tests use Nop.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names for structured logging.
const (
	FieldCode      = "code"
	FieldEntry     = "entry"
	FieldField     = "field"
	FieldSeverity  = "severity"
	FieldTable     = "table"
	FieldColumn    = "column"
	FieldPath      = "path"
	FieldOperation = "operation"
	FieldEngine    = "engine"
	FieldVersion   = "version"
	FieldCount     = "count"
	FieldError     = "error"
)

// New returns a sugared logger at the given level ("debug", "info", "warn",
// "error"). Unknown levels fall back to info. Development mode adds caller
// information and human-readable console output.
func New(level string, development bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return l.Sugar(), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// ParseLevel maps a level name to a zapcore level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
