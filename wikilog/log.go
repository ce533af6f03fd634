// Package wikilog is a small facade over zap exposing structured field
// helpers, so the rest of the module never imports zap directly.
package wikilog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger passed into the mediawiki client
// (see mediawiki.WithLogger).
type Logger struct {
	z *zap.Logger
}

// New builds a production-configured Logger (JSON encoding, info level).
func New() (Logger, error) {
	z, err := zap.NewProduction()
	if err != nil {
		return Logger{}, err
	}
	return Logger{z: z}, nil
}

// Nop returns a Logger that discards everything, for tests and callers
// that don't care about log output.
func Nop() Logger {
	return Logger{z: zap.NewNop()}
}

func (l Logger) Debug(msg string, fields ...zapcore.Field) {
	if l.z == nil {
		return
	}
	l.z.Debug(msg, fields...)
}

func (l Logger) Info(msg string, fields ...zapcore.Field) {
	if l.z == nil {
		return
	}
	l.z.Info(msg, fields...)
}

func (l Logger) Warn(msg string, fields ...zapcore.Field) {
	if l.z == nil {
		return
	}
	l.z.Warn(msg, fields...)
}

func (l Logger) Error(msg string, fields ...zapcore.Field) {
	if l.z == nil {
		return
	}
	l.z.Error(msg, fields...)
}

// With returns a child Logger carrying fields on every subsequent call.
func (l Logger) With(fields ...zapcore.Field) Logger {
	if l.z == nil {
		return l
	}
	return Logger{z: l.z.With(fields...)}
}

// Sync flushes any buffered log entries.
func (l Logger) Sync() error {
	if l.z == nil {
		return nil
	}
	return l.z.Sync()
}

// Field re-exports are convenience aliases so callers don't also need
// to import zap for the common cases.
var (
	String = zap.String
	Int    = zap.Int
	Err    = zap.Error
	Bool   = zap.Bool
)
