// Package logger provides the zap-backed logging adapter.
package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapAdapter adapts a zap.Logger to the consumer logging interfaces used
// throughout the application.
type ZapAdapter struct {
	log *zap.Logger
}

// NewZapAdapter creates a new ZapAdapter wrapping the given zap logger.
func NewZapAdapter(log *zap.Logger) *ZapAdapter {
	return &ZapAdapter{log: log}
}

// NewZapAdapterForLevel builds a console logger writing to stderr at the
// given level. Level names follow zap: debug, info, warn, error.
func NewZapAdapterForLevel(level string) (*ZapAdapter, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(parsed),
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapAdapter{log: log}, nil
}

// Info logs an info message.
func (a *ZapAdapter) Info(_ context.Context, msg string, fields map[string]any) {
	a.log.Info(msg, zapFields(fields)...)
}

// Debug logs a debug message.
func (a *ZapAdapter) Debug(_ context.Context, msg string, fields map[string]any) {
	a.log.Debug(msg, zapFields(fields)...)
}

// Warn logs a warning message.
func (a *ZapAdapter) Warn(_ context.Context, msg string, fields map[string]any) {
	a.log.Warn(msg, zapFields(fields)...)
}

// Error logs an error message with the error attached as a field.
func (a *ZapAdapter) Error(_ context.Context, msg string, err error, fields map[string]any) {
	a.log.Error(msg, append(zapFields(fields), zap.Error(err))...)
}

// Sync flushes any buffered log entries.
func (a *ZapAdapter) Sync() error {
	return a.log.Sync()
}

func zapFields(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	zfs := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zfs = append(zfs, zap.Any(k, v))
	}
	return zfs
}
