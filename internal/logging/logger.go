// Package logging wraps a zap logger with package-level helpers.
//
// Initialize once at startup; until then every helper writes to a no-op logger,
// so library code and tests never produce unexpected output.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// Initialize creates the process logger at the given level.
// An empty level or "off" selects a silent logger.
func Initialize(level string) error {
	if level == "" || level == "off" {
		logger = zap.NewNop()
		return nil
	}

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	l, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	logger = l
	return nil
}

// GetLogger returns the process logger.
func GetLogger() *zap.Logger {
	return logger
}

// Sync flushes buffered log entries.
func Sync() {
	_ = GetLogger().Sync()
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogTransaction logs a submitted transaction with its network and signature.
func LogTransaction(action, network, signature string) {
	Info("Transaction submitted",
		zap.String("action", action),
		zap.String("network", network),
		zap.String("signature", signature),
	)
}
