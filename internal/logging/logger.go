// Package logging builds the zap logger shared by the showcase and keeps
// panicking event handlers from taking the window down.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production logger; verbose switches it to debug level.
func New(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// Recover logs a panic from an event handler and swallows it.
// Use it as `defer logging.Recover(logger, "where")`.
func Recover(logger *zap.Logger, where string) {
	if recovered := recover(); recovered != nil {
		OrNop(logger).Error("Global error",
			zap.String("handler", where),
			zap.Any("panic", recovered),
			zap.Stack("stack"))
	}
}

// Go runs fn on a new goroutine with Recover installed.
func Go(logger *zap.Logger, where string, fn func()) {
	go func() {
		defer Recover(logger, where)
		fn()
	}()
}
