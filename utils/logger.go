package utils

import (
	"go.uber.org/zap"
)

var logger *zap.Logger

// InitLogger builds the process-wide zap logger. Development mode gets
// the console encoder; everything else logs structured JSON.
func InitLogger(env string) error {
	var err error
	if env == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	return nil
}

// Logger returns the process logger, falling back to a no-op logger so
// callers never receive nil before InitLogger runs (tests, tooling).
func Logger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// SyncLogger flushes buffered log entries. Called on shutdown.
func SyncLogger() {
	if logger != nil {
		_ = logger.Sync()
	}
}
