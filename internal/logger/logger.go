package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the application logger: JSON production output when env is
// "production", the human-readable development encoder otherwise.
func New(env string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

// Sync flushes buffered entries. Errors from syncing stdout/stderr on some
// platforms are not actionable and are dropped.
func Sync(l *zap.Logger) {
	_ = l.Sync()
}
