// Package logging configures the logrus logger. The terminal belongs to
// the UI, so output always goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Setup returns a logger writing to path at the given level and a function
// that closes the file. An empty path discards output. When the file
// cannot be opened the logger discards output and the error is returned
// alongside it.
func Setup(path, level string) (*logrus.Logger, func(), error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger := logrus.New()
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableColors:   true,
	})
	logger.SetOutput(io.Discard)

	if path == "" {
		return logger, func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return logger, func() {}, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return logger, func() {}, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(f)
	logger.WithField("pid", os.Getpid()).Info("session start")

	return logger, func() { _ = f.Close() }, nil
}
