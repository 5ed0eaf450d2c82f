// Package logging configures the file-backed application logger. The
// terminal belongs to the UI, so log output goes to a file under the
// user's state directory instead of stdout.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

func init() {
	// Silent until Setup runs; components may log during construction.
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// Setup points the logger at ~/.local/state/arbor/arbor.log and applies
// the configured level. Returns the opened file so the caller can close
// it on shutdown; a nil file means logging stayed disabled.
func Setup(level string) (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(home, ".local", "state", "arbor")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(filepath.Join(dir, "arbor.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	logger.SetOutput(f)
	SetLevel(level)
	return f, nil
}

// SetLevel adjusts the logger verbosity.
func SetLevel(level string) {
	switch level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
}

// L returns the shared logger.
func L() *logrus.Logger {
	return logger
}
