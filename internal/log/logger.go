// Package log is a thin facade over logrus. A full-screen editor owns the
// terminal, so output is discarded unless a log file is configured (the
// --debug flag routes it to a file under the user cache directory).
package log

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// Fields is re-exported so callers don't import logrus directly
type Fields = logrus.Fields

// F builds a single-entry field set
func F(key string, value interface{}) Fields {
	return Fields{key: value}
}

// EnableDebug switches the logger to debug level writing to the given file.
// An empty path selects tedit.log in the user cache directory.
func EnableDebug(path string) error {
	if path == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return err
		}
		dir := filepath.Join(cacheDir, "tedit")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		path = filepath.Join(dir, "tedit.log")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	logger.SetOutput(f)
	logger.SetLevel(logrus.DebugLevel)
	return nil
}

// SetOutput redirects log output, mainly for tests
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetDebug toggles debug-level logging without changing the output
func SetDebug(debug bool) {
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// LogWithFields returns an entry carrying the merged field sets
func LogWithFields(fields ...Fields) *logrus.Entry {
	merged := Fields{}
	for _, fs := range fields {
		for k, v := range fs {
			merged[k] = v
		}
	}
	return logger.WithFields(merged)
}

// Info logs a message at info level
func Info(args ...interface{}) {
	logger.Info(args...)
}

// Infof logs a formatted message at info level
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debug logs a message at debug level
func Debug(args ...interface{}) {
	logger.Debug(args...)
}

// Debugf logs a formatted message at debug level
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Warn logs a message at warning level
func Warn(args ...interface{}) {
	logger.Warn(args...)
}

// Warnf logs a formatted message at warning level
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Error logs a message at error level
func Error(args ...interface{}) {
	logger.Error(args...)
}

// Errorf logs a formatted message at error level
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}
