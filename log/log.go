// Package log provides structured logging backed by logrus with a dated file under the logs directory.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/soramod/soramod/filesystem"
	"github.com/soramod/soramod/key"
	"github.com/soramod/soramod/where"
	"github.com/spf13/viper"
)

// Fields is an alias for logrus.Fields so callers don't import logrus directly.
type Fields = logrus.Fields

var (
	enabled bool
	std     = newDiscard()
)

func newDiscard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Setup opens today's log file and applies formatter and level from the configuration.
// When logs.write is off every call in this package is a no-op.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		std = newDiscard()
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	if exists := lo.Must(filesystem.API().Exists(path)); !exists {
		lo.Must(filesystem.API().Create(path))
	}

	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	std = logger
	return nil
}

// Enabled reports whether log output is written anywhere.
func Enabled() bool {
	return enabled
}

// WithField returns an entry carrying a single field.
func WithField(k string, v any) *logrus.Entry {
	return std.WithField(k, v)
}

// WithFields returns an entry carrying the given fields.
func WithFields(fields Fields) *logrus.Entry {
	return std.WithFields(fields)
}

func Error(args ...any) {
	std.Error(args...)
}

func Errorf(format string, args ...any) {
	std.Errorf(format, args...)
}

func Warn(args ...any) {
	std.Warn(args...)
}

func Warnf(format string, args ...any) {
	std.Warnf(format, args...)
}

func Info(args ...any) {
	std.Info(args...)
}

func Infof(format string, args ...any) {
	std.Infof(format, args...)
}

func Debug(args ...any) {
	std.Debug(args...)
}

func Debugf(format string, args ...any) {
	std.Debugf(format, args...)
}
