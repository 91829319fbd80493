// Package logging provides the engine's structured logging frontend,
// wrapping logrus the way evalgo-org-eve's common package configures it for
// its services: a small Config type picks level and format, New builds a
// ready-to-use *logrus.Logger, and the App logs deadline misses and
// reaction-reported errors through it.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Level is a logging verbosity, matching the CLI's --logging flag values.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Config configures a logger built by New.
type Config struct {
	Level      Level     // minimum level to emit
	JSON       bool      // JSON formatter instead of text
	Output     io.Writer // defaults to os.Stderr
	TimeFormat string    // defaults to time.RFC3339
}

// DefaultConfig returns sensible defaults: info level, text format, stderr.
func DefaultConfig() Config {
	return Config{
		Level:      LevelInfo,
		JSON:       false,
		TimeFormat: time.RFC3339,
	}
}

// New builds a configured *logrus.Logger.
func New(cfg Config) *logrus.Logger {
	logger := logrus.New()

	switch cfg.Level {
	case LevelDebug:
		logger.SetLevel(logrus.DebugLevel)
	case LevelWarn:
		logger.SetLevel(logrus.WarnLevel)
	case LevelError:
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	if cfg.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: timeFormat})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{TimestampFormat: timeFormat, FullTimestamp: true})
	}

	if cfg.Output != nil {
		logger.SetOutput(cfg.Output)
	} else {
		logger.SetOutput(os.Stderr)
	}

	return logger
}

// ParseLevel maps a CLI/config string onto a Level, defaulting to info for
// an unrecognized value.
func ParseLevel(s string) Level {
	switch Level(s) {
	case LevelDebug, LevelWarn, LevelError, LevelInfo:
		return Level(s)
	default:
		return LevelInfo
	}
}
