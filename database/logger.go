package database

import (
	"time"

	"github.com/RushabhMehta2005/stores-api/logging"
	"github.com/rs/zerolog"
	"gorm.io/gorm/logger"
)

// zerologWriter adapts the global zerolog logger to gorm's Printf writer.
type zerologWriter struct{}

func (zerologWriter) Printf(format string, args ...interface{}) {
	l := logging.With().Str("component", "gorm").Logger()
	l.WithLevel(zerolog.InfoLevel).Msgf(format, args...)
}

// NewLogger builds the ORM query logger. Queries are silent unless level asks
// otherwise; slow queries are reported at warn when enabled.
func NewLogger(level string, slow time.Duration) logger.Interface {
	return logger.New(zerologWriter{}, logger.Config{
		SlowThreshold:             slow,
		LogLevel:                  parseLogLevel(level),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return logger.Silent
	}
}
