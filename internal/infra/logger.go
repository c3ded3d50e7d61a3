package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger aliases zerolog.Logger so packages outside infra can accept a logger
// without importing the module directly.
type Logger = zerolog.Logger

// NewLogger builds the service logger. Development gets a human readable
// console writer at debug level; every other environment logs JSON at info.
// LOG_LEVEL overrides the level when it parses.
func NewLogger(appEnv string) zerolog.Logger {
	return newLogger(appEnv, os.Stdout, os.Getenv("LOG_LEVEL"))
}

func newLogger(appEnv string, out io.Writer, levelOverride string) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}
	if levelOverride != "" {
		if parsed, err := zerolog.ParseLevel(levelOverride); err == nil {
			level = parsed
		}
	}

	if appEnv == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "wfm").
		Logger()
}
