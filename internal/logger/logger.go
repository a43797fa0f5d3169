// Package logger builds the zerolog loggers used across the service.
// Level and output format come from the environment so deployments can
// switch between human-readable console output and JSON lines.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger tagged with the given component name.
// LOG_LEVEL accepts zerolog level strings (debug, info, warn, error);
// unknown or empty values fall back to info. LOG_FORMAT=console enables
// the pretty writer, anything else emits JSON.
func New(component string) zerolog.Logger {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if os.Getenv("LOG_FORMAT") == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() zerolog.Logger {
	return zerolog.New(io.Discard).Level(zerolog.Disabled)
}
