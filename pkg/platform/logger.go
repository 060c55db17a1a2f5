// Package platform holds process-level helpers shared by the binaries:
// logger setup and environment-variable configuration.
package platform

import (
	"os"

	"github.com/rs/zerolog"
)

// InitLogger builds the process logger. Services log JSON to stdout; the CLI
// passes console=true for human-readable output on stderr.
func InitLogger(level string, console bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if console {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(lvl).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).
		Level(lvl).
		With().Timestamp().Logger()
}
