// internal/platform/logging/logging.go
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds the root logger. level falls back to info when unparseable;
// pretty switches to the human console writer for local runs.
func New(level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var l zerolog.Logger
	if pretty {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		l = zerolog.New(os.Stderr)
	}

	return l.Level(lvl).With().Timestamp().Logger()
}
