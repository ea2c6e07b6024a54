package observability

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds a logger writing to w. format is "console" for
// human-readable lines or "json"; anything else falls back to json.
func NewLogger(level zerolog.Level, format string, w io.Writer) zerolog.Logger {
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
