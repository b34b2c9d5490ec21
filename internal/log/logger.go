package log

import (
	"io"

	"github.com/rs/zerolog"
)

// TimeFormat matches the report's own timestamp layout.
const TimeFormat = "2006-01-02 15:04:05"

// New returns a console logger writing to out. Debug enables request
// diagnostics; otherwise only warnings and errors are emitted.
func New(out io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: TimeFormat,
		NoColor:    true,
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}
