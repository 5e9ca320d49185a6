package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates the service-wide structured logger. Console output is used
// so log lines stay readable in local development; deployments that want
// raw JSON can set LOG_FORMAT=json.
func New() zerolog.Logger {
	if os.Getenv("LOG_FORMAT") == "json" {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

// NewWithWriter creates a logger with a custom writer, mainly for tests.
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
