package logger

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var ErrUnsupportedFormat = errors.New("unsupported log format")

// New constructs a zerolog logger writing to stdout based on level and format configuration.
func New(level, format string) (zerolog.Logger, error) {
	return NewWithWriter(os.Stdout, level, format)
}

func NewWithWriter(out io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Logger{}, err
	}

	var w io.Writer
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		w = out
	case "console":
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	default:
		return zerolog.Logger{}, ErrUnsupportedFormat
	}

	return zerolog.New(w).With().Timestamp().Logger().Level(lvl), nil
}
