// Package logger provides the configurable logger shared by the generator
// and calibration components.
//
// The root logger uses github.com/rs/zerolog with a console writer. It is
// silenced when running under `go test` unless TIG_DEBUG is set, so that
// deterministic-output tests stay quiet.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	logger = zerolog.New(output).With().Timestamp().Logger()

	if lvl, err := zerolog.ParseLevel(os.Getenv("TIG_LOG")); err == nil && lvl != zerolog.NoLevel {
		logger = logger.Level(lvl)
	}

	if os.Getenv("TIG_DEBUG") == "" && strings.HasSuffix(os.Args[0], ".test") {
		logger = zerolog.Nop()
	}
}

// SetOutput changes the output of the global logger
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// Set allows overriding the global logger
func Set(l zerolog.Logger) {
	logger = l
}

// Disable disables logging
func Disable() {
	logger = zerolog.Nop()
}

// Logger returns the logger for a component
func Logger() zerolog.Logger {
	return logger
}
