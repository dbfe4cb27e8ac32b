// Package logging builds the CLI's zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Verbosity selects how much the CLI logs.
type Verbosity int

const (
	Quiet   Verbosity = -1 // errors only
	Normal  Verbosity = 0  // warnings and above
	Verbose Verbosity = 1  // debug and above
)

// VerbosityFromFlags maps -q/-v to a Verbosity. Quiet wins.
func VerbosityFromFlags(quiet, verbose bool) Verbosity {
	switch {
	case quiet:
		return Quiet
	case verbose:
		return Verbose
	default:
		return Normal
	}
}

// Level returns the zerolog level for v.
func (v Verbosity) Level() zerolog.Level {
	switch {
	case v <= Quiet:
		return zerolog.ErrorLevel
	case v >= Verbose:
		return zerolog.DebugLevel
	default:
		return zerolog.WarnLevel
	}
}

// New returns a console logger writing to out. Colors are used only when
// out is a terminal.
func New(out io.Writer, v Verbosity) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    !IsTerminal(out),
	}

	logger := zerolog.New(cw).Level(v.Level()).With().Timestamp().Logger()
	if v >= Verbose {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// IsTerminal reports whether w is a terminal, including Cygwin ptys.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// OperationStart logs the start of an operation at debug level and returns
// a function that logs its completion with the elapsed time.
func OperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("operation completed")
	}
}
