// Package logging provides the shared zerolog construction and context
// plumbing used by every tickwatch component. Loggers ride in the
// context.Context so nested code can log with the invocation's trace id
// without threading a logger through every signature.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Output format names accepted by Config.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// logFilePerm is the permission mode for created log files.
const logFilePerm = 0o600

// Config describes how the process-wide logger should be built.
type Config struct {
	// Level is a zerolog level name ("debug", "info", ...). Invalid or
	// empty values fall back to info.
	Level string

	// Format selects console (human) or json (machine) output.
	Format string

	// File, when non-empty, appends logs to this path instead of stderr.
	File string

	// Caller enables file:line annotation on every event.
	Caller bool
}

// LogPathResult reports where NewLoggerWithPath ended up writing and owns
// the file handle when one was opened.
type LogPathResult struct {
	Logger         zerolog.Logger
	UsingFile      bool
	FilePath       string
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file handle, if any. Safe to call on a
// console-only result.
func (r *LogPathResult) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// NewLoggerWithPath builds the process logger from cfg. A file destination
// that cannot be opened falls back to stderr with the reason recorded
// rather than failing the command.
func NewLoggerWithPath(cfg Config) LogPathResult {
	result := LogPathResult{}

	var w io.Writer = os.Stderr
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFilePerm)
		if err != nil {
			result.FallbackUsed = true
			result.FallbackReason = err.Error()
		} else {
			result.UsingFile = true
			result.FilePath = cfg.File
			result.file = f
			w = f
		}
	}

	if cfg.Format != FormatJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	logCtx := zerolog.New(w).Level(lvl).With().Timestamp()
	if cfg.Caller {
		logCtx = logCtx.Caller()
	}
	result.Logger = logCtx.Logger()

	return result
}

// NewLogger is the handle-free variant for callers that never log to a file.
func NewLogger(cfg Config) zerolog.Logger {
	cfg.File = ""
	result := NewLoggerWithPath(cfg)
	return result.Logger
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx. When none was attached it
// returns zerolog's disabled logger, so callers can log unconditionally.
func FromContext(ctx context.Context) zerolog.Logger {
	return *zerolog.Ctx(ctx)
}

// PrintLogPathMessage tells the user where file logging landed.
func PrintLogPathMessage(w io.Writer, path string) {
	fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user why file logging was not possible.
func PrintFallbackWarning(w io.Writer, reason string) {
	fmt.Fprintf(w, "Warning: could not open log file, logging to stderr: %s\n", reason)
}
