package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// LoggerOptions holds configuration for the diagnostics logger.
type LoggerOptions struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultLoggerOptions returns default options for the diagnostics logger.
func DefaultLoggerOptions() LoggerOptions {
	return LoggerOptions{
		Level:     log.InfoLevel,
		Formatter: log.TextFormatter,
		Prefix:    "taskboard",
	}
}

// NewLogger creates a charmbracelet logger on w.
func NewLogger(w io.Writer, opts LoggerOptions) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	})
}

// NewLoggerFromConfig builds a logger from string configuration values, as
// they come from TOML or the environment.
func NewLoggerFromConfig(w io.Writer, level, format string, timestamps, caller bool) *log.Logger {
	opts := DefaultLoggerOptions()
	opts.Level = ParseLogLevel(level)
	opts.Formatter = ParseLogFormatter(format)
	opts.ReportTimestamp = timestamps
	opts.ReportCaller = caller
	return NewLogger(w, opts)
}

// ParseLogLevel parses a string log level. Unknown levels mean info.
func ParseLogLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseLogFormatter parses a formatter name. Unknown names mean text.
func ParseLogFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
