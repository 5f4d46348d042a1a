// Package output provides terminal output utilities for the mqtbench CLI.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// LogConfig controls how the global logger is configured.
type LogConfig struct {
	// Verbose enables debug level logging and caller reporting.
	Verbose bool

	// Timestamps overrides timestamp reporting. Nil means "on".
	Timestamps *bool
}

// logger is the global logger instance.
var logger *log.Logger

func init() {
	logger = newLogger(log.InfoLevel, true, false)
}

func newLogger(level log.Level, timestamps, caller bool) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: timestamps,
		TimeFormat:      "15:04:05",
		ReportCaller:    caller,
	})
}

// SetupLogging configures the global logger.
func SetupLogging(cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	timestamps := true
	if cfg.Timestamps != nil {
		timestamps = *cfg.Timestamps
	}

	logger = newLogger(level, timestamps, cfg.Verbose)
}

// SetLogWriter redirects log output, keeping the current level.
func SetLogWriter(w io.Writer) {
	logger.SetOutput(w)
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// BenchmarkLogger returns a child logger scoped to a benchmark.
// Every line it emits carries the benchmark name as prefix.
func BenchmarkLogger(name string) *log.Logger {
	child := logger.WithPrefix(StyleDim.Render("b:") + StyleNoun.Render(name))
	child.SetLevel(logger.GetLevel())
	return child
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}

// Println prints a message to stdout with a newline.
func Println(msg string) {
	os.Stdout.WriteString(msg + "\n")
}
