// Package logger provides logging for the bedstat CLI.
//
// Two styles coexist. The package-level Debug, Info, Warn and Section helpers
// print verbose-gated console lines for command plumbing (config lookup,
// store paths). New builds a structured *slog.Logger for a pipeline run that
// fans out to the console and to any extra sinks such as the run log file.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	slogmulti "github.com/samber/slog-multi"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the console writer.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// New returns a run logger. Console lines honour the verbose setting
// (debug when verbose, info otherwise); sinks always receive debug and up.
func New(sinks ...io.Writer) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handlers := make([]slog.Handler, 0, len(sinks)+1)
	handlers = append(handlers, slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))
	for _, w := range sinks {
		handlers = append(handlers, slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "[DEBUG] "+format+"\n", args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "[INFO] "+format+"\n", args...)
	}
}

// Warn prints a warning. Warnings are shown regardless of verbosity.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, "[WARN] "+format+"\n", args...)
}
