// Package diag provides a diagnostics sink for warnings and errors emitted
// while parsing configuration and scanning logs. Diagnostics are kept
// separate from the report stream: the CLI wires a Logger to stderr, while
// tests capture output with a bytes.Buffer.
package diag

import (
	"fmt"
	"io"
)

// Logger writes leveled diagnostic lines to a single writer.
// The zero value is not usable; create one with New.
type Logger struct {
	w     io.Writer
	debug bool
}

// New creates a Logger writing to w. Debug output is suppressed unless
// enabled with SetDebug.
func New(w io.Writer) *Logger {
	return &Logger{w: w}
}

// SetDebug enables or disables debug-level output.
func (l *Logger) SetDebug(enabled bool) {
	l.debug = enabled
}

// Warnf emits a warning diagnostic.
func (l *Logger) Warnf(format string, args ...any) {
	fmt.Fprintf(l.w, "[WARNING] "+format+"\n", args...)
}

// Errorf emits an error diagnostic. Errors here are recoverable; fatal
// conditions are returned as Go errors instead.
func (l *Logger) Errorf(format string, args ...any) {
	fmt.Fprintf(l.w, "[ERROR] "+format+"\n", args...)
}

// Debugf emits a debug diagnostic when debug output is enabled.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.debug {
		return
	}
	fmt.Fprintf(l.w, "[DEBUG] "+format+"\n", args...)
}

// Discard returns a Logger that drops all diagnostics.
func Discard() *Logger {
	return New(io.Discard)
}
