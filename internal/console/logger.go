// Package console prints colored progress and diagnostic lines.
package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Logger writes emoji-prefixed, colored lines. A nil *Logger discards everything.
type Logger struct {
	out     io.Writer
	quiet   bool
	info    *color.Color
	success *color.Color
	warn    *color.Color
	fail    *color.Color
}

// New creates a logger writing to w. Quiet suppresses Info and Success lines.
func New(w io.Writer, quiet bool) *Logger {
	return &Logger{
		out:     w,
		quiet:   quiet,
		info:    color.New(color.FgCyan),
		success: color.New(color.FgGreen, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		fail:    color.New(color.FgRed, color.Bold),
	}
}

// DisableColor turns off color output for this logger
func (l *Logger) DisableColor() {
	if l == nil {
		return
	}
	for _, c := range []*color.Color{l.info, l.success, l.warn, l.fail} {
		c.DisableColor()
	}
}

// Info prints a progress line
func (l *Logger) Info(format string, args ...any) {
	if l == nil || l.quiet {
		return
	}
	l.print(l.info, "ℹ️  ", format, args...)
}

// Success prints a completion line
func (l *Logger) Success(format string, args ...any) {
	if l == nil || l.quiet {
		return
	}
	l.print(l.success, "✅ ", format, args...)
}

// Warn prints a recoverable problem
func (l *Logger) Warn(format string, args ...any) {
	if l == nil {
		return
	}
	l.print(l.warn, "⚠️  ", format, args...)
}

// Error prints a failure
func (l *Logger) Error(format string, args ...any) {
	if l == nil {
		return
	}
	l.print(l.fail, "❌ ", format, args...)
}

func (l *Logger) print(c *color.Color, prefix, format string, args ...any) {
	_, _ = c.Fprintln(l.out, prefix+fmt.Sprintf(format, args...))
}
