package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Status prints one-line colored status messages
type Status struct {
	out     io.Writer
	success *color.Color
	info    *color.Color
	warning *color.Color
	err     *color.Color
}

// NewStatus creates a Status writing to out. Colors are disabled when plain is set.
func NewStatus(out io.Writer, plain bool) *Status {
	s := &Status{
		out:     out,
		success: color.New(color.FgGreen),
		info:    color.New(color.FgBlue),
		warning: color.New(color.FgYellow),
		err:     color.New(color.FgRed, color.Bold),
	}
	if plain {
		for _, c := range []*color.Color{s.success, s.info, s.warning, s.err} {
			c.DisableColor()
		}
	}
	return s
}

// Success prints a success message
func (s *Status) Success(message string) {
	fmt.Fprintln(s.out, s.success.Sprint("✓ ")+message)
}

// Info prints an info message
func (s *Status) Info(message string) {
	fmt.Fprintln(s.out, s.info.Sprint("ℹ ")+message)
}

// Warning prints a warning message
func (s *Status) Warning(message string) {
	fmt.Fprintln(s.out, s.warning.Sprint("⚠ ")+message)
}

// Error prints an error message
func (s *Status) Error(message string) {
	fmt.Fprintln(s.out, s.err.Sprint("✗ ")+message)
}

// Highlight returns value in the accent color, or unchanged when colors are off
func (s *Status) Highlight(value string) string {
	return s.warning.Sprint(value)
}
