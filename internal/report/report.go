// Package report writes user-facing progress lines for kit operations.
//
// Progress output is separate from diagnostic logging: it is what the user
// asked to see (files deployed, sections inserted, dry-run previews) and it
// goes to stdout, while slog output goes to stderr or a log file.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/thoreinstein/vibery/internal/logging"
)

// Reporter writes progress lines to an output stream.
type Reporter struct {
	out io.Writer

	header  *color.Color
	dry     *color.Color
	warn    *color.Color
	success *color.Color
	fail    *color.Color
}

// New creates a Reporter writing to out. Color is used only when out
// supports it.
func New(out io.Writer) *Reporter {
	return NewWithColor(out, logging.SupportsColor(out))
}

// NewWithColor creates a Reporter with color explicitly enabled or disabled.
func NewWithColor(out io.Writer, useColor bool) *Reporter {
	r := &Reporter{
		out:     out,
		header:  color.New(color.FgCyan, color.Bold),
		dry:     color.New(color.FgYellow),
		warn:    color.New(color.FgYellow),
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
	}
	for _, c := range []*color.Color{r.header, r.dry, r.warn, r.success, r.fail} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Discard returns a Reporter that writes nothing.
func Discard() *Reporter {
	return NewWithColor(io.Discard, false)
}

// Header announces the start of an operation on a kit.
func (r *Reporter) Header(format string, args ...any) {
	fmt.Fprintln(r.out, r.header.Sprintf(format, args...))
}

// Step reports one applied change, e.g. a deployed file.
func (r *Reporter) Step(format string, args ...any) {
	fmt.Fprintf(r.out, "  %s\n", fmt.Sprintf(format, args...))
}

// Dry reports a change that preview mode would have made.
func (r *Reporter) Dry(format string, args ...any) {
	fmt.Fprintf(r.out, "  %s %s\n", r.dry.Sprint("[DRY]"), fmt.Sprintf(format, args...))
}

// Warn reports something skipped or unexpected that did not fail the
// operation.
func (r *Reporter) Warn(format string, args ...any) {
	fmt.Fprintf(r.out, "  %s\n", r.warn.Sprintf(format, args...))
}

// Success reports a completed operation.
func (r *Reporter) Success(format string, args ...any) {
	fmt.Fprintln(r.out, r.success.Sprintf("✓ "+format, args...))
}

// Fail reports a failed operation.
func (r *Reporter) Fail(format string, args ...any) {
	fmt.Fprintln(r.out, r.fail.Sprintf("✗ "+format, args...))
}
