package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes the progress of a run as one line per step.
type Printer struct {
	out   io.Writer
	step  *color.Color
	warn  *color.Color
	fatal *color.Color
}

// NewPrinter returns a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:   out,
		step:  color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		fatal: color.New(color.FgRed, color.Bold),
	}
}

// Creating announces that the release for tag is missing and will be created.
func (p *Printer) Creating(tag string) {
	p.warn.Fprintf(p.out, "Release %s not found, creating...\n", tag)
}

// Deleting announces the removal of an asset that is about to be replaced.
func (p *Printer) Deleting(name string) {
	p.warn.Fprintf(p.out, "Deleting existing asset: %s\n", name)
}

// Uploading announces an upload.
func (p *Printer) Uploading(name string) {
	p.step.Fprintf(p.out, "Uploading %s...\n", name)
}

// Error prints the single line reported for a failed run.
func (p *Printer) Error(err error) {
	p.fatal.Fprint(p.out, "Error:")
	fmt.Fprintf(p.out, " %v\n", err)
}
