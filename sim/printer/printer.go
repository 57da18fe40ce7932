// Package printer renders replay steps, memory maps, and final reports in
// text or JSON form.
package printer

import (
	"io"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/memlab/memsim/internal/replay"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text.
	FormatText Format = "text"

	// FormatJSON outputs a single JSON document.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies the output format (text, json).
	// Default: FormatText
	Format Format

	// Color enables ANSI colors in text output.
	// Default: true
	Color bool

	// ShowMap prints the memory map after every request (text format only;
	// JSON output always carries the per-step block tables).
	// Default: true
	ShowMap bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:  FormatText,
		Color:   true,
		ShowMap: true,
	}
}

// Printer handles formatted output of simulation results.
type Printer struct {
	w    io.Writer
	opts Options

	// num groups large byte counts (1,048,576) in the final report.
	num *message.Printer

	okColor   *color.Color
	failColor *color.Color
	warnColor *color.Color
	freeColor *color.Color
}

// New creates a Printer writing to w.
func New(w io.Writer, opts Options) *Printer {
	p := &Printer{
		w:         w,
		opts:      opts,
		num:       message.NewPrinter(language.English),
		okColor:   color.New(color.FgGreen),
		failColor: color.New(color.FgRed),
		warnColor: color.New(color.FgYellow),
		freeColor: color.New(color.FgCyan),
	}
	if !opts.Color {
		for _, c := range []*color.Color{p.okColor, p.failColor, p.warnColor, p.freeColor} {
			c.DisableColor()
		}
	}
	return p
}

// PrintResult renders a complete replay: every step in trace order
// followed by the final report.
func (p *Printer) PrintResult(res *replay.Result) error {
	if p.opts.Format == FormatJSON {
		return p.printResultJSON(res)
	}
	return p.printResultText(res)
}
