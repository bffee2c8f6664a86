package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"verdict/internal/diag"
	"verdict/internal/source"
)

// Pretty renders diagnostics for a terminal. The bag is expected to be
// sorted already. Every entry prints as
//
//	<path>:<line>:<col>: <severity> <id>: <message>
//
// followed by the source line and a ^~~~ underline covering the span,
// unless NoContext is set.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writePretty(w, d, fs, opts)
	}
}

func writePretty(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	path := f.FormatPath(opts.PathMode.formatMode(), fs.BaseDir())

	sev := strings.ToLower(d.Severity.String())
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sev, d.Descriptor, d.Message)

	if opts.NoContext {
		return
	}
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}
	if opts.Width > 0 {
		line = runewidth.Truncate(line, opts.Width, "…")
	}

	underline := buildUnderline(line, start, end)
	if opts.Color {
		underline = severityColor(d.Severity).Sprint(underline)
	}
	fmt.Fprintf(w, "    %s\n    %s\n", line, underline)
}

// buildUnderline places a caret at the start column and tildes across
// the rest of the span, clamped to the visible line.
func buildUnderline(line string, start, end source.LineCol) string {
	startCol := int(start.Col)
	if startCol < 1 {
		startCol = 1
	}
	prefixBytes := startCol - 1
	if prefixBytes > len(line) {
		prefixBytes = len(line)
	}
	pad := runewidth.StringWidth(line[:prefixBytes])

	spanBytes := 1
	if end.Line == start.Line && int(end.Col) > startCol {
		spanBytes = int(end.Col) - startCol
	}
	segEnd := prefixBytes + spanBytes
	if segEnd > len(line) {
		segEnd = len(line)
	}
	width := runewidth.StringWidth(line[prefixBytes:segEnd])
	if width < 1 {
		width = 1
	}

	return strings.Repeat(" ", pad) + "^" + strings.Repeat("~", width-1)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow)
	case diag.SevInfo:
		return color.New(color.FgCyan)
	default:
		return color.New(color.Faint)
	}
}

// Short renders the stable single-line form used by golden tests and
// script-friendly output.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet) {
	out := diag.FormatGolden(bag.Items(), fs)
	if out == "" {
		return
	}
	fmt.Fprintln(w, out)
}
