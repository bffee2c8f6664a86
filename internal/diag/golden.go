package diag

import (
	"fmt"
	"sort"
	"strings"

	"verdict/internal/source"
)

type goldenLine struct {
	severity string
	id       string
	path     string
	line     uint32
	col      uint32
	message  string
}

// FormatGolden renders diagnostics into a stable single-line-per-entry
// representation for golden tests and short CLI output:
//
//	severity ID path:line:col message
//
// Entries are sorted by path, position, severity and id; newlines in
// messages collapse to spaces.
func FormatGolden(diags []Diagnostic, fs *source.FileSet) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenLine, 0, len(diags))
	for _, d := range diags {
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		rendered = append(rendered, goldenLine{
			severity: strings.ToLower(d.Severity.String()),
			id:       d.Descriptor,
			path:     f.FormatPath("relative", fs.BaseDir()),
			line:     start.Line,
			col:      start.Col,
			message:  strings.Join(strings.Fields(d.Message), " "),
		})
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		a, b := rendered[i], rendered[j]
		if a.path != b.path {
			return a.path < b.path
		}
		if a.line != b.line {
			return a.line < b.line
		}
		if a.col != b.col {
			return a.col < b.col
		}
		if a.severity != b.severity {
			return a.severity < b.severity
		}
		return a.id < b.id
	})

	lines := make([]string, 0, len(rendered))
	for _, r := range rendered {
		lines = append(lines, fmt.Sprintf("%s %s %s:%d:%d %s",
			r.severity, r.id, r.path, r.line, r.col, r.message))
	}
	return strings.Join(lines, "\n")
}
