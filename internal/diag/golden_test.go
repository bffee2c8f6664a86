package diag

import (
	"testing"

	"verdict/internal/source"
)

func TestFormatGolden(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	id := fs.Add("/workspace/sample.tree", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Descriptor: "AC1001",
			Rule:       "class-complexity",
			Severity:   SevWarning,
			Message:    "second\nline folds",
			Primary:    source.Span{File: id, Start: 2, End: 3},
		},
		{
			Descriptor: "AC2001",
			Rule:       "configure-await",
			Severity:   SevError,
			Message:    "first",
			Primary:    source.Span{File: id, Start: 0, End: 1},
		},
	}

	expected := "error AC2001 sample.tree:1:1 first\n" +
		"warning AC1001 sample.tree:2:1 second line folds"

	if got := FormatGolden(diags, fs); got != expected {
		t.Fatalf("unexpected golden output:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatGoldenEmpty(t *testing.T) {
	fs := source.NewFileSet()
	if got := FormatGolden(nil, fs); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
