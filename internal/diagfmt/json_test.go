package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"verdict/internal/diag"
	"verdict/internal/source"
)

func TestBuildDiagnosticsOutput(t *testing.T) {
	bag, fs := fixtureBag(t)

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeRelative,
	})

	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("output = %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Severity != "WARNING" || d.Code != "AC1002" || d.Rule != "mutable-public-field" {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Location.File != "src/orders.tree" {
		t.Errorf("file = %q", d.Location.File)
	}
	if d.Location.StartByte != 25 || d.Location.EndByte != 41 {
		t.Errorf("byte range = %d..%d", d.Location.StartByte, d.Location.EndByte)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 5 {
		t.Errorf("start position = %d:%d", d.Location.StartLine, d.Location.StartCol)
	}
}

func TestBuildDiagnosticsOutputMax(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a", []byte("xxxx\n"))

	bag := diag.NewBag(10)
	for i := 0; i < 5; i++ {
		bag.Add(diag.Diagnostic{
			Descriptor: "AC1001",
			Severity:   diag.SevInfo,
			Message:    "m",
			Primary:    source.Span{File: fileID, Start: uint32(i), End: uint32(i + 1)},
		})
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 3})
	if out.Count != 3 {
		t.Errorf("count = %d, want 3", out.Count)
	}
	if bag.Len() != 5 {
		t.Errorf("bag mutated: len = %d", bag.Len())
	}
}

func TestJSONEncodes(t *testing.T) {
	bag, fs := fixtureBag(t)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON returned error: %v", err)
	}

	var decoded DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Count != 1 {
		t.Errorf("decoded count = %d", decoded.Count)
	}
	// positions were not requested
	if decoded.Diagnostics[0].Location.StartLine != 0 {
		t.Errorf("unexpected position data: %+v", decoded.Diagnostics[0].Location)
	}
}
