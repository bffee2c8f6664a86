package main

import (
	"testing"

	"github.com/spf13/cobra"

	"verdict/internal/diag"
	"verdict/internal/source"
)

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"auto", uiModeAuto, false},
		{"ON", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("readUIMode(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("readUIMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCheckFailOn(t *testing.T) {
	withSeverity := func(sev diag.Severity) *diag.Bag {
		bag := diag.NewBag(4)
		bag.Add(diag.Diagnostic{
			Descriptor: "AC1001",
			Severity:   sev,
			Message:    "m",
			Primary:    source.Span{},
		})
		return bag
	}

	tests := []struct {
		name    string
		failOn  string
		bag     *diag.Bag
		wantErr bool
	}{
		{"error with errors", "error", withSeverity(diag.SevError), true},
		{"error with warnings only", "error", withSeverity(diag.SevWarning), false},
		{"warning with warnings", "warning", withSeverity(diag.SevWarning), true},
		{"warning with info only", "warning", withSeverity(diag.SevInfo), false},
		{"never with errors", "never", withSeverity(diag.SevError), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			err := checkFailOn(cmd, tt.failOn, tt.bag)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkFailOn(%q) error = %v, wantErr %v", tt.failOn, err, tt.wantErr)
			}
		})
	}
}
