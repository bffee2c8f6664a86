package diag

import (
	"errors"
	"testing"
)

func TestNewDescriptor(t *testing.T) {
	d, err := NewDescriptor("AC1001", "Class too complex", "class has {0} methods", "Design", SevWarning, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Arity() != 1 {
		t.Errorf("arity = %d, want 1", d.Arity())
	}
	if d.DefaultSeverity != SevWarning {
		t.Errorf("severity = %v, want warning", d.DefaultSeverity)
	}
}

func TestNewDescriptorErrors(t *testing.T) {
	if _, err := NewDescriptor("", "t", "m", "c", SevInfo, true); !errors.Is(err, ErrEmptyDescriptorID) {
		t.Errorf("empty id: err = %v, want ErrEmptyDescriptorID", err)
	}
	if _, err := NewDescriptor("AC1", "t", "bad {x}", "c", SevInfo, true); !errors.Is(err, ErrMalformedTemplate) {
		t.Errorf("bad template: err = %v, want ErrMalformedTemplate", err)
	}
}

func TestMustDescriptorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for malformed template")
		}
	}()
	MustDescriptor("AC1", "t", "bad {", "c", SevInfo, true)
}

func TestSameMetadata(t *testing.T) {
	a := MustDescriptor("AC1001", "t", "m {0}", "Design", SevWarning, true)
	b := MustDescriptor("AC1001", "t", "m {0}", "Design", SevWarning, true)
	c := MustDescriptor("AC1001", "t", "m {0}", "Performance", SevWarning, true)

	if !a.SameMetadata(b) {
		t.Error("identical descriptors must compare equal")
	}
	if a.SameMetadata(c) {
		t.Error("category difference must be detected")
	}
	if !a.SameMetadata(a.WithHelpURI("")) {
		t.Error("WithHelpURI with same value must stay equal")
	}
	if a.SameMetadata(a.WithHelpURI("https://example.com/ac1001")) {
		t.Error("help URI difference must be detected")
	}
}

func TestParseSeverity(t *testing.T) {
	for name, want := range map[string]Severity{
		"hidden": SevHidden, "info": SevInfo, "warning": SevWarning, "error": SevError,
	} {
		got, err := ParseSeverity(name)
		if err != nil || got != want {
			t.Errorf("ParseSeverity(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseSeverity("fatal"); !errors.Is(err, ErrUnknownSeverity) {
		t.Errorf("err = %v, want ErrUnknownSeverity", err)
	}
}
