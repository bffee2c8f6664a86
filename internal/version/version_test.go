package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestPretty(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	// colors off so Sprint is a pass-through
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	Version = "1.2.3-dev"
	if got := Pretty(); got != "1.2.3-dev" {
		t.Errorf("Pretty() = %q", got)
	}

	Version = "not-semver"
	if got := Pretty(); got != "not-semver" {
		t.Errorf("Pretty() = %q", got)
	}
}

func TestSplitSemver(t *testing.T) {
	major, minor, rest, ok := splitSemver("0.1.0-dev")
	if !ok || major != "0" || minor != "1" || rest != "0-dev" {
		t.Errorf("splitSemver = %q %q %q %v", major, minor, rest, ok)
	}
	if _, _, _, ok := splitSemver("1.0"); ok {
		t.Error("two-component version must not split")
	}
}
