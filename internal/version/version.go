// Package version carries build metadata for the verdict CLI.
// The variables can be overridden at build time via -ldflags.
package version

import "github.com/fatih/color"

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Pretty renders the version with each component colorized. Color
// handling follows the global fatih/color switch, so piped output
// stays plain.
func Pretty() string {
	major, minor, rest, ok := splitSemver(Version)
	if !ok {
		return Version
	}
	return versionMajorColor.Sprint(major) + "." +
		versionMinorColor.Sprint(minor) + "." +
		versionPatchColor.Sprint(rest)
}

func splitSemver(v string) (major, minor, rest string, ok bool) {
	first := -1
	for i := 0; i < len(v); i++ {
		if v[i] != '.' {
			continue
		}
		if first < 0 {
			first = i
			continue
		}
		return v[:first], v[first+1 : i], v[i+1:], true
	}
	return "", "", "", false
}
