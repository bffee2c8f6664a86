package diag

import "fmt"

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevHidden is for diagnostics kept out of normal tool output.
	SevHidden Severity = iota
	// SevInfo is for informational diagnostics.
	SevInfo
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevHidden:
		return "HIDDEN"
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseSeverity resolves the lower-case names used in configuration.
func ParseSeverity(name string) (Severity, error) {
	switch name {
	case "hidden":
		return SevHidden, nil
	case "info":
		return SevInfo, nil
	case "warning":
		return SevWarning, nil
	case "error":
		return SevError, nil
	}
	return SevHidden, fmt.Errorf("%w: %q", ErrUnknownSeverity, name)
}
