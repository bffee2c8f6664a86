package diag

import (
	"fmt"

	"verdict/internal/source"
)

// Diagnostic is one concrete finding. Instances are immutable once
// created; the suppression layer clones with a new severity instead of
// mutating in place.
type Diagnostic struct {
	Descriptor string // descriptor id
	Rule       string // id of the rule that emitted it
	Severity   Severity
	Message    string
	Primary    source.Span
}

// Format resolves a descriptor's message template against args and
// produces a diagnostic at the default severity. An argument count
// that does not match the template's placeholders is an authoring bug
// and fails immediately rather than producing a garbled message.
func Format(d Descriptor, ruleID string, primary source.Span, args ...any) (Diagnostic, error) {
	if len(args) != d.arity {
		return Diagnostic{}, fmt.Errorf("%w: descriptor %s wants %d args, got %d",
			ErrArgumentCount, d.ID, d.arity, len(args))
	}
	return Diagnostic{
		Descriptor: d.ID,
		Rule:       ruleID,
		Severity:   d.DefaultSeverity,
		Message:    expandTemplate(d.MessageTemplate, args),
		Primary:    primary,
	}, nil
}

// WithSeverity returns a copy with the effective severity replaced.
// Message and location are never touched by severity overrides.
func (d Diagnostic) WithSeverity(sev Severity) Diagnostic {
	d.Severity = sev
	return d
}
