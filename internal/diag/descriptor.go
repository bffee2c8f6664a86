package diag

import (
	"fmt"
)

// Descriptor is the immutable identity of a diagnostic a rule can
// produce: stable id, human titles, message template and defaults.
// Descriptors are constructed once at startup and shared read-only.
type Descriptor struct {
	ID               string
	Title            string
	MessageTemplate  string
	Category         string
	DefaultSeverity  Severity
	EnabledByDefault bool
	HelpURI          string

	arity int // placeholder count, computed at construction
}

// NewDescriptor validates the id and message template. A malformed
// template is a configuration error and must surface before any
// analysis runs, not at emission time.
func NewDescriptor(id, title, template, category string, defaultSeverity Severity, enabled bool) (Descriptor, error) {
	if id == "" {
		return Descriptor{}, ErrEmptyDescriptorID
	}
	arity, err := templateArity(template)
	if err != nil {
		return Descriptor{}, fmt.Errorf("descriptor %s: %w", id, err)
	}
	return Descriptor{
		ID:               id,
		Title:            title,
		MessageTemplate:  template,
		Category:         category,
		DefaultSeverity:  defaultSeverity,
		EnabledByDefault: enabled,
		arity:            arity,
	}, nil
}

// MustDescriptor is NewDescriptor for package-level rule declarations;
// it panics on invalid input.
func MustDescriptor(id, title, template, category string, defaultSeverity Severity, enabled bool) Descriptor {
	d, err := NewDescriptor(id, title, template, category, defaultSeverity, enabled)
	if err != nil {
		panic(err)
	}
	return d
}

// WithHelpURI returns a copy carrying a documentation link.
func (d Descriptor) WithHelpURI(uri string) Descriptor {
	d.HelpURI = uri
	return d
}

// Arity returns the number of arguments the message template expects.
func (d Descriptor) Arity() int {
	return d.arity
}

// SameMetadata reports whether two descriptors with the same id carry
// identical metadata. Two descriptors sharing an id but differing in
// template or category must never coexist in one registration table.
func (d Descriptor) SameMetadata(other Descriptor) bool {
	return d.ID == other.ID &&
		d.Title == other.Title &&
		d.MessageTemplate == other.MessageTemplate &&
		d.Category == other.Category &&
		d.DefaultSeverity == other.DefaultSeverity &&
		d.EnabledByDefault == other.EnabledByDefault &&
		d.HelpURI == other.HelpURI
}
