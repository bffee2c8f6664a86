// Package suppress filters and re-severities raw diagnostics after a
// dispatch pass. It is the only path by which the engine ever drops a
// finding, which keeps suppression auditable and the dispatch loop
// configuration-agnostic.
package suppress

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"verdict/internal/diag"
)

// Setting describes the configured handling of one descriptor id.
// Disabled wins over Override.
type Setting struct {
	Disabled bool
	Override *diag.Severity
}

// Config maps descriptor ids to suppression settings. Build it fully
// before analysis; it is read-only afterwards and safe to share across
// workers.
type Config struct {
	settings map[string]Setting
}

// NewConfig returns an empty configuration: every descriptor keeps its
// default severity and enabled flag.
func NewConfig() *Config {
	return &Config{settings: make(map[string]Setting)}
}

// Disable drops every diagnostic with the given descriptor id.
func (c *Config) Disable(id string) {
	c.settings[id] = Setting{Disabled: true}
}

// Override replaces the default severity for the given descriptor id.
// An override also force-enables descriptors disabled by default.
func (c *Config) Override(id string, sev diag.Severity) {
	c.settings[id] = Setting{Override: &sev}
}

// Setting returns the configured handling for id, if any.
func (c *Config) Setting(id string) (Setting, bool) {
	s, ok := c.settings[id]
	return s, ok
}

// Len returns the number of configured descriptor ids.
func (c *Config) Len() int {
	return len(c.settings)
}

// Fingerprint hashes the configuration deterministically; the result
// cache keys on it so differently-configured sessions never share
// cached output.
func (c *Config) Fingerprint() [32]byte {
	ids := make([]string, 0, len(c.settings))
	for id := range c.settings {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	h := sha256.New()
	for _, id := range ids {
		s := c.settings[id]
		if s.Disabled {
			fmt.Fprintf(h, "%s off\n", id)
		} else if s.Override != nil {
			fmt.Fprintf(h, "%s %d\n", id, *s.Override)
		}
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}
