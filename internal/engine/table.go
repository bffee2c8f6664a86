// Package engine implements the registration table and the
// single-pass dispatch loop at the heart of the analyzer. A table is
// built once per rule-set and reused, read-only, across every file and
// every worker of a session.
package engine

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"sort"

	"verdict/internal/diag"
	"verdict/internal/rule"
	"verdict/internal/syntax"
)

var (
	// ErrDuplicateRule indicates two rules registered under the same id.
	ErrDuplicateRule = errors.New("engine: duplicate rule id")
	// ErrNoDescriptors indicates a rule declared an empty descriptor set.
	ErrNoDescriptors = errors.New("engine: rule declares no descriptors")
)

type binding struct {
	ruleID string
	fn     rule.Callback
}

// Table maps node kinds to the ordered callbacks interested in them.
// Building costs O(rules x kinds); every dispatch pass afterwards pays
// only O(1) per node for the lookup. Immutable after NewTable returns.
type Table struct {
	bindings    map[syntax.Kind][]binding
	descriptors map[string]diag.Descriptor
	owner       map[string]string // descriptor id -> rule id
	ruleOrder   []string
	fingerprint [32]byte
}

type registrar struct {
	table  *Table
	ruleID string
}

func (r *registrar) OnNode(kind syntax.Kind, fn rule.Callback) {
	t := r.table
	t.bindings[kind] = append(t.bindings[kind], binding{ruleID: r.ruleID, fn: fn})
}

// NewTable builds a registration table from the rule-set in the given
// order. Registration order is preserved per node kind, which makes
// diagnostic emission order deterministic. Descriptor id collisions
// across rules, and conflicting metadata for one id, are configuration
// errors surfaced here, before any analysis runs.
func NewTable(rules []rule.Rule) (*Table, error) {
	t := &Table{
		bindings:    make(map[syntax.Kind][]binding),
		descriptors: make(map[string]diag.Descriptor),
		owner:       make(map[string]string),
		ruleOrder:   make([]string, 0, len(rules)),
	}

	seenRules := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		id := r.ID()
		if _, dup := seenRules[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, id)
		}
		seenRules[id] = struct{}{}
		t.ruleOrder = append(t.ruleOrder, id)

		descriptors := r.Descriptors()
		if len(descriptors) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoDescriptors, id)
		}
		for _, d := range descriptors {
			if owner, exists := t.owner[d.ID]; exists {
				if owner != id || !t.descriptors[d.ID].SameMetadata(d) {
					return nil, fmt.Errorf("%w: %s declared by %s and %s",
						diag.ErrDuplicateDescriptor, d.ID, owner, id)
				}
				continue // same rule re-listing an identical descriptor
			}
			t.descriptors[d.ID] = d
			t.owner[d.ID] = id
		}

		r.Init(&registrar{table: t, ruleID: id})
	}

	t.fingerprint = t.computeFingerprint()
	return t, nil
}

// computeFingerprint hashes rule ids, descriptor metadata and kind
// subscriptions. Two tables with the same fingerprint produce
// identical diagnostics for identical input, which is what the result
// cache keys on.
func (t *Table) computeFingerprint() [32]byte {
	h := sha256.New()
	for _, id := range t.ruleOrder {
		fmt.Fprintf(h, "rule %s\n", id)
	}

	descIDs := make([]string, 0, len(t.descriptors))
	for id := range t.descriptors {
		descIDs = append(descIDs, id)
	}
	sort.Strings(descIDs)
	for _, id := range descIDs {
		d := t.descriptors[id]
		fmt.Fprintf(h, "descriptor %s %s %s %s %d %t\n",
			d.ID, d.Title, d.MessageTemplate, d.Category, d.DefaultSeverity, d.EnabledByDefault)
	}

	kinds := make([]int, 0, len(t.bindings))
	for k := range t.bindings {
		kinds = append(kinds, int(k))
	}
	sort.Ints(kinds)
	for _, k := range kinds {
		fmt.Fprintf(h, "kind %d:", k)
		for _, b := range t.bindings[syntax.Kind(k)] {
			fmt.Fprintf(h, " %s", b.ruleID)
		}
		fmt.Fprintln(h)
	}

	var out [32]byte
	h.Sum(out[:0])
	return out
}

// Fingerprint identifies this rule-set configuration for caching.
func (t *Table) Fingerprint() [32]byte {
	return t.fingerprint
}

// Rules returns rule ids in registration order. Read-only.
func (t *Table) Rules() []string {
	return t.ruleOrder
}

// Descriptor returns the descriptor for id, if registered.
func (t *Table) Descriptor(id string) (diag.Descriptor, bool) {
	d, ok := t.descriptors[id]
	return d, ok
}

// Descriptors returns all registered descriptors sorted by id.
func (t *Table) Descriptors() []diag.Descriptor {
	out := make([]diag.Descriptor, 0, len(t.descriptors))
	for _, d := range t.descriptors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
