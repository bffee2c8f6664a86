package diag

import (
	"sort"

	"fortio.org/safecast"
)

// Bag accumulates diagnostics for one pass. A bag is owned by a single
// goroutine until merged into a session result.
type Bag struct {
	items []Diagnostic
	max   uint16
}

// NewBag creates a bag holding at most max diagnostics.
func NewBag(max int) *Bag {
	m, err := safecast.Conv[uint16](max)
	if err != nil {
		m = ^uint16(0)
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(max, 64)),
		max:   m,
	}
}

// Add appends a diagnostic, honoring the limit.
// Returns false when the bag is full and the diagnostic was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Cap returns the configured limit.
func (b *Bag) Cap() uint16 {
	return b.max
}

// Len returns the number of stored diagnostics.
func (b *Bag) Len() int {
	return len(b.items)
}

// HasErrors reports whether at least one diagnostic is an error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether at least one diagnostic is warning or worse.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// Items returns the stored diagnostics.
// Do not modify the returned slice: it aliases the bag's storage.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Replace swaps the bag's contents. The suppression layer uses this to
// install its filtered clone without mutating diagnostics in place.
func (b *Bag) Replace(items []Diagnostic) {
	b.items = items
}

// Merge appends diagnostics from another bag, raising the limit if
// needed to fit everything.
func (b *Bag) Merge(other *Bag) {
	newTotal := len(b.items) + len(other.items)
	if total, err := safecast.Conv[uint16](newTotal); err == nil && total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by file, start, end, severity (descending),
// then descriptor id, for a stable, deterministic output order.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Descriptor < dj.Descriptor
	})
}

// Dedup removes exact repeats (same descriptor, span and message),
// keeping first occurrences in order.
type dedupKey struct {
	descriptor string
	file       uint32
	start      uint32
	end        uint32
	message    string
}

func (b *Bag) Dedup() {
	seen := make(map[dedupKey]struct{}, len(b.items))
	out := b.items[:0:0]
	for _, d := range b.items {
		key := dedupKey{
			descriptor: d.Descriptor,
			file:       uint32(d.Primary.File),
			start:      d.Primary.Start,
			end:        d.Primary.End,
			message:    d.Message,
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	b.items = out
}
