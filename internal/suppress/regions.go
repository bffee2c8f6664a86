package suppress

import (
	"verdict/internal/source"
)

// Wildcard matches every descriptor id in a suppression region.
const Wildcard = "*"

// Region is an inline suppression range, pre-extracted from source
// comments or pragmas by an external scanner. The engine never parses
// source text itself.
type Region struct {
	ID   string // descriptor id or Wildcard
	Span source.Span
}

// Regions indexes suppression ranges by file for O(regions-per-file)
// matching during Apply.
type Regions struct {
	byFile map[source.FileID][]Region
}

// NewRegions returns an empty region index.
func NewRegions() *Regions {
	return &Regions{byFile: make(map[source.FileID][]Region)}
}

// Add indexes one region.
func (r *Regions) Add(region Region) {
	r.byFile[region.Span.File] = append(r.byFile[region.Span.File], region)
}

// Covers reports whether any region suppresses the given descriptor id
// at the given location. A region covers a diagnostic when the
// diagnostic's span starts inside the region and the id matches (or
// the region is a wildcard).
func (r *Regions) Covers(id string, primary source.Span) bool {
	if r == nil {
		return false
	}
	for _, region := range r.byFile[primary.File] {
		if region.ID != Wildcard && region.ID != id {
			continue
		}
		if region.Span.Start <= primary.Start && primary.Start < region.Span.End {
			return true
		}
	}
	return false
}
