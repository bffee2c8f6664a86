// Package diag defines the diagnostic model shared by the engine, the
// suppression layer and the renderers.
//
// # Data model
//
// Descriptor is the immutable identity of a class of diagnostics a
// rule can produce: a stable alphanumeric id (e.g. "AC1001"), titles,
// a message template with positional {0}-style placeholders, a
// category tag and default severity. Descriptors are validated at
// construction; a malformed template is a configuration error that
// surfaces before any analysis runs.
//
// Diagnostic is one concrete finding: descriptor id, emitting rule id,
// effective severity, resolved message and a primary source span.
// Diagnostics are immutable; severity overrides clone.
//
// Bag aggregates the diagnostics of one pass. It supports a capacity
// limit, deterministic sorting, deduplication and merging. A bag is
// exclusively owned by the pass that fills it, so no locking is
// needed even when many files are analyzed in parallel.
//
// # Emission
//
// Rules do not construct Diagnostics directly: they call the emit sink
// handed to their callbacks, which routes through Format so template
// arity is enforced at the point of emission. An argument count
// mismatch is an authoring bug and is converted into an analyzer-fault
// diagnostic by the dispatch engine's isolation wrapper.
//
// Keep the model deterministic and side-effect free: renderers,
// caching and golden tests all rely on byte-identical output for
// identical inputs.
package diag
