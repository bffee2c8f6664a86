// Package rule defines the contract every pluggable analyzer
// implements. Rules are plain values: they declare the descriptors
// they can produce and subscribe callbacks to node kinds. The engine
// owns traversal; a rule never walks the tree itself.
package rule

import (
	"verdict/internal/diag"
	"verdict/internal/source"
	"verdict/internal/syntax"
)

// Sink receives diagnostics from a callback. Emitting a descriptor id
// the rule does not own, or an argument list that does not match the
// descriptor's template, is an authoring bug: the sink fails fast and
// the dispatch engine converts it into an analyzer-fault diagnostic.
type Sink interface {
	Emit(descriptorID string, primary source.Span, args ...any)
}

// Callback is invoked for every visited node of a subscribed kind.
// Callbacks run synchronously on the dispatching goroutine, in
// registration order. They must not retain ctx or the node past the
// call and must not block.
type Callback func(ctx *Context, emit Sink)

// Registrar accepts a rule's node-kind subscriptions during Init.
type Registrar interface {
	OnNode(kind syntax.Kind, fn Callback)
}

// Rule is a named unit of detection logic.
//
// ID returns a stable, unique rule name. Descriptors returns the
// non-empty set of diagnostics the rule can produce. Init is called
// exactly once per registration table build; the subscriptions it
// makes are reused across every file the table analyzes.
type Rule interface {
	ID() string
	Descriptors() []diag.Descriptor
	Init(reg Registrar)
}

// Context carries per-node dispatch state into a callback. The engine
// reuses one Context per pass; everything a rule may keep must go
// through State.
type Context struct {
	Tree *syntax.Tree
	ID   syntax.NodeID
	Node *syntax.Node

	ruleID string
	states map[string]map[string]any
}

// Bind points the context at a node on behalf of a rule. Only the
// dispatch engine calls this.
func (c *Context) Bind(tree *syntax.Tree, id syntax.NodeID, node *syntax.Node, ruleID string) {
	c.Tree = tree
	c.ID = id
	c.Node = node
	c.ruleID = ruleID
	if c.states == nil {
		c.states = make(map[string]map[string]any)
	}
}

// State returns the rule's pass-local scratch map, created on first
// use. It lives for one pass over one tree and is private to the
// (pass, rule) pair, so counters kept here never leak across files
// analyzed concurrently with the same rule instance.
func (c *Context) State() map[string]any {
	m := c.states[c.ruleID]
	if m == nil {
		m = make(map[string]any)
		c.states[c.ruleID] = m
	}
	return m
}
