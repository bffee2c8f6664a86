package engine

import (
	"context"
	"fmt"

	"verdict/internal/diag"
	"verdict/internal/rule"
	"verdict/internal/source"
	"verdict/internal/syntax"
)

// cancelCheckInterval bounds how many nodes a pass visits between
// cooperative cancellation checks.
const cancelCheckInterval = 256

// FaultDescriptor is the engine-owned descriptor for analyzer faults:
// a callback that panicked is reported under the faulting rule's id
// instead of aborting the pass.
var FaultDescriptor = diag.MustDescriptor(
	"AC0000",
	"Analyzer fault",
	"rule '{0}' failed on {1} node: {2}",
	"AnalyzerInternal",
	diag.SevWarning,
	true,
)

// Stats counts the work done by one dispatch pass. The single-pass
// property is observable here: NodesVisited equals the tree size no
// matter how many rules are registered.
type Stats struct {
	NodesVisited     int
	CallbacksInvoked int
	Faults           int
	// Dropped counts diagnostics discarded at the bag's capacity limit.
	Dropped int
}

type emitSink struct {
	table  *Table
	ruleID string
	bag    *diag.Bag
	stats  *Stats
}

// Emit validates descriptor ownership and template arity, then appends
// to the pass-local bag. Authoring bugs panic; the per-callback
// isolation wrapper converts the panic into an analyzer fault.
func (s *emitSink) Emit(descriptorID string, primary source.Span, args ...any) {
	d, ok := s.table.descriptors[descriptorID]
	if !ok {
		panic(fmt.Sprintf("emit of unregistered descriptor %s", descriptorID))
	}
	if owner := s.table.owner[descriptorID]; owner != s.ruleID {
		panic(fmt.Sprintf("emit of descriptor %s owned by rule %s", descriptorID, owner))
	}
	diagnostic, err := diag.Format(d, s.ruleID, primary, args...)
	if err != nil {
		panic(err.Error())
	}
	if !s.bag.Add(diagnostic) {
		s.stats.Dropped++
	}
}

type pass struct {
	table *Table
	tree  *syntax.Tree
	bag   *diag.Bag
	ctx   rule.Context
	sinks map[string]*emitSink
	stats Stats
}

func (p *pass) sinkFor(ruleID string) *emitSink {
	s, ok := p.sinks[ruleID]
	if !ok {
		s = &emitSink{table: p.table, ruleID: ruleID, bag: p.bag, stats: &p.stats}
		p.sinks[ruleID] = s
	}
	return s
}

// invoke runs one callback with failure isolation: a panic inside the
// rule is recovered, recorded as an AC0000 diagnostic tagged with the
// rule's id, and the traversal carries on untouched.
func (p *pass) invoke(b binding, id syntax.NodeID, node *syntax.Node) {
	defer func() {
		if r := recover(); r != nil {
			p.stats.Faults++
			fault, err := diag.Format(FaultDescriptor, b.ruleID, node.Span,
				b.ruleID, node.Kind.String(), fmt.Sprint(r))
			if err != nil {
				return // unreachable: the fault template arity is fixed
			}
			if !p.bag.Add(fault) {
				p.stats.Dropped++
			}
		}
	}()

	p.stats.CallbacksInvoked++
	p.ctx.Bind(p.tree, id, node, b.ruleID)
	b.fn(&p.ctx, p.sinkFor(b.ruleID))
}

// Analyze walks the tree exactly once, in pre-order, and dispatches
// each node to the callbacks registered for its kind, in registration
// order. Raw diagnostics land in bag in emission order; the caller
// applies suppression and sorting afterwards.
//
// Cancellation is cooperative: the context is polled every
// cancelCheckInterval nodes. On cancellation the walk stops and
// ctx.Err() is returned alongside the partial stats; diagnostics
// already collected stay in the bag.
func (t *Table) Analyze(ctx context.Context, tree *syntax.Tree, bag *diag.Bag) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	p := &pass{
		table: t,
		tree:  tree,
		bag:   bag,
		sinks: make(map[string]*emitSink, len(t.ruleOrder)),
	}

	cancelled := false
	tree.Walk(func(id syntax.NodeID, node *syntax.Node) bool {
		p.stats.NodesVisited++
		if p.stats.NodesVisited%cancelCheckInterval == 0 && ctx.Err() != nil {
			cancelled = true
			return false
		}

		for _, b := range t.bindings[node.Kind] {
			p.invoke(b, id, node)
		}
		return true
	})

	if cancelled {
		return p.stats, ctx.Err()
	}
	return p.stats, nil
}
