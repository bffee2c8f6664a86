// Package testkit holds structural checks shared by tests that build
// or decode syntax trees.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"verdict/internal/source"
	"verdict/internal/syntax"
)

// CheckTreeInvariants runs a minimal set of structural invariants on a
// built tree:
//  1. every span ends within the file content
//  2. every child span is contained in its parent's span
//  3. sibling spans appear in source order
//  4. every non-root node's parent link points back at it
func CheckTreeInvariants(tree *syntax.Tree, file *source.File) error {
	if tree == nil || file == nil {
		return fmt.Errorf("nil tree or file")
	}
	if tree.Root() == syntax.NoNodeID {
		return fmt.Errorf("tree has no root")
	}

	lenContent, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var walkErr error
	tree.Walk(func(id syntax.NodeID, node *syntax.Node) bool {
		if node.Span.End < node.Span.Start {
			walkErr = fmt.Errorf("node %d: inverted span %d..%d", id, node.Span.Start, node.Span.End)
			return false
		}
		if node.Span.End > lenContent {
			walkErr = fmt.Errorf("node %d: span end %d beyond content length %d", id, node.Span.End, lenContent)
			return false
		}

		var prev *syntax.Node
		for _, childID := range node.Children {
			child := tree.Node(childID)
			if child.Parent != id {
				walkErr = fmt.Errorf("node %d: child %d has parent %d", id, childID, child.Parent)
				return false
			}
			if child.Span.Start < node.Span.Start || child.Span.End > node.Span.End {
				walkErr = fmt.Errorf("node %d: child %d span %d..%d escapes parent span %d..%d",
					id, childID, child.Span.Start, child.Span.End, node.Span.Start, node.Span.End)
				return false
			}
			if prev != nil && child.Span.Start < prev.Span.Start {
				walkErr = fmt.Errorf("node %d: children out of source order at %d", id, childID)
				return false
			}
			prev = child
		}
		return true
	})
	return walkErr
}
