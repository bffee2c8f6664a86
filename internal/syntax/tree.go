package syntax

import (
	"verdict/internal/source"
)

// NodeID is a 1-based arena index. Zero means "no node".
type NodeID uint32

// NoNodeID is the invalid node id.
const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }

// Node is a single syntax tree node. Nodes are immutable after the
// tree is built; rules receive pointers for cheap access and must not
// retain them past the callback.
type Node struct {
	Kind     Kind
	Span     source.Span
	Text     string
	Parent   NodeID
	Children []NodeID
}

// Tree is an immutable, arena-backed syntax tree for one source file.
// It is safe to share across concurrent dispatch passes.
type Tree struct {
	file  source.FileID
	nodes []Node
	root  NodeID
}

// File returns the source file this tree was built from.
func (t *Tree) File() source.FileID { return t.file }

// Root returns the root node id.
func (t *Tree) Root() NodeID { return t.root }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node for id, or nil for NoNodeID.
// The returned pointer aims into the arena: read-only.
func (t *Tree) Node(id NodeID) *Node {
	if id == NoNodeID {
		return nil
	}
	return &t.nodes[id-1]
}

// Parent returns the parent id of id, NoNodeID for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	if id == NoNodeID {
		return NoNodeID
	}
	return t.nodes[id-1].Parent
}

// Children returns the child ids of id in source order. Read-only.
func (t *Tree) Children(id NodeID) []NodeID {
	if id == NoNodeID {
		return nil
	}
	return t.nodes[id-1].Children
}

// Ancestor returns the nearest ancestor of the given kind, or NoNodeID.
func (t *Tree) Ancestor(id NodeID, kind Kind) NodeID {
	for cur := t.Parent(id); cur != NoNodeID; cur = t.Parent(cur) {
		if t.nodes[cur-1].Kind == kind {
			return cur
		}
	}
	return NoNodeID
}

// HasAncestor reports whether any ancestor of id has the given kind.
func (t *Tree) HasAncestor(id NodeID, kind Kind) bool {
	return t.Ancestor(id, kind) != NoNodeID
}

// CountChildren counts direct children of id with the given kind.
func (t *Tree) CountChildren(id NodeID, kind Kind) int {
	n := 0
	for _, child := range t.Children(id) {
		if t.nodes[child-1].Kind == kind {
			n++
		}
	}
	return n
}
