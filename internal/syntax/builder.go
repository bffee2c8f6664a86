package syntax

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"verdict/internal/source"
)

var (
	// ErrEmptyTree indicates Build was called before any node was added.
	ErrEmptyTree = errors.New("syntax: empty tree")
	// ErrMultipleRoots indicates more than one node without a parent.
	ErrMultipleRoots = errors.New("syntax: multiple roots")
	// ErrBadParent indicates a node referenced a parent not yet added.
	ErrBadParent = errors.New("syntax: parent id out of range")
)

// Builder assembles a Tree for one file. Front ends and tests add
// nodes top-down: the parent must exist before its children, which
// also guarantees arena order is a valid pre-order-compatible layout.
type Builder struct {
	file  source.FileID
	nodes []Node
	root  NodeID
	err   error
}

// NewBuilder creates a builder for the given file.
func NewBuilder(file source.FileID) *Builder {
	return &Builder{
		file:  file,
		nodes: make([]Node, 0, 64),
	}
}

// Add appends a node and returns its id. Pass NoNodeID as parent for
// the root node. Errors are sticky and surface from Build.
func (b *Builder) Add(parent NodeID, kind Kind, span source.Span, text string) NodeID {
	if b.err != nil {
		return NoNodeID
	}

	lenNodes, convErr := safecast.Conv[uint32](len(b.nodes))
	if convErr != nil {
		b.err = fmt.Errorf("syntax: node count overflow: %w", convErr)
		return NoNodeID
	}
	id := NodeID(lenNodes + 1)

	if parent == NoNodeID {
		if b.root != NoNodeID {
			b.err = ErrMultipleRoots
			return NoNodeID
		}
		b.root = id
	} else {
		if uint32(parent) > lenNodes {
			b.err = ErrBadParent
			return NoNodeID
		}
		p := &b.nodes[parent-1]
		p.Children = append(p.Children, id)
	}

	span.File = b.file
	b.nodes = append(b.nodes, Node{
		Kind:   kind,
		Span:   span,
		Text:   text,
		Parent: parent,
	})
	return id
}

// Build finalizes the tree. The builder must not be reused afterwards.
func (b *Builder) Build() (*Tree, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.root == NoNodeID {
		return nil, ErrEmptyTree
	}
	return &Tree{
		file:  b.file,
		nodes: b.nodes,
		root:  b.root,
	}, nil
}
