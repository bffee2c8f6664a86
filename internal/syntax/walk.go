package syntax

// Visitor is invoked once per node during a walk.
// Returning false stops the walk immediately.
type Visitor func(id NodeID, n *Node) bool

// Walk performs an iterative pre-order traversal: parent before
// children, siblings in source order. This ordering is part of the
// dispatch contract; rules may rely on parent-before-child visitation.
func (t *Tree) Walk(visit Visitor) {
	if t.root == NoNodeID {
		return
	}

	stack := make([]NodeID, 0, 32)
	stack = append(stack, t.root)

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[id-1]
		if !visit(id, n) {
			return
		}

		// push children in reverse so the first child pops first
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}
