package engine

// node is a child slot of a tree node: exactly one of tree and leaf is set,
// or neither for an empty slot. Both kinds share the height/release contract
// and are dispatched with a plain branch.
type node struct {
	tree *treeNode
	leaf *leafNode
}

func (n node) empty() bool {
	return n.tree == nil && n.leaf == nil
}

func (n node) height() float64 {
	if n.leaf != nil {
		return n.leaf.height()
	}
	return n.tree.height()
}

func (n node) release(budget int) int {
	if n.leaf != nil {
		return n.leaf.release(budget)
	}
	return n.tree.release(budget)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
