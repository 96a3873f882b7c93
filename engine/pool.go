package engine

// pool keeps released nodes for reuse, one free list per kind. Nodes taken
// from it are initialized exactly like fresh ones.
type pool struct {
	trees  []*treeNode
	leaves []*leafNode
}

func (p *pool) tree(e *Engine, parent *treeNode, first, last, slot int, h float64) *treeNode {
	var t *treeNode
	if n := len(p.trees); n > 0 {
		t = p.trees[n-1]
		p.trees[n-1] = nil
		p.trees = p.trees[:n-1]
	} else {
		t = &treeNode{}
	}
	t.init(e, parent, first, last, slot, h)
	return t
}

func (p *pool) leaf(e *Engine, parent *treeNode, index, slot int, h float64) *leafNode {
	var l *leafNode
	if n := len(p.leaves); n > 0 {
		l = p.leaves[n-1]
		p.leaves[n-1] = nil
		p.leaves = p.leaves[:n-1]
	} else {
		l = &leafNode{}
	}
	l.init(e, parent, index, slot, h)
	return l
}

func (p *pool) putTree(t *treeNode) {
	check(t.released, ErrInvariant, "pooling live tree [%d,%d)", t.first, t.last)
	t.e = nil
	p.trees = append(p.trees, t)
}

func (p *pool) putLeaf(l *leafNode) {
	check(l.released && !l.pending, ErrInvariant, "pooling live leaf %d", l.index)
	l.e = nil
	p.leaves = append(p.leaves, l)
}
