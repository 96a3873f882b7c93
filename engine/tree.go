package engine

// treeNode covers the item range [first, last) with up to NodeSize children.
// Children are built on demand. heights holds the last known height of every
// slot, whether or not the child is currently materialized. h is the
// aggregate height; zero means it must be recomputed.
type treeNode struct {
	e *Engine

	parent *treeNode
	slot   int

	first, last int
	step        int
	childCount  int

	h        float64
	children [NodeSize]node
	heights  [NodeSize]float64

	released bool
}

func (t *treeNode) init(e *Engine, parent *treeNode, first, last, slot int, h float64) {
	step, count := 0, 0
	if size := last - first; size > 0 {
		step = ceilDiv(size, NodeSize)
		count = ceilDiv(size, step)
	}
	*t = treeNode{
		e:          e,
		parent:     parent,
		slot:       slot,
		first:      first,
		last:       last,
		step:       step,
		childCount: count,
		h:          h,
	}
}

// height returns the aggregate height, recomputing it from the children when
// it was invalidated. Slots with no known height are assumed to look like the
// average of the known ones.
func (t *treeNode) height() float64 {
	check(!t.released, ErrReleased, "tree [%d,%d)", t.first, t.last)
	if t.h != 0 {
		return t.h
	}

	var sum float64
	found := 0
	for i := 0; i < t.childCount; i++ {
		if c := t.children[i]; !c.empty() {
			h := c.height()
			t.heights[i] = h
			sum += h
			found++
		} else if t.heights[i] != 0 {
			sum += t.heights[i]
			found++
		} else if t.step == 1 {
			if h, ok := t.e.cache.Get(t.first + i); ok {
				t.heights[i] = h
				sum += h
				found++
			}
		}
	}

	if found == 0 {
		t.h = t.e.defaultHeight(t.first) * float64(t.last-t.first)
	} else {
		t.h = sum * float64(t.childCount) / float64(found)
	}
	return t.h
}

// childHeight returns the best estimate for slot i without materializing it.
// A slot with nothing known gets the flat estimate a fresh subtree would
// start from, and that estimate is recorded so the aggregate agrees with it.
func (t *treeNode) childHeight(i int) float64 {
	check(!t.released, ErrReleased, "tree [%d,%d)", t.first, t.last)
	if t.heights[i] > 0 {
		return t.heights[i]
	}
	if c := t.children[i]; !c.empty() {
		return c.height()
	}
	first := t.first + i*t.step
	if t.step == 1 {
		if h, ok := t.e.cache.Get(first); ok {
			return h
		}
	}
	h := t.e.defaultHeight(first) * float64(t.slotSize(i))
	t.invalidateHeight(i, h)
	return h
}

func (t *treeNode) slotSize(i int) int {
	first := t.first + i*t.step
	return min(first+t.step, t.last) - first
}

// invalidateHeight records a new height for slot i and marks the aggregate
// stale. The reset only travels up while ancestors still hold a valid
// aggregate; an ancestor that is already stale will recompute on its next
// read anyway.
func (t *treeNode) invalidateHeight(i int, h float64) {
	check(!t.released, ErrReleased, "tree [%d,%d)", t.first, t.last)
	if h > 0 && t.heights[i] == h {
		return
	}
	t.heights[i] = h
	if t.h == 0 {
		return
	}
	t.h = 0
	if t.parent != nil {
		t.parent.invalidateHeight(t.slot, 0)
	}
}

// existing returns the child in slot i if it is materialized.
func (t *treeNode) existing(i int) (node, bool) {
	check(!t.released, ErrReleased, "tree [%d,%d)", t.first, t.last)
	c := t.children[i]
	return c, !c.empty()
}

// child returns the child in slot i, materializing it if needed. A new child
// starts from the slot's last known height so its first guess is already
// close to its eventual size.
func (t *treeNode) child(i int) node {
	check(!t.released, ErrReleased, "tree [%d,%d)", t.first, t.last)
	if c := t.children[i]; !c.empty() {
		return c
	}

	var c node
	if t.step == 1 {
		c.leaf = t.e.pool.leaf(t.e, t, t.first+i, i, t.heights[i])
	} else {
		first := t.first + i*t.step
		last := min(first+t.step, t.last)
		c.tree = t.e.pool.tree(t.e, t, first, last, i, t.heights[i])
	}

	h := t.heights[i]
	if h == 0 {
		h = c.height()
	}
	t.children[i] = c
	t.invalidateHeight(i, h)
	return c
}

// release releases all materialized children, detaches from the parent and
// returns the node to the pool. It returns what is left of budget.
func (t *treeNode) release(budget int) int {
	check(!t.released, ErrDoubleRelease, "tree [%d,%d)", t.first, t.last)
	for i := 0; i < t.childCount; i++ {
		if c := t.children[i]; !c.empty() {
			budget = c.release(budget)
		}
	}

	if p := t.parent; p != nil {
		h := t.height()
		p.children[t.slot] = node{}
		p.invalidateHeight(t.slot, h)
		t.parent = nil
	}

	t.children = [NodeSize]node{}
	t.heights = [NodeSize]float64{}
	t.released = true
	t.e.pool.putTree(t)
	return budget
}
