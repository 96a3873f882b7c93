package engine

// walker carries the viewport of one frame through the tree. Positions are
// in content units measured from the top of the content.
type walker struct {
	left   float64
	top    float64
	bottom float64
	origin float64
	buffer float64
}

// outside reports whether a span starting at pos with height h lies entirely
// beyond the buffered viewport.
func (w *walker) outside(pos, h float64) bool {
	return pos+h < w.top-w.buffer || pos > w.bottom+w.buffer
}

// walk visits the children of t, whose top edge sits at pos. Children that
// fall outside the buffered viewport are released; the rest are materialized
// and either realized (leaves) or descended into (subtrees). It returns what
// is left of budget.
func (w *walker) walk(t *treeNode, pos float64, budget int) int {
	for i := 0; i < t.childCount; i++ {
		h := t.childHeight(i)
		if w.outside(pos, h) {
			if c, ok := t.existing(i); ok {
				budget = c.release(budget)
			}
			pos += h
			continue
		}

		c := t.child(i)
		h = c.height()
		if w.outside(pos, h) {
			budget = c.release(budget)
			pos += h
			continue
		}

		if c.leaf != nil {
			budget = c.leaf.create(w.left, pos-w.origin, budget)
		} else {
			budget = w.walk(c.tree, pos, budget)
		}
		pos += c.height()
	}
	return budget
}
