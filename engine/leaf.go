package engine

// leafNode stands for a single item. While realized it owns the element
// handle (and header) obtained from the lister.
type leafNode struct {
	e *Engine

	parent *treeNode
	slot   int
	index  int

	h      float64
	handle Handle
	header Handle

	// pending is set while the leaf sits in the measurement queue.
	pending  bool
	released bool
}

func (l *leafNode) init(e *Engine, parent *treeNode, index, slot int, h float64) {
	if cached, ok := e.cache.Get(index); ok {
		h = cached
	}
	*l = leafNode{
		e:      e,
		parent: parent,
		slot:   slot,
		index:  index,
		h:      h,
	}
}

func (l *leafNode) realized() bool {
	return l.handle != nil
}

// height returns the measured height if there is one, otherwise the current
// default for this index. Whatever is returned is remembered so the estimate
// stays stable until a measurement replaces it.
func (l *leafNode) height() float64 {
	check(!l.released, ErrReleased, "leaf %d", l.index)
	if l.h > 0 {
		return l.h
	}
	if l.realized() {
		if h := l.e.container.Measure(l.handle); h > 0 {
			l.h = h
			return h
		}
	}
	l.h = l.e.defaultHeight(l.index)
	return l.h
}

// needsMeasure reports whether the real height has to be read after the
// element is laid out.
func (l *leafNode) needsMeasure() bool {
	if l.e.fixed != nil && l.e.fixed.FixedHeight(l.index) {
		return false
	}
	_, ok := l.e.cache.Get(l.index)
	return !ok
}

// create realizes the element if budget allows and places it at vertical
// offset y. An already realized leaf is only moved. It returns what is left
// of budget.
func (l *leafNode) create(left, y float64, budget int) int {
	check(!l.released, ErrReleased, "leaf %d", l.index)
	e := l.e
	if !l.realized() {
		if budget <= 0 {
			return budget
		}
		l.handle = e.lister.Item(l.index)
		check(l.handle != nil, ErrInvariant, "lister returned no element for %d", l.index)
		if e.headers != nil {
			l.header = e.headers.Header(l.index)
		}
		if l.needsMeasure() {
			l.pending = true
			e.queue.push(l)
		}
		e.container.Append(l.handle)
		budget--
		e.frame.Created++
		if l.header != nil {
			e.container.Append(l.header)
			budget--
			e.frame.Created++
		}
		e.realized++
	}

	e.container.Place(l.handle, Offset{X: -left, Y: y})
	if l.header != nil {
		e.container.Place(l.header, Offset{Y: y})
	}
	return budget
}

// release removes the element (or parks it off-canvas when the budget is
// spent), detaches the leaf from its parent and returns it to the pool. A
// leaf still waiting for measurement goes back to the pool once the queue
// drops it.
func (l *leafNode) release(budget int) int {
	check(!l.released, ErrDoubleRelease, "leaf %d", l.index)
	e := l.e
	h := l.height()

	if l.realized() {
		if budget > 0 {
			e.destroy(l.handle, l.index, l.header)
			budget--
			if l.header != nil {
				budget--
			}
			e.frame.Destroyed++
		} else {
			e.container.Place(l.handle, Offset{Y: offCanvas})
			if l.header != nil {
				e.container.Place(l.header, Offset{Y: offCanvas})
			}
			e.backlog = append(e.backlog, parked{handle: l.handle, index: l.index, header: l.header})
			e.frame.Deferred++
		}
		e.realized--
	}

	if p := l.parent; p != nil {
		p.children[l.slot] = node{}
		p.invalidateHeight(l.slot, h)
		l.parent = nil
	}

	l.handle, l.header = nil, nil
	l.released = true
	if !l.pending {
		e.pool.putLeaf(l)
	}
	return budget
}
