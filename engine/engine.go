package engine

import (
	"log/slog"
	"math"
	"time"
)

// Engine windows a very long list onto a container. It keeps a lazily built
// tree of height estimates over the lister's indices, realizes only the items
// near the viewport and spreads element creation and destruction over
// several frames with an adaptive budget.
//
// An Engine is not safe for concurrent use. Render, Reflow, Recreate,
// Release and every scheduled callback must run on the same goroutine.
type Engine struct {
	lister    Lister
	heights   HeightLister
	headers   HeaderLister
	fixed     FixedHeightLister
	destroyer Destroyer
	container Container
	scrollbar Scrollbar

	sched    Scheduler
	ticker   *FrameScheduler
	log      *slog.Logger
	now      func() time.Time
	observer func(FrameStats)

	cache   *HeightCache
	queue   measureQueue
	backlog []parked
	pool    pool
	root    *treeNode

	budget        int
	buffer        float64
	rollingHeight float64
	minThumb      float64
	rerenderDelay time.Duration
	fastFrame     time.Duration
	drawAtZero    bool
	inset         float64

	height          float64
	scrollerLength  float64
	containerLength float64
	trackLength     float64
	thumbLength     float64
	thumbOffset     float64

	rerender *Timer
	last     struct {
		left, top, zoom float64
	}
	inRender   bool
	released   bool
	realized   int
	frameCount uint64
	frame      FrameStats
}

// New builds an engine over lister, rendering into container. The lister may
// additionally implement HeightLister, HeaderLister, FixedHeightLister and
// Destroyer.
func New(lister Lister, container Container, opts ...Option) (*Engine, error) {
	if lister == nil {
		return nil, ErrNoLister
	}
	if container == nil {
		return nil, ErrNoContainer
	}

	e := &Engine{
		lister:        lister,
		container:     container,
		log:           slog.Default().With("component", "lazyscroll"),
		now:           time.Now,
		cache:         NewHeightCache(),
		budget:        DefaultBudget,
		buffer:        DefaultBuffer,
		rollingHeight: DefaultHeight,
		minThumb:      DefaultMinThumb,
		rerenderDelay: defaultRerenderDelay,
		fastFrame:     defaultFastFrame,
	}
	e.heights, _ = lister.(HeightLister)
	e.headers, _ = lister.(HeaderLister)
	e.fixed, _ = lister.(FixedHeightLister)
	e.destroyer, _ = lister.(Destroyer)

	for _, opt := range opts {
		opt(e)
	}
	if e.sched == nil {
		e.ticker = NewFrameScheduler(e.now)
		e.sched = e.ticker
	}
	e.rerender = NewTimer(e.sched)

	e.build()
	e.Reflow(0)
	return e, nil
}

func (e *Engine) build() {
	e.root = e.pool.tree(e, nil, 0, max(e.lister.Count(), 0), 0, 0)
	e.height = e.root.height()
}

// defaultHeight is the height assumed for index before it is measured.
func (e *Engine) defaultHeight(index int) float64 {
	if e.heights != nil {
		if h := e.heights.Height(index); h > 0 {
			return h
		}
	}
	if h, ok := e.cache.Get(index); ok {
		return h
	}
	return e.rollingHeight
}

func (e *Engine) destroy(h Handle, index int, header Handle) {
	if e.destroyer != nil {
		e.destroyer.Destroy(h, index, header)
	}
	e.container.Remove(h)
	if header != nil {
		e.container.Remove(header)
	}
}

// Render brings the realized window in line with the viewport. top is the
// scroll offset in scroller units (see Reflow), left the horizontal offset
// applied to every element. zoom is recorded for deferred renders but does
// not affect placement.
//
// When work is left over (budget spent, measurements outstanding, parked
// elements) Render schedules one deferred call to itself with the same
// arguments.
func (e *Engine) Render(left, top, zoom float64) {
	check(!e.released, ErrEngineReleased, "")
	e.last.left, e.last.top, e.last.zoom = left, top, zoom
	if e.inRender {
		e.arm()
		return
	}
	e.inRender = true
	defer func() { e.inRender = false }()

	start := e.now()
	e.rerender.Stop()
	e.frame = FrameStats{Budget: e.budget}
	hadQueue := e.queue.len() > 0

	e.drainMeasurements()

	viewTop := top
	if e.scrollerLength > 0 {
		viewTop = e.height / e.scrollerLength * top
	}
	e.placeThumb(top)

	origin := viewTop
	if e.drawAtZero {
		origin = 0
	}
	origin -= e.inset

	w := walker{
		left:   left,
		top:    viewTop,
		bottom: viewTop + e.containerLength,
		origin: origin,
		buffer: e.buffer,
	}
	budget := w.walk(e.root, 0, e.budget)
	budget = e.drainBacklog(budget)

	e.height = e.root.height()

	exhausted := budget <= 0
	if exhausted || hadQueue || e.queue.len() > 0 || len(e.backlog) > 0 {
		e.arm()
		e.frame.Rearmed = true
	}

	elapsed := e.now().Sub(start)
	if exhausted && elapsed < e.fastFrame {
		e.budget++
		e.frame.Grew = true
		e.log.Debug("budget grown", "budget", e.budget, "elapsed", elapsed)
	}

	e.frameCount++
	e.frame.Remaining = budget
	e.frame.Pending = e.queue.len()
	e.frame.Backlog = len(e.backlog)
	e.frame.Height = e.height
	e.frame.Elapsed = elapsed
	if e.observer != nil {
		e.observer(e.frame)
	}
}

// drainMeasurements reads the real height of every queued leaf. Leaves that
// still measure zero go back into the queue.
func (e *Engine) drainMeasurements() {
	for _, l := range e.queue.take() {
		if l.handle == nil {
			l.pending = false
			e.pool.putLeaf(l)
			continue
		}
		h := e.container.Measure(l.handle)
		if h <= 0 {
			e.queue.push(l)
			e.frame.Requeued++
			e.log.Debug("measurement requeued", "index", l.index)
			continue
		}
		e.rollingHeight = h
		l.h = h
		e.cache.Set(l.index, h)
		if p := l.parent; p != nil && !p.released {
			p.invalidateHeight(l.slot, h)
		}
		l.pending = false
		e.frame.Measured++
	}
}

// drainBacklog destroys parked elements, most recently parked first, while
// budget lasts.
func (e *Engine) drainBacklog(budget int) int {
	for budget > 0 && len(e.backlog) > 0 {
		n := len(e.backlog) - 1
		p := e.backlog[n]
		e.backlog[n] = parked{}
		e.backlog = e.backlog[:n]
		e.destroy(p.handle, p.index, p.header)
		budget--
		e.frame.Destroyed++
	}
	return budget
}

func (e *Engine) flushBacklog() {
	e.drainBacklog(math.MaxInt)
	e.backlog = nil
}

func (e *Engine) arm() {
	e.rerender.Arm(e.rerenderDelay, func() {
		if e.released {
			return
		}
		e.Render(e.last.left, e.last.top, e.last.zoom)
	})
}

func (e *Engine) placeThumb(top float64) {
	if e.scrollbar == nil || e.scrollerLength <= 0 {
		return
	}
	offset := top / e.scrollerLength * e.trackLength
	offset = min(max(offset, 0), max(e.trackLength-e.thumbLength, 0))
	e.thumbOffset = offset
	e.scrollbar.SetThumb(offset, e.thumbLength)
}

// Reflow re-reads the container size and sets the length of the scroll
// space top is expressed in. A scrollerLength of zero or less means the
// estimated content height. Call it after the container is resized or after
// the host resized its scroller.
func (e *Engine) Reflow(scrollerLength float64) {
	e.containerLength = e.container.InnerLength()
	if scrollerLength <= 0 {
		scrollerLength = e.height
	}
	e.scrollerLength = scrollerLength
	if e.scrollbar == nil {
		return
	}
	e.trackLength = e.scrollbar.TrackLength()
	thumb := e.minThumb
	if e.scrollerLength > 0 {
		thumb = max(e.containerLength/e.scrollerLength*e.containerLength, e.minThumb)
	}
	e.thumbLength = min(thumb, e.containerLength)
}

// Height returns the current estimate of the total content height.
func (e *Engine) Height() float64 {
	if e.root == nil {
		return 0
	}
	return e.root.height()
}

// ScrollerLength returns the scroll space set by the last Reflow.
func (e *Engine) ScrollerLength() float64 {
	return e.scrollerLength
}

// Rendering reports whether a deferred render is scheduled.
func (e *Engine) Rendering() bool {
	return e.rerender.Pending()
}

// Tick runs the deferred work that is due when the engine uses its built-in
// FrameScheduler. It is a no-op with an external scheduler.
func (e *Engine) Tick() int {
	if e.ticker == nil {
		return 0
	}
	return e.ticker.RunDue()
}

// Budget returns the current per-frame budget.
func (e *Engine) Budget() int {
	return e.budget
}

// PendingMeasurements returns the number of leaves waiting for a size read.
func (e *Engine) PendingMeasurements() int {
	return e.queue.len()
}

// Cache returns the engine's height cache.
func (e *Engine) Cache() *HeightCache {
	return e.cache
}

// SetInset shifts the draw origin up by inset content units, leaving room
// above the first item (pull to refresh).
func (e *Engine) SetInset(inset float64) {
	e.inset = inset
}

// ResetHeights forgets every measurement. It takes effect on the next
// Recreate.
func (e *Engine) ResetHeights() {
	e.cache.Reset()
}

// Recreate drops the whole tree and rebuilds it over the lister's current
// Count. Measurements survive in the height cache, so items seen before are
// not measured again.
func (e *Engine) Recreate() {
	e.Release()
	e.released = false
	e.build()
	e.log.Debug("tree recreated", "count", e.root.last, "height", e.height)
}

// Release removes every realized element and cancels deferred work. The
// engine can be brought back with Recreate. Release is idempotent.
func (e *Engine) Release() {
	if e.released {
		return
	}
	e.rerender.Stop()
	if e.root != nil {
		e.root.release(math.MaxInt)
		e.root = nil
	}
	for _, l := range e.queue.take() {
		check(l.released, ErrInvariant, "queued leaf %d outlived its tree", l.index)
		l.pending = false
		e.pool.putLeaf(l)
	}
	e.flushBacklog()
	e.released = true
	e.log.Debug("engine released", "cached", e.cache.Len())
}

// Stats returns a snapshot of the engine's counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Frames:   e.frameCount,
		Budget:   e.budget,
		Realized: e.realized,
		Pending:  e.queue.len(),
		Backlog:  len(e.backlog),
		Cached:   e.cache.Len(),
		Height:   e.Height(),
	}
}

// OffsetOf returns the estimated content offset of the top edge of index
// without materializing anything.
func (e *Engine) OffsetOf(index int) float64 {
	if e.root == nil || index <= 0 {
		return 0
	}
	t := e.root
	if index >= t.last {
		return t.height()
	}

	var pos float64
	for {
		i := (index - t.first) / t.step
		for j := 0; j < i; j++ {
			pos += t.childHeight(j)
		}
		c, ok := t.existing(i)
		if !ok {
			first := t.first + i*t.step
			return pos + t.childHeight(i)*float64(index-first)/float64(t.slotSize(i))
		}
		if c.leaf != nil {
			return pos
		}
		t = c.tree
	}
}

// Realized reports whether index currently has a live element.
func (e *Engine) Realized(index int) bool {
	l := e.leafAt(index)
	return l != nil && l.realized()
}

// LeafHeight returns the height the engine holds for a materialized index.
func (e *Engine) LeafHeight(index int) (float64, bool) {
	l := e.leafAt(index)
	if l == nil {
		return 0, false
	}
	return l.height(), true
}

// Element returns the live element of index, if any.
func (e *Engine) Element(index int) (Handle, bool) {
	l := e.leafAt(index)
	if l == nil || !l.realized() {
		return nil, false
	}
	return l.handle, true
}

func (e *Engine) leafAt(index int) *leafNode {
	t := e.root
	if t == nil || index < t.first || index >= t.last {
		return nil
	}
	for {
		c, ok := t.existing((index - t.first) / t.step)
		if !ok {
			return nil
		}
		if c.leaf != nil {
			return c.leaf
		}
		t = c.tree
	}
}
