package engine

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeElem struct {
	index  int
	header bool
}

type fakeLister struct {
	count int
	items int
}

func (l *fakeLister) Count() int { return l.count }

func (l *fakeLister) Item(index int) Handle {
	l.items++
	return &fakeElem{index: index}
}

// declaredLister declares a height for every index.
type declaredLister struct {
	fakeLister
	height float64
	fixed  bool
}

func (l *declaredLister) Height(int) float64 { return l.height }

func (l *declaredLister) FixedHeight(int) bool { return l.fixed }

// headerLister gives even indices a header and records destroy callbacks.
type headerLister struct {
	fakeLister
	destroyed []int
}

func (l *headerLister) Header(index int) Handle {
	if index%2 != 0 {
		return nil
	}
	return &fakeElem{index: index, header: true}
}

func (l *headerLister) Destroy(_ Handle, index int, _ Handle) {
	l.destroyed = append(l.destroyed, index)
}

type fakeContainer struct {
	inner    float64
	measure  func(index int) float64
	live     map[*fakeElem]Offset
	appends  int
	removes  int
	measures int
}

func newFakeContainer(inner float64, measure func(int) float64) *fakeContainer {
	return &fakeContainer{inner: inner, measure: measure, live: make(map[*fakeElem]Offset)}
}

func (c *fakeContainer) Append(h Handle) {
	c.appends++
	c.live[h.(*fakeElem)] = Offset{}
}

func (c *fakeContainer) Remove(h Handle) {
	c.removes++
	delete(c.live, h.(*fakeElem))
}

func (c *fakeContainer) Place(h Handle, at Offset) {
	el := h.(*fakeElem)
	if _, ok := c.live[el]; !ok {
		panic("placing an element that is not in the container")
	}
	c.live[el] = at
}

func (c *fakeContainer) Measure(h Handle) float64 {
	c.measures++
	return c.measure(h.(*fakeElem).index)
}

func (c *fakeContainer) InnerLength() float64 { return c.inner }

func (c *fakeContainer) OuterLength() float64 { return c.inner }

// visible returns the sorted indices of live, non-header elements that are
// not parked off canvas.
func (c *fakeContainer) visible() []int {
	var out []int
	for el, at := range c.live {
		if el.header || at.Y <= offCanvas {
			continue
		}
		out = append(out, el.index)
	}
	sort.Ints(out)
	return out
}

func (c *fakeContainer) offset(index int) (Offset, bool) {
	for el, at := range c.live {
		if el.index == index && !el.header {
			return at, true
		}
	}
	return Offset{}, false
}

type fakeScrollbar struct {
	track          float64
	offset, length float64
}

func (s *fakeScrollbar) TrackLength() float64 { return s.track }

func (s *fakeScrollbar) SetThumb(offset, length float64) {
	s.offset, s.length = offset, length
}

// fakeClock returns a fixed instant, or advances by step on every call.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	t := c.t
	c.t = c.t.Add(c.step)
	return t
}

func constant(h float64) func(int) float64 {
	return func(int) float64 { return h }
}

func intRange(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

// settle renders and keeps running deferred work until the engine is idle.
func settle(t *testing.T, e *Engine, sched *FrameScheduler, left, top float64) {
	t.Helper()
	e.Render(left, top, 1)
	for i := 0; e.Rendering(); i++ {
		require.Less(t, i, 100000, "engine never went idle")
		sched.RunAll()
	}
}

func newTestEngine(t *testing.T, lister Lister, c *fakeContainer, opts ...Option) (*Engine, *FrameScheduler) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(0, 0)}
	sched := NewFrameScheduler(clock.now)
	opts = append([]Option{WithScheduler(sched), WithClock(clock.now)}, opts...)
	e, err := New(lister, c, opts...)
	require.NoError(t, err)
	return e, sched
}

func requirePanicsWith(t *testing.T, target error, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.Is(err, target), "panic %v is not %v", err, target)
	}()
	f()
}

// fixedHeaderLister declares a fixed height of 10 for every index and adds
// the headers of headerLister.
type fixedHeaderLister struct {
	headerLister
}

func (l *fixedHeaderLister) Height(int) float64 { return 10 }

func (l *fixedHeaderLister) FixedHeight(int) bool { return true }

// varLister declares a different fixed height for neighboring indices.
type varLister struct {
	fakeLister
}

func varHeight(index int) float64 { return float64(20 + index%7*13) }

func (l *varLister) Height(index int) float64 { return varHeight(index) }

func (l *varLister) FixedHeight(int) bool { return true }

// reentrantContainer renders the engine again from inside the first Append.
type reentrantContainer struct {
	*fakeContainer
	e      *Engine
	nested int
}

func (c *reentrantContainer) Append(h Handle) {
	c.fakeContainer.Append(h)
	if c.nested == 0 {
		c.nested++
		c.e.Render(5, 0, 1)
	}
}

// parkedCount returns the number of live elements parked off canvas.
func (c *fakeContainer) parkedCount() int {
	n := 0
	for _, at := range c.live {
		if at.Y <= offCanvas {
			n++
		}
	}
	return n
}
