package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := New(nil, newFakeContainer(10, constant(1)))
	require.ErrorIs(t, err, ErrNoLister)

	_, err = New(&fakeLister{count: 1}, nil)
	require.ErrorIs(t, err, ErrNoContainer)
}

func TestDeclaredHeightsSumExactly(t *testing.T) {
	for _, count := range []int{0, 1, 2, 3, 4, 10, 27, 28, 1000, 100000} {
		lister := &declaredLister{fakeLister: fakeLister{count: count}, height: 10}
		e, sched := newTestEngine(t, lister, newFakeContainer(800, constant(10)))
		assert.Equal(t, float64(count*10), e.Height(), "count %d before render", count)

		settle(t, e, sched, 0, 0)
		assert.Equal(t, float64(count*10), e.Height(), "count %d after render", count)
	}
}

func TestMeasurementReachesAncestorsOnce(t *testing.T) {
	lister := &declaredLister{fakeLister: fakeLister{count: 10}, height: 10}
	c := newFakeContainer(800, func(index int) float64 {
		if index == 3 {
			return 25
		}
		return 10
	})
	e, sched := newTestEngine(t, lister, c, WithInitialBudget(100))
	require.Equal(t, 100.0, e.Height())

	settle(t, e, sched, 0, 0)
	assert.Equal(t, 115.0, e.Height())

	h, ok := e.LeafHeight(3)
	require.True(t, ok)
	assert.Equal(t, 25.0, h)

	cached, ok := e.Cache().Get(3)
	require.True(t, ok)
	assert.Equal(t, 25.0, cached)

	at, ok := c.offset(4)
	require.True(t, ok)
	assert.Equal(t, 55.0, at.Y)
}

func TestWindowAtTop(t *testing.T) {
	c := newFakeContainer(800, constant(40))
	e, sched := newTestEngine(t, &fakeLister{count: 100000}, c)

	settle(t, e, sched, 0, 0)

	assert.Equal(t, intRange(0, 28), c.visible())
	for i := 0; i < 28; i++ {
		at, ok := c.offset(i)
		require.True(t, ok)
		assert.Equal(t, float64(40*i), at.Y, "item %d", i)
	}
	assert.Equal(t, 28, e.Stats().Realized)
	assert.Zero(t, e.PendingMeasurements())
	assert.Greater(t, e.Budget(), DefaultBudget)
}

func TestWindowFollowsScroll(t *testing.T) {
	lister := &declaredLister{fakeLister: fakeLister{count: 100000}, height: 40, fixed: true}
	c := newFakeContainer(800, constant(40))
	e, sched := newTestEngine(t, lister, c)
	require.Equal(t, 4000000.0, e.Height())

	settle(t, e, sched, 3, 40000)
	assert.Equal(t, intRange(992, 1028), c.visible())

	at, ok := c.offset(1000)
	require.True(t, ok)
	assert.Equal(t, Offset{X: -3, Y: 0}, at)

	settle(t, e, sched, 0, 0)
	assert.Equal(t, intRange(0, 28), c.visible())
	assert.False(t, e.Realized(1000))
	assert.True(t, e.Realized(0))
}

func TestWalkIsIdempotent(t *testing.T) {
	t.Run("measured", func(t *testing.T) {
		c := newFakeContainer(800, func(index int) float64 { return float64(20 + index%5*10) })
		e, sched := newTestEngine(t, &fakeLister{count: 5000}, c)
		settle(t, e, sched, 0, 0)

		appends, removes := c.appends, c.removes
		visible := c.visible()
		settle(t, e, sched, 0, 0)

		assert.Equal(t, appends, c.appends)
		assert.Equal(t, removes, c.removes)
		assert.Equal(t, visible, c.visible())
	})

	t.Run("scrolled", func(t *testing.T) {
		lister := &declaredLister{fakeLister: fakeLister{count: 5000}, height: 40, fixed: true}
		c := newFakeContainer(800, constant(40))
		e, sched := newTestEngine(t, lister, c)
		settle(t, e, sched, 0, 0)
		settle(t, e, sched, 0, 60000)

		appends, removes := c.appends, c.removes
		visible := c.visible()
		settle(t, e, sched, 0, 60000)

		assert.Equal(t, appends, c.appends)
		assert.Equal(t, removes, c.removes)
		assert.Equal(t, visible, c.visible())
	})
}

func TestRecreateDoesNotMeasureAgain(t *testing.T) {
	lister := &fakeLister{count: 1000}
	c := newFakeContainer(800, constant(30))
	e, sched := newTestEngine(t, lister, c)
	settle(t, e, sched, 0, 0)
	visible := c.visible()
	measures := c.measures

	e.Recreate()
	assert.Empty(t, c.live)

	e.Render(0, 0, 1)
	assert.Zero(t, e.PendingMeasurements())
	for i := 0; e.Rendering(); i++ {
		require.Less(t, i, 1000)
		sched.RunAll()
		assert.Zero(t, e.PendingMeasurements())
	}
	assert.Equal(t, measures, c.measures)
	assert.Equal(t, visible, c.visible())
}

func TestReleaseRemovesEverything(t *testing.T) {
	lister := &headerLister{fakeLister: fakeLister{count: 100}}
	c := newFakeContainer(100, constant(10))
	e, sched := newTestEngine(t, lister, c)
	settle(t, e, sched, 0, 0)

	realized := e.Stats().Realized
	require.NotZero(t, realized)
	headers := 0
	for el := range c.live {
		if el.header {
			headers++
		}
	}
	require.NotZero(t, headers)

	before := len(lister.destroyed)
	e.Release()
	assert.Empty(t, c.live)
	assert.Len(t, lister.destroyed, before+realized)
	assert.False(t, e.Rendering())
	assert.Zero(t, e.Stats().Realized)

	e.Release()
	requirePanicsWith(t, ErrEngineReleased, func() { e.Render(0, 0, 1) })

	e.Recreate()
	settle(t, e, sched, 0, 0)
	assert.Equal(t, realized, e.Stats().Realized)
}

func TestBudgetExhaustion(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0), step: 20 * time.Millisecond}
	sched := NewFrameScheduler(clock.now)
	c := newFakeContainer(800, constant(40))
	e, err := New(&fakeLister{count: 1000}, c,
		WithInitialBudget(0), WithScheduler(sched), WithClock(clock.now))
	require.NoError(t, err)

	e.Render(0, 0, 1)
	for i := 0; i < 5; i++ {
		assert.Empty(t, c.live)
		assert.Equal(t, 1, sched.Pending())
		assert.True(t, e.Rendering())
		assert.Equal(t, 0, e.Budget())
		sched.RunAll()
	}
}

func TestBudgetGrowsOnFastFrames(t *testing.T) {
	var frames []FrameStats
	c := newFakeContainer(800, constant(40))
	e, sched := newTestEngine(t, &fakeLister{count: 1000}, c,
		WithObserver(func(s FrameStats) { frames = append(frames, s) }))

	e.Render(0, 0, 1)
	require.Len(t, frames, 1)
	assert.Equal(t, DefaultBudget, frames[0].Budget)
	assert.Equal(t, DefaultBudget, frames[0].Created)
	assert.True(t, frames[0].Grew)
	assert.True(t, frames[0].Rearmed)
	assert.Equal(t, DefaultBudget+1, e.Budget())

	sched.RunAll()
	require.Len(t, frames, 2)
	assert.Equal(t, DefaultBudget, frames[1].Measured)
}

func TestZeroMeasurementIsRequeued(t *testing.T) {
	reads := 0
	c := newFakeContainer(800, func(index int) float64 {
		if index == 0 {
			reads++
			if reads < 4 {
				return 0
			}
		}
		return 40
	})
	e, sched := newTestEngine(t, &fakeLister{count: 10}, c, WithInitialBudget(1), WithBuffer(0))

	e.Render(0, 0, 1)
	require.Equal(t, 1, e.PendingMeasurements())
	sched.RunAll()
	assert.Equal(t, 1, e.PendingMeasurements())

	settle(t, e, sched, 0, 0)
	h, ok := e.Cache().Get(0)
	require.True(t, ok)
	assert.Equal(t, 40.0, h)
}

func TestScrollbarThumb(t *testing.T) {
	lister := &declaredLister{fakeLister: fakeLister{count: 1000}, height: 40, fixed: true}
	bar := &fakeScrollbar{track: 100}
	e, sched := newTestEngine(t, lister, newFakeContainer(800, constant(40)), WithScrollbar(bar))

	settle(t, e, sched, 0, 20000)
	assert.Equal(t, 50.0, bar.offset)
	assert.Equal(t, 40.0, bar.length)

	settle(t, e, sched, 0, 40000)
	assert.Equal(t, 60.0, bar.offset)

	e.Reflow(1600)
	settle(t, e, sched, 0, 0)
	assert.Equal(t, 0.0, bar.offset)
	assert.Equal(t, 400.0, bar.length)
}

func TestScrollerLengthScalesTop(t *testing.T) {
	lister := &declaredLister{fakeLister: fakeLister{count: 1000}, height: 40, fixed: true}
	c := newFakeContainer(400, constant(40))
	e, sched := newTestEngine(t, lister, c, WithBuffer(0))

	e.Reflow(20000)
	settle(t, e, sched, 0, 10000)
	assert.Equal(t, intRange(499, 511), c.visible())
}

func TestDrawAtZeroAndInset(t *testing.T) {
	lister := &declaredLister{fakeLister: fakeLister{count: 1000}, height: 40, fixed: true}
	c := newFakeContainer(400, constant(40))
	e, sched := newTestEngine(t, lister, c, WithDrawAtZero())

	settle(t, e, sched, 0, 4000)
	at, ok := c.offset(100)
	require.True(t, ok)
	assert.Equal(t, 4000.0, at.Y)

	e.SetInset(20)
	settle(t, e, sched, 0, 4000)
	at, ok = c.offset(100)
	require.True(t, ok)
	assert.Equal(t, 4020.0, at.Y)
}

func TestOffsetOf(t *testing.T) {
	lister := &declaredLister{fakeLister: fakeLister{count: 100000}, height: 40, fixed: true}
	e, sched := newTestEngine(t, lister, newFakeContainer(800, constant(40)))

	assert.Zero(t, e.OffsetOf(0))
	assert.Equal(t, 40000.0, e.OffsetOf(1000))
	assert.Equal(t, 4000000.0, e.OffsetOf(100000))

	settle(t, e, sched, 0, 0)
	assert.Equal(t, 400.0, e.OffsetOf(10))
	assert.Equal(t, 40000.0, e.OffsetOf(1000))
}

func TestResetHeights(t *testing.T) {
	height := 30.0
	c := newFakeContainer(800, func(int) float64 { return height })
	e, sched := newTestEngine(t, &fakeLister{count: 100}, c)
	settle(t, e, sched, 0, 0)
	require.NotZero(t, e.Cache().Len())

	height = 60
	e.ResetHeights()
	e.Recreate()
	settle(t, e, sched, 0, 0)

	h, ok := e.LeafHeight(0)
	require.True(t, ok)
	assert.Equal(t, 60.0, h)
}

func TestBuiltinSchedulerRunsFromTick(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	c := newFakeContainer(800, constant(40))
	e, err := New(&fakeLister{count: 100}, c, WithClock(clock.now))
	require.NoError(t, err)

	e.Render(0, 0, 1)
	require.True(t, e.Rendering())
	assert.Zero(t, e.Tick())

	clock.t = clock.t.Add(time.Second)
	assert.Equal(t, 1, e.Tick())
}

func TestRenderFromContainerIsDeferred(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	sched := NewFrameScheduler(clock.now)
	c := &reentrantContainer{fakeContainer: newFakeContainer(100, constant(10))}
	var frames []FrameStats
	lister := &declaredLister{fakeLister: fakeLister{count: 3}, height: 10, fixed: true}
	e, err := New(lister, c, WithScheduler(sched), WithClock(clock.now), WithInitialBudget(100),
		WithObserver(func(s FrameStats) { frames = append(frames, s) }))
	require.NoError(t, err)
	c.e = e

	e.Render(0, 0, 1)
	assert.Equal(t, 1, c.nested)
	assert.Len(t, frames, 1, "the nested call must not run a frame")
	assert.False(t, frames[0].Rearmed)
	assert.Equal(t, 1, sched.Pending())
	assert.True(t, e.Rendering())

	// The deferred frame uses the arguments of the nested call.
	sched.RunAll()
	assert.Len(t, frames, 2)
	assert.False(t, e.Rendering())
	for i := 0; i < 3; i++ {
		at, ok := c.offset(i)
		require.True(t, ok)
		assert.Equal(t, Offset{X: -5, Y: float64(10 * i)}, at, "item %d", i)
	}
}

func TestRemovalsParkWithoutBudget(t *testing.T) {
	var frames []FrameStats
	lister := &fixedHeaderLister{headerLister{fakeLister: fakeLister{count: 100}}}
	c := newFakeContainer(30, constant(10))
	e, sched := newTestEngine(t, lister, c, WithBuffer(0),
		WithObserver(func(s FrameStats) { frames = append(frames, s) }))

	settle(t, e, sched, 0, 0)
	require.Equal(t, intRange(0, 4), c.visible())
	el, ok := e.Element(0)
	require.True(t, ok)
	assert.Equal(t, 0, el.(*fakeElem).index)
	_, ok = e.Element(50)
	assert.False(t, ok)

	e.budget = 0
	e.Render(0, 500, 1)
	last := frames[len(frames)-1]
	assert.Equal(t, 4, last.Deferred)
	assert.Zero(t, last.Created)
	assert.Zero(t, last.Destroyed)
	assert.Equal(t, 4, e.Stats().Backlog)
	assert.Zero(t, e.Stats().Realized)
	assert.Equal(t, 6, c.parkedCount(), "items 0 to 3 and the headers of 0 and 2")
	assert.Empty(t, c.visible())
	assert.Empty(t, lister.destroyed)
	assert.True(t, e.Rendering())
	_, ok = e.Element(0)
	assert.False(t, ok)

	settle(t, e, sched, 0, 500)
	assert.Equal(t, []int{3, 2, 1, 0}, lister.destroyed, "parked elements go most recent first")
	assert.Zero(t, c.parkedCount())
	assert.Equal(t, 6, c.removes)
	assert.Equal(t, intRange(49, 54), c.visible())
	assert.Zero(t, e.Stats().Backlog)
}

func TestReleasedLeafLeavesMeasureQueue(t *testing.T) {
	measured := make(map[int]int)
	c := newFakeContainer(100, func(index int) float64 {
		measured[index]++
		return 0
	})
	e, _ := newTestEngine(t, &fakeLister{count: 12}, c, WithBuffer(0), WithInitialBudget(50))

	e.Render(0, 0, 1)
	require.Equal(t, intRange(0, 3), c.visible())
	require.Equal(t, 3, e.PendingMeasurements())
	var leaves []*leafNode
	for i := 0; i < 3; i++ {
		l := e.leafAt(i)
		require.NotNil(t, l)
		leaves = append(leaves, l)
	}

	// Nothing measures yet, so the leaves are still queued when the scroll
	// releases them.
	e.Render(0, 500, 1)
	assert.Equal(t, intRange(9, 12), c.visible())
	assert.Equal(t, 6, e.PendingMeasurements())
	for _, l := range leaves {
		assert.True(t, l.released, "leaf %d", l.index)
		assert.True(t, l.pending, "leaf %d", l.index)
	}
	before := map[int]int{0: measured[0], 1: measured[1], 2: measured[2]}
	pooled := len(e.pool.leaves)

	e.Render(0, 500, 1)
	assert.Equal(t, 3, e.PendingMeasurements())
	assert.Equal(t, pooled+3, len(e.pool.leaves))
	for _, l := range leaves {
		assert.False(t, l.pending)
		assert.Contains(t, e.pool.leaves, l)
	}
	assert.Equal(t, before, map[int]int{0: measured[0], 1: measured[1], 2: measured[2]},
		"released leaves are not measured")
}

func TestWindowCoversBufferedViewport(t *testing.T) {
	for _, top := range []float64{0, 3000, 25000} {
		c := newFakeContainer(800, constant(0))
		e, sched := newTestEngine(t, &varLister{fakeLister{count: 2000}}, c)
		settle(t, e, sched, 0, top)

		visible := c.visible()
		require.NotEmpty(t, visible, "top %v", top)
		first, last := visible[0], visible[len(visible)-1]
		require.Equal(t, intRange(first, last+1), visible, "top %v: realized items have gaps", top)

		for _, i := range visible[:len(visible)-1] {
			at, _ := c.offset(i)
			next, _ := c.offset(i + 1)
			assert.InDelta(t, at.Y+varHeight(i), next.Y, 1e-6, "top %v: item %d", top, i)
		}

		at, _ := c.offset(first)
		if first == 0 {
			assert.InDelta(t, 0, at.Y, 1e-6)
		} else {
			assert.Less(t, at.Y, -300.0, "top %v", top)
		}
		assert.GreaterOrEqual(t, at.Y+varHeight(first), -300.0, "top %v", top)

		at, _ = c.offset(last)
		assert.LessOrEqual(t, at.Y, 1100.0, "top %v", top)
		assert.Greater(t, at.Y+varHeight(last), 1100.0, "top %v", top)
	}
}
