package engine

import (
	"log/slog"
	"time"
)

const (
	// NodeSize is the branching factor of the height tree.
	NodeSize = 3

	// DefaultBuffer is the margin, in content units, kept realized above and
	// below the viewport.
	DefaultBuffer = 300

	// DefaultBudget is the number of element creations or destructions
	// allowed in the first frame.
	DefaultBudget = 2

	// DefaultHeight seeds the rolling default used for items that declare no
	// height and were never measured.
	DefaultHeight = 50

	// DefaultMinThumb is the smallest scrollbar thumb length.
	DefaultMinThumb = 40

	defaultRerenderDelay = time.Millisecond
	defaultFastFrame     = 10 * time.Millisecond

	// offCanvas is where deferred removals are parked.
	offCanvas = -1 << 20
)

// Option configures an Engine.
type Option func(*Engine)

// WithBuffer sets the margin kept realized around the viewport.
func WithBuffer(buffer float64) Option {
	return func(e *Engine) {
		if buffer < 0 {
			buffer = 0
		}
		e.buffer = buffer
	}
}

// WithInitialBudget sets the per-frame budget the engine starts with. The
// budget only ever grows from there.
func WithInitialBudget(budget int) Option {
	return func(e *Engine) {
		e.budget = budget
	}
}

// WithDefaultHeight seeds the rolling default height.
func WithDefaultHeight(h float64) Option {
	return func(e *Engine) {
		if h > 0 {
			e.rollingHeight = h
		}
	}
}

// WithMinThumb sets the smallest thumb length handed to the scrollbar.
func WithMinThumb(length float64) Option {
	return func(e *Engine) {
		e.minThumb = max(length, 0)
	}
}

// WithRerenderDelay sets the debounce delay of the deferred re-render.
func WithRerenderDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.rerenderDelay = d
	}
}

// WithFastFrame sets the frame duration under which an exhausted budget is
// allowed to grow.
func WithFastFrame(d time.Duration) Option {
	return func(e *Engine) {
		e.fastFrame = d
	}
}

// WithScrollbar attaches a scrollbar thumb collaborator.
func WithScrollbar(s Scrollbar) Option {
	return func(e *Engine) {
		e.scrollbar = s
	}
}

// WithScheduler sets the scheduler used for deferred work. Without it the
// engine uses a FrameScheduler that runs from Tick.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		e.sched = s
	}
}

// WithClock replaces time.Now for frame timing.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithObserver registers a function called at the end of every frame.
func WithObserver(f func(FrameStats)) Option {
	return func(e *Engine) {
		e.observer = f
	}
}

// WithDrawAtZero places elements relative to the top of the content instead
// of the top of the viewport, for containers that scroll natively.
func WithDrawAtZero() Option {
	return func(e *Engine) {
		e.drawAtZero = true
	}
}

// WithHeightCache makes the engine use (and fill) an existing cache.
func WithHeightCache(c *HeightCache) Option {
	return func(e *Engine) {
		if c != nil {
			e.cache = c
		}
	}
}
