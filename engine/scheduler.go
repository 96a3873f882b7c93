package engine

import "time"

// Scheduler arms one-shot callbacks. Implementations must invoke f on the
// goroutine that drives Render; the engine does no locking of its own.
type Scheduler interface {
	// AfterFunc arranges for f to run once after d and returns a function
	// that cancels it.
	AfterFunc(d time.Duration, f func()) (stop func())
}

// PostScheduler runs runtime timers and hands each expiration to post, which
// is expected to queue f onto the render goroutine (an event loop, a UI
// thread).
type PostScheduler struct {
	post func(f func())
}

// NewPostScheduler returns a scheduler that delivers callbacks through post.
func NewPostScheduler(post func(f func())) *PostScheduler {
	return &PostScheduler{post: post}
}

// AfterFunc implements Scheduler.
func (s *PostScheduler) AfterFunc(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, func() {
		s.post(f)
	})
	return func() {
		t.Stop()
	}
}

// FrameScheduler is a scheduler for hosts that pump frames themselves. Armed
// callbacks run only from RunDue or RunAll, on the caller's goroutine.
type FrameScheduler struct {
	now    func() time.Time
	timers []*frameTimer
}

type frameTimer struct {
	due     time.Time
	f       func()
	stopped bool
}

// NewFrameScheduler returns a FrameScheduler reading time from now. A nil now
// uses time.Now.
func NewFrameScheduler(now func() time.Time) *FrameScheduler {
	if now == nil {
		now = time.Now
	}
	return &FrameScheduler{now: now}
}

// AfterFunc implements Scheduler.
func (s *FrameScheduler) AfterFunc(d time.Duration, f func()) func() {
	t := &frameTimer{due: s.now().Add(d), f: f}
	s.timers = append(s.timers, t)
	return func() {
		t.stopped = true
	}
}

// Pending returns the number of armed callbacks.
func (s *FrameScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// RunDue runs the callbacks whose time has come and returns how many ran.
func (s *FrameScheduler) RunDue() int {
	return s.run(false)
}

// RunAll runs every armed callback regardless of its due time.
func (s *FrameScheduler) RunAll() int {
	return s.run(true)
}

func (s *FrameScheduler) run(all bool) int {
	now := s.now()
	timers := s.timers
	s.timers = nil

	var due []*frameTimer
	for _, t := range timers {
		if t.stopped {
			continue
		}
		if all || !t.due.After(now) {
			due = append(due, t)
		} else {
			s.timers = append(s.timers, t)
		}
	}

	ran := 0
	for _, t := range due {
		// An earlier callback may have canceled this one.
		if t.stopped {
			continue
		}
		t.stopped = true
		t.f()
		ran++
	}
	return ran
}

// Timer is a single cancellable slot. Arming it cancels whatever was armed
// before, so at most one callback is ever outstanding. A callback that was
// already handed to the scheduler when it got canceled is dropped.
type Timer struct {
	sched Scheduler
	stop  func()
	gen   uint64
	armed bool
}

// NewTimer returns an empty slot backed by sched.
func NewTimer(sched Scheduler) *Timer {
	return &Timer{sched: sched}
}

// Arm schedules f after d, replacing any armed callback.
func (t *Timer) Arm(d time.Duration, f func()) {
	t.Stop()
	gen := t.gen
	t.armed = true
	t.stop = t.sched.AfterFunc(d, func() {
		if !t.armed || t.gen != gen {
			return
		}
		t.armed = false
		t.stop = nil
		f()
	})
}

// Stop cancels the armed callback, if any.
func (t *Timer) Stop() {
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
	t.armed = false
	t.gen++
}

// Pending reports whether a callback is armed.
func (t *Timer) Pending() bool {
	return t.armed
}
