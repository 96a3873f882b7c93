package engine

import "time"

// FrameStats describes one Render call.
type FrameStats struct {
	// Budget is the budget the frame started with.
	Budget int
	// Remaining is what was left after the walk and the backlog drain. It is
	// <= 0 when the frame ran out of budget.
	Remaining int

	Created   int // elements appended
	Destroyed int // elements removed
	Deferred  int // elements parked off canvas

	Measured int // measurements accepted
	Requeued int // measurements that read zero

	Pending int // measurements still queued
	Backlog int // deferred removals still parked

	Height  float64
	Elapsed time.Duration

	// Rearmed reports whether a deferred re-render was scheduled.
	Rearmed bool
	// Grew reports whether the budget was raised for the next frame.
	Grew bool
}

// Stats is a snapshot of the engine state.
type Stats struct {
	Frames   uint64
	Budget   int
	Realized int
	Pending  int
	Backlog  int
	Cached   int
	Height   float64
}
