package engine

import (
	"errors"
	"fmt"
)

// Configuration errors, returned by New.
var (
	// ErrNoLister indicates that New was called without a Lister.
	ErrNoLister = errors.New("lister is required")

	// ErrNoContainer indicates that New was called without a Container.
	ErrNoContainer = errors.New("container is required")
)

// Invariant errors. These are never returned; they are the values of the
// panics raised when the tree would otherwise be corrupted.
var (
	// ErrInvariant is the parent of all invariant violations.
	ErrInvariant = errors.New("lazyscroll invariant violated")

	// ErrReleased indicates an operation on a node that was already released.
	ErrReleased = fmt.Errorf("%w: node already released", ErrInvariant)

	// ErrDoubleRelease indicates that a node was released twice.
	ErrDoubleRelease = fmt.Errorf("%w: node released twice", ErrInvariant)

	// ErrEngineReleased indicates that Render was called after Release.
	ErrEngineReleased = fmt.Errorf("%w: engine released", ErrInvariant)
)

// check panics with err when cond does not hold.
func check(cond bool, err error, format string, args ...any) {
	if cond {
		return
	}
	if format == "" {
		panic(err)
	}
	panic(fmt.Errorf("%w: "+format, append([]any{err}, args...)...))
}
