package engine

// Handle is an opaque realized element produced by a Lister. The engine never
// looks inside it; it only hands it back to the Container and the Lister.
type Handle any

// Lister supplies the items of the list.
type Lister interface {
	// Count returns the number of items. It is read on construction and on
	// every Recreate.
	Count() int
	// Item returns a new element for the item at index.
	Item(index int) Handle
}

// HeightLister is implemented by listers that can declare an item height up
// front. A value <= 0 means "not declared" and the engine falls back to its
// rolling default.
type HeightLister interface {
	Height(index int) float64
}

// HeaderLister is implemented by listers that attach an auxiliary header
// element to items. A nil Handle means the item has no header.
type HeaderLister interface {
	Header(index int) Handle
}

// FixedHeightLister is implemented by listers whose declared heights are
// exact for some items. Such items are never measured.
type FixedHeightLister interface {
	FixedHeight(index int) bool
}

// Destroyer is implemented by listers that want to know when an element is
// discarded.
type Destroyer interface {
	Destroy(h Handle, index int, header Handle)
}

// Offset is a placement relative to the drawing origin of the container.
type Offset struct {
	X, Y float64
}

// Container hosts realized elements.
type Container interface {
	// Append adds an element to the container.
	Append(h Handle)
	// Remove detaches an element from the container.
	Remove(h Handle)
	// Place positions an element.
	Place(h Handle, at Offset)
	// Measure returns the laid-out extent of an element along the scroll
	// axis. Zero means the element has not been laid out yet.
	Measure(h Handle) float64
	// InnerLength returns the length of the visible area.
	InnerLength() float64
	// OuterLength returns the length of the container including decorations.
	// Hosts keep the scroll space at least this long.
	OuterLength() float64
}

// Scrollbar is an optional thumb collaborator. Lengths and offsets are in
// the scrollbar's own units.
type Scrollbar interface {
	// TrackLength returns the length the thumb can travel in.
	TrackLength() float64
	// SetThumb moves and sizes the thumb.
	SetThumb(offset, length float64)
}
