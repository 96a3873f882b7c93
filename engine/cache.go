package engine

// HeightCache maps item indices to their last measured height. It survives
// tree rebuilds and seeds the estimates of freshly built nodes.
type HeightCache struct {
	heights map[int]float64
}

// NewHeightCache returns an empty cache.
func NewHeightCache() *HeightCache {
	return &HeightCache{heights: make(map[int]float64)}
}

// Get returns the measured height of index, or false when it was never
// measured.
func (c *HeightCache) Get(index int) (float64, bool) {
	h, ok := c.heights[index]
	return h, ok
}

// Set records a measurement. Non-positive heights are not measurements and
// are ignored.
func (c *HeightCache) Set(index int, h float64) {
	if h <= 0 {
		return
	}
	c.heights[index] = h
}

// Delete forgets the measurement of index.
func (c *HeightCache) Delete(index int) {
	delete(c.heights, index)
}

// Len returns the number of measured indices.
func (c *HeightCache) Len() int {
	return len(c.heights)
}

// Reset forgets all measurements.
func (c *HeightCache) Reset() {
	clear(c.heights)
}
