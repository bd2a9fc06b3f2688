package replay

import "sync"

// DefaultTickMS is the generator's frame duration: one tick advances
// simulation time by one second unless configured otherwise.
const DefaultTickMS = 1000

// Clock is the single shared playback time source. One writer (the tick
// scheduler) advances it; any number of readers may sample it concurrently.
// It never pushes updates - each tick the scheduler pulls the reading and
// hands it to the resolvers.
type Clock struct {
	mu     sync.RWMutex
	now    int64
	tickMS int64
}

// NewClock returns a clock at time zero advancing by tickMS per tick.
// Non-positive tickMS falls back to DefaultTickMS.
func NewClock(tickMS int64) *Clock {
	if tickMS <= 0 {
		tickMS = DefaultTickMS
	}
	return &Clock{tickMS: tickMS}
}

// Advance moves simulation time forward by one tick and returns the new
// reading.
func (c *Clock) Advance() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += c.tickMS
	return c.now
}

// Now returns the current simulation time in milliseconds.
func (c *Clock) Now() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Reset returns the clock to zero.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = 0
}

// TickMS returns the fixed tick duration in milliseconds.
func (c *Clock) TickMS() int64 { return c.tickMS }
