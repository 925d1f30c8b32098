package store

// clock is the monotonic write counter stamped on every preference write.
// The store is single-writer, so no synchronisation is needed.
type clock struct {
	seq int64
}

// newClockAt creates a clock resuming after start.
func newClockAt(start int64) *clock {
	return &clock{seq: start}
}

// next returns the next sequence number and advances the clock.
func (c *clock) next() int64 {
	c.seq++
	return c.seq
}

// current returns the last issued sequence number.
func (c *clock) current() int64 {
	return c.seq
}
