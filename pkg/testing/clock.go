package testing

import (
	"sync"
	"time"
)

// FakeClock is the time source behind FramePump. Springs and timed curves
// read it through the scheduler, so a test decides exactly how far a sheet
// animation has run. Safe for concurrent use.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	frames int
}

// NewFakeClock returns a clock parked at midnight UTC on 2024-01-01.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d without counting a frame.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// AdvanceFrames moves the clock forward by n frame intervals and returns
// the new time. Negative n is treated as zero.
func (c *FakeClock) AdvanceFrames(n int) time.Time {
	if n < 0 {
		n = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Duration(n) * FrameInterval)
	c.frames += n
	return c.now
}

// Frames returns how many frame intervals AdvanceFrames has counted.
func (c *FakeClock) Frames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// Set jumps to t. Gesture timestamps taken before the jump keep their
// values, so velocity tracking sees the gap.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
