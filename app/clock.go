package app

import "time"

// Clock measures the time between ticks.
type Clock struct {
	now   func() time.Time
	last  time.Time
	maxDt float32
	raw   float32
}

// NewClock returns a clock whose Tick never reports more than maxDt
// seconds. A maxDt of zero disables the clamp. now defaults to time.Now.
func NewClock(maxDt float32, now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, maxDt: maxDt}
}

// Reset makes the next Tick measure from now.
func (c *Clock) Reset() { c.last = c.now() }

// Tick returns the seconds elapsed since the previous Tick or Reset. The
// first Tick on a clock that was never reset returns 0.
func (c *Clock) Tick() float32 {
	t := c.now()
	if c.last.IsZero() {
		c.last = t
		c.raw = 0
		return 0
	}
	dt := float32(t.Sub(c.last).Seconds())
	c.last = t
	if dt < 0 {
		dt = 0
	}
	c.raw = dt
	if c.maxDt > 0 && dt > c.maxDt {
		dt = c.maxDt
	}
	return dt
}

// Raw returns the seconds measured by the last Tick before clamping.
func (c *Clock) Raw() float32 { return c.raw }
