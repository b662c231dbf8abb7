package sim

import "time"

// Clock supplies monotonic wall-clock readings for every timeout in the
// world.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to. Headless runs step it by one tick
// period per tick.
type ManualClock struct {
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time          { return c.now }
func (c *ManualClock) Set(t time.Time)         { c.now = t }
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
