package clock

import "time"

// FakeClock is a Clock pinned to a fixed instant, used by tests that
// assert on order timestamps. It only moves when Advance is called.
type FakeClock struct {
	current time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{current: start.UTC()}
}

func (c *FakeClock) Now() time.Time {
	return c.current
}

// Advance shifts the clock forward, letting tests order events in time
// without sleeping.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
