package water

import "time"

// Clock supplies monotonically increasing simulation time in seconds.
type Clock interface {
	Now() float64
}

// FixedStepClock advances by a constant step each time Advance is called.
// Headless runs use it so results do not depend on wall time.
type FixedStepClock struct {
	Step float64
	now  float64
}

// NewFixedStepClock returns a clock starting at zero that advances by step.
func NewFixedStepClock(step float64) *FixedStepClock {
	return &FixedStepClock{Step: step}
}

// Now returns the current simulation time.
func (c *FixedStepClock) Now() float64 {
	return c.now
}

// Advance moves the clock forward one step and returns the new time.
// Non-positive steps leave the clock where it is.
func (c *FixedStepClock) Advance() float64 {
	if c.Step > 0 {
		c.now += c.Step
	}
	return c.now
}

// WallClock reports seconds elapsed since it was created.
type WallClock struct {
	start time.Time
}

// NewWallClock returns a clock whose zero is now.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Now returns seconds since the clock was created.
func (c *WallClock) Now() float64 {
	return time.Since(c.start).Seconds()
}
