package sim

import "math"

// DefaultMaxSteps bounds the catch-up work done for one frame.
const DefaultMaxSteps = 5

// Clock turns variable frame time into a whole number of fixed steps.
type Clock struct {
	step     float64
	maxDT    float64
	maxSteps int
	acc      float64
}

// NewClock returns a clock producing steps at tickRate per second.
func NewClock(tickRate int, maxDT float64, maxSteps int) *Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Clock{step: 1 / float64(tickRate), maxDT: maxDT, maxSteps: maxSteps}
}

// Step returns the fixed step size in seconds.
func (c *Clock) Step() float64 { return c.step }

// Advance adds elapsed wall time and returns how many steps are due.
// Time beyond the step cap is dropped.
func (c *Clock) Advance(elapsed float64) int {
	c.acc += ClampDT(elapsed, c.maxDT)
	n := int(math.Floor(c.acc / c.step))
	if n > c.maxSteps {
		n = c.maxSteps
		c.acc = 0
		return n
	}
	c.acc -= float64(n) * c.step
	return n
}

// Reset drops any accumulated time.
func (c *Clock) Reset() { c.acc = 0 }
