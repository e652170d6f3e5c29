package core

// Smallest terminal the front end lays out for.
const (
	MinScreenW = 40
	MinScreenH = 12
)

// RuntimeConfig holds the terminal size and tick rate the front end starts
// with.
type RuntimeConfig struct {
	ScreenW  int // columns
	ScreenH  int // rows, including the help bar
	TickRate int // frames per second
}

// DefaultConfig returns an 80x24 terminal at 60 frames per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// Normalized fills a non-positive tick rate from the defaults and grows the
// screen to the minimum size.
func (c RuntimeConfig) Normalized() RuntimeConfig {
	if c.TickRate <= 0 {
		c.TickRate = DefaultConfig().TickRate
	}
	c.ScreenW = max(c.ScreenW, MinScreenW)
	c.ScreenH = max(c.ScreenH, MinScreenH)
	return c
}
