// Package camera implements the follow camera that tracks the player.
package camera

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Config controls how the camera follows its target.
type Config struct {
	LookAheadX float64 // offset in the facing direction
	LookAheadY float64 // constant vertical offset (negative looks up)
	SmoothingX float64 // convergence rate per second
	SmoothingY float64

	// Viewport size in world units. When both are positive and bounds are
	// set, the view is kept inside the level.
	ViewW, ViewH float64
}

// DefaultConfig returns the stock camera tuning.
func DefaultConfig() Config {
	return Config{
		LookAheadX: 96,
		LookAheadY: -24,
		SmoothingX: 6,
		SmoothingY: 4.8,
	}
}

// State is the camera centre and its current target, in world units.
type State struct {
	X, Y             float64
	TargetX, TargetY float64
}

// Bounds limits where the camera centre may go.
type Bounds struct {
	W, H float64 // level size; zero disables clamping
}

// Controller owns the camera state across ticks.
type Controller struct {
	cfg    Config
	bounds Bounds
	state  State
}

// New creates a controller already centred on (x, y).
func New(cfg Config, bounds Bounds, x, y float64) *Controller {
	c := &Controller{cfg: cfg, bounds: bounds}
	c.state = State{X: x, Y: y, TargetX: x, TargetY: y}
	c.state.X, c.state.Y = c.clamp(x, y)
	c.state.TargetX, c.state.TargetY = c.state.X, c.state.Y
	return c
}

// State returns the current camera state.
func (c *Controller) State() State {
	return c.state
}

// SetViewport updates the viewport used for bounds clamping.
func (c *Controller) SetViewport(w, h float64) {
	c.cfg.ViewW, c.cfg.ViewH = w, h
}

// Snap jumps straight to the given focus point.
func (c *Controller) Snap(focus core.Box, facing float64) {
	tx, ty := c.target(focus, facing)
	c.state = State{X: tx, Y: ty, TargetX: tx, TargetY: ty}
}

// Update moves the camera toward the focus box by the clamped fraction
// min(1, smoothing·dt) of the remaining distance on each axis.
func (c *Controller) Update(focus core.Box, facing, dt float64) State {
	c.state = Step(c.state, c.cfg, focus, facing, dt)
	c.state.TargetX, c.state.TargetY = c.clamp(c.state.TargetX, c.state.TargetY)
	c.state.X, c.state.Y = c.clamp(c.state.X, c.state.Y)
	return c.state
}

func (c *Controller) target(focus core.Box, facing float64) (float64, float64) {
	return c.clamp(targetOf(c.cfg, focus, facing))
}

func (c *Controller) clamp(x, y float64) (float64, float64) {
	if c.cfg.ViewW > 0 && c.bounds.W > 0 {
		x = clampAxis(x, c.cfg.ViewW, c.bounds.W)
	}
	if c.cfg.ViewH > 0 && c.bounds.H > 0 {
		y = clampAxis(y, c.cfg.ViewH, c.bounds.H)
	}
	return x, y
}

// clampAxis keeps a view of size view centred inside [0, size]. A level
// smaller than the view is centred.
func clampAxis(centre, view, size float64) float64 {
	if view >= size {
		return size / 2
	}
	return core.ClampF(centre, view/2, size-view/2)
}

func targetOf(cfg Config, focus core.Box, facing float64) (float64, float64) {
	if facing == 0 {
		facing = 1
	}
	return focus.CenterX() + cfg.LookAheadX*facing, focus.CenterY() + cfg.LookAheadY
}

// Step is the pure camera update, without bounds.
func Step(s State, cfg Config, focus core.Box, facing, dt float64) State {
	s.TargetX, s.TargetY = targetOf(cfg, focus, facing)
	s.X += (s.TargetX - s.X) * blend(cfg.SmoothingX, dt)
	s.Y += (s.TargetY - s.Y) * blend(cfg.SmoothingY, dt)
	return s
}

func blend(smoothing, dt float64) float64 {
	return math.Min(1, math.Max(0, smoothing*dt))
}
