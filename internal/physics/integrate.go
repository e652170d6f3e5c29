// Package physics integrates actor motion and resolves it against tile geometry.
// Everything here is pure arithmetic over its arguments.
package physics

import "github.com/vovakirdan/tui-platformer/internal/entity"

// Params are the world constants applied by Integrate.
type Params struct {
	Gravity           float64 // units/s², positive is down
	TerminalFallSpeed float64 // cap on downward velocity
	GroundFriction    float64 // per-tick horizontal multiplier on the ground
	AirResistance     float64 // per-tick horizontal multiplier in the air
}

// DefaultParams returns the stock world constants.
func DefaultParams() Params {
	return Params{
		Gravity:           980,
		TerminalFallSpeed: 600,
		GroundFriction:    0.85,
		AirResistance:     0.98,
	}
}

// Integrate advances the actor's velocity by one tick and returns the
// tentative position. dt is expected to be clamped already.
//
// Friction is applied once per tick regardless of dt.
func Integrate(a *entity.Actor, p Params, dt float64) (tx, ty float64) {
	a.VY += p.Gravity * dt
	if a.VY > p.TerminalFallSpeed {
		a.VY = p.TerminalFallSpeed
	}

	if a.OnGround {
		a.VX *= p.GroundFriction
	} else {
		a.VX *= p.AirResistance
	}

	return a.X + a.VX*dt, a.Y + a.VY*dt
}
