// Package entity defines simulated actors and the registry that owns them.
package entity

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ErrInvalidSpawn is returned when an actor cannot be placed in the registry.
var ErrInvalidSpawn = errors.New("invalid spawn")

// Capability is a bit set of behaviours an actor takes part in.
type Capability uint16

const (
	Movable       Capability = 1 << iota // integrated by physics
	SolidCollider                        // resolved against tile geometry
	Damaging                             // hurts the player on contact
	Collectible                          // removed and rewarded on contact
	Patrolling                           // walks back and forth around its spawn
	Stompable                            // can be defeated from above
	GoalMarker                           // finishes the level on contact
)

// Has reports whether every bit of c is set.
func (s Capability) Has(c Capability) bool {
	return s&c == c
}

// Kind discriminates the per-kind data of an actor.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindWalker
	KindFlyer
	KindSpinner
	KindSpike
	KindCoin
	KindPowerUp
	KindGoal
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindWalker:
		return "walker"
	case KindFlyer:
		return "flyer"
	case KindSpinner:
		return "spinner"
	case KindSpike:
		return "spike"
	case KindCoin:
		return "coin"
	case KindPowerUp:
		return "powerup"
	case KindGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// IsEnemy reports whether the kind is one of the enemy kinds.
func (k Kind) IsEnemy() bool {
	return k == KindWalker || k == KindFlyer || k == KindSpinner
}

// PowerKind identifies the effect granted by a power-up.
type PowerKind uint8

const (
	PowerNone PowerKind = iota
	PowerSpeed
	PowerShield
	PowerTripleJump
	PowerHealth
)

// String returns the name of the power kind.
func (p PowerKind) String() string {
	switch p {
	case PowerSpeed:
		return "speed"
	case PowerShield:
		return "shield"
	case PowerTripleJump:
		return "triple_jump"
	case PowerHealth:
		return "health"
	default:
		return "none"
	}
}

// Actor is any simulated object with a position and a box.
type Actor struct {
	Kind  Kind
	Power PowerKind
	Caps  Capability

	X, Y   float64 // top-left corner
	VX, VY float64
	W, H   float64

	Health         int
	MaxHealth      int
	Invulnerable   float64 // seconds of damage immunity left
	OnGround       bool
	JumpsRemaining int
	MaxJumps       int
	Facing         float64 // -1 or 1

	SpawnX, SpawnY float64
	PatrolRange    float64
	PatrolSpeed    float64
	Direction      float64 // -1 or 1

	AnimTime float64 // seconds since spawn
}

// Box returns the actor's bounding box.
func (a *Actor) Box() core.Box {
	return core.NewBox(a.X, a.Y, a.W, a.H)
}

// Alive reports whether the actor has health left.
func (a *Actor) Alive() bool {
	return a.Health > 0
}

// validate checks the invariants required for registration.
func (a *Actor) validate() error {
	if !a.Box().Valid() {
		return fmt.Errorf("%w: %s box %vx%v must be positive", ErrInvalidSpawn, a.Kind, a.W, a.H)
	}
	if a.Kind > KindGoal {
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidSpawn, a.Kind)
	}
	return nil
}

// Spawn is a placement produced by a level loader.
type Spawn struct {
	Kind  Kind
	Power PowerKind
	X, Y  float64 // top-left of the marker's cell
}
