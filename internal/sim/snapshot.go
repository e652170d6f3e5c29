package sim

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/camera"
	"github.com/vovakirdan/tui-platformer/internal/entity"
)

// ActorView is the read-only face of an actor handed to renderers.
type ActorView struct {
	ID           entity.ID
	Kind         entity.Kind
	Power        entity.PowerKind
	X, Y, W, H   float64
	VX, VY       float64
	Facing       float64
	Health       int
	Invulnerable float64
	OnGround     bool
	AnimTime     float64
}

// Snapshot contains everything a renderer or HUD needs for one frame.
type Snapshot struct {
	Tick    uint64
	Elapsed float64
	Player  ActorView
	Actors  []ActorView // slot order, player excluded
	Camera  camera.State

	Score     int
	Coins     int
	Health    int
	MaxHealth int
	Jumps     int
	MaxJumps  int

	Speed      float64 // seconds left
	Shield     float64
	TripleJump float64
}

func viewOf(id entity.ID, a *entity.Actor) ActorView {
	return ActorView{
		ID: id, Kind: a.Kind, Power: a.Power,
		X: a.X, Y: a.Y, W: a.W, H: a.H,
		VX: a.VX, VY: a.VY,
		Facing:       a.Facing,
		Health:       a.Health,
		Invulnerable: a.Invulnerable,
		OnGround:     a.OnGround,
		AnimTime:     a.AnimTime,
	}
}

// Snapshot captures the current world state.
func (w *World) Snapshot() Snapshot {
	p := w.reg.Player()
	snap := Snapshot{
		Tick:       w.tick,
		Elapsed:    w.elapsed,
		Player:     viewOf(entity.PlayerID, p),
		Actors:     make([]ActorView, 0, w.reg.Len()),
		Camera:     w.cam.State(),
		Score:      w.score,
		Coins:      w.coins,
		Health:     p.Health,
		MaxHealth:  p.MaxHealth,
		Jumps:      p.JumpsRemaining,
		MaxJumps:   p.MaxJumps,
		Speed:      w.powers.Remaining(entity.PowerSpeed),
		Shield:     w.powers.Remaining(entity.PowerShield),
		TripleJump: w.powers.Remaining(entity.PowerTripleJump),
	}
	w.reg.Each(func(id entity.ID, a *entity.Actor) bool {
		snap.Actors = append(snap.Actors, viewOf(id, a))
		return true
	})
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + math.Float64bits(snap.Elapsed)
	h = h*31 + uint64(snap.Score)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Coins)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Health) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Jumps)  //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Camera.X)
	h = h*31 + math.Float64bits(snap.Camera.Y)
	h = h*31 + math.Float64bits(snap.Speed)
	h = h*31 + math.Float64bits(snap.Shield)
	h = h*31 + math.Float64bits(snap.TripleJump)

	h = hashActor(h, snap.Player)
	for _, a := range snap.Actors {
		h = hashActor(h, a)
	}
	return h
}

func hashActor(h uint64, a ActorView) uint64 {
	h = h*31 + uint64(a.ID.Index)<<32 + uint64(a.ID.Gen)
	h = h*31 + uint64(a.Kind)
	h = h*31 + math.Float64bits(a.X)
	h = h*31 + math.Float64bits(a.Y)
	h = h*31 + math.Float64bits(a.VX)
	h = h*31 + math.Float64bits(a.VY)
	h = h*31 + uint64(a.Health) //#nosec G115 -- hash computation
	return h
}
