// Package sim runs one level of the platformer: the per-tick pipeline of
// intent, physics, collision, effects, removal and camera, and the state
// machine that decides when that pipeline runs.
package sim

import (
	"fmt"
	"math"
	"slices"

	"github.com/vovakirdan/tui-platformer/internal/camera"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/grid"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// Outcome is what a tick decided about the level.
type Outcome uint8

const (
	OutcomeContinue Outcome = iota
	OutcomeDied
	OutcomeReachedGoal
)

// StepResult is returned by World.Step.
type StepResult struct {
	Outcome Outcome
	Events  []Event // owned by the caller
}

// World is the mutable state of one level.
type World struct {
	cfg    config.PlatformerConfig
	params physics.Params
	grid   *grid.Grid
	reg    *entity.Registry
	cam    *camera.Controller
	powers Powers

	moveSpeed float64
	score     int
	coins     int
	tick      uint64
	elapsed   float64
	goal      bool

	effects []Effect
	events  []Event
}

// NewWorld places the spawns of a level and returns a ready world.
func NewWorld(cfg config.PlatformerConfig, g *grid.Grid, spawns []entity.Spawn) (*World, error) {
	var player *entity.Actor
	var others []entity.Actor
	for _, sp := range spawns {
		a, err := newActor(cfg, g.TileSize(), sp)
		if err != nil {
			return nil, err
		}
		if a.Kind == entity.KindPlayer {
			if player != nil {
				return nil, fmt.Errorf("sim: %w: more than one player spawn", entity.ErrInvalidSpawn)
			}
			player = &a
			continue
		}
		others = append(others, a)
	}
	if player == nil {
		return nil, fmt.Errorf("sim: %w: no player spawn", entity.ErrInvalidSpawn)
	}

	reg, err := entity.NewRegistry(*player)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	for _, a := range others {
		if _, err := reg.Add(a); err != nil {
			return nil, fmt.Errorf("sim: %w", err)
		}
	}

	w := &World{
		cfg: cfg,
		params: physics.Params{
			Gravity:           cfg.Physics.Gravity,
			TerminalFallSpeed: cfg.Physics.TerminalFallSpeed,
			GroundFriction:    cfg.Physics.GroundFriction,
			AirResistance:     cfg.Physics.AirResistance,
		},
		grid:      g,
		reg:       reg,
		moveSpeed: cfg.Player.MoveSpeed,
	}
	w.cam = camera.New(camera.Config{
		LookAheadX: cfg.Camera.LookAheadX,
		LookAheadY: cfg.Camera.LookAheadY,
		SmoothingX: cfg.Camera.SmoothingX,
		SmoothingY: cfg.Camera.SmoothingY,
	}, camera.Bounds{W: g.PixelWidth(), H: g.PixelHeight()}, 0, 0)
	p := reg.Player()
	w.cam.Snap(p.Box(), p.Facing)
	return w, nil
}

// Player returns the player actor.
func (w *World) Player() *entity.Actor { return w.reg.Player() }

// Registry returns the actor registry.
func (w *World) Registry() *entity.Registry { return w.reg }

// Grid returns the level geometry.
func (w *World) Grid() *grid.Grid { return w.grid }

// Score returns the points earned in this world.
func (w *World) Score() int { return w.score }

// Coins returns the coins collected in this world.
func (w *World) Coins() int { return w.coins }

// SetScore seeds score and coin counters carried over from earlier levels.
func (w *World) SetScore(score, coins int) {
	w.score, w.coins = score, coins
}

// Tick returns the number of ticks stepped.
func (w *World) Tick() uint64 { return w.tick }

// Powers returns the timed power-up state.
func (w *World) Powers() *Powers { return &w.powers }

// Camera returns the current camera state.
func (w *World) Camera() camera.State { return w.cam.State() }

// Config returns the configuration the world was built with.
func (w *World) Config() config.PlatformerConfig { return w.cfg }

// SetViewport tells the camera how much of the world is visible.
func (w *World) SetViewport(width, height float64) {
	w.cam.SetViewport(width, height)
	p := w.reg.Player()
	w.cam.Snap(p.Box(), p.Facing)
}

// PlacePlayer moves the player, e.g. when restoring a save.
func (w *World) PlacePlayer(x, y float64, health int) {
	p := w.reg.Player()
	p.X, p.Y = x, y
	p.VX, p.VY = 0, 0
	p.Health = min(max(health, 1), p.MaxHealth)
	w.cam.Snap(p.Box(), p.Facing)
}

// ClampDT clamps a frame delta to [0, maxDT], with maxDT itself capped at
// config.MaxFrameDT. NaN becomes 0.
func ClampDT(dt, maxDT float64) float64 {
	if math.IsNaN(dt) || dt <= 0 {
		return 0
	}
	return math.Min(dt, min(maxDT, config.MaxFrameDT))
}

// Step advances the world by one tick. A zero dt changes nothing.
func (w *World) Step(in core.Intent, dt float64) StepResult {
	dt = ClampDT(dt, w.cfg.Physics.MaxDT)
	if dt == 0 {
		return StepResult{}
	}
	w.tick++
	w.elapsed += dt
	w.events = w.events[:0]

	p := w.reg.Player()
	w.tickTimers(p, dt)

	// Intent.
	if dir := in.Horizontal(); dir != 0 {
		p.VX = dir * w.moveSpeed
		p.Facing = dir
	}
	if !in.JumpHeld && p.VY < 0 && w.cfg.Player.JumpCutMultiplier > 1 {
		p.VY += w.params.Gravity * (w.cfg.Player.JumpCutMultiplier - 1) * dt
	}

	// Physics.
	w.moveEnemies(dt)
	prev := p.Box()
	res := physics.Step(p, w.grid, w.params, dt)
	p.AnimTime += dt

	if in.JumpPressed && p.JumpsRemaining > 0 {
		p.VY = -w.cfg.Player.JumpForce
		p.OnGround = false
		p.JumpsRemaining--
		w.emit(Event{Kind: EventJump})
	}

	// Contacts and effects.
	w.effects = w.scan(p, prev, res.OnHazard, w.effects[:0])
	if p.Y > w.grid.PixelHeight()+w.cfg.World.FallMargin {
		w.effects = append(w.effects, Effect{Kind: EffectFall})
	}
	w.apply(w.effects)
	w.reg.Flush()

	w.cam.Update(p.Box(), p.Facing, dt)

	out := OutcomeContinue
	switch {
	case !p.Alive():
		out = OutcomeDied
	case w.goal:
		out = OutcomeReachedGoal
	}
	return StepResult{Outcome: out, Events: slices.Clone(w.events)}
}

func (w *World) tickTimers(p *entity.Actor, dt float64) {
	p.Invulnerable = math.Max(0, p.Invulnerable-dt)
	for _, kind := range w.powers.Tick(dt) {
		w.expire(p, kind)
	}
}

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}
