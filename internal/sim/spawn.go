package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/entity"
)

// newActor builds the actor for a level marker. Ground dwellers stand on
// the bottom of their cell; pickups and flyers float in its centre.
func newActor(cfg config.PlatformerConfig, ts float64, sp entity.Spawn) (entity.Actor, error) {
	a := entity.Actor{Kind: sp.Kind, Power: sp.Power, Facing: 1, Direction: 1}

	switch sp.Kind {
	case entity.KindPlayer:
		pc := cfg.Player
		a.Caps = entity.Movable | entity.SolidCollider
		a.W, a.H = pc.Width, pc.Height
		a.Health, a.MaxHealth = pc.MaxHealth, pc.MaxHealth
		a.MaxJumps, a.JumpsRemaining = pc.MaxJumps, pc.MaxJumps
		standOn(&a, sp, ts)

	case entity.KindWalker:
		ec := cfg.Enemies.Walker
		a.Caps = entity.Damaging | entity.Stompable | entity.Patrolling | entity.SolidCollider
		a.W, a.H = ec.Width, ec.Height
		a.Health, a.MaxHealth = ec.Health, ec.Health
		a.PatrolSpeed, a.PatrolRange = ec.Speed, ec.PatrolRange
		standOn(&a, sp, ts)

	case entity.KindFlyer:
		fc := cfg.Enemies.Flyer
		a.Caps = entity.Damaging | entity.Stompable | entity.Patrolling
		a.W, a.H = fc.Width, fc.Height
		a.Health, a.MaxHealth = fc.Health, fc.Health
		a.PatrolSpeed, a.PatrolRange = fc.Speed, fc.PatrolRange
		centreIn(&a, sp, ts)

	case entity.KindSpinner:
		ec := cfg.Enemies.Spinner
		a.Caps = entity.Damaging | entity.Stompable
		a.W, a.H = ec.Width, ec.Height
		a.Health, a.MaxHealth = ec.Health, ec.Health
		standOn(&a, sp, ts)

	case entity.KindSpike:
		a.Caps = entity.Damaging
		a.W, a.H = cfg.Items.SpikeWidth, cfg.Items.SpikeHeight
		standOn(&a, sp, ts)

	case entity.KindCoin:
		a.Caps = entity.Collectible
		a.W, a.H = cfg.Items.CoinSize, cfg.Items.CoinSize
		centreIn(&a, sp, ts)

	case entity.KindPowerUp:
		if sp.Power == entity.PowerNone {
			return a, fmt.Errorf("sim: %w: power-up without a power", entity.ErrInvalidSpawn)
		}
		a.Caps = entity.Collectible
		a.W, a.H = cfg.Items.PowerUpSize, cfg.Items.PowerUpSize
		centreIn(&a, sp, ts)

	case entity.KindGoal:
		a.Caps = entity.GoalMarker
		a.W, a.H = cfg.Items.GoalWidth, cfg.Items.GoalHeight
		standOn(&a, sp, ts)

	default:
		return a, fmt.Errorf("sim: %w: unknown kind %d", entity.ErrInvalidSpawn, sp.Kind)
	}

	a.SpawnX, a.SpawnY = a.X, a.Y
	return a, nil
}

func standOn(a *entity.Actor, sp entity.Spawn, ts float64) {
	a.X = sp.X + (ts-a.W)/2
	a.Y = sp.Y + ts - a.H
}

func centreIn(a *entity.Actor, sp entity.Spawn, ts float64) {
	a.X = sp.X + (ts-a.W)/2
	a.Y = sp.Y + (ts-a.H)/2
}
