package sim

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
)

// stompGrace is how long a stomped enemy that survives is harmless.
const stompGrace = 0.5

// EffectKind identifies a deferred state change.
type EffectKind uint8

const (
	EffectDamage EffectKind = iota
	EffectHeal
	EffectCollect
	EffectDefeat
	EffectHitEnemy
	EffectSpeedBoost
	EffectShieldGrant
	EffectExtraJump
	EffectReachGoal
	EffectFall
)

// Effect is a state change found by the contact scan. Effects are applied
// together after the scan so that no contact sees another's result.
type Effect struct {
	Kind   EffectKind
	Target entity.ID // for Collect, Defeat, HitEnemy
	Amount int       // for Damage, Heal
	Push   float64   // knockback direction for Damage
}

// scan is the broad and narrow phase between the player and every other
// actor, plus hazard tiles. prev is the player's box before physics.
func (w *World) scan(p *entity.Actor, prev core.Box, onHazard bool, out []Effect) []Effect {
	pb := p.Box()
	descending := p.VY > 0 || p.Y > prev.Y
	guarded := p.Invulnerable > 0 || w.powers.Active(entity.PowerShield)
	hurt := false

	w.reg.Each(func(id entity.ID, a *entity.Actor) bool {
		ab := a.Box()
		if !pb.Overlaps(ab) {
			return true
		}

		switch {
		case a.Caps.Has(entity.GoalMarker):
			out = append(out, Effect{Kind: EffectReachGoal})

		case a.Caps.Has(entity.Collectible):
			out = w.collect(p, id, a, out)

		case a.Caps.Has(entity.Stompable) && descending && fromAbove(prev, pb, ab):
			if a.Invulnerable > 0 {
				return true
			}
			kind := EffectHitEnemy
			if a.Health <= 1 {
				kind = EffectDefeat
			}
			out = append(out, Effect{Kind: kind, Target: id})

		case a.Caps.Has(entity.Damaging):
			if guarded || hurt || a.Invulnerable > 0 {
				return true
			}
			hurt = true
			out = append(out, Effect{Kind: EffectDamage, Amount: 1, Push: away(pb, ab)})
		}
		return true
	})

	if onHazard && !guarded && !hurt {
		out = append(out, Effect{Kind: EffectDamage, Amount: 1, Push: -p.Facing})
	}
	return out
}

func (w *World) collect(p *entity.Actor, id entity.ID, a *entity.Actor, out []Effect) []Effect {
	if a.Kind != entity.KindPowerUp {
		return append(out, Effect{Kind: EffectCollect, Target: id})
	}
	switch a.Power {
	case entity.PowerHealth:
		// Left in place until it can do something.
		if p.Health >= p.MaxHealth {
			return out
		}
		out = append(out, Effect{Kind: EffectHeal, Amount: w.cfg.PowerUps.Health.Amount})
	case entity.PowerSpeed:
		out = append(out, Effect{Kind: EffectSpeedBoost})
	case entity.PowerShield:
		out = append(out, Effect{Kind: EffectShieldGrant})
	case entity.PowerTripleJump:
		out = append(out, Effect{Kind: EffectExtraJump})
	}
	return append(out, Effect{Kind: EffectCollect, Target: id})
}

// fromAbove reports whether the player came down onto the enemy's top half.
func fromAbove(prev, pb, ab core.Box) bool {
	return pb.CenterY() < ab.CenterY() || prev.Bottom() <= ab.Y+1e-6
}

// away returns the horizontal direction pushing a away from b.
func away(a, b core.Box) float64 {
	if a.CenterX() < b.CenterX() {
		return -1
	}
	return 1
}

// apply performs every effect in emission order. Removal is queued, not
// performed, so a target resolved here stays valid until Flush.
func (w *World) apply(effects []Effect) {
	p := w.reg.Player()
	pc := w.cfg.Player

	for _, e := range effects {
		switch e.Kind {
		case EffectDamage:
			if p.Invulnerable > 0 || !p.Alive() {
				continue
			}
			p.Health = max(0, p.Health-e.Amount)
			p.Invulnerable = pc.Invulnerability
			p.VX = e.Push * pc.KnockbackX
			p.VY = -pc.KnockbackY
			p.OnGround = false
			w.emit(Event{Kind: EventDamaged, Amount: e.Amount})

		case EffectHeal:
			p.Health = min(p.MaxHealth, p.Health+e.Amount)
			w.emit(Event{Kind: EventHealed, Amount: e.Amount})

		case EffectCollect:
			a := w.reg.MustGet(e.Target)
			if a.Kind == entity.KindCoin {
				w.coins++
				w.score += w.cfg.Scoring.Coin
				w.emit(Event{Kind: EventCoin, Amount: w.cfg.Scoring.Coin})
			}
			w.reg.MarkRemoved(e.Target)

		case EffectDefeat:
			a := w.reg.MustGet(e.Target)
			if w.reg.IsPending(e.Target) {
				continue
			}
			a.Health = 0
			w.score += w.cfg.Scoring.EnemyDefeat
			w.reg.MarkRemoved(e.Target)
			p.VY = -pc.StompBounce
			w.emit(Event{Kind: EventEnemyDefeated, Subject: a.Kind, Amount: w.cfg.Scoring.EnemyDefeat})

		case EffectHitEnemy:
			a := w.reg.MustGet(e.Target)
			a.Health--
			a.Invulnerable = stompGrace
			w.score += w.cfg.Scoring.EnemyHit
			p.VY = -pc.StompBounce
			w.emit(Event{Kind: EventEnemyHit, Subject: a.Kind, Amount: w.cfg.Scoring.EnemyHit})

		case EffectSpeedBoost:
			w.powers.Activate(entity.PowerSpeed, w.cfg.PowerUps.Speed.Duration)
			w.moveSpeed = w.cfg.PowerUps.Speed.MoveSpeed
			w.emit(Event{Kind: EventPowerUp, Power: entity.PowerSpeed})

		case EffectShieldGrant:
			w.powers.Activate(entity.PowerShield, w.cfg.PowerUps.Shield.Duration)
			w.emit(Event{Kind: EventPowerUp, Power: entity.PowerShield})

		case EffectExtraJump:
			w.powers.Activate(entity.PowerTripleJump, w.cfg.PowerUps.TripleJump.Duration)
			p.MaxJumps = w.cfg.PowerUps.TripleJump.MaxJumps
			p.JumpsRemaining = p.MaxJumps
			w.emit(Event{Kind: EventPowerUp, Power: entity.PowerTripleJump})

		case EffectReachGoal:
			if !w.goal {
				w.goal = true
				w.emit(Event{Kind: EventGoal})
			}

		case EffectFall:
			if p.Alive() {
				p.Health = 0
				w.emit(Event{Kind: EventFell})
			}
		}
	}
}

// expire undoes a timed power-up.
func (w *World) expire(p *entity.Actor, kind entity.PowerKind) {
	switch kind {
	case entity.PowerSpeed:
		w.moveSpeed = w.cfg.Player.MoveSpeed
	case entity.PowerTripleJump:
		p.MaxJumps = w.cfg.Player.MaxJumps
		p.JumpsRemaining = min(p.JumpsRemaining, p.MaxJumps)
	}
	w.emit(Event{Kind: EventPowerExpired, Power: kind})
}
