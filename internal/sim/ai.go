package sim

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// moveEnemies advances patrols and animation timers of every non-player actor.
func (w *World) moveEnemies(dt float64) {
	fc := w.cfg.Enemies.Flyer
	w.reg.Each(func(_ entity.ID, a *entity.Actor) bool {
		a.AnimTime += dt
		if a.Invulnerable > 0 {
			a.Invulnerable = math.Max(0, a.Invulnerable-dt)
		}
		if !a.Caps.Has(entity.Patrolling) {
			return true
		}

		tx := a.X + a.Direction*a.PatrolSpeed*dt
		if a.Caps.Has(entity.SolidCollider) {
			res := physics.Resolve(w.grid, a.Box(), tx, a.Y)
			a.X = res.X
			if res.Contact.Left || res.Contact.Right {
				a.Direction = -a.Direction
			}
		} else {
			a.X = tx
		}
		a.VX = a.Direction * a.PatrolSpeed

		if math.Abs(a.X-a.SpawnX) > a.PatrolRange {
			a.X = a.SpawnX + math.Copysign(a.PatrolRange, a.X-a.SpawnX)
			a.Direction = -a.Direction
		}
		if a.Kind == entity.KindFlyer {
			a.Y = a.SpawnY + math.Sin(a.AnimTime*fc.Frequency)*fc.Amplitude
		}
		return true
	})
}
