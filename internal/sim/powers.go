package sim

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/entity"
)

var timedPowers = [...]entity.PowerKind{entity.PowerSpeed, entity.PowerShield, entity.PowerTripleJump}

// Powers tracks the remaining time of each timed power-up.
type Powers struct {
	remaining [entity.PowerHealth + 1]float64
}

// Activate starts a power or refreshes its timer.
func (p *Powers) Activate(kind entity.PowerKind, duration float64) {
	if int(kind) < len(p.remaining) {
		p.remaining[kind] = math.Max(0, duration)
	}
}

// Active reports whether a power has time left.
func (p *Powers) Active(kind entity.PowerKind) bool {
	return p.Remaining(kind) > 0
}

// Remaining returns the seconds left on a power.
func (p *Powers) Remaining(kind entity.PowerKind) float64 {
	if int(kind) >= len(p.remaining) {
		return 0
	}
	return p.remaining[kind]
}

// Tick counts every active power down and returns the ones that ran out.
func (p *Powers) Tick(dt float64) []entity.PowerKind {
	var expired []entity.PowerKind
	for _, kind := range timedPowers {
		if p.remaining[kind] <= 0 {
			continue
		}
		p.remaining[kind] -= dt
		if p.remaining[kind] <= 0 {
			p.remaining[kind] = 0
			expired = append(expired, kind)
		}
	}
	return expired
}
