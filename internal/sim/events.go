package sim

import "github.com/vovakirdan/tui-platformer/internal/entity"

// EventKind names something that happened during a tick.
type EventKind uint8

const (
	EventJump EventKind = iota
	EventCoin
	EventDamaged
	EventHealed
	EventEnemyHit
	EventEnemyDefeated
	EventPowerUp
	EventPowerExpired
	EventGoal
	EventFell
)

var eventNames = [...]string{
	EventJump:          "jump",
	EventCoin:          "coin",
	EventDamaged:       "damaged",
	EventHealed:        "healed",
	EventEnemyHit:      "enemy_hit",
	EventEnemyDefeated: "enemy_defeated",
	EventPowerUp:       "powerup",
	EventPowerExpired:  "power_expired",
	EventGoal:          "goal",
	EventFell:          "fell",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is a notification for presentation layers (sound, messages, logs).
// Events never feed back into the simulation.
type Event struct {
	Kind    EventKind
	Subject entity.Kind
	Power   entity.PowerKind
	Amount  int
}
