package sim

import "github.com/vovakirdan/tui-platformer/internal/core"

// State is the phase of the game state machine.
type State uint8

const (
	StateMenu State = iota
	StateRunning
	StatePaused
	StateGameOver
	StateLevelComplete
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	case StateLevelComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Command is an external request to change state.
type Command uint8

const (
	CommandStart Command = iota
	CommandTogglePause
	CommandReset
)

// Machine gates World.Step on the game state. Once the world has reached
// GameOver or LevelComplete it is spent: a later Start is ignored until Swap
// installs a new world.
type Machine struct {
	world *World
	state State
	ended bool
}

// NewMachine wraps w in the Menu state.
func NewMachine(w *World) *Machine {
	return &Machine{world: w}
}

// World returns the wrapped world.
func (m *Machine) World() *World { return m.world }

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Handle applies a command and reports whether the state changed.
func (m *Machine) Handle(cmd Command) bool {
	prev := m.state
	switch cmd {
	case CommandStart:
		if m.state == StateMenu && !m.ended {
			m.state = StateRunning
		}
	case CommandTogglePause:
		switch m.state {
		case StateRunning:
			m.state = StatePaused
		case StatePaused:
			m.state = StateRunning
		}
	case CommandReset:
		m.state = StateMenu
	}
	return m.state != prev
}

// Tick steps the world if the machine is running and moves to GameOver or
// LevelComplete on the tick that decides it.
func (m *Machine) Tick(in core.Intent, dt float64) StepResult {
	if m.state != StateRunning {
		return StepResult{}
	}
	res := m.world.Step(in, dt)
	switch res.Outcome {
	case OutcomeDied:
		m.state, m.ended = StateGameOver, true
	case OutcomeReachedGoal:
		m.state, m.ended = StateLevelComplete, true
	}
	return res
}

// Swap replaces the world, e.g. after a level transition, and returns to Menu.
func (m *Machine) Swap(w *World) {
	m.world = w
	m.state = StateMenu
	m.ended = false
}

// Ended reports whether the current world has finished with a death or a
// cleared level.
func (m *Machine) Ended() bool { return m.ended }
