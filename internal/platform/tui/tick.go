// Package tui is the Bubble Tea front end of the platformer. It maps keys
// to intents, drives the campaign session from a tick loop, and draws the
// world, HUD and overlays through a character screen buffer.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Frame rates outside this range are clamped.
const (
	minFrameRate = 10
	maxFrameRate = 240
)

// TickMsg drives one frame. It carries the wall-clock time the frame fired,
// which the model turns into elapsed simulation time.
type TickMsg time.Time

// frameInterval returns the delay between frames for a tick rate.
func frameInterval(tickRate int) time.Duration {
	return time.Second / time.Duration(min(max(tickRate, minFrameRate), maxFrameRate))
}

func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
