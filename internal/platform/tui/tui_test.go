package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/game"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{runes("a"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{runes("p"), core.ActionPause, false},
		{runes("L"), core.ActionLoad, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runes("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runes("z"), core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
		}
	}
}

func TestHeldKeysDecay(t *testing.T) {
	var h heldKeys
	if !h.press(core.ActionJump) {
		t.Error("first jump press should be fresh")
	}
	if h.press(core.ActionJump) {
		t.Error("auto-repeat should not count as a fresh jump")
	}
	h.press(core.ActionLeft)
	h.press(core.ActionRight)

	frame := core.NewInputFrame()
	h.apply(&frame)
	in := frame.Intent()
	if in.MoveLeft || !in.MoveRight || !in.JumpHeld || in.JumpPressed {
		t.Errorf("unexpected intent %+v", in)
	}

	h.decay(1)
	frame.Clear()
	h.apply(&frame)
	if in := frame.Intent(); in != (core.Intent{}) {
		t.Errorf("keys should be released after the hold window, got %+v", in)
	}
	if !h.press(core.ActionJump) {
		t.Error("jump after release should be fresh")
	}
}

func TestHUDLine(t *testing.T) {
	snap := sim.Snapshot{Score: 250, Coins: 2, Health: 2, MaxHealth: 3, Shield: 4.2}
	got := hudLine(1, "Tutorial", snap)
	for _, want := range []string{"1: Tutorial", "SCORE 250", "COINS 2", "♥♥♡", "SHIELD 5s"} {
		if !strings.Contains(got, want) {
			t.Errorf("hudLine() = %q, missing %q", got, want)
		}
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	s, err := game.NewSession(game.Options{Config: config.DefaultPlatformerConfig(), TickRate: 60})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	if err := s.Open(""); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return NewModel(s, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
}

func screenText(m Model) string {
	m.render()
	return m.screen.String()
}

func TestModelStartsAndTicks(t *testing.T) {
	m := newTestModel(t)
	if !strings.Contains(screenText(m), "enter: play") {
		t.Error("menu overlay not shown")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.session.State() != sim.StateRunning {
		t.Fatalf("state after enter = %s, expected running", m.session.State())
	}

	now := time.Now()
	for i := range 5 {
		next, _ = m.Update(TickMsg(now.Add(time.Duration(i) * time.Second / 60)))
		m = next.(Model)
	}
	if tick := m.session.Snapshot().Tick; tick == 0 {
		t.Error("ticks should advance the simulation")
	}

	view := screenText(m)
	if !strings.Contains(view, "@") {
		t.Error("player glyph not rendered")
	}
	if !strings.Contains(view, "SCORE") {
		t.Error("HUD not rendered")
	}
}

func TestModelPauseFreezes(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next, _ = next.Update(runes("p"))
	m = next.(Model)
	if m.session.State() != sim.StatePaused {
		t.Fatalf("state = %s, expected paused", m.session.State())
	}

	now := time.Now()
	for i := range 5 {
		next, _ = m.Update(TickMsg(now.Add(time.Duration(i) * time.Second / 60)))
		m = next.(Model)
	}
	if tick := m.session.Snapshot().Tick; tick != 0 {
		t.Errorf("paused game advanced to tick %d", tick)
	}
	if !strings.Contains(screenText(m), "PAUSED") {
		t.Error("pause overlay not shown")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if next.(Model).View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestDrawWorldPlacesTiles(t *testing.T) {
	m := newTestModel(t)
	if !strings.ContainsRune(screenText(m), '█') {
		t.Error("solid tiles not drawn")
	}
	if got := m.screen.Width(); got != 80 {
		t.Errorf("screen width = %d", got)
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, '@', core.ColorBrightCyan)
	s.DrawTextColored(0, 1, "▲▲", core.ColorBrightRed)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() produced %d lines, expected 2", len(lines))
	}
	for _, want := range []string{"ab", "@", "▲▲"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() = %q, missing %q", out, want)
		}
	}
}

func TestFrameIntervalClamped(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{60, time.Second / 60},
		{0, time.Second / minFrameRate},
		{1000, time.Second / maxFrameRate},
	}
	for _, tt := range tests {
		if got := frameInterval(tt.rate); got != tt.want {
			t.Errorf("frameInterval(%d) = %v, expected %v", tt.rate, got, tt.want)
		}
	}
}
