package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/game"
	"github.com/vovakirdan/tui-platformer/internal/sim"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// messageTTL is how long an event toast stays on screen.
const messageTTL = 1.5

// Model is the Bubble Tea model for playing the campaign.
type Model struct {
	session *game.Session
	screen  *core.Screen
	config  core.RuntimeConfig
	keys    *KeyMapper
	help    help.Model
	held    heldKeys
	frame   core.InputFrame
	last    time.Time

	message  string
	messageT float64
	quitting bool
}

// NewModel creates a new Bubble Tea model for an opened session.
func NewModel(session *game.Session, cfg core.RuntimeConfig) Model {
	cfg = cfg.Normalized()
	m := Model{
		session: session,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH-1),
		config:  cfg,
		keys:    NewKeyMapper(),
		help:    help.New(),
		frame:   core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW
	session.SetViewport(viewport(cfg.ScreenW, cfg.ScreenH-1))
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.report(m.session.QuitToMenu())
		return m, tea.Quit
	}

	s := m.session
	switch action {
	case core.ActionLeft, core.ActionRight:
		m.held.press(action)
	case core.ActionJump:
		if m.held.press(action) {
			m.frame.Set(core.ActionJump)
		}
	case core.ActionPause:
		s.Handle(sim.CommandTogglePause)
	case core.ActionRestart:
		if s.State() != sim.StateMenu {
			m.report(s.Restart())
		}
	case core.ActionLoad:
		if s.State() == sim.StateMenu || s.State() == sim.StateGameOver {
			if err := s.Load(); err != nil {
				m.toast(loadMessage(err))
			} else {
				m.toast("Game loaded")
			}
		}
	case core.ActionBack:
		if s.State() == sim.StateMenu {
			m.quitting = true
			return m, tea.Quit
		}
		m.report(s.QuitToMenu())
	case core.ActionConfirm:
		m.confirm()
	}
	return m, nil
}

// confirm performs the state-dependent Enter action.
func (m *Model) confirm() {
	s := m.session
	switch s.State() {
	case sim.StateMenu:
		if s.Finished() {
			m.report(s.Start(""))
			return
		}
		s.Handle(sim.CommandStart)
	case sim.StatePaused:
		s.Handle(sim.CommandTogglePause)
	case sim.StateGameOver:
		m.report(s.Continue())
	case sim.StateLevelComplete:
		ok, err := s.NextLevel()
		m.report(err)
		if err == nil && !ok {
			s.Handle(sim.CommandReset)
		}
	}
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.config = m.config.Normalized()
	w, h := m.config.ScreenW, m.config.ScreenH-1
	m.screen.Resize(w, h)
	m.help.Width = w
	m.session.SetViewport(viewport(w, h))
	return m, nil
}

// handleTick runs the frame: held-key decay, simulation steps, toasts.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := 1 / float64(m.config.TickRate)
	if !m.last.IsZero() {
		elapsed = now.Sub(m.last).Seconds()
	}
	m.last = now

	if m.session.State() != sim.StateRunning {
		m.held.reset()
	}
	m.held.apply(&m.frame)
	for _, e := range m.session.Advance(m.frame.Intent(), elapsed) {
		if text := eventMessage(e); text != "" {
			m.toast(text)
		}
	}
	m.held.decay(elapsed)
	m.frame.Clear()

	if m.messageT > 0 {
		m.messageT -= elapsed
		if m.messageT <= 0 {
			m.message = ""
		}
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) toast(text string) {
	m.message, m.messageT = text, messageTTL
}

func (m *Model) report(err error) {
	if err != nil && !errors.Is(err, game.ErrNoStore) {
		m.toast(err.Error())
	}
}

func loadMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrNoStore):
		return "Saving is disabled"
	case errors.Is(err, storage.ErrNoSave):
		return "No saved game"
	}
	return err.Error()
}

// render draws the current frame into the screen buffer.
func (m *Model) render() {
	s := m.screen
	s.Clear()
	if m.session.Machine() == nil {
		return
	}
	snap := m.session.Snapshot()
	lvl := m.session.Level()

	drawWorld(s, m.session.Machine().World().Grid(), snap)
	s.DrawHLine(0, 0, s.Width(), ' ', core.ColorDefault)
	s.DrawTextColored(0, 0, hudLine(m.session.LevelNumber(), lvl.Name, snap), core.ColorBrightWhite)
	if m.message != "" {
		s.DrawTextColored(s.Width()-len([]rune(m.message))-1, 0, m.message, core.ColorBrightYellow)
	}

	switch m.session.State() {
	case sim.StateMenu:
		if m.session.Finished() {
			drawOverlay(s, []string{
				"YOU FINISHED THE CAMPAIGN!",
				fmt.Sprintf("Final score: %d", snap.Score),
				"",
				"enter: play again   q: quit",
			}, core.ColorBrightGreen)
			return
		}
		drawOverlay(s, []string{
			"TUI PLATFORMER",
			fmt.Sprintf("Level %d: %s", m.session.LevelNumber(), lvl.Name),
			"",
			"enter: play   L: load save   q: quit",
		}, core.ColorBrightCyan)
	case sim.StatePaused:
		drawOverlay(s, []string{"PAUSED", "", "p/enter: resume   esc: save & menu"}, core.ColorYellow)
	case sim.StateGameOver:
		drawOverlay(s, []string{
			"GAME OVER",
			fmt.Sprintf("Score: %d", snap.Score),
			"",
			"enter: continue   esc: menu",
		}, core.ColorBrightRed)
	case sim.StateLevelComplete:
		drawOverlay(s, []string{
			"LEVEL COMPLETE!",
			fmt.Sprintf("Score: %d   Coins: %d", snap.Score, snap.Coins),
			"",
			"enter: next level",
		}, core.ColorBrightGreen)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.render()

	dir := filepath.Join(os.Getenv("HOME"), ".platformer", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.session.Level().ID, timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.render()
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// Run starts the Bubble Tea program for the session.
func Run(session *game.Session, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(session, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
