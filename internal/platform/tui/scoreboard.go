package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

const scoreboardLimit = 50

// ScoreSource is the part of the store the scoreboard reads.
type ScoreSource interface {
	TopScores(levelID string, limit int) ([]storage.ScoreEntry, error)
	AllLevelStats() (map[string]*storage.LevelStats, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Prev key.Binding
	Next key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next}, {k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev level")),
		Next: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "next level")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle  = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	statsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// ScoreboardModel shows the top clears of each campaign level.
type ScoreboardModel struct {
	store  ScoreSource // may be nil
	levels []levels.Level
	cursor int
	stats  map[string]*storage.LevelStats
	err    error

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	goingBack     bool
	quitting      bool
}

// NewScoreboardModel creates a scoreboard over the campaign levels.
func NewScoreboardModel(store ScoreSource, lvls []levels.Level, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		levels: lvls,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = newScoreTable(width, height)
	if store != nil {
		m.stats, m.err = store.AllLevelStats()
	}
	m.reload()
	return m
}

func newScoreTable(width, height int) table.Model {
	dateW := min(max(width-40, 12), 20)
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 10},
			{Title: "Coins", Width: 6},
			{Title: "Date", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

// current returns the selected level, if any.
func (m ScoreboardModel) current() (levels.Level, bool) {
	if len(m.levels) == 0 {
		return levels.Level{}, false
	}
	return m.levels[m.cursor], true
}

// reload fills the table with the selected level's scores.
func (m *ScoreboardModel) reload() {
	var rows []table.Row
	if lvl, ok := m.current(); ok && m.store != nil {
		scores, err := m.store.TopScores(lvl.ID, scoreboardLimit)
		m.err = err
		for i, s := range scores {
			rows = append(rows, table.Row{
				"#" + strconv.Itoa(i+1),
				strconv.Itoa(s.Score),
				strconv.Itoa(s.Coins),
				s.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) move(delta int) {
	if n := len(m.levels); n > 0 {
		m.cursor = (m.cursor + delta + n) % n
		m.reload()
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.move(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.move(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newScoreTable(msg.Width, msg.Height)
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	title := "HIGH SCORES"
	lvl, ok := m.current()
	if ok {
		title += " - " + lvl.Name
	}
	b.WriteString(centerText(boardTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")
	if ok {
		b.WriteString(centerText(statsStyle.Render(m.summary(lvl.ID)), m.width))
		b.WriteString("\n")
	}

	body := m.table.View()
	switch {
	case m.err != nil:
		body = emptyStyle.Render("Could not read scores: " + m.err.Error())
	case len(m.table.Rows()) == 0:
		body = emptyStyle.Render("No clears recorded yet.\nFinish the level to set a high score!")
	}
	b.WriteString(centerText(frameStyle.Render(body), m.width))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs renders the level strip, falling back to "< name >" when it does not fit.
func (m ScoreboardModel) tabs() string {
	parts := make([]string, len(m.levels))
	for i, l := range m.levels {
		if i == m.cursor {
			parts[i] = activeTabStyle.Render(l.ID)
		} else {
			parts[i] = tabStyle.Render(l.ID)
		}
	}
	line := strings.Join(parts, " ")
	if lvl, ok := m.current(); ok && lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", lvl.ID)
	}
	return line
}

func (m ScoreboardModel) summary(levelID string) string {
	st, ok := m.stats[levelID]
	if !ok {
		return "Not cleared yet"
	}
	return fmt.Sprintf("Clears %d   Best %d   Avg %.0f   Coins %d   Last %s",
		st.Clears, st.HighScore, st.AvgScore, st.TotalCoins, st.LastPlayed.Format("Jan 02"))
}

// IsGoingBack returns true if user pressed back rather than quit.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// RunScoreboard runs the scoreboard screen. goBack is true when the user
// left with back rather than quit.
func RunScoreboard(store ScoreSource, lvls []levels.Level, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, lvls, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
