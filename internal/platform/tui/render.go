package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// styleCache holds one lipgloss style per core.Color.
var styleCache = map[core.Color]lipgloss.Style{}

func styleFor(c core.Color) lipgloss.Style {
	if st, ok := styleCache[c]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if code := c.ANSI(); code != "" {
		st = st.Foreground(lipgloss.Color(code))
	}
	if c.Bright() {
		st = st.Bold(true)
	}
	styleCache[c] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Each run of same-colored cells gets one style so the escape sequences stay
// short.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		renderRow(&sb, s, y)
	}
	return sb.String()
}

func renderRow(sb *strings.Builder, s *core.Screen, y int) {
	run := make([]rune, 0, s.Width())
	color := s.GetCell(0, y).Color
	flush := func() {
		if len(run) == 0 {
			return
		}
		if color == core.ColorDefault {
			sb.WriteString(string(run))
		} else {
			sb.WriteString(styleFor(color).Render(string(run)))
		}
		run = run[:0]
	}
	for x := range s.Width() {
		cell := s.GetCell(x, y)
		if cell.Color != color {
			flush()
			color = cell.Color
		}
		run = append(run, cell.Rune)
	}
	flush()
}
