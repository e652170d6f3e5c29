// Package levels loads level files and turns their ASCII maps into tile
// geometry and entity spawns. The simulation depends on the output types
// only; it never reads files itself.
package levels

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/grid"
)

// Level is a parsed level definition.
type Level struct {
	ID       string
	Name     string
	Rows     []string
	Metadata map[string]string
	FilePath string
}

// glyphs maps map characters to cell kinds. Marker glyphs leave an Empty cell.
var glyphs = map[rune]grid.CellKind{
	'.': grid.Empty,
	' ': grid.Empty,
	'#': grid.Solid,
	'|': grid.Solid,
	'=': grid.OnePlatform,
	'~': grid.Hazard,
}

// markers maps map characters to spawned entities.
var markers = map[rune]entity.Spawn{
	'P': {Kind: entity.KindPlayer},
	'E': {Kind: entity.KindWalker},
	'B': {Kind: entity.KindFlyer},
	'O': {Kind: entity.KindSpinner},
	'^': {Kind: entity.KindSpike},
	'C': {Kind: entity.KindCoin},
	'G': {Kind: entity.KindGoal},
	'F': {Kind: entity.KindGoal},
	'S': {Kind: entity.KindPowerUp, Power: entity.PowerSpeed},
	'D': {Kind: entity.KindPowerUp, Power: entity.PowerShield},
	'J': {Kind: entity.KindPowerUp, Power: entity.PowerTripleJump},
	'H': {Kind: entity.KindPowerUp, Power: entity.PowerHealth},
}

// Build converts the level map into a grid and a spawn list in row-major
// order. Short rows are padded with empty cells. The map must contain
// exactly one player marker.
func (l *Level) Build(tileSize float64) (*grid.Grid, []entity.Spawn, error) {
	rows := trimRows(l.Rows)
	width := 0
	for _, r := range rows {
		width = max(width, len([]rune(r)))
	}

	cells := make([][]grid.CellKind, len(rows))
	var spawns []entity.Spawn
	players := 0

	for r, line := range rows {
		cells[r] = make([]grid.CellKind, width)
		for c, ch := range []rune(line) {
			if kind, ok := glyphs[ch]; ok {
				cells[r][c] = kind
				continue
			}
			sp, ok := markers[ch]
			if !ok {
				return nil, nil, fmt.Errorf("level %s: %w: unknown glyph %q at row %d col %d", l.ID, grid.ErrInvalidLevelGeometry, ch, r, c)
			}
			if sp.Kind == entity.KindPlayer {
				players++
			}
			sp.X = float64(c) * tileSize
			sp.Y = float64(r) * tileSize
			spawns = append(spawns, sp)
		}
	}

	if players != 1 {
		return nil, nil, fmt.Errorf("level %s: %w: expected one player marker, found %d", l.ID, grid.ErrInvalidLevelGeometry, players)
	}

	g, err := grid.New(cells, tileSize)
	if err != nil {
		return nil, nil, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return g, spawns, nil
}

// trimRows drops blank leading and trailing lines and trailing whitespace.
func trimRows(rows []string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, strings.TrimRight(r, " \t\r"))
	}
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}
