package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/grid"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

// World units covered by one terminal cell. A 48-unit tile is 3x2 cells.
const (
	unitsPerCol = 16.0
	unitsPerRow = 24.0
	hudRows     = 1
)

type glyph struct {
	r rune
	c core.Color
}

var tileGlyphs = map[grid.CellKind]glyph{
	grid.Solid:       {'█', core.ColorGray},
	grid.OnePlatform: {'═', core.ColorYellow},
	grid.Hazard:      {'~', core.ColorBrightRed},
}

var actorGlyphs = map[entity.Kind]glyph{
	entity.KindPlayer:  {'@', core.ColorBrightCyan},
	entity.KindWalker:  {'E', core.ColorRed},
	entity.KindFlyer:   {'W', core.ColorMagenta},
	entity.KindSpinner: {'*', core.ColorOrange},
	entity.KindSpike:   {'▲', core.ColorBrightRed},
	entity.KindCoin:    {'o', core.ColorBrightYellow},
	entity.KindGoal:    {'⚑', core.ColorBrightGreen},
}

var powerGlyphs = map[entity.PowerKind]rune{
	entity.PowerSpeed:      'S',
	entity.PowerShield:     'D',
	entity.PowerTripleJump: 'J',
	entity.PowerHealth:     '♥',
}

// viewport returns the world size visible on a screen of w x h cells.
func viewport(w, h int) (float64, float64) {
	return float64(w) * unitsPerCol, float64(max(h-hudRows, 1)) * unitsPerRow
}

// drawWorld renders tiles and actors below the HUD row.
func drawWorld(s *core.Screen, g *grid.Grid, snap sim.Snapshot) {
	viewW, viewH := viewport(s.Width(), s.Height())
	left := snap.Camera.X - viewW/2
	top := snap.Camera.Y - viewH/2
	rows := s.Height() - hudRows

	for r := range rows {
		wy := top + (float64(r)+0.5)*unitsPerRow
		for c := range s.Width() {
			wx := left + (float64(c)+0.5)*unitsPerCol
			row, col := g.CellOf(wx, wy)
			if gl, ok := tileGlyphs[g.At(row, col)]; ok {
				s.SetColored(c, r+hudRows, gl.r, gl.c)
			}
		}
	}

	toCell := func(a sim.ActorView) (x0, y0, x1, y1 int) {
		x0 = int(math.Floor((a.X - left) / unitsPerCol))
		x1 = int(math.Ceil((a.X+a.W-left)/unitsPerCol)) - 1
		y0 = int(math.Floor((a.Y-top)/unitsPerRow)) + hudRows
		y1 = int(math.Ceil((a.Y+a.H-top)/unitsPerRow)) - 1 + hudRows
		return x0, y0, max(x0, x1), max(y0, y1)
	}

	draw := func(a sim.ActorView) {
		gl, ok := actorGlyphs[a.Kind]
		if a.Kind == entity.KindPowerUp {
			gl, ok = glyph{powerGlyphs[a.Power], core.ColorBrightGreen}, true
		}
		if !ok {
			return
		}
		if a.Invulnerable > 0 && int(a.Invulnerable*10)%2 == 1 {
			return
		}
		x0, y0, x1, y1 := toCell(a)
		for y := y0; y <= y1; y++ {
			if y < hudRows {
				continue
			}
			for x := x0; x <= x1; x++ {
				s.SetColored(x, y, gl.r, gl.c)
			}
		}
	}

	for _, a := range snap.Actors {
		draw(a)
	}
	draw(snap.Player)
}

// hudLine formats the status row.
func hudLine(levelNum int, levelName string, snap sim.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, " %d: %s  SCORE %d  COINS %d  ", levelNum, levelName, snap.Score, snap.Coins)
	b.WriteString(strings.Repeat("♥", max(snap.Health, 0)))
	b.WriteString(strings.Repeat("♡", max(snap.MaxHealth-snap.Health, 0)))
	for _, p := range []struct {
		name string
		left float64
	}{{"SPEED", snap.Speed}, {"SHIELD", snap.Shield}, {"JUMP×3", snap.TripleJump}} {
		if p.left > 0 {
			fmt.Fprintf(&b, "  %s %.0fs", p.name, math.Ceil(p.left))
		}
	}
	return b.String()
}

// drawOverlay draws a centred message box.
func drawOverlay(s *core.Screen, lines []string, color core.Color) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width += 4
	height := len(lines) + 2
	x := (s.Width() - width) / 2
	y := (s.Height() - height) / 2

	s.DrawRect(core.NewRect(x, y, width, height), ' ', core.ColorDefault)
	s.DrawBox(core.NewRect(x, y, width, height), color)
	for i, l := range lines {
		pad := (width - 2 - len([]rune(l))) / 2
		s.DrawTextColored(x+1+pad, y+1+i, l, color)
	}
}

// eventMessage returns the toast shown for an event, if any.
func eventMessage(e sim.Event) string {
	switch e.Kind {
	case sim.EventCoin:
		return fmt.Sprintf("+%d", e.Amount)
	case sim.EventDamaged:
		return "Ouch!"
	case sim.EventHealed:
		return "+1 heart"
	case sim.EventEnemyHit:
		return fmt.Sprintf("Stomp! +%d", e.Amount)
	case sim.EventEnemyDefeated:
		return fmt.Sprintf("%s defeated +%d", e.Subject, e.Amount)
	case sim.EventPowerUp:
		return fmt.Sprintf("%s power-up!", e.Power)
	case sim.EventPowerExpired:
		return fmt.Sprintf("%s worn off", e.Power)
	case sim.EventFell:
		return "You fell!"
	}
	return ""
}
