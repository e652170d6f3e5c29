package physics

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/entity"
	"github.com/vovakirdan/tui-platformer/internal/grid"
)

// eps absorbs float drift on edges that were clipped exactly onto a tile boundary.
const eps = 1e-6

// maxDepenetrate bounds the push-out passes for boxes embedded in solids.
const maxDepenetrate = 4

// Contact records which sides of the box touched blocking geometry.
type Contact struct {
	Ground  bool
	Ceiling bool
	Left    bool
	Right   bool
}

// Result is the corrected position of a resolved move.
type Result struct {
	X, Y     float64
	Contact  Contact
	OnHazard bool
}

// Resolve moves box from its current position toward (tx, ty), horizontal
// axis first, then vertical at the resolved x. Every cell crossed by the
// move is considered, so a displacement larger than a tile cannot tunnel.
func Resolve(g *grid.Grid, box core.Box, tx, ty float64) Result {
	res := Result{X: box.X, Y: box.Y}

	res.X, res.Contact.Left, res.Contact.Right = sweepX(g, box, tx)
	box.X = res.X

	res.Y, res.Contact.Ground, res.Contact.Ceiling = sweepY(g, box, ty)
	box.Y = res.Y

	depenetrate(g, &res, box)
	res.OnHazard = touches(g, res.boxOf(box), grid.Hazard)
	return res
}

func (r Result) boxOf(b core.Box) core.Box {
	return b.Moved(r.X, r.Y)
}

func sweepX(g *grid.Grid, box core.Box, tx float64) (x float64, left, right bool) {
	dx := tx - box.X
	if dx == 0 {
		return box.X, false, false
	}
	rowLo, rowHi := g.Span(box.Y+eps, box.Bottom()-eps)
	ts := g.TileSize()

	if dx > 0 {
		first, last := g.Span(box.Right()-eps, tx+box.W)
		for col := first; col <= last; col++ {
			edge := float64(col) * ts
			if edge < box.Right()-eps {
				continue
			}
			if anyInColumn(g, col, rowLo, rowHi, grid.Solid) {
				return edge - box.W, false, true
			}
		}
		return tx, false, false
	}

	first, last := g.Span(tx, box.X+eps)
	for col := last; col >= first; col-- {
		edge := float64(col+1) * ts
		if edge > box.X+eps {
			continue
		}
		if anyInColumn(g, col, rowLo, rowHi, grid.Solid) {
			return edge, true, false
		}
	}
	return tx, false, false
}

func sweepY(g *grid.Grid, box core.Box, ty float64) (y float64, ground, ceiling bool) {
	dy := ty - box.Y
	if dy == 0 {
		return box.Y, false, false
	}
	colLo, colHi := g.Span(box.X+eps, box.Right()-eps)
	ts := g.TileSize()

	if dy > 0 {
		first, last := g.Span(box.Bottom()-eps, ty+box.H)
		for row := first; row <= last; row++ {
			top := float64(row) * ts
			if top < box.Bottom()-eps {
				// Already below this row's top edge: neither a floor nor a platform we landed on.
				continue
			}
			if anyInRow(g, row, colLo, colHi, grid.Solid) || anyInRow(g, row, colLo, colHi, grid.OnePlatform) {
				return top - box.H, true, false
			}
		}
		return ty, false, false
	}

	first, last := g.Span(ty, box.Y+eps)
	for row := last; row >= first; row-- {
		bottom := float64(row+1) * ts
		if bottom > box.Y+eps {
			continue
		}
		if anyInRow(g, row, colLo, colHi, grid.Solid) {
			return bottom, false, true
		}
	}
	return ty, false, false
}

// depenetrate pushes a box that starts inside solid cells out along the
// axis of least overlap, one cell at a time.
func depenetrate(g *grid.Grid, res *Result, box core.Box) {
	for range maxDepenetrate {
		b := res.boxOf(box)
		cell, ok := firstOverlap(g, b, grid.Solid)
		if !ok {
			return
		}
		pushLeft := b.Right() - cell.X
		pushRight := cell.Right() - b.X
		pushUp := b.Bottom() - cell.Y
		pushDown := cell.Bottom() - b.Y

		dx, dy := -pushLeft, 0.0
		best := pushLeft
		if pushRight < best {
			dx, best = pushRight, pushRight
		}
		if pushUp < best {
			dx, dy, best = 0, -pushUp, pushUp
		}
		if pushDown < best {
			dx, dy = 0, pushDown
		}

		res.X += dx
		res.Y += dy
		switch {
		case dy < 0:
			res.Contact.Ground = true
		case dy > 0:
			res.Contact.Ceiling = true
		case dx < 0:
			res.Contact.Right = true
		case dx > 0:
			res.Contact.Left = true
		}
	}
}

func firstOverlap(g *grid.Grid, b core.Box, kind grid.CellKind) (core.Box, bool) {
	rowLo, rowHi := g.Span(b.Y+eps, b.Bottom()-eps)
	colLo, colHi := g.Span(b.X+eps, b.Right()-eps)
	for row := rowLo; row <= rowHi; row++ {
		for col := colLo; col <= colHi; col++ {
			if g.At(row, col) == kind {
				return g.CellBox(row, col), true
			}
		}
	}
	return core.Box{}, false
}

func touches(g *grid.Grid, b core.Box, kind grid.CellKind) bool {
	_, ok := firstOverlap(g, b, kind)
	return ok
}

func anyInColumn(g *grid.Grid, col, rowLo, rowHi int, kind grid.CellKind) bool {
	for row := rowLo; row <= rowHi; row++ {
		if g.At(row, col) == kind {
			return true
		}
	}
	return false
}

func anyInRow(g *grid.Grid, row, colLo, colHi int, kind grid.CellKind) bool {
	for col := colLo; col <= colHi; col++ {
		if g.At(row, col) == kind {
			return true
		}
	}
	return false
}

// ApplyContacts writes a resolved move back onto the actor: position,
// blocked velocity components, ground state and jump refill.
func ApplyContacts(a *entity.Actor, res Result) {
	a.X, a.Y = res.X, res.Y
	if res.Contact.Left || res.Contact.Right {
		a.VX = 0
	}
	if res.Contact.Ceiling && a.VY < 0 {
		a.VY = 0
	}
	a.OnGround = res.Contact.Ground
	if res.Contact.Ground {
		if a.VY > 0 {
			a.VY = 0
		}
		a.JumpsRemaining = a.MaxJumps
	}
}

// Step integrates and resolves one actor for one tick.
func Step(a *entity.Actor, g *grid.Grid, p Params, dt float64) Result {
	tx, ty := Integrate(a, p, dt)
	res := Resolve(g, a.Box(), tx, ty)
	ApplyContacts(a, res)
	return res
}
