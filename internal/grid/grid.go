// Package grid holds the immutable tile geometry of a level.
package grid

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ErrInvalidLevelGeometry is returned when a grid cannot be built from the
// supplied cells.
var ErrInvalidLevelGeometry = errors.New("invalid level geometry")

// CellKind is the collision class of a tile.
type CellKind uint8

const (
	Empty       CellKind = iota
	Solid                // blocks from every side
	OnePlatform          // blocks only downward motion onto its top edge
	Hazard               // overlaps hurt, never blocks
)

// String returns the name of the cell kind.
func (k CellKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Solid:
		return "solid"
	case OnePlatform:
		return "platform"
	case Hazard:
		return "hazard"
	default:
		return "unknown"
	}
}

// Grid is a row-major array of cell kinds. It is never mutated after New.
type Grid struct {
	rows, cols int
	tileSize   float64
	cells      []CellKind
}

// New builds a grid from rows of cells. Every row must have the same
// non-zero length and the tile size must be positive.
func New(rows [][]CellKind, tileSize float64) (*Grid, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("%w: tile size %v must be positive", ErrInvalidLevelGeometry, tileSize)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidLevelGeometry)
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, fmt.Errorf("%w: zero columns", ErrInvalidLevelGeometry)
	}

	g := &Grid{
		rows:     len(rows),
		cols:     cols,
		tileSize: tileSize,
		cells:    make([]CellKind, 0, len(rows)*cols),
	}
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidLevelGeometry, r, len(row), cols)
		}
		for c, k := range row {
			if k > Hazard {
				return nil, fmt.Errorf("%w: unknown cell kind %d at (%d, %d)", ErrInvalidLevelGeometry, k, r, c)
			}
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// TileSize returns the edge length of one cell in world units.
func (g *Grid) TileSize() float64 { return g.tileSize }

// PixelWidth returns the world width covered by the grid.
func (g *Grid) PixelWidth() float64 { return float64(g.cols) * g.tileSize }

// PixelHeight returns the world height covered by the grid.
func (g *Grid) PixelHeight() float64 { return float64(g.rows) * g.tileSize }

// InBounds checks if a cell index lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the kind of the cell at (row, col). Out-of-bounds cells are Empty,
// so actors may leave the map and fall.
func (g *Grid) At(row, col int) CellKind {
	if !g.InBounds(row, col) {
		return Empty
	}
	return g.cells[row*g.cols+col]
}

// CellOf maps a world point to its (row, col) by floor division.
func (g *Grid) CellOf(x, y float64) (row, col int) {
	return core.FloorDiv(y, g.tileSize), core.FloorDiv(x, g.tileSize)
}

// CellBox returns the world-space box of a cell.
func (g *Grid) CellBox(row, col int) core.Box {
	return core.NewBox(float64(col)*g.tileSize, float64(row)*g.tileSize, g.tileSize, g.tileSize)
}

// Span returns the inclusive cell range covered by the open interval
// [lo, hi) along one axis.
func (g *Grid) Span(lo, hi float64) (first, last int) {
	first = core.FloorDiv(lo, g.tileSize)
	last = core.FloorDiv(hi, g.tileSize)
	// hi is exclusive: a box ending exactly on a boundary does not reach the next cell.
	if float64(last)*g.tileSize >= hi {
		last--
	}
	return first, last
}

// Count returns the number of cells of the given kind.
func (g *Grid) Count(kind CellKind) int {
	n := 0
	for _, k := range g.cells {
		if k == kind {
			n++
		}
	}
	return n
}
