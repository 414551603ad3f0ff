package tetris

import (
	"fmt"
	"strings"
)

// Standard playfield dimensions.
const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// Cell is the state of one grid cell: Empty or a colour index.
type Cell uint8

const (
	// Empty marks an unoccupied cell.
	Empty Cell = 0
	// Garbage marks a block that did not come from a locked piece.
	Garbage Cell = Cell(pieceCount) + 1
)

// Board is the read-only view of a grid that the validator and the rotation
// engine work against. Implementations must report rows above the top
// (row < 0) as unoccupied.
type Board interface {
	Width() int
	Height() int
	Occupied(col, row int) bool
}

// Grid is a fixed-size occupancy matrix stored row-major.
// It is owned by a single writer; the engine only reads it through Board.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

var _ Board = (*Grid)(nil)

// NewGrid creates an empty grid. Non-positive dimensions fall back to the
// standard 10x20 playfield.
func NewGrid(width, height int) *Grid {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// ParseGrid builds a grid from text rows aligned to the bottom of the grid.
// '.' and ' ' are empty; any other rune is occupied.
func ParseGrid(width, height int, rows []string) (*Grid, error) {
	g := NewGrid(width, height)
	if len(rows) > g.height {
		return nil, fmt.Errorf("tetris: %d rows do not fit a grid of height %d", len(rows), g.height)
	}
	offset := g.height - len(rows)
	for y, line := range rows {
		runes := []rune(line)
		if len(runes) > g.width {
			return nil, fmt.Errorf("tetris: row %d is %d wide, grid is %d", y, len(runes), g.width)
		}
		for x, r := range runes {
			if r == '.' || r == ' ' {
				continue
			}
			g.Set(x, offset+y, Garbage)
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of visible rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether (col, row) is inside the visible grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

// At returns the cell at (col, row). Out-of-bounds cells read as Empty.
func (g *Grid) At(col, row int) Cell {
	if !g.InBounds(col, row) {
		return Empty
	}
	return g.cells[row*g.width+col]
}

// Occupied reports whether (col, row) holds a locked block.
func (g *Grid) Occupied(col, row int) bool {
	return g.At(col, row) != Empty
}

// Set writes a cell. Out-of-bounds writes are ignored.
func (g *Grid) Set(col, row int, c Cell) {
	if !g.InBounds(col, row) {
		return
	}
	g.cells[row*g.width+col] = c
}

// RowFull reports whether every cell of the row is occupied.
func (g *Grid) RowFull(row int) bool {
	if row < 0 || row >= g.height {
		return false
	}
	for _, c := range g.cells[row*g.width : (row+1)*g.width] {
		if c == Empty {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the grid holds no blocks at all.
func (g *Grid) IsEmpty() bool {
	for _, c := range g.cells {
		if c != Empty {
			return false
		}
	}
	return true
}

// Lock writes the piece's cells into the grid with the piece colour.
// Cells above the visible top are dropped; the returned count says how many
// cells landed inside the grid.
func (g *Grid) Lock(p Piece) int {
	landed := 0
	for _, c := range p.Cells() {
		if g.InBounds(c.X, c.Y) {
			g.Set(c.X, c.Y, p.ID.Color())
			landed++
		}
	}
	return landed
}

// ClearFullRows removes every full row, shifts the rows above it down and
// returns the indices of the removed rows (top to bottom, pre-shift).
func (g *Grid) ClearFullRows() []int {
	var cleared []int
	for y := 0; y < g.height; y++ {
		if g.RowFull(y) {
			cleared = append(cleared, y)
		}
	}
	if len(cleared) == 0 {
		return nil
	}

	dst := g.height - 1
	for src := g.height - 1; src >= 0; src-- {
		if g.RowFull(src) {
			continue
		}
		if dst != src {
			copy(g.cells[dst*g.width:(dst+1)*g.width], g.cells[src*g.width:(src+1)*g.width])
		}
		dst--
	}
	for ; dst >= 0; dst-- {
		row := g.cells[dst*g.width : (dst+1)*g.width]
		for i := range row {
			row[i] = Empty
		}
	}
	return cleared
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		width:  g.width,
		height: g.height,
		cells:  make([]Cell, len(g.cells)),
	}
	copy(c.cells, g.cells)
	return c
}

// String renders the grid as text rows, '#' for blocks and '.' for empty.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.width; x++ {
			if g.Occupied(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
