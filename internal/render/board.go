package render

import (
	"github.com/vovakirdan/tetris-core/internal/tetris"
)

// Board glyphs.
const (
	GlyphEmpty  = '.'
	GlyphLocked = '#'
	GlyphActive = '@'
	GlyphGhost  = '+'
)

// BoardView describes what to draw on top of the locked grid.
type BoardView struct {
	Grid   *tetris.Grid
	Active *tetris.Piece
	// Ghost is drawn under the active piece when set.
	Ghost *tetris.Piece
	Title string
}

// cellInk maps a grid cell to its ink.
func cellInk(c tetris.Cell) Ink {
	switch {
	case c == tetris.Empty:
		return InkEmpty
	case c == tetris.Garbage:
		return InkGarbage
	default:
		return PieceInk(int(c) - 1)
	}
}

// DrawBoard renders the grid inside a box. The piece and ghost cells above
// the top row are clipped.
func DrawBoard(v BoardView) *Canvas {
	g := v.Grid
	extra := 0
	if v.Title != "" {
		extra = 1
	}
	c := NewCanvas(g.Width()+2, g.Height()+2+extra)
	if v.Title != "" {
		c.DrawText(0, 0, v.Title, InkDefault)
	}
	c.DrawBox(0, extra, g.Width()+2, g.Height()+2)

	ox, oy := 1, 1+extra
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			cell := g.At(col, row)
			r := GlyphLocked
			if cell == tetris.Empty {
				r = GlyphEmpty
			}
			c.Set(ox+col, oy+row, r, cellInk(cell))
		}
	}

	if v.Ghost != nil {
		for _, p := range v.Ghost.Cells() {
			if g.InBounds(p.X, p.Y) && g.At(p.X, p.Y) == tetris.Empty {
				c.Set(ox+p.X, oy+p.Y, GlyphGhost, InkGhost)
			}
		}
	}
	if v.Active != nil {
		ink := PieceInk(int(v.Active.ID))
		for _, p := range v.Active.Cells() {
			if g.InBounds(p.X, p.Y) {
				c.Set(ox+p.X, oy+p.Y, GlyphActive, ink)
			}
		}
	}
	return c
}
