// Package render draws boards, kick tables and trace reports for the
// command line. It reads engine state and never modifies it.
package render

import (
	"strings"
)

// Ink selects the theme style of a canvas cell.
type Ink uint8

const (
	InkDefault Ink = iota
	InkEmpty
	InkGarbage
	InkGhost
	InkBorder
	InkActive
	inkPiece // first piece ink; piece id is added to it
)

// PieceInk returns the ink of a locked piece cell.
func PieceInk(id int) Ink {
	return inkPiece + Ink(id)
}

type cell struct {
	r   rune
	ink Ink
}

// Canvas is a 2D character buffer with one ink per cell.
type Canvas struct {
	width  int
	height int
	cells  []cell
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		width:  width,
		height: height,
		cells:  make([]cell, width*height),
	}
	c.Clear()
	return c
}

// Width returns the canvas width in characters.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in characters.
func (c *Canvas) Height() int {
	return c.height
}

// Clear fills the canvas with spaces.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
}

// Set places a rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (c *Canvas) Set(x, y int, r rune, ink Ink) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = cell{r: r, ink: ink}
}

// Get returns the rune at the given position, or space out of bounds.
func (c *Canvas) Get(x, y int) rune {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return ' '
	}
	return c.cells[y*c.width+x].r
}

// DrawText writes a string horizontally starting at (x, y).
func (c *Canvas) DrawText(x, y int, text string, ink Ink) {
	i := 0
	for _, r := range text {
		c.Set(x+i, y, r, ink)
		i++
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (c *Canvas) DrawBox(x, y, w, h int) {
	right, bottom := x+w-1, y+h-1
	c.Set(x, y, '┌', InkBorder)
	c.Set(right, y, '┐', InkBorder)
	c.Set(x, bottom, '└', InkBorder)
	c.Set(right, bottom, '┘', InkBorder)
	for i := x + 1; i < right; i++ {
		c.Set(i, y, '─', InkBorder)
		c.Set(i, bottom, '─', InkBorder)
	}
	for j := y + 1; j < bottom; j++ {
		c.Set(x, j, '│', InkBorder)
		c.Set(right, j, '│', InkBorder)
	}
}

// String returns the canvas without styling, rows joined with newlines.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height)
	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < c.width; x++ {
			sb.WriteRune(c.cells[y*c.width+x].r)
		}
	}
	return sb.String()
}

// Render converts the canvas to a styled string. Adjacent cells with the
// same ink share one style run to keep escape sequences short.
func (c *Canvas) Render(t Theme) string {
	var sb strings.Builder
	sb.Grow(c.width*c.height*2 + c.height)

	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		row := c.cells[y*c.width : (y+1)*c.width]
		for x := 0; x < len(row); {
			ink := row[x].ink
			var run strings.Builder
			for x < len(row) && row[x].ink == ink {
				run.WriteRune(row[x].r)
				x++
			}
			sb.WriteString(t.Style(ink).Render(run.String()))
		}
	}
	return sb.String()
}
