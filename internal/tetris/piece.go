// Package tetris contains the board model, the move validator and the
// rotation engine. It has no dependency on rendering or input handling:
// callers own the grid and hand it in per call.
package tetris

import (
	"fmt"
	"strings"
)

// Point is an integer column/row pair. Rows grow downwards.
type Point struct {
	X, Y int
}

// Add returns the component-wise sum of two points.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// PieceID identifies one of the seven canonical tetrominoes.
type PieceID uint8

const (
	PieceI PieceID = iota
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL

	pieceCount
)

// AllPieces lists the canonical pieces in bag order.
var AllPieces = [...]PieceID{PieceI, PieceO, PieceT, PieceS, PieceZ, PieceJ, PieceL}

var pieceNames = [pieceCount]string{"I", "O", "T", "S", "Z", "J", "L"}

// Valid reports whether id is one of the canonical pieces.
func (id PieceID) Valid() bool {
	return id < pieceCount
}

// String returns the single-letter name of the piece.
func (id PieceID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("PieceID(%d)", uint8(id))
	}
	return pieceNames[id]
}

// Color returns the grid cell value used when the piece locks.
func (id PieceID) Color() Cell {
	return Cell(id) + 1
}

// ParsePieceID resolves a single-letter piece name (case-insensitive).
func ParsePieceID(s string) (PieceID, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range pieceNames {
		if n == name {
			return PieceID(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPiece, s)
}

// shapes holds the SRS cell layout per piece and orientation, relative to
// the top-left corner of the piece bounding box.
var shapes = [pieceCount][4][4]Point{
	PieceI: {
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	},
	PieceO: {
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	},
	PieceT: {
		{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {1, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	PieceS: {
		{{1, 0}, {2, 0}, {0, 1}, {1, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	PieceZ: {
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		{{2, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {0, 2}},
	},
	PieceJ: {
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {0, 2}, {1, 2}},
	},
	PieceL: {
		{{2, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {0, 2}},
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	},
}

// Shape returns the relative cells of a piece in the given orientation.
// ok is false for an unknown piece or an orientation outside 0-3.
func Shape(id PieceID, orientation int) (cells [4]Point, ok bool) {
	if !id.Valid() || orientation < 0 || orientation > 3 {
		return cells, false
	}
	return shapes[id][orientation], true
}

// Piece is an immutable placement of a tetromino: its identity, its
// orientation index (0 = spawn, 1 = clockwise, 2 = 180, 3 = counter-clockwise)
// and the board position of its bounding box.
type Piece struct {
	ID          PieceID
	Orientation int
	Col         int
	Row         int
}

// NewPiece returns a piece in spawn orientation at the given anchor.
func NewPiece(id PieceID, col, row int) Piece {
	return Piece{ID: id, Col: col, Row: row}
}

// Anchor returns the board position of the bounding box corner.
func (p Piece) Anchor() Point {
	return Point{X: p.Col, Y: p.Row}
}

// Valid reports whether the piece has a known identity and orientation.
func (p Piece) Valid() bool {
	_, ok := Shape(p.ID, p.Orientation)
	return ok
}

// Cells returns the absolute board cells occupied by the piece.
// An invalid piece occupies nothing.
func (p Piece) Cells() [4]Point {
	rel, ok := Shape(p.ID, p.Orientation)
	if !ok {
		return [4]Point{}
	}
	for i := range rel {
		rel[i].X += p.Col
		rel[i].Y += p.Row
	}
	return rel
}

// Moved returns a copy of the piece translated by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.Col += dx
	p.Row += dy
	return p
}

// Oriented returns a copy of the piece in the given orientation.
func (p Piece) Oriented(orientation int) Piece {
	p.Orientation = orientation
	return p
}

func (p Piece) String() string {
	return fmt.Sprintf("%s/%d@%s", p.ID, p.Orientation, p.Anchor())
}

// SpawnPiece places a piece in spawn orientation centred horizontally on a
// board of the given width, with its top filled row on row 0.
func SpawnPiece(id PieceID, width int) Piece {
	col := (width - 3) / 2
	row := 0
	switch id {
	case PieceI:
		col = (width - 4) / 2
		row = -1
	case PieceO:
		col = (width - 2) / 2
	}
	return NewPiece(id, col, row)
}
