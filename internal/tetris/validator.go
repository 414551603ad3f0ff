package tetris

// Placement classifies how a piece sits on a board.
type Placement int

const (
	// Fits means every cell is in bounds and unoccupied.
	Fits Placement = iota
	// OutOfBounds means some cell lies left, right or below the grid and
	// no cell overlaps a block.
	OutOfBounds
	// Collides means at least one cell overlaps an occupied cell.
	Collides
)

func (p Placement) String() string {
	switch p {
	case Fits:
		return "fits"
	case OutOfBounds:
		return "out-of-bounds"
	case Collides:
		return "collides"
	default:
		return "unknown"
	}
}

// Check classifies the placement of p on b. Rows above the visible top are
// legal so pieces can spawn partly above the board. An invalid piece is
// reported as colliding.
func Check(b Board, p Piece) Placement {
	if !p.Valid() {
		return Collides
	}
	w, h := b.Width(), b.Height()
	result := Fits
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= w || c.Y >= h {
			result = OutOfBounds
			continue
		}
		if b.Occupied(c.X, c.Y) {
			return Collides
		}
	}
	return result
}

// CanPlace reports whether p fits on b.
func CanPlace(b Board, p Piece) bool {
	return Check(b, p) == Fits
}

// Translate moves p by (dx, dy) if the target fits. On failure the original
// piece is returned with ok == false.
func Translate(b Board, p Piece, dx, dy int) (moved Piece, ok bool) {
	next := p.Moved(dx, dy)
	if !CanPlace(b, next) {
		return p, false
	}
	return next, true
}

// HardDrop moves p straight down as far as it fits and returns the landing
// piece with the number of rows travelled.
func HardDrop(b Board, p Piece) (Piece, int) {
	if !CanPlace(b, p) {
		return p, 0
	}
	dist := 0
	for CanPlace(b, p.Moved(0, 1)) {
		p = p.Moved(0, 1)
		dist++
	}
	return p, dist
}

// Ghost returns where p would land after a hard drop.
func Ghost(b Board, p Piece) Piece {
	landed, _ := HardDrop(b, p)
	return landed
}

// Grounded reports whether p cannot move down any further.
func Grounded(b Board, p Piece) bool {
	return !CanPlace(b, p.Moved(0, 1))
}
