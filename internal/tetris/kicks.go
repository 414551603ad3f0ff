package tetris

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPiece is returned for a piece identifier outside the seven
	// canonical pieces.
	ErrUnknownPiece = errors.New("tetris: unknown piece")
	// ErrInvalidOrientation is returned for an orientation outside 0-3.
	ErrInvalidOrientation = errors.New("tetris: invalid orientation")
	// ErrUnknownDirection is returned for a rotation direction name that
	// does not parse.
	ErrUnknownDirection = errors.New("tetris: unknown direction")
)

// kickTable holds the ordered offsets for every from/to orientation pair.
// Unused pairs (from == to) stay nil.
type kickTable [4][4][]Point

// Offsets are in board coordinates: +x right, +y down. The published SRS
// tables use +y up, so every dy below is negated relative to them.
var (
	jlstzKicks = buildTable(map[[2]int][]Point{
		{0, 1}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		{1, 0}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
		{1, 2}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
		{2, 1}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		{2, 3}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		{3, 2}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		{3, 0}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		{0, 3}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	}, halfTurnKicks)

	iKicks = buildTable(map[[2]int][]Point{
		{0, 1}: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
		{1, 0}: {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
		{1, 2}: {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
		{2, 1}: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
		{2, 3}: {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
		{3, 2}: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
		{3, 0}: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
		{0, 3}: {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
	}, halfTurnKicks)

	oKicks = buildUniform([]Point{{0, 0}})
)

// halfTurnKicks covers 180 degree transitions, which classic SRS leaves
// undefined. Upward kicks are tried before sideways ones.
var halfTurnKicks = map[[2]int][]Point{
	{0, 2}: {{0, 0}, {0, -1}, {1, -1}, {-1, -1}, {1, 0}, {-1, 0}},
	{2, 0}: {{0, 0}, {0, 1}, {-1, 1}, {1, 1}, {-1, 0}, {1, 0}},
	{1, 3}: {{0, 0}, {1, 0}, {1, -2}, {1, -1}, {0, -2}, {0, -1}},
	{3, 1}: {{0, 0}, {-1, 0}, {-1, -2}, {-1, -1}, {0, -2}, {0, -1}},
}

func buildTable(quarter, half map[[2]int][]Point) kickTable {
	var t kickTable
	for _, src := range []map[[2]int][]Point{quarter, half} {
		for k, offsets := range src {
			t[k[0]][k[1]] = offsets
		}
	}
	return t
}

func buildUniform(offsets []Point) kickTable {
	var t kickTable
	for from := 0; from < 4; from++ {
		for to := 0; to < 4; to++ {
			if from != to {
				t[from][to] = offsets
			}
		}
	}
	return t
}

func tableFor(id PieceID) (*kickTable, error) {
	switch id {
	case PieceI:
		return &iKicks, nil
	case PieceO:
		return &oKicks, nil
	case PieceT, PieceS, PieceZ, PieceJ, PieceL:
		return &jlstzKicks, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownPiece, uint8(id))
	}
}

// Kicks returns the ordered wall-kick offsets for rotating piece id from one
// orientation to another. The returned slice is shared and must not be
// modified.
func Kicks(id PieceID, from, to int) ([]Point, error) {
	t, err := tableFor(id)
	if err != nil {
		return nil, err
	}
	if from < 0 || from > 3 || to < 0 || to > 3 || from == to {
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidOrientation, from, to)
	}
	return t[from][to], nil
}

// MustKicks is Kicks for callers that hold known-good arguments.
func MustKicks(id PieceID, from, to int) []Point {
	offsets, err := Kicks(id, from, to)
	if err != nil {
		panic(err)
	}
	return offsets
}
