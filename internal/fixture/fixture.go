// Package fixture loads board situations from YAML files so rotations can be
// reproduced in tests and from the command line.
package fixture

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tetris-core/internal/tetris"
)

// ErrMismatch is returned by Verify when a result differs from the
// fixture's expectation.
var ErrMismatch = errors.New("fixture: result does not match expectation")

// Expectation is the rotation outcome a fixture asserts.
type Expectation struct {
	Success bool
	Kicks   int
	Reason  tetris.FailureReason
	Piece   *tetris.Piece
}

// Fixture is a parsed board, piece and rotation.
type Fixture struct {
	ID        string
	Name      string
	Grid      *tetris.Grid
	Piece     tetris.Piece
	Direction tetris.Direction
	Expect    *Expectation
	Metadata  map[string]string
	FilePath  string
}

// Parse decodes and interprets a YAML fixture.
func Parse(data []byte) (Fixture, error) {
	yf, err := ParseYAML(data)
	if err != nil {
		return Fixture{}, err
	}
	return fromYAML(yf)
}

func fromYAML(yf YAMLFixture) (Fixture, error) {
	if yf.ID == "" {
		return Fixture{}, errors.New("fixture: missing id")
	}
	w, h := yf.Size.W, yf.Size.H
	if w <= 0 {
		w = tetris.DefaultWidth
	}
	if h <= 0 {
		h = tetris.DefaultHeight
	}
	grid, err := tetris.ParseGrid(w, h, yf.Rows)
	if err != nil {
		return Fixture{}, fmt.Errorf("fixture %s: %w", yf.ID, err)
	}
	id, err := tetris.ParsePieceID(yf.Piece.ID)
	if err != nil {
		return Fixture{}, fmt.Errorf("fixture %s: %w", yf.ID, err)
	}
	dir := tetris.Clockwise
	if yf.Direction != "" {
		if dir, err = tetris.ParseDirection(yf.Direction); err != nil {
			return Fixture{}, fmt.Errorf("fixture %s: %w", yf.ID, err)
		}
	}

	f := Fixture{
		ID:   yf.ID,
		Name: yf.Name,
		Grid: grid,
		Piece: tetris.Piece{
			ID:          id,
			Orientation: yf.Piece.Orientation,
			Col:         yf.Piece.Col,
			Row:         yf.Piece.Row,
		},
		Direction: dir,
		Metadata:  yf.Metadata,
	}
	if e := yf.Expect; e != nil {
		f.Expect = &Expectation{
			Success: e.Success,
			Kicks:   e.Kicks,
			Reason:  tetris.FailureReason(strings.TrimSpace(e.Reason)),
		}
		if e.Piece != nil {
			f.Expect.Piece = &tetris.Piece{
				ID:          id,
				Orientation: e.Piece.Orientation,
				Col:         e.Piece.Col,
				Row:         e.Piece.Row,
			}
		}
	}
	return f, nil
}

// Rotate runs the fixture's rotation. The fixture grid is not modified.
func (f Fixture) Rotate() tetris.RotationResult {
	return tetris.Rotate(f.Grid, f.Piece, f.Direction)
}

// Verify compares a result with the expectation. Fixtures without an
// expectation always pass.
func (f Fixture) Verify(res tetris.RotationResult) error {
	e := f.Expect
	if e == nil {
		return nil
	}
	var diffs []string
	if res.Success != e.Success {
		diffs = append(diffs, fmt.Sprintf("success %t, want %t", res.Success, e.Success))
	}
	if e.Kicks > 0 && len(res.KicksAttempted) != e.Kicks {
		diffs = append(diffs, fmt.Sprintf("%d attempts, want %d", len(res.KicksAttempted), e.Kicks))
	}
	if e.Reason != tetris.ReasonNone && res.FailureReason != e.Reason {
		diffs = append(diffs, fmt.Sprintf("reason %q, want %q", res.FailureReason, e.Reason))
	}
	if e.Piece != nil && (res.Piece == nil || *res.Piece != *e.Piece) {
		got := "none"
		if res.Piece != nil {
			got = res.Piece.String()
		}
		diffs = append(diffs, fmt.Sprintf("piece %s, want %s", got, e.Piece))
	}
	if len(diffs) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrMismatch, f.ID, strings.Join(diffs, "; "))
	}
	return nil
}
