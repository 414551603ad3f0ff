package tetris

import (
	"fmt"
	"strings"
)

// Direction is a rotation request.
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
	Rotate180
)

// delta is the orientation step of the direction; ok is false for an
// unknown direction.
func (d Direction) delta() (int, bool) {
	switch d {
	case Clockwise:
		return 1, true
	case CounterClockwise:
		return 3, true
	case Rotate180:
		return 2, true
	default:
		return 0, false
	}
}

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "cw"
	case CounterClockwise:
		return "ccw"
	case Rotate180:
		return "180"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts cw/clockwise, ccw/counterclockwise and 180.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cw", "clockwise", "right":
		return Clockwise, nil
	case "ccw", "counterclockwise", "counter-clockwise", "left":
		return CounterClockwise, nil
	case "180", "half":
		return Rotate180, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// FailureReason says why a rotation was rejected.
type FailureReason string

const (
	ReasonNone         FailureReason = ""
	ReasonCollision    FailureReason = "collision"
	ReasonOutOfBounds  FailureReason = "out-of-bounds"
	ReasonInvalidState FailureReason = "invalid-state"
)

// WallKickAttempt records one offset tried by the kick search.
type WallKickAttempt struct {
	Offset   Point
	Tested   bool
	Position Point // anchor + offset
}

// RotationResult is the outcome of Rotate. On success Piece is set and
// FailureReason is empty; on failure Piece is nil.
type RotationResult struct {
	Success        bool
	Piece          *Piece
	KicksAttempted []WallKickAttempt
	FailureReason  FailureReason
}

// Kick returns the winning attempt of a successful rotation.
func (r RotationResult) Kick() (WallKickAttempt, bool) {
	if !r.Success || len(r.KicksAttempted) == 0 {
		return WallKickAttempt{}, false
	}
	return r.KicksAttempted[len(r.KicksAttempted)-1], true
}

func invalidRotation() RotationResult {
	return RotationResult{FailureReason: ReasonInvalidState}
}

// TargetOrientation returns the orientation reached by rotating from
// current in direction d, always in 0-3.
func TargetOrientation(current int, d Direction) (int, error) {
	if current < 0 || current > 3 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidOrientation, current)
	}
	delta, ok := d.delta()
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownDirection, int(d))
	}
	return (current + delta) % 4, nil
}

// Rotate resolves a rotation of p on b. Kick offsets are tried in table
// order and the first placement that fits wins. Neither p nor b is
// modified.
func Rotate(b Board, p Piece, dir Direction) RotationResult {
	if !p.ID.Valid() {
		return invalidRotation()
	}
	to, err := TargetOrientation(p.Orientation, dir)
	if err != nil {
		return invalidRotation()
	}
	offsets, err := Kicks(p.ID, p.Orientation, to)
	if err != nil {
		return invalidRotation()
	}

	rotated := p.Oriented(to)
	anchor := p.Anchor()
	attempts := make([]WallKickAttempt, 0, len(offsets))
	onlyBounds := true

	for _, off := range offsets {
		attempts = append(attempts, WallKickAttempt{
			Offset:   off,
			Tested:   true,
			Position: anchor.Add(off),
		})

		candidate := rotated.Moved(off.X, off.Y)
		switch Check(b, candidate) {
		case Fits:
			return RotationResult{
				Success:        true,
				Piece:          &candidate,
				KicksAttempted: attempts,
			}
		case Collides:
			onlyBounds = false
		}
	}

	reason := ReasonCollision
	if onlyBounds {
		reason = ReasonOutOfBounds
	}
	return RotationResult{
		KicksAttempted: attempts,
		FailureReason:  reason,
	}
}
