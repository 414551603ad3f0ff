package game

import (
	"github.com/vovakirdan/tetris-core/internal/tetris"
)

// Placement weights: aggregate height, cleared lines, holes, bumpiness.
const (
	weightHeight    = -0.51
	weightLines     = 0.76
	weightHoles     = -0.36
	weightBumpiness = -0.18

	// Placements that lock above the top end the game.
	lockOutScore = -1e6
)

// Move is a planned placement: clockwise rotations, then a horizontal
// shift, then a hard drop.
type Move struct {
	Rotations int
	Shift     int
	Score     float64
}

// Plan picks the best placement for p on g. It explores the same rotate and
// shift sequence that Play performs, so wall kicks are taken into account.
// ok is false when the piece cannot be placed at all.
func Plan(g *tetris.Grid, p tetris.Piece) (best Move, ok bool) {
	cur := p
	for rot := 0; rot < 4; rot++ {
		if rot > 0 {
			res := tetris.Rotate(g, cur, tetris.Clockwise)
			if !res.Success {
				break
			}
			cur = *res.Piece
		}
		for _, step := range [...]int{-1, 1} {
			shifted, shift := cur, 0
			for {
				// Shift 0 is evaluated on the left pass only.
				if step < 0 || shift != 0 {
					if score, placed := evaluate(g, shifted); placed && (!ok || score > best.Score) {
						best = Move{Rotations: rot, Shift: shift, Score: score}
						ok = true
					}
				}
				next, moved := tetris.Translate(g, shifted, step, 0)
				if !moved {
					break
				}
				shifted, shift = next, shift+step
			}
		}
	}
	return best, ok
}

func evaluate(g *tetris.Grid, p tetris.Piece) (float64, bool) {
	if !tetris.CanPlace(g, p) {
		return 0, false
	}
	landed, _ := tetris.HardDrop(g, p)
	sim := g.Clone()
	if sim.Lock(landed) < len(landed.Cells()) {
		return lockOutScore, true
	}
	lines := len(sim.ClearFullRows())

	heights := make([]int, sim.Width())
	holes := 0
	for col := 0; col < sim.Width(); col++ {
		seen := false
		for row := 0; row < sim.Height(); row++ {
			switch {
			case sim.Occupied(col, row) && !seen:
				seen = true
				heights[col] = sim.Height() - row
			case !sim.Occupied(col, row) && seen:
				holes++
			}
		}
	}
	aggregate, bumpiness := 0, 0
	for i, h := range heights {
		aggregate += h
		if i > 0 {
			bumpiness += abs(h - heights[i-1])
		}
	}
	return weightHeight*float64(aggregate) +
		weightLines*float64(lines) +
		weightHoles*float64(holes) +
		weightBumpiness*float64(bumpiness), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Play performs a planned move on the active piece and hard-drops it.
// Rotations go through Rotate, so they reach the trace recorder.
func (s *Session) Play(m Move) ([]Event, error) {
	if s.over {
		return nil, ErrGameOver
	}
	for i := 0; i < m.Rotations; i++ {
		if _, err := s.Rotate(tetris.Clockwise); err != nil {
			return nil, err
		}
	}
	for i := 0; i < abs(m.Shift); i++ {
		if m.Shift < 0 {
			s.MoveLeft()
		} else {
			s.MoveRight()
		}
	}
	return s.HardDrop()
}
