package game

import (
	"testing"

	"github.com/vovakirdan/tetris-core/internal/tetris"
)

func TestBagDealsEveryPiecePerSeven(t *testing.T) {
	b := NewBag(3, 5)
	for round := 0; round < 10; round++ {
		seen := map[tetris.PieceID]bool{}
		for i := 0; i < len(tetris.AllPieces); i++ {
			seen[b.Next()] = true
		}
		if len(seen) != len(tetris.AllPieces) {
			t.Fatalf("round %d dealt %d distinct pieces", round, len(seen))
		}
	}
}

func TestBagPreview(t *testing.T) {
	b := NewBag(9, 3)
	preview := b.Preview()
	if len(preview) != 3 {
		t.Fatalf("expected preview of 3, got %d", len(preview))
	}
	for i, want := range preview {
		if got := b.Next(); got != want {
			t.Errorf("draw %d = %s, preview said %s", i, got, want)
		}
	}
	if len(NewBag(1, 0).Preview()) != 0 {
		t.Error("zero preview should be empty")
	}
}

func TestBagDeterministic(t *testing.T) {
	a, b := NewBag(42, 5), NewBag(42, 5)
	for i := 0; i < 50; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("draw %d differs: %s vs %s", i, x, y)
		}
	}
}
