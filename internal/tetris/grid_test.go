package tetris

import (
	"testing"
)

func TestParseGrid(t *testing.T) {
	g, err := ParseGrid(5, 4, []string{
		"#....",
		"##.##",
	})
	if err != nil {
		t.Fatalf("ParseGrid() failed: %v", err)
	}

	want := ".....\n.....\n#....\n##.##"
	if got := g.String(); got != want {
		t.Errorf("ParseGrid layout:\n%s\nwant\n%s", got, want)
	}
	if g.Occupied(2, 3) {
		t.Error("gap cell should be empty")
	}
	if !g.Occupied(0, 2) {
		t.Error("(0,2) should be occupied")
	}
}

func TestParseGridRejectsOversizedRows(t *testing.T) {
	if _, err := ParseGrid(3, 2, []string{"....", "..."}); err == nil {
		t.Error("expected error for row wider than grid")
	}
	if _, err := ParseGrid(3, 1, []string{"...", "..."}); err == nil {
		t.Error("expected error for too many rows")
	}
}

func TestGridOutOfBoundsReads(t *testing.T) {
	g := NewGrid(4, 4)
	g.Set(-1, 0, Garbage)
	g.Set(0, 9, Garbage)

	if !g.IsEmpty() {
		t.Error("out-of-bounds writes must be ignored")
	}
	if g.Occupied(0, -3) {
		t.Error("rows above the top read as empty")
	}
}

func TestClearFullRows(t *testing.T) {
	g, err := ParseGrid(4, 5, []string{
		"#...",
		"####",
		".#..",
		"####",
	})
	if err != nil {
		t.Fatalf("ParseGrid() failed: %v", err)
	}

	cleared := g.ClearFullRows()

	if len(cleared) != 2 || cleared[0] != 2 || cleared[1] != 4 {
		t.Fatalf("ClearFullRows() = %v, want [2 4]", cleared)
	}
	want := "....\n....\n....\n#...\n.#.."
	if got := g.String(); got != want {
		t.Errorf("after clear:\n%s\nwant\n%s", got, want)
	}
	if again := g.ClearFullRows(); again != nil {
		t.Errorf("second clear = %v, want nil", again)
	}
}

func TestLockKeepsPieceColour(t *testing.T) {
	g := NewGrid(10, 20)
	p := NewPiece(PieceS, 0, -1)

	landed := g.Lock(p)

	// Orientation 0 S has its top row at Row, which is above the board.
	if landed != 2 {
		t.Errorf("Lock() landed %d cells, want 2", landed)
	}
	if got := g.At(0, 0); got != PieceS.Color() {
		t.Errorf("cell colour = %d, want %d", got, PieceS.Color())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := NewGrid(3, 3)
	c := g.Clone()
	c.Set(1, 1, Garbage)

	if g.Occupied(1, 1) {
		t.Error("mutating the clone changed the original")
	}
}

func TestShapesHaveFourDistinctCells(t *testing.T) {
	for _, id := range AllPieces {
		for o := 0; o < 4; o++ {
			cells, ok := Shape(id, o)
			if !ok {
				t.Fatalf("Shape(%s, %d) missing", id, o)
			}
			seen := map[Point]bool{}
			for _, c := range cells {
				seen[c] = true
			}
			if len(seen) != 4 {
				t.Errorf("Shape(%s, %d) has %d distinct cells", id, o, len(seen))
			}
		}
	}
	if _, ok := Shape(PieceID(7), 0); ok {
		t.Error("Shape should reject unknown piece")
	}
}

func TestParsePieceID(t *testing.T) {
	for _, id := range AllPieces {
		got, err := ParsePieceID(id.String())
		if err != nil || got != id {
			t.Errorf("ParsePieceID(%q) = %v, %v", id.String(), got, err)
		}
	}
	if got, err := ParsePieceID(" t "); err != nil || got != PieceT {
		t.Errorf("ParsePieceID lower-case = %v, %v", got, err)
	}
	if _, err := ParsePieceID("X"); err == nil {
		t.Error("expected error for unknown piece")
	}
}

func TestSpawnPieceFitsEmptyBoard(t *testing.T) {
	g := NewGrid(10, 20)
	for _, id := range AllPieces {
		p := SpawnPiece(id, g.Width())
		if !CanPlace(g, p) {
			t.Errorf("spawned %s does not fit", p)
		}
		top := 99
		for _, c := range p.Cells() {
			if c.Y < top {
				top = c.Y
			}
		}
		if top != 0 {
			t.Errorf("spawned %s top row = %d, want 0", p, top)
		}
	}
}
