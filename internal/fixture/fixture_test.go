package fixture

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/vovakirdan/tetris-core/internal/tetris"
)

// getTestdataPath returns path to testdata.
func getTestdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata")
}

func TestLoaderLoadAll(t *testing.T) {
	fixtures, err := NewLoader(getTestdataPath()).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(fixtures) != 7 {
		t.Errorf("expected 7 fixtures, got %d", len(fixtures))
	}
	for i := 1; i < len(fixtures); i++ {
		if fixtures[i-1].ID >= fixtures[i].ID {
			t.Errorf("fixtures not sorted: %s >= %s", fixtures[i-1].ID, fixtures[i].ID)
		}
	}
}

func TestFixturesMatchExpectations(t *testing.T) {
	fixtures, err := NewLoader(getTestdataPath()).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	for _, f := range fixtures {
		t.Run(f.ID, func(t *testing.T) {
			if f.Expect == nil {
				t.Fatal("fixture has no expectation")
			}
			before := f.Grid.String()
			res := f.Rotate()
			if err := f.Verify(res); err != nil {
				t.Error(err)
			}
			if f.Grid.String() != before {
				t.Error("rotation modified the fixture grid")
			}
		})
	}
}

func TestLoadByID(t *testing.T) {
	l := NewLoader(getTestdataPath())

	f, err := l.LoadByID("i-left-wall")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if f.Name != "I piece against the left wall" {
		t.Errorf("unexpected name %q", f.Name)
	}
	if f.Grid.Width() != 10 || f.Grid.Height() != 20 {
		t.Errorf("expected 10x20, got %dx%d", f.Grid.Width(), f.Grid.Height())
	}
	if !f.Grid.Occupied(0, 19) || f.Grid.Occupied(1, 19) {
		t.Error("bottom row not parsed")
	}
	if f.FilePath == "" {
		t.Error("FilePath not set")
	}

	if _, err := l.LoadByID("nope"); err == nil {
		t.Error("expected error for unknown fixture")
	}
}

func TestParseDefaults(t *testing.T) {
	f, err := Parse([]byte("id: bare\npiece: {id: s, col: 3, row: 2}\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if f.Grid.Width() != tetris.DefaultWidth || f.Grid.Height() != tetris.DefaultHeight {
		t.Errorf("expected default size, got %dx%d", f.Grid.Width(), f.Grid.Height())
	}
	if f.Direction != tetris.Clockwise {
		t.Errorf("expected clockwise default, got %s", f.Direction)
	}
	if f.Piece != (tetris.Piece{ID: tetris.PieceS, Col: 3, Row: 2}) {
		t.Errorf("unexpected piece %s", f.Piece)
	}
	if f.Expect != nil {
		t.Error("expected no expectation")
	}
	if err := f.Verify(f.Rotate()); err != nil {
		t.Errorf("fixture without expectation should pass: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "id: [x"},
		{"missing id", "piece: {id: T}"},
		{"unknown piece", "id: x\npiece: {id: Q}"},
		{"unknown direction", "id: x\npiece: {id: T}\ndirection: sideways"},
		{"row too wide", "id: x\nsize: {w: 4, h: 4}\nrows: [\"#####\"]\npiece: {id: T}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestVerifyReportsMismatch(t *testing.T) {
	f, err := Parse([]byte(`
id: wrong
piece: {id: T, col: 4, row: 0}
expect:
  success: true
  kicks: 2
  piece: {orientation: 2, col: 4, row: 0}
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	err = f.Verify(f.Rotate())
	if !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}
}
