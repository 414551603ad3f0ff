package game

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tetris-core/internal/config"
	"github.com/vovakirdan/tetris-core/internal/tetris"
)

type recordedRotation struct {
	session string
	piece   tetris.Piece
	dir     tetris.Direction
	res     tetris.RotationResult
}

type fakeRecorder struct {
	calls []recordedRotation
	err   error
}

func (f *fakeRecorder) RecordRotation(session string, p tetris.Piece, dir tetris.Direction, res tetris.RotationResult) error {
	f.calls = append(f.calls, recordedRotation{session, p, dir, res})
	return f.err
}

func newTestSession(t *testing.T, rec TraceRecorder) *Session {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 1
	s, err := NewSession(Options{Config: cfg, Recorder: rec, Logger: log.New(io.Discard)})
	require.NoError(t, err)
	return s
}

func fillRow(g *tetris.Grid, row int, skip ...int) {
	holes := map[int]bool{}
	for _, x := range skip {
		holes[x] = true
	}
	for x := 0; x < g.Width(); x++ {
		if !holes[x] {
			g.Set(x, row, tetris.Garbage)
		}
	}
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, nil)

	assert.Len(t, s.ID(), 36)
	assert.False(t, s.Over())
	assert.Equal(t, Stats{Combo: -1}, s.Stats())
	assert.True(t, tetris.CanPlace(s.Board(), s.Active()))

	st := s.State()
	assert.Len(t, st.Preview, 5)
	assert.Equal(t, 800_000_000, int(st.Gravity))
	assert.Equal(t, st.Active.Col, st.Ghost.Col)
	assert.Greater(t, st.Ghost.Row, st.Active.Row)
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Board.Width = 2
	_, err := NewSession(Options{Config: cfg})
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestSessionSameSeedSamePieces(t *testing.T) {
	a := newTestSession(t, nil)
	b := newTestSession(t, nil)
	for i := 0; i < 20; i++ {
		require.Equal(t, a.Active().ID, b.Active().ID, "piece %d", i)
		_, err := a.HardDrop()
		require.NoError(t, err)
		_, err = b.HardDrop()
		require.NoError(t, err)
		if a.Over() {
			break
		}
	}
}

func TestSessionTranslate(t *testing.T) {
	s := newTestSession(t, nil)
	s.active = tetris.NewPiece(tetris.PieceO, 4, 5)

	moves := 0
	for s.MoveLeft() {
		moves++
	}
	assert.Equal(t, 4, moves)
	assert.Equal(t, 0, s.Active().Col)

	assert.True(t, s.MoveRight())
	assert.True(t, s.SoftDrop())
	assert.Equal(t, 6, s.Active().Row)
	assert.Equal(t, 1, s.Stats().Score)
}

func TestSessionHardDropClearsLine(t *testing.T) {
	s := newTestSession(t, nil)
	s.active = tetris.SpawnPiece(tetris.PieceI, 10)
	fillRow(s.grid, 19, 3, 4, 5, 6)

	events, err := s.HardDrop()
	require.NoError(t, err)

	assert.Equal(t, []EventKind{EventHardDrop, EventLineClear, EventScore}, kinds(events))
	assert.Equal(t, 38, events[0].Score)
	assert.Equal(t, 1, events[1].Lines)
	assert.Equal(t, 100, events[1].Score)
	assert.Equal(t, Stats{Score: 138, Lines: 1, Combo: 0, Locks: 1}, s.Stats())
	assert.True(t, s.grid.IsEmpty())
}

func TestSessionComboAndLevelUp(t *testing.T) {
	s := newTestSession(t, nil)

	s.active = tetris.SpawnPiece(tetris.PieceI, 10)
	fillRow(s.grid, 19, 3, 4, 5, 6)
	_, err := s.HardDrop()
	require.NoError(t, err)

	s.lines = 9
	s.active = tetris.SpawnPiece(tetris.PieceI, 10)
	fillRow(s.grid, 19, 3, 4, 5, 6)
	events, err := s.HardDrop()
	require.NoError(t, err)

	assert.Equal(t, []EventKind{EventHardDrop, EventLineClear, EventCombo, EventScore, EventLevelUp}, kinds(events))
	assert.Equal(t, 1, events[2].Combo)
	assert.Equal(t, 50, events[2].Score)
	assert.Equal(t, 150, events[3].Score)
	assert.Equal(t, 1, events[4].Level)

	st := s.Stats()
	assert.Equal(t, 1, st.Level)
	assert.Equal(t, 10, st.Lines)
	assert.Equal(t, 1, st.Combo)

	// A lock without a clear resets the combo.
	s.active = tetris.NewPiece(tetris.PieceO, 0, 0)
	events, err = s.HardDrop()
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventHardDrop}, kinds(events))
	assert.Equal(t, -1, s.Stats().Combo)
}

func TestSessionTetris(t *testing.T) {
	s := newTestSession(t, nil)
	for row := 16; row < 20; row++ {
		fillRow(s.grid, row, 0)
	}
	s.active = tetris.Piece{ID: tetris.PieceI, Orientation: 1, Col: -2, Row: 0}

	events, err := s.HardDrop()
	require.NoError(t, err)

	assert.Equal(t, []EventKind{EventHardDrop, EventTetris, EventScore}, kinds(events))
	assert.Equal(t, 4, events[1].Lines)
	assert.Equal(t, 800, events[1].Score)
	assert.Equal(t, 32+800, s.Stats().Score)
}

func TestSessionGameOver(t *testing.T) {
	s := newTestSession(t, nil)
	for row := 0; row < 2; row++ {
		for x := 3; x <= 6; x++ {
			s.grid.Set(x, row, tetris.Garbage)
		}
	}
	s.active = tetris.NewPiece(tetris.PieceO, 0, 18)

	events, err := s.HardDrop()
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventHardDrop, EventGameOver}, kinds(events))
	assert.True(t, s.Over())
	assert.True(t, s.Stats().Over)

	_, err = s.HardDrop()
	assert.True(t, errors.Is(err, ErrGameOver))
	_, err = s.Tick()
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = s.Rotate(tetris.Clockwise)
	assert.ErrorIs(t, err, ErrGameOver)
	assert.False(t, s.MoveLeft())
}

func TestSessionRotateRecordsTraces(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	s := newTestSession(t, rec)
	s.active = tetris.NewPiece(tetris.PieceT, 4, 5)

	res, err := s.Rotate(tetris.Clockwise)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, 1, s.Active().Orientation)

	// Box the piece in so the next rotation collides.
	own := map[tetris.Point]bool{}
	for _, c := range s.Active().Cells() {
		own[c] = true
	}
	for y := 0; y < s.grid.Height(); y++ {
		for x := 0; x < s.grid.Width(); x++ {
			if !own[tetris.Point{X: x, Y: y}] {
				s.grid.Set(x, y, tetris.Garbage)
			}
		}
	}
	before := s.Active()
	res, err = s.Rotate(tetris.Clockwise)
	require.NoError(t, err, "recorder errors are logged, not returned")
	assert.False(t, res.Success)
	assert.Equal(t, tetris.ReasonCollision, res.FailureReason)
	assert.Equal(t, before, s.Active())

	require.Len(t, rec.calls, 2)
	assert.Equal(t, s.ID(), rec.calls[0].session)
	assert.Equal(t, tetris.NewPiece(tetris.PieceT, 4, 5), rec.calls[0].piece)
	assert.Equal(t, before, rec.calls[1].piece)
	assert.False(t, rec.calls[1].res.Success)
}

func TestSessionTick(t *testing.T) {
	s := newTestSession(t, nil)
	start := s.Active()

	events, err := s.Tick()
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, start.Row+1, s.Active().Row)

	s.active = tetris.NewPiece(tetris.PieceO, 0, 18)
	_, err = s.Tick()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Stats().Locks)
	assert.True(t, s.Board().Occupied(0, 19))
}

func TestGridString(t *testing.T) {
	s := newTestSession(t, nil)
	s.active = tetris.NewPiece(tetris.PieceO, 0, 0)
	out := s.GridString()
	assert.Equal(t, "@@........", out[:10])
	assert.Equal(t, "@@........", out[11:21])
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestSession(t, nil)
	snap := s.Snapshot()
	snap.Set(0, 19, tetris.Garbage)
	assert.False(t, s.Board().Occupied(0, 19))
}
