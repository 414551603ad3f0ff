// Package game drives the rotation engine and the animation orchestrator
// from discrete game events. It owns the grid; everything else reads it
// through tetris.Board.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tetris-core/internal/anim"
	"github.com/vovakirdan/tetris-core/internal/config"
	"github.com/vovakirdan/tetris-core/internal/tetris"
)

// ErrGameOver is returned by moves attempted after the game ended.
var ErrGameOver = errors.New("game: game over")

// Line clear base scores, multiplied by level+1.
var lineScores = [...]int{0, 100, 300, 500, 800}

const (
	softDropPoints = 1 // per row
	hardDropPoints = 2 // per row
	comboPoints    = 50
)

// TraceRecorder receives every rotation a session resolves.
type TraceRecorder interface {
	RecordRotation(session string, p tetris.Piece, dir tetris.Direction, res tetris.RotationResult) error
}

// Options configures a Session. Zero values select defaults.
type Options struct {
	Config   config.Config
	Recorder TraceRecorder
	Budget   *anim.Budget
	Logger   *log.Logger
}

// Stats is a read-only summary of the session.
type Stats struct {
	Score int
	Lines int
	Level int
	Combo int // -1 when the last lock cleared nothing
	Locks int
	Over  bool
}

// State is a read-only projection of the session for observers.
type State struct {
	ID      string
	Stats   Stats
	Active  tetris.Piece
	Ghost   tetris.Piece
	Preview []tetris.PieceID
	Gravity time.Duration
}

// Session is one game: grid, active piece, bag and scoring.
// It is not safe for concurrent use.
type Session struct {
	id         string
	cfg        config.Config
	grid       *tetris.Grid
	bag        *Bag
	active     tetris.Piece
	difficulty *config.DifficultyManager

	score int
	lines int
	level int
	combo int
	locks int
	over  bool

	recorder TraceRecorder
	budget   *anim.Budget
	logger   *log.Logger
}

// NewSession creates a session and spawns the first piece. A zero seed in
// the config is replaced with the current time.
func NewSession(opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg.Board.Width == 0 && cfg.Board.Height == 0 {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	id := uuid.NewString()
	s := &Session{
		id:         id,
		cfg:        cfg,
		grid:       tetris.NewGrid(cfg.Board.Width, cfg.Board.Height),
		bag:        NewBag(seed, cfg.Preview),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		combo:      -1,
		recorder:   opts.Recorder,
		budget:     opts.Budget,
		logger:     logger.With("session", id[:8]),
	}
	s.level = s.difficulty.Level(0)
	if !s.spawn() {
		s.over = true
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Config returns the configuration the session runs with.
func (s *Session) Config() config.Config {
	return s.cfg
}

// Board returns a read-only view of the grid.
func (s *Session) Board() tetris.Board {
	return s.grid
}

// Snapshot returns a copy of the locked grid.
func (s *Session) Snapshot() *tetris.Grid {
	return s.grid.Clone()
}

// Active returns the falling piece.
func (s *Session) Active() tetris.Piece {
	return s.active
}

// Over reports whether the game has ended.
func (s *Session) Over() bool {
	return s.over
}

// Stats returns the current score summary.
func (s *Session) Stats() Stats {
	return Stats{
		Score: s.score,
		Lines: s.lines,
		Level: s.level,
		Combo: s.combo,
		Locks: s.locks,
		Over:  s.over,
	}
}

// State returns a projection of the session.
func (s *Session) State() State {
	return State{
		ID:      s.id,
		Stats:   s.Stats(),
		Active:  s.active,
		Ghost:   tetris.Ghost(s.grid, s.active),
		Preview: s.bag.Preview(),
		Gravity: s.difficulty.Gravity(s.level),
	}
}

// GridString renders the grid with the active piece drawn as '@'.
func (s *Session) GridString() string {
	out := []byte(s.grid.String())
	if s.over {
		return string(out)
	}
	w := s.grid.Width() + 1
	for _, c := range s.active.Cells() {
		if s.grid.InBounds(c.X, c.Y) {
			out[c.Y*w+c.X] = '@'
		}
	}
	return string(out)
}

// MoveLeft shifts the active piece one column left.
func (s *Session) MoveLeft() bool {
	return s.translate(-1, 0)
}

// MoveRight shifts the active piece one column right.
func (s *Session) MoveRight() bool {
	return s.translate(1, 0)
}

// SoftDrop moves the active piece one row down, scoring one point.
func (s *Session) SoftDrop() bool {
	if !s.translate(0, 1) {
		return false
	}
	s.score += softDropPoints
	return true
}

func (s *Session) translate(dx, dy int) bool {
	if s.over {
		return false
	}
	moved, ok := tetris.Translate(s.grid, s.active, dx, dy)
	s.active = moved
	return ok
}

// Rotate turns the active piece. Rejected rotations leave it in place.
func (s *Session) Rotate(dir tetris.Direction) (tetris.RotationResult, error) {
	if s.over {
		return tetris.RotationResult{}, ErrGameOver
	}
	before := s.active
	res := tetris.Rotate(s.grid, before, dir)
	if res.Success {
		s.active = *res.Piece
	}
	if res.FailureReason == tetris.ReasonInvalidState {
		s.logger.Error("rotation on invalid state", "piece", before, "direction", dir)
	}
	if s.recorder != nil {
		if err := s.recorder.RecordRotation(s.id, before, dir, res); err != nil {
			s.logger.Warn("cannot record rotation", "err", err)
		}
	}
	return res, nil
}

// HardDrop drops the active piece to the floor and locks it.
func (s *Session) HardDrop() ([]Event, error) {
	if s.over {
		return nil, ErrGameOver
	}
	landed, dist := tetris.HardDrop(s.grid, s.active)
	s.active = landed
	pts := dist * hardDropPoints
	s.score += pts

	events := []Event{{Kind: EventHardDrop, Score: pts, Level: s.level}}
	return append(events, s.lock()...), nil
}

// Tick applies one gravity step: the piece falls a row or, when grounded,
// locks. The step is measured against the frame budget.
func (s *Session) Tick() ([]Event, error) {
	if s.over {
		return nil, ErrGameOver
	}
	stop := s.budget.Track(anim.CategoryFrame)
	defer stop()

	if s.translate(0, 1) {
		return nil, nil
	}
	return s.lock(), nil
}

// lock writes the active piece, clears rows, scores and spawns the next
// piece.
func (s *Session) lock() []Event {
	landed := s.grid.Lock(s.active)
	s.locks++
	cleared := s.grid.ClearFullRows()
	n := len(cleared)

	var events []Event
	if n == 0 {
		s.combo = -1
	} else {
		s.combo++
		mult := s.level + 1
		kind := EventLineClear
		if n >= 4 {
			kind = EventTetris
		}
		pts := lineScores[min(n, len(lineScores)-1)] * mult
		events = append(events, Event{Kind: kind, Lines: n, Score: pts, Level: s.level})
		total := pts
		if s.combo > 0 {
			bonus := comboPoints * s.combo * mult
			events = append(events, Event{Kind: EventCombo, Combo: s.combo, Score: bonus, Level: s.level})
			total += bonus
		}
		s.score += total
		s.lines += n
		events = append(events, Event{Kind: EventScore, Lines: n, Score: total, Level: s.level})

		if lvl := s.difficulty.Level(s.lines); lvl > s.level {
			s.level = lvl
			events = append(events, Event{Kind: EventLevelUp, Level: lvl})
			s.logger.Info("level up", "level", lvl, "lines", s.lines)
		}
	}

	// A piece that locked partly above the top ends the game.
	if landed < len(s.active.Cells()) {
		return append(events, s.gameOver("lock out"))
	}
	if !s.spawn() {
		return append(events, s.gameOver("block out"))
	}
	return events
}

// spawn places the next piece and reports whether it fits.
func (s *Session) spawn() bool {
	s.active = tetris.SpawnPiece(s.bag.Next(), s.grid.Width())
	return tetris.CanPlace(s.grid, s.active)
}

func (s *Session) gameOver(reason string) Event {
	s.over = true
	s.logger.Info("game over", "reason", reason, "score", s.score, "lines", s.lines, "level", s.level)
	return Event{Kind: EventGameOver, Score: s.score, Level: s.level}
}
