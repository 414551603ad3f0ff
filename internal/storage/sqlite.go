// Package storage provides SQLite-based persistence for rotation traces.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tetris-core/internal/game"
	"github.com/vovakirdan/tetris-core/internal/tetris"
)

// Store manages the SQLite database connection for the trace journal.
type Store struct {
	db *sql.DB
}

// RotationTrace is one recorded rotation attempt.
type RotationTrace struct {
	ID              int64
	Session         string // session ID, fixture ID or "cli"
	Piece           string
	FromOrientation int
	ToOrientation   int
	Direction       string
	Col             int
	Row             int
	Success         bool
	FailureReason   string
	Attempts        []tetris.WallKickAttempt
	CreatedAt       time.Time
}

// Kicked reports whether the rotation needed an offset other than the first.
func (t RotationTrace) Kicked() bool {
	return t.Success && len(t.Attempts) > 1
}

// NewTrace builds a trace from a rotation and its result.
func NewTrace(session string, p tetris.Piece, dir tetris.Direction, res tetris.RotationResult) RotationTrace {
	to := p.Orientation
	if o, err := tetris.TargetOrientation(p.Orientation, dir); err == nil {
		to = o
	}
	return RotationTrace{
		Session:         session,
		Piece:           p.ID.String(),
		FromOrientation: p.Orientation,
		ToOrientation:   to,
		Direction:       dir.String(),
		Col:             p.Col,
		Row:             p.Row,
		Success:         res.Success,
		FailureReason:   string(res.FailureReason),
		Attempts:        res.KicksAttempted,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rotation_traces (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			piece TEXT NOT NULL,
			from_orientation INTEGER NOT NULL,
			to_orientation INTEGER NOT NULL,
			direction TEXT NOT NULL,
			anchor_col INTEGER NOT NULL,
			anchor_row INTEGER NOT NULL,
			success INTEGER NOT NULL,
			failure_reason TEXT NOT NULL DEFAULT '',
			kick_count INTEGER NOT NULL,
			attempts TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rotation_traces_piece ON rotation_traces(piece);
		CREATE INDEX IF NOT EXISTS idx_rotation_traces_session ON rotation_traces(session);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// attemptRow is the JSON form of one wall-kick attempt.
type attemptRow struct {
	DX     int  `json:"dx"`
	DY     int  `json:"dy"`
	Col    int  `json:"col"`
	Row    int  `json:"row"`
	Tested bool `json:"tested"`
}

func encodeAttempts(attempts []tetris.WallKickAttempt) (string, error) {
	rows := make([]attemptRow, len(attempts))
	for i, a := range attempts {
		rows[i] = attemptRow{
			DX:     a.Offset.X,
			DY:     a.Offset.Y,
			Col:    a.Position.X,
			Row:    a.Position.Y,
			Tested: a.Tested,
		}
	}
	data, err := json.Marshal(rows)
	return string(data), err
}

func decodeAttempts(data string) ([]tetris.WallKickAttempt, error) {
	var rows []attemptRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, err
	}
	attempts := make([]tetris.WallKickAttempt, len(rows))
	for i, r := range rows {
		attempts[i] = tetris.WallKickAttempt{
			Offset:   tetris.Point{X: r.DX, Y: r.DY},
			Tested:   r.Tested,
			Position: tetris.Point{X: r.Col, Y: r.Row},
		}
	}
	return attempts, nil
}

// SaveTrace records a rotation trace.
// Returns the ID of the inserted record.
func (s *Store) SaveTrace(t RotationTrace) (int64, error) {
	attempts, err := encodeAttempts(t.Attempts)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode attempts: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO rotation_traces
		 (session, piece, from_orientation, to_orientation, direction, anchor_col, anchor_row, success, failure_reason, kick_count, attempts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Session,
		t.Piece,
		t.FromOrientation,
		t.ToOrientation,
		t.Direction,
		t.Col,
		t.Row,
		t.Success,
		t.FailureReason,
		len(t.Attempts),
		attempts,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save trace: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordRotation implements game.TraceRecorder.
func (s *Store) RecordRotation(session string, p tetris.Piece, dir tetris.Direction, res tetris.RotationResult) error {
	_, err := s.SaveTrace(NewTrace(session, p, dir, res))
	return err
}

// Ensure Store implements TraceRecorder
var _ game.TraceRecorder = (*Store)(nil)

// RecentTraces retrieves the most recent traces, newest first.
func (s *Store) RecentTraces(limit int) ([]RotationTrace, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryTraces(
		`SELECT id, session, piece, from_orientation, to_orientation, direction,
		        anchor_col, anchor_row, success, failure_reason, attempts, created_at
		 FROM rotation_traces
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

// SessionTraces retrieves every trace of one session in recording order.
func (s *Store) SessionTraces(session string) ([]RotationTrace, error) {
	return s.queryTraces(
		`SELECT id, session, piece, from_orientation, to_orientation, direction,
		        anchor_col, anchor_row, success, failure_reason, attempts, created_at
		 FROM rotation_traces
		 WHERE session = ?
		 ORDER BY id`,
		session,
	)
}

func (s *Store) queryTraces(query string, args ...any) ([]RotationTrace, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query traces: %w", err)
	}
	defer rows.Close()

	var traces []RotationTrace
	for rows.Next() {
		var t RotationTrace
		var attempts string
		var createdAt any
		if err := rows.Scan(
			&t.ID,
			&t.Session,
			&t.Piece,
			&t.FromOrientation,
			&t.ToOrientation,
			&t.Direction,
			&t.Col,
			&t.Row,
			&t.Success,
			&t.FailureReason,
			&attempts,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		if t.Attempts, err = decodeAttempts(attempts); err != nil {
			return nil, fmt.Errorf("storage: trace %d has corrupt attempts: %w", t.ID, err)
		}
		t.CreatedAt = parseTime(createdAt)
		traces = append(traces, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return traces, nil
}

// ClearTraces deletes every recorded trace.
func (s *Store) ClearTraces() error {
	if _, err := s.db.Exec("DELETE FROM rotation_traces"); err != nil {
		return fmt.Errorf("storage: cannot clear traces: %w", err)
	}
	return nil
}

// PieceStats contains aggregated rotation statistics for one piece.
type PieceStats struct {
	Piece       string
	Rotations   int
	Successes   int
	Kicked      int // successes that needed more than one attempt
	Collisions  int
	OutOfBounds int
	AvgAttempts float64
	LastSeen    time.Time
}

// GetAllPieceStats retrieves statistics for every piece that has traces.
func (s *Store) GetAllPieceStats() (map[string]*PieceStats, error) {
	rows, err := s.db.Query(
		`SELECT piece,
		        COUNT(*),
		        SUM(success),
		        SUM(CASE WHEN success = 1 AND kick_count > 1 THEN 1 ELSE 0 END),
		        SUM(CASE WHEN failure_reason = ? THEN 1 ELSE 0 END),
		        SUM(CASE WHEN failure_reason = ? THEN 1 ELSE 0 END),
		        AVG(kick_count),
		        MAX(created_at)
		 FROM rotation_traces
		 GROUP BY piece`,
		string(tetris.ReasonCollision), string(tetris.ReasonOutOfBounds),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get piece stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PieceStats)
	for rows.Next() {
		var ps PieceStats
		var lastSeen any
		if err := rows.Scan(&ps.Piece, &ps.Rotations, &ps.Successes, &ps.Kicked,
			&ps.Collisions, &ps.OutOfBounds, &ps.AvgAttempts, &lastSeen); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastSeen = parseTime(lastSeen)
		stats[ps.Piece] = &ps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
