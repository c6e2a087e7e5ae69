package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/history"
)

// MoveRecord represents a journaled turn.
type MoveRecord struct {
	MoveID    int64
	SessionID string
	MoveIndex int
	TsMs      int64
	Axis      string
	Layer     int
	Dir       int
	Notation  string
	Origin    string
}

// Move converts the record back to a cube move.
func (r MoveRecord) Move() (cube.Move, error) {
	axis, err := cube.ParseAxis(r.Axis)
	if err != nil {
		return cube.Move{}, fmt.Errorf("move %d: %w", r.MoveIndex, err)
	}
	m := cube.Move{Axis: axis, Layer: r.Layer, Dir: cube.Direction(r.Dir)}
	if !m.Dir.Valid() {
		return cube.Move{}, fmt.Errorf("move %d: %w: %d", r.MoveIndex, cube.ErrInvalidDirection, r.Dir)
	}
	return m, nil
}

// Entry is one turn to journal.
type Entry struct {
	Move   cube.Move
	Origin history.Origin
	Time   time.Time
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

const insertMove = `
	INSERT INTO moves (session_id, move_index, ts_ms, axis, layer, dir, notation, origin)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

// Create creates a new move and returns its ID.
func (r *MoveRepository) Create(sessionID string, moveIndex int, e Entry) (int64, error) {
	result, err := r.db.Exec(insertMove,
		sessionID, moveIndex, e.Time.UnixMilli(),
		e.Move.Axis.String(), e.Move.Layer, int(e.Move.Dir), e.Move.Notation(), e.Origin.String())
	if err != nil {
		return 0, fmt.Errorf("failed to create move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get move ID: %w", err)
	}

	return id, nil
}

// CreateBatch creates multiple moves in a single transaction.
func (r *MoveRepository) CreateBatch(sessionID string, entries []Entry, startIndex int) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for i, e := range entries {
			_, err := tx.Exec(insertMove,
				sessionID, startIndex+i, e.Time.UnixMilli(),
				e.Move.Axis.String(), e.Move.Layer, int(e.Move.Dir), e.Move.Notation(), e.Origin.String())
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", startIndex+i, err)
			}
		}
		return nil
	})
}

// GetBySession retrieves all moves for a session in order.
func (r *MoveRepository) GetBySession(sessionID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, session_id, move_index, ts_ms, axis, layer, dir, notation, origin
		FROM moves
		WHERE session_id = ?
		ORDER BY move_index
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(&m.MoveID, &m.SessionID, &m.MoveIndex, &m.TsMs, &m.Axis, &m.Layer, &m.Dir, &m.Notation, &m.Origin)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// NextIndex returns the next move index for a session.
func (r *MoveRepository) NextIndex(sessionID string) (int, error) {
	var maxIndex int
	err := r.db.QueryRow(`
		SELECT COALESCE(MAX(move_index), -1) FROM moves WHERE session_id = ?
	`, sessionID).Scan(&maxIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to get max move index: %w", err)
	}
	return maxIndex + 1, nil
}

// Count returns the number of moves for a session.
func (r *MoveRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// ToMoves converts records to cube moves in order.
func ToMoves(records []MoveRecord) ([]cube.Move, error) {
	moves := make([]cube.Move, len(records))
	for i, r := range records {
		m, err := r.Move()
		if err != nil {
			return nil, err
		}
		moves[i] = m
	}
	return moves, nil
}
