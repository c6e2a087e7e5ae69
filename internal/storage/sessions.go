package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/cubesim/internal/cube"
)

// Session is one run of the simulator in the journal.
type Session struct {
	SessionID    string
	StartedAt    time.Time
	EndedAt      *time.Time
	Size         cube.Size
	Speed        string
	ScrambleText *string
	Notes        *string
}

// Duration returns how long the session ran, or zero while it is open.
func (s Session) Duration() time.Duration {
	if s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

const sessionColumns = `session_id, started_at, ended_at, width, height, depth, speed, scramble_text, notes`

// Create creates a new session and returns its ID.
func (r *SessionRepository) Create(size cube.Size, speed, notes string) (string, error) {
	id := uuid.New().String()
	startedAt := time.Now().UTC()

	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}

	_, err := r.db.Exec(`
		INSERT INTO sessions (session_id, started_at, width, height, depth, speed, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, startedAt.Format(timeLayout), size.W, size.H, size.D, speed, notesPtr)

	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return id, nil
}

// End marks a session as finished.
func (r *SessionRepository) End(sessionID string) error {
	endedAt := time.Now().UTC()
	res, err := r.db.Exec(`
		UPDATE sessions SET ended_at = ? WHERE session_id = ?
	`, endedAt.Format(timeLayout), sessionID)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return expectOne(res, sessionID)
}

// SetScramble stores the scramble played at the start of a session.
func (r *SessionRepository) SetScramble(sessionID, scramble string) error {
	res, err := r.db.Exec(`
		UPDATE sessions SET scramble_text = ? WHERE session_id = ?
	`, scramble, sessionID)
	if err != nil {
		return fmt.Errorf("failed to set scramble: %w", err)
	}
	return expectOne(res, sessionID)
}

// Get retrieves a session by ID. It returns nil when none exists.
func (r *SessionRepository) Get(sessionID string) (*Session, error) {
	row := r.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`, sessionID)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// Latest retrieves the most recent session, or nil when there is none.
func (r *SessionRepository) Latest() (*Session, error) {
	row := r.db.QueryRow(`
		SELECT ` + sessionColumns + ` FROM sessions
		ORDER BY started_at DESC, rowid DESC
		LIMIT 1
	`)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest session: %w", err)
	}
	return s, nil
}

// Find retrieves the session whose ID is id or starts with it. It returns
// nil when nothing matches and ErrAmbiguousID when several do.
func (r *SessionRepository) Find(id string) (*Session, error) {
	if s, err := r.Get(id); s != nil || err != nil {
		return s, err
	}
	// IDs are UUIDs, so the prefix holds no LIKE wildcards worth escaping.
	rows, err := r.db.Query(`
		SELECT `+sessionColumns+` FROM sessions
		WHERE session_id LIKE ? || '%'
		LIMIT 2
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	defer rows.Close()

	var found []*Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		found = append(found, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
	}
}

// List retrieves recent sessions, newest first.
func (r *SessionRepository) List(limit int) ([]Session, error) {
	rows, err := r.db.Query(`
		SELECT `+sessionColumns+` FROM sessions
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// Delete deletes a session and its moves.
func (r *SessionRepository) Delete(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Sentinel errors for the storage package.
var (
	ErrSessionNotFound = errors.New("storage: session not found")
	ErrAmbiguousID     = errors.New("storage: session ID prefix matches several sessions")
)

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	var s Session
	var startedAtStr string
	var endedAtStr sql.NullString

	err := row.Scan(
		&s.SessionID, &startedAtStr, &endedAtStr,
		&s.Size.W, &s.Size.H, &s.Size.D,
		&s.Speed, &s.ScrambleText, &s.Notes,
	)
	if err != nil {
		return nil, err
	}

	s.StartedAt, _ = time.Parse(timeLayout, startedAtStr)
	if endedAtStr.Valid {
		t, _ := time.Parse(timeLayout, endedAtStr.String)
		s.EndedAt = &t
	}
	return &s, nil
}

func expectOne(res sql.Result, sessionID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return nil
}
