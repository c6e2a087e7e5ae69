package storage

import (
	"time"

	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/history"
)

// Journal records the committed turns of one session as they happen.
type Journal struct {
	sessions *SessionRepository
	moves    *MoveRepository

	sessionID string
	next      int
	now       func() time.Time
}

// NewJournal opens a new session of the given size and speed.
func NewJournal(db *DB, size cube.Size, speed, notes string) (*Journal, error) {
	j := &Journal{
		sessions: NewSessionRepository(db),
		moves:    NewMoveRepository(db),
		now:      time.Now,
	}
	id, err := j.sessions.Create(size, speed, notes)
	if err != nil {
		return nil, err
	}
	j.sessionID = id
	return j, nil
}

// SessionID returns the journaled session.
func (j *Journal) SessionID() string {
	return j.sessionID
}

// Len returns the number of moves journaled so far.
func (j *Journal) Len() int {
	return j.next
}

// Record journals one committed turn.
func (j *Journal) Record(m cube.Move, origin history.Origin) error {
	_, err := j.moves.Create(j.sessionID, j.next, Entry{Move: m, Origin: origin, Time: j.now()})
	if err != nil {
		return err
	}
	j.next++
	return nil
}

// SetScramble stores the scramble played in this session.
func (j *Journal) SetScramble(moves []cube.Move) error {
	return j.sessions.SetScramble(j.sessionID, cube.FormatMoves(moves))
}

// End closes the session.
func (j *Journal) End() error {
	return j.sessions.End(j.sessionID)
}
