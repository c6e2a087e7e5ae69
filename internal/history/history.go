// Package history records executed moves and sequences scripted
// playback (undo, redo, scramble, auto-solve) one turn at a time.
package history

import (
	"github.com/SeamusWaldron/cubesim/internal/cube"
)

// History is an ordered move log with a cursor. Moves before the cursor
// have been applied; moves at or after it are available for redo.
type History struct {
	moves  []cube.Move
	cursor int
}

// New creates an empty history.
func New() *History {
	return &History{}
}

// Record appends m at the cursor and advances it. Any redo tail beyond
// the cursor is discarded first.
func (h *History) Record(m cube.Move) {
	h.moves = append(h.moves[:h.cursor], m)
	h.cursor++
}

// Len returns the number of recorded moves, redo tail included.
func (h *History) Len() int {
	return len(h.moves)
}

// Cursor returns the number of applied moves.
func (h *History) Cursor() int {
	return h.cursor
}

// CanUndo reports whether there is a move before the cursor.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether there is a move at the cursor.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.moves)
}

// PeekBack returns the inverse of the move before the cursor without
// moving it.
func (h *History) PeekBack() (cube.Move, bool) {
	if !h.CanUndo() {
		return cube.Move{}, false
	}
	return h.moves[h.cursor-1].Inverse(), true
}

// Back returns the inverse of the move before the cursor and moves the
// cursor back by one.
func (h *History) Back() (cube.Move, bool) {
	m, ok := h.PeekBack()
	if ok {
		h.cursor--
	}
	return m, ok
}

// PeekForward returns the move at the cursor without moving it.
func (h *History) PeekForward() (cube.Move, bool) {
	if !h.CanRedo() {
		return cube.Move{}, false
	}
	return h.moves[h.cursor], true
}

// Forward returns the move at the cursor and advances the cursor.
func (h *History) Forward() (cube.Move, bool) {
	m, ok := h.PeekForward()
	if ok {
		h.cursor++
	}
	return m, ok
}

// Applied returns a copy of the moves before the cursor.
func (h *History) Applied() []cube.Move {
	return append([]cube.Move(nil), h.moves[:h.cursor]...)
}

// Moves returns a copy of every recorded move.
func (h *History) Moves() []cube.Move {
	return append([]cube.Move(nil), h.moves...)
}

// Reset clears the log.
func (h *History) Reset() {
	h.moves = nil
	h.cursor = 0
}
