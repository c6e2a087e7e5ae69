package cube

import (
	"fmt"
	"strconv"
	"strings"
)

// Axis is one of the three rotation axes.
type Axis int

const (
	X Axis = 0
	Y Axis = 1
	Z Axis = 2
)

// Axes lists the three axes in order.
var Axes = [3]Axis{X, Y, Z}

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return "?"
	}
}

// Valid reports whether a is X, Y or Z.
func (a Axis) Valid() bool {
	return a >= X && a <= Z
}

// ParseAxis parses "x", "y" or "z" (either case).
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return X, nil
	case "y":
		return Y, nil
	case "z":
		return Z, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
	}
}

// Direction is the rotational sense of a quarter turn, viewed from the
// positive end of the axis.
type Direction int

const (
	CCW Direction = 1  // Positive angle (right-hand rule)
	CW  Direction = -1 // Negative angle
)

// Valid reports whether d is CCW or CW.
func (d Direction) Valid() bool {
	return d == CCW || d == CW
}

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	return -d
}

// DirectionOf returns the direction of a signed angle step.
// Negative steps turn CW.
func DirectionOf(step float64) Direction {
	if step < 0 {
		return CW
	}
	return CCW
}

// Move is a quarter turn of one layer.
type Move struct {
	Axis  Axis
	Layer int
	Dir   Direction
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	m.Dir = m.Dir.Inverse()
	return m
}

// Notation returns the compact notation for m: axis, layer index and a
// prime suffix for CW turns. Examples: x0, y1', z2
func (m Move) Notation() string {
	suffix := ""
	if m.Dir == CW {
		suffix = "'"
	}
	return m.Axis.String() + strconv.Itoa(m.Layer) + suffix
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// ParseMove parses a single move in notation form.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	axis, err := ParseAxis(s[:1])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	dir := CCW
	body := s[1:]
	if strings.HasSuffix(body, "'") || strings.HasSuffix(body, "`") {
		dir = CW
		body = body[:len(body)-1]
	}

	layer, err := strconv.Atoi(body)
	if err != nil || layer < 0 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	return Move{Axis: axis, Layer: layer, Dir: dir}, nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "x0 y1' z2"
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// InverseSequence returns the moves that undo moves, in playback order.
func InverseSequence(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}
