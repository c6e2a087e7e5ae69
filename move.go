package cubesim

import (
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubesim/internal/cube"
)

// Face is a face slot of the cube.
type Face = cube.Face

// Faces.
const (
	Back  = cube.Back
	Front = cube.Front
	Up    = cube.Up
	Down  = cube.Down
	Right = cube.Right
	Left  = cube.Left
)

// FaceTurn returns the quarter turn of the outer layer under face f,
// clockwise as seen looking at that face when cw is true.
func FaceTurn(f Face, size Size, cw bool) Move {
	axis := f.Axis()
	layer := 0
	if f.Sign() > 0 {
		layer = size.Extent(axis) - 1
	}
	// Clockwise seen from outside a face is a negative angle about its
	// outward normal.
	dir := Direction(-f.Sign())
	if !cw {
		dir = dir.Inverse()
	}
	return Move{Axis: axis, Layer: layer, Dir: dir}
}

var faceLetters = map[byte]Face{
	'R': cube.Right,
	'L': cube.Left,
	'U': cube.Up,
	'D': cube.Down,
	'F': cube.Front,
	'B': cube.Back,
}

// ParseFaceMoves parses standard face notation (R U R' U2) for a grid of
// the given size. A half turn expands to two quarter turns.
func ParseFaceMoves(s string, size Size) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		f, ok := faceLetters[part[0]]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, part)
		}

		switch part[1:] {
		case "":
			moves = append(moves, FaceTurn(f, size, true))
		case "'", "`":
			moves = append(moves, FaceTurn(f, size, false))
		case "2", "2'", "2`":
			m := FaceTurn(f, size, true)
			moves = append(moves, m, m)
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, part)
		}
	}

	return moves, nil
}

// ParseAnyMoves accepts either layer notation (x0 y1') or face notation
// (R U'). Layer notation wins when both could apply.
func ParseAnyMoves(s string, size Size) ([]Move, error) {
	moves, err := ParseMoves(s)
	if err == nil {
		return moves, nil
	}
	if faceMoves, faceErr := ParseFaceMoves(s, size); faceErr == nil {
		return faceMoves, nil
	}
	return nil, err
}
