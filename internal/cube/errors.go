package cube

import "errors"

// Sentinel errors for the cube package.
var (
	ErrInvalidSize      = errors.New("cube: invalid grid size")
	ErrInvalidAxis      = errors.New("cube: invalid axis")
	ErrInvalidDirection = errors.New("cube: invalid direction")
	ErrLayerOutOfRange  = errors.New("cube: layer index out of range")
	ErrNonSquareLayer   = errors.New("cube: layer is not square")
	ErrInvalidNotation  = errors.New("cube: invalid move notation")
)
