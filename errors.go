package cubesim

import (
	"errors"

	"github.com/SeamusWaldron/cubesim/internal/anim"
	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/history"
)

// Sentinel errors for the cubesim package.
var (
	// Gating errors
	ErrBusy     = anim.ErrBusy
	ErrAutoMode = history.ErrAutoMode

	// Geometry errors
	ErrInvalidSize     = cube.ErrInvalidSize
	ErrLayerOutOfRange = cube.ErrLayerOutOfRange
	ErrNonSquareLayer  = cube.ErrNonSquareLayer
	ErrZeroStep        = anim.ErrZeroStep

	// Parsing errors
	ErrInvalidNotation = cube.ErrInvalidNotation

	// Renderer errors
	ErrNoHitTester = errors.New("cubesim: renderer does not support hit testing")
)
