// Package anim animates layer turns. A Controller is an explicit
// Idle/Turning state machine advanced by Tick; at most one turn is in
// flight per controller.
package anim

import (
	"errors"
	"fmt"
	"math"

	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/render"
)

// Sentinel errors for the anim package.
var (
	ErrBusy     = errors.New("anim: turn already in progress")
	ErrZeroStep = errors.New("anim: angle step must be finite and non-zero")
)

// QuarterTurn is the angle a layer travels in one turn.
const QuarterTurn = math.Pi / 2

// State is the controller state.
type State int

const (
	Idle State = iota
	Turning
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Turning:
		return "turning"
	default:
		return "unknown"
	}
}

// Store is the logical cube state a controller commits into.
type Store interface {
	Grid() *cube.Grid
	Commit(m cube.Move) error
}

// turn is the state of the turn in flight.
type turn struct {
	move  cube.Move
	step  float64
	angle float64
	pivot render.Group
}

// Controller drives the visual rotation of one layer at a time and
// commits the logical turn when the rotation completes.
type Controller struct {
	store Store
	r     render.Renderer
	asm   *render.Assembly

	state State
	cur   turn
}

// New creates an idle controller.
func New(store Store, r render.Renderer, asm *render.Assembly) *Controller {
	return &Controller{store: store, r: r, asm: asm}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Busy reports whether a turn is in flight.
func (c *Controller) Busy() bool {
	return c.state == Turning
}

// Current returns the move being animated.
func (c *Controller) Current() (cube.Move, bool) {
	if c.state != Turning {
		return cube.Move{}, false
	}
	return c.cur.move, true
}

// Progress returns how far the current turn has travelled, 0..1.
func (c *Controller) Progress() float64 {
	if c.state != Turning {
		return 0
	}
	return math.Min(1, math.Abs(c.cur.angle)/QuarterTurn)
}

// CheckStep reports whether step can drive a turn.
func CheckStep(step float64) error {
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return fmt.Errorf("%w: %v", ErrZeroStep, step)
	}
	return nil
}

// Start begins turning a layer by step radians per tick. The sign of
// step selects the direction: negative turns CW.
//
// Start fails with ErrBusy while another turn is in flight; nothing about
// the running turn changes in that case.
func (c *Controller) Start(axis cube.Axis, layer int, step float64) error {
	if c.state == Turning {
		return ErrBusy
	}
	if err := CheckStep(step); err != nil {
		return err
	}
	m := cube.Move{Axis: axis, Layer: layer, Dir: cube.DirectionOf(step)}
	if err := c.store.Grid().Validate(m); err != nil {
		return fmt.Errorf("start turn %s: %w", m, err)
	}

	pivot := c.r.NewGroup()
	c.asm.Lift(axis, layer, pivot)
	c.cur = turn{move: m, step: step, pivot: pivot}
	c.state = Turning
	return nil
}

// Tick advances the turn in flight by one step. When the layer has
// travelled a quarter turn (less one step, so the last tick never
// overshoots) the move is committed, the proxies are rebuilt from the
// store and the controller returns to Idle. done reports that commit.
func (c *Controller) Tick() (m cube.Move, done bool, err error) {
	if c.state != Turning {
		return cube.Move{}, false, nil
	}

	c.r.RotateGroup(c.cur.pivot, c.cur.move.Axis, c.cur.step)
	c.cur.angle += c.cur.step
	if math.Abs(c.cur.angle) <= QuarterTurn-math.Abs(c.cur.step) {
		return cube.Move{}, false, nil
	}

	m = c.cur.move
	err = c.store.Commit(m)
	c.asm.Rebuild(c.store.Grid())
	c.r.RemoveGroup(c.cur.pivot)
	c.cur = turn{}
	c.state = Idle
	if err != nil {
		return m, false, fmt.Errorf("commit turn %s: %w", m, err)
	}
	return m, true, nil
}

// TicksFor returns the number of ticks a turn at step takes.
func TicksFor(step float64) int {
	step = math.Abs(step)
	if step == 0 {
		return 0
	}
	n := 0
	for angle := 0.0; ; {
		angle += step
		n++
		if angle > QuarterTurn-step {
			return n
		}
	}
}
