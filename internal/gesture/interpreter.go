// Package gesture turns pointer drags across the cube into layer turns.
package gesture

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/SeamusWaldron/cubesim/internal/anim"
	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/render"
)

// Target receives the turns a gesture resolves to.
type Target interface {
	Busy() bool
	// Offset is the grid center in cell coordinates; hit positions are
	// relative to it.
	Offset() render.Vec3
	Turn(axis cube.Axis, layer int, step float64) error
}

// Orbit is the camera orbit control, paused while a drag is anchored.
type Orbit interface {
	SetEnabled(enabled bool)
}

// Reason says why a drag sample was discarded.
type Reason int

const (
	// Diagonal means the drag crossed more than one cell axis at once.
	Diagonal Reason = iota + 1
	// AlongNormal means the drag moved only along the struck face's normal.
	AlongNormal
	// Rejected means the target refused the turn.
	Rejected
)

func (r Reason) String() string {
	switch r {
	case Diagonal:
		return "diagonal"
	case AlongNormal:
		return "along_normal"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Discard describes a drag sample that produced no turn.
type Discard struct {
	Reason Reason
	Anchor render.Hit
	Hit    render.Hit
	Err    error
}

// Interpreter tracks one drag at a time: Down anchors it on a cubie face,
// Move resolves it to a single turn, Up releases it.
type Interpreter struct {
	target Target
	hits   render.HitTester
	orbit  Orbit
	step   float64

	onDiscard func(Discard)

	anchored bool
	spent    bool
	anchor   render.Hit
}

// New creates an interpreter that turns layers at the Slow gesture speed.
func New(t Target, hits render.HitTester) *Interpreter {
	return &Interpreter{target: t, hits: hits, step: float64(anim.Slow)}
}

// SetOrbit installs the orbit control to pause during drags.
func (in *Interpreter) SetOrbit(o Orbit) {
	in.orbit = o
}

// SetStep overrides the angle step used for gesture turns.
func (in *Interpreter) SetStep(step float64) {
	in.step = math.Abs(step)
}

// OnDiscard registers a listener for discarded drag samples.
func (in *Interpreter) OnDiscard(fn func(Discard)) {
	in.onDiscard = fn
}

// Anchor returns the hit the current drag started on.
func (in *Interpreter) Anchor() (render.Hit, bool) {
	return in.anchor, in.anchored
}

// Down starts a drag at pt. A miss leaves orbit control untouched.
func (in *Interpreter) Down(pt render.ScreenPoint) bool {
	hit, ok := in.hits.HitTest(pt)
	if !ok {
		return false
	}
	in.anchor = hit
	in.anchored = true
	in.spent = false
	in.setOrbit(false)
	return true
}

// Move feeds a pointer sample. It returns the move started, if any.
func (in *Interpreter) Move(pt render.ScreenPoint) (cube.Move, bool) {
	if !in.anchored || in.spent || in.target.Busy() {
		return cube.Move{}, false
	}
	hit, ok := in.hits.HitTest(pt)
	if !ok {
		return cube.Move{}, false
	}
	d := r3.Sub(in.anchor.Position, hit.Position)
	if isZero(d) {
		return cube.Move{}, false
	}

	axis, sign, reason := Resolve(in.anchor.Face, d)
	if reason != 0 {
		in.discard(Discard{Reason: reason, Anchor: in.anchor, Hit: hit})
		return cube.Move{}, false
	}

	layer := int(math.Round(render.Component(in.anchor.Position, axis) + render.Component(in.target.Offset(), axis)))
	step := in.step * float64(sign)
	in.spent = true
	if err := in.target.Turn(axis, layer, step); err != nil {
		in.discard(Discard{Reason: Rejected, Anchor: in.anchor, Hit: hit, Err: err})
		return cube.Move{}, false
	}
	return cube.Move{Axis: axis, Layer: layer, Dir: cube.DirectionOf(step)}, true
}

// Up ends the drag and re-enables orbit control.
func (in *Interpreter) Up() {
	wasAnchored := in.anchored
	in.anchored = false
	in.spent = false
	in.anchor = render.Hit{}
	if wasAnchored {
		in.setOrbit(true)
	}
}

func (in *Interpreter) setOrbit(enabled bool) {
	if in.orbit != nil {
		in.orbit.SetEnabled(enabled)
	}
}

func (in *Interpreter) discard(d Discard) {
	if in.onDiscard != nil {
		in.onDiscard(d)
	}
}

// Resolve maps a drag delta (anchor minus current position) across a
// face to the turn axis and direction sign. reason is non-zero when the
// delta cannot produce a turn.
func Resolve(face cube.Face, d render.Vec3) (axis cube.Axis, sign int, reason Reason) {
	moved := -1
	count := 0
	for _, a := range cube.Axes {
		if nonZero(render.Component(d, a)) {
			moved = int(a)
			count++
		}
	}
	if count != 1 {
		return 0, 0, Diagonal
	}
	along := cube.Axis(moved)
	if along == face.Axis() {
		return 0, 0, AlongNormal
	}

	sgn := 1
	if render.Component(d, along) < 0 {
		sgn = -1
	}
	r1, r2 := -1, 1
	if face%2 == 1 {
		r1, r2 = 1, -1
	}

	switch face.Axis() {
	case cube.X:
		if along == cube.Y {
			return cube.Z, sgn * r1, 0
		}
		return cube.Y, sgn * r2, 0
	case cube.Y:
		if along == cube.X {
			return cube.Z, sgn * r2, 0
		}
		return cube.X, sgn * r1, 0
	default:
		if along == cube.X {
			return cube.Y, sgn * r1, 0
		}
		return cube.X, sgn * r2, 0
	}
}

// Cell centers sit on whole coordinates, so anything under half a cell
// is noise.
func nonZero(v float64) bool {
	return math.Abs(v) >= 0.5
}

func isZero(d render.Vec3) bool {
	return !nonZero(d.X) && !nonZero(d.Y) && !nonZero(d.Z)
}
