package history

import (
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/SeamusWaldron/cubesim/internal/anim"
	"github.com/SeamusWaldron/cubesim/internal/cube"
)

// Sentinel errors for the history package.
var (
	ErrAutoMode       = errors.New("history: scripted playback in progress")
	ErrNoTurnableAxis = errors.New("history: grid has no turnable axis")
)

// Origin records what triggered a turn.
type Origin int

const (
	OriginManual Origin = iota
	OriginGesture
	OriginUndo
	OriginRedo
	OriginScramble
	OriginPlay
)

func (o Origin) String() string {
	switch o {
	case OriginManual:
		return "manual"
	case OriginGesture:
		return "gesture"
	case OriginUndo:
		return "undo"
	case OriginRedo:
		return "redo"
	case OriginScramble:
		return "scramble"
	case OriginPlay:
		return "play"
	default:
		return "unknown"
	}
}

// ParseOrigin is the inverse of Origin.String.
func ParseOrigin(s string) Origin {
	for o := OriginManual; o <= OriginPlay; o++ {
		if o.String() == s {
			return o
		}
	}
	return OriginManual
}

// Turner starts animated turns. Busy must report true from a successful
// StartTurn until that turn has committed.
type Turner interface {
	Busy() bool
	StartTurn(m cube.Move, speed float64, origin Origin) error
}

type stepKind int

const (
	stepUndo stepKind = iota
	stepRedo
	stepPlay
)

type step struct {
	kind     stepKind
	move     cube.Move
	speed    float64
	interval time.Duration
	origin   Origin
}

// Player plays scripted move sequences against a History. A queued step
// starts only once the turner is idle and the step's interval has passed
// since the previous scripted turn committed.
type Player struct {
	hist *History
	t    Turner
	rng  *rand.Rand

	queue    []step
	inflight bool
	lastDone time.Time
}

// NewPlayer creates a player. rng drives Scramble.
func NewPlayer(h *History, t Turner, rng *rand.Rand) *Player {
	return &Player{hist: h, t: t, rng: rng}
}

// Auto reports whether a scripted sequence is pending or a scripted turn
// is still in flight.
func (p *Player) Auto() bool {
	return len(p.queue) > 0 || p.inflight
}

// Pending returns the number of queued steps not yet started.
func (p *Player) Pending() int {
	return len(p.queue)
}

// Undo queues n steps back through the history, ending at the cursor.
func (p *Player) Undo(n int, speed float64, interval time.Duration) error {
	if err := p.gate(speed); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		p.queue = append(p.queue, step{kind: stepUndo, speed: speed, interval: interval, origin: OriginUndo})
	}
	return nil
}

// Redo queues one step forward from the cursor.
func (p *Player) Redo(speed float64) error {
	if err := p.gate(speed); err != nil {
		return err
	}
	p.queue = append(p.queue, step{kind: stepRedo, speed: speed, origin: OriginRedo})
	return nil
}

// Solve queues undo steps back to the start of the history.
func (p *Player) Solve(speed float64, interval time.Duration) error {
	return p.Undo(p.hist.Cursor(), speed, interval)
}

// Play queues moves to be recorded and played in order.
func (p *Player) Play(moves []cube.Move, speed float64, interval time.Duration) error {
	return p.play(moves, speed, interval, OriginPlay)
}

// Scramble queues n random moves for g and returns them.
func (p *Player) Scramble(g *cube.Grid, speed float64, n int, interval time.Duration) ([]cube.Move, error) {
	if err := p.gate(speed); err != nil {
		return nil, err
	}
	moves, err := RandomMoves(p.rng, g, n)
	if err != nil {
		return nil, err
	}
	return moves, p.play(moves, speed, interval, OriginScramble)
}

func (p *Player) play(moves []cube.Move, speed float64, interval time.Duration, origin Origin) error {
	if err := p.gate(speed); err != nil {
		return err
	}
	for _, m := range moves {
		p.queue = append(p.queue, step{kind: stepPlay, move: m, speed: speed, interval: interval, origin: origin})
	}
	return nil
}

// gate refuses new scripts while one runs and rejects steps that could
// never start a turn.
func (p *Player) gate(speed float64) error {
	if p.Auto() {
		return ErrAutoMode
	}
	return anim.CheckStep(speed)
}

// Stop drops every queued step. A turn already in flight still
// completes.
func (p *Player) Stop() {
	p.queue = nil
}

// Tick starts the next queued step when the turner is idle and the
// step's interval has elapsed.
func (p *Player) Tick(now time.Time) error {
	if p.t.Busy() {
		return nil
	}
	if p.inflight {
		p.inflight = false
		p.lastDone = now
	}

	for len(p.queue) > 0 {
		s := p.queue[0]
		if !p.lastDone.IsZero() && now.Sub(p.lastDone) < s.interval {
			return nil
		}
		p.queue = p.queue[1:]

		m, ok := p.resolve(s)
		if !ok {
			continue // nothing left to undo or redo
		}
		if err := p.t.StartTurn(m, math.Abs(s.speed), s.origin); err != nil {
			p.queue = nil
			return err
		}
		p.advance(s, m)
		p.inflight = true
		return nil
	}
	return nil
}

func (p *Player) resolve(s step) (cube.Move, bool) {
	switch s.kind {
	case stepUndo:
		return p.hist.PeekBack()
	case stepRedo:
		return p.hist.PeekForward()
	default:
		return s.move, true
	}
}

// advance moves the history cursor once the step's turn has started.
func (p *Player) advance(s step, m cube.Move) {
	switch s.kind {
	case stepUndo:
		p.hist.Back()
	case stepRedo:
		p.hist.Forward()
	default:
		p.hist.Record(m)
	}
}

// RandomMoves returns n moves drawn uniformly from the turnable axes of
// g, their layers and both directions.
func RandomMoves(rng *rand.Rand, g *cube.Grid, n int) ([]cube.Move, error) {
	var axes []cube.Axis
	for _, a := range cube.Axes {
		if g.Turnable(a) {
			axes = append(axes, a)
		}
	}
	if len(axes) == 0 {
		return nil, ErrNoTurnableAxis
	}

	moves := make([]cube.Move, 0, max(n, 0))
	for i := 0; i < n; i++ {
		a := axes[rng.IntN(len(axes))]
		dir := cube.CCW
		if rng.IntN(2) == 1 {
			dir = cube.CW
		}
		moves = append(moves, cube.Move{
			Axis:  a,
			Layer: rng.IntN(g.Size().Extent(a)),
			Dir:   dir,
		})
	}
	return moves, nil
}
