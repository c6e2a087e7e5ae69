package cubesim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/SeamusWaldron/cubesim/internal/anim"
	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/gesture"
	"github.com/SeamusWaldron/cubesim/internal/history"
	"github.com/SeamusWaldron/cubesim/internal/render"
)

// Re-exported core types.
type (
	Move        = cube.Move
	Axis        = cube.Axis
	Direction   = cube.Direction
	Grid        = cube.Grid
	Size        = cube.Size
	Speed       = anim.Speed
	Origin      = history.Origin
	Renderer    = render.Renderer
	HitTester   = render.HitTester
	ScreenPoint = render.ScreenPoint
	Vec3        = render.Vec3
	Discard     = gesture.Discard
	Orbit       = gesture.Orbit
)

// Axes and directions.
const (
	X = cube.X
	Y = cube.Y
	Z = cube.Z

	CCW = cube.CCW
	CW  = cube.CW
)

// Speeds.
const (
	Slow    = anim.Slow
	Normal  = anim.Normal
	Fast    = anim.Fast
	Instant = anim.Instant
)

// Turn origins.
const (
	OriginManual   = history.OriginManual
	OriginGesture  = history.OriginGesture
	OriginUndo     = history.OriginUndo
	OriginRedo     = history.OriginRedo
	OriginScramble = history.OriginScramble
	OriginPlay     = history.OriginPlay
)

// ParseMoves parses a space-separated move sequence such as "x0 y1' z2".
func ParseMoves(s string) ([]Move, error) {
	return cube.ParseMoves(s)
}

// FormatMoves formats moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	return cube.FormatMoves(moves)
}

// HistorySnapshot is a copy of the move log and its cursor.
type HistorySnapshot struct {
	Moves  []Move
	Cursor int
}

// Applied returns the moves before the cursor.
func (h HistorySnapshot) Applied() []Move {
	return h.Moves[:h.Cursor]
}

// Cube is an animated cube bound to one renderer. It owns the logical
// grid, the animation controller and the move history.
//
// A Cube is not safe for concurrent use; drive it from one goroutine.
type Cube struct {
	cfg   *config
	store *cube.Store
	r     render.Renderer
	asm   *render.Assembly
	ctl   *anim.Controller

	hist   *history.History
	player *history.Player
	gest   *gesture.Interpreter

	pos, rot render.Vec3
	speed    anim.Speed
	interval time.Duration

	origin Origin // origin of the turn in flight

	onTurn   []func(Move, Origin)
	onStart  []func(Move, Origin)
	onReject []func(request string, err error)
}

// New creates a solved w×h×d cube and draws it on r. If r also
// implements HitTester the cube accepts pointer gestures.
func New(w, h, d int, r Renderer, opts ...Option) (*Cube, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rng == nil {
		seed := uint64(time.Now().UnixNano())
		cfg.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}

	size := cube.Size{W: w, H: h, D: d}
	store, err := cube.NewStore(size)
	if err != nil {
		return nil, err
	}

	c := &Cube{
		cfg:      cfg,
		store:    store,
		r:        r,
		asm:      render.NewAssembly(r, size),
		hist:     history.New(),
		speed:    cfg.speed,
		interval: cfg.interval,
	}
	c.ctl = anim.New(store, r, c.asm)
	c.player = history.NewPlayer(c.hist, scriptTurner{c}, cfg.rng)
	if ht, ok := r.(render.HitTester); ok {
		c.gest = gesture.New(gestureTarget{c}, ht)
	}

	c.asm.Rebuild(store.Grid())
	r.SetRootTransform(c.pos, c.rot)
	return c, nil
}

// Size returns the grid extents.
func (c *Cube) Size() Size {
	return c.store.Grid().Size()
}

// Offset returns the grid center in cell coordinates. Proxies are placed
// at their cell coordinate minus this offset.
func (c *Cube) Offset() Vec3 {
	return c.asm.Offset()
}

// Grid returns the committed grid. It does not include a turn still
// animating.
func (c *Cube) Grid() *Grid {
	return c.store.Grid()
}

// IsSolved reports whether every outer face shows one color.
func (c *Cube) IsSolved() bool {
	return c.store.Grid().IsSolved()
}

// Busy reports whether a turn is animating.
func (c *Cube) Busy() bool {
	return c.ctl.Busy()
}

// Auto reports whether scripted playback is running.
func (c *Cube) Auto() bool {
	return c.player.Auto()
}

// Progress returns how far the turn in flight has travelled, 0..1.
func (c *Cube) Progress() float64 {
	return c.ctl.Progress()
}

// Current returns the turn in flight and its origin.
func (c *Cube) Current() (Move, Origin, bool) {
	m, ok := c.ctl.Current()
	return m, c.origin, ok
}

// Speed returns the current turn speed.
func (c *Cube) Speed() Speed {
	return c.speed
}

// SetSpeed changes the turn speed returned by Speed.
func (c *Cube) SetSpeed(s Speed) {
	c.speed = s
}

// Interval returns the pause between scripted turns.
func (c *Cube) Interval() time.Duration {
	return c.interval
}

// SetInterval changes the pause returned by Interval.
func (c *Cube) SetInterval(d time.Duration) {
	c.interval = d
}

// History returns a copy of the move log.
func (c *Cube) History() HistorySnapshot {
	return HistorySnapshot{Moves: c.hist.Moves(), Cursor: c.hist.Cursor()}
}

// SetPosition places the assembly. With additive set the values are
// added to the current position.
func (c *Cube) SetPosition(x, y, z float64, additive bool) {
	v := render.Vec3{X: x, Y: y, Z: z}
	if additive {
		v = r3.Add(c.pos, v)
	}
	c.pos = v
	c.r.SetRootTransform(c.pos, c.rot)
}

// SetRotation orients the assembly with XYZ Euler angles in radians.
// With additive set the angles are added to the current ones.
func (c *Cube) SetRotation(x, y, z float64, additive bool) {
	v := render.Vec3{X: x, Y: y, Z: z}
	if additive {
		v = r3.Add(c.rot, v)
	}
	c.rot = v
	c.r.SetRootTransform(c.pos, c.rot)
}

// Position returns the assembly position.
func (c *Cube) Position() Vec3 {
	return c.pos
}

// Rotation returns the assembly Euler angles.
func (c *Cube) Rotation() Vec3 {
	return c.rot
}

// Event callbacks

// OnTurn adds a listener called each time a turn commits.
func (c *Cube) OnTurn(fn func(Move, Origin)) {
	c.onTurn = append(c.onTurn, fn)
}

// OnTurnStart adds a listener called each time a turn starts animating.
func (c *Cube) OnTurnStart(fn func(Move, Origin)) {
	c.onStart = append(c.onStart, fn)
}

// OnReject adds a listener called when a request is refused with
// ErrBusy or ErrAutoMode.
func (c *Cube) OnReject(fn func(request string, err error)) {
	c.onReject = append(c.onReject, fn)
}

// OnDiscard sets the listener for drag samples that produced no turn.
func (c *Cube) OnDiscard(fn func(Discard)) {
	if c.gest != nil {
		c.gest.OnDiscard(fn)
	}
}

// Turn starts an animated turn of one layer. step is the angle per tick;
// its sign selects the direction and negative turns CW.
func (c *Cube) Turn(axis Axis, layer int, step float64) error {
	return c.manual(axis, layer, step, OriginManual)
}

// TurnMove starts m at the current speed.
func (c *Cube) TurnMove(m Move) error {
	return c.Turn(m.Axis, m.Layer, c.speed.Step(int(m.Dir)))
}

func (c *Cube) manual(axis Axis, layer int, step float64, origin Origin) error {
	if c.player.Auto() {
		return c.reject("turn", ErrAutoMode)
	}
	if c.ctl.Busy() {
		return c.reject("turn", ErrBusy)
	}
	m := Move{Axis: axis, Layer: layer, Dir: cube.DirectionOf(step)}
	if err := c.start(m, step, origin); err != nil {
		return err
	}
	c.hist.Record(m)
	return nil
}

func (c *Cube) start(m Move, step float64, origin Origin) error {
	if err := c.ctl.Start(m.Axis, m.Layer, step); err != nil {
		return err
	}
	c.origin = origin
	for _, fn := range c.onStart {
		fn(m, origin)
	}
	return nil
}

// Undo plays back n moves ending at the history cursor, inverted.
func (c *Cube) Undo(n int, step float64, interval time.Duration) error {
	if err := c.scriptGate("undo"); err != nil {
		return err
	}
	return c.rejectAuto("undo", c.player.Undo(n, step, interval))
}

// Redo plays the move at the history cursor.
func (c *Cube) Redo(step float64) error {
	if err := c.scriptGate("redo"); err != nil {
		return err
	}
	return c.rejectAuto("redo", c.player.Redo(step))
}

// Scramble plays n random moves and returns them.
func (c *Cube) Scramble(step float64, n int, interval time.Duration) ([]Move, error) {
	if err := c.scriptGate("scramble"); err != nil {
		return nil, err
	}
	moves, err := c.player.Scramble(c.store.Grid(), step, n, interval)
	if err != nil {
		return nil, c.rejectAuto("scramble", err)
	}
	return moves, nil
}

// Solve undoes every applied move.
func (c *Cube) Solve(step float64, interval time.Duration) error {
	if err := c.scriptGate("solve"); err != nil {
		return err
	}
	return c.rejectAuto("solve", c.player.Solve(step, interval))
}

// Play records and plays moves in order. Every move is validated
// against the grid before anything is queued.
func (c *Cube) Play(moves []Move, step float64, interval time.Duration) error {
	if err := c.scriptGate("play"); err != nil {
		return err
	}
	if _, err := c.store.Grid().TurnAll(moves); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	return c.rejectAuto("play", c.player.Play(moves, step, interval))
}

// Stop drops the rest of a running script. The turn in flight still
// completes.
func (c *Cube) Stop() {
	c.player.Stop()
}

// Reset discards the history and restores a solved grid. It fails with
// ErrBusy while a turn animates.
func (c *Cube) Reset() error {
	if c.ctl.Busy() {
		return c.reject("reset", ErrBusy)
	}
	c.player.Stop()
	c.hist.Reset()
	c.store.Reset()
	c.asm.Rebuild(c.store.Grid())
	return nil
}

func (c *Cube) scriptGate(request string) error {
	if c.ctl.Busy() && !c.player.Auto() {
		return c.reject(request, ErrBusy)
	}
	return nil
}

func (c *Cube) rejectAuto(request string, err error) error {
	if errors.Is(err, ErrAutoMode) {
		return c.reject(request, err)
	}
	return err
}

func (c *Cube) reject(request string, err error) error {
	for _, fn := range c.onReject {
		fn(request, err)
	}
	return err
}

// Tick advances the turn in flight by one step, then lets scripted
// playback start its next turn. now is the caller's clock and only
// gates scripted intervals.
func (c *Cube) Tick(now time.Time) error {
	m, done, err := c.ctl.Tick()
	if err != nil {
		return err
	}
	if done {
		origin := c.origin
		for _, fn := range c.onTurn {
			fn(m, origin)
		}
	}
	return c.player.Tick(now)
}

// Settle ticks on a simulated clock at the configured tick rate until no
// turn is animating and no script is pending. It returns the simulated
// time reached.
func (c *Cube) Settle(now time.Time) (time.Time, error) {
	for c.ctl.Busy() || c.player.Auto() {
		if err := c.Tick(now); err != nil {
			return now, err
		}
		now = now.Add(c.cfg.tickRate)
	}
	return now, nil
}

// Run ticks the cube from a time.Ticker until ctx is done.
func (c *Cube) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.cfg.tickRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if err := c.Tick(now); err != nil {
				return err
			}
		}
	}
}

// Gestures

// SetOrbit installs the camera orbit control paused during drags.
func (c *Cube) SetOrbit(o Orbit) {
	if c.gest != nil {
		c.gest.SetOrbit(o)
	}
}

// PointerDown starts a drag. It reports whether a cubie face was hit.
func (c *Cube) PointerDown(pt ScreenPoint) (bool, error) {
	if c.gest == nil {
		return false, ErrNoHitTester
	}
	return c.gest.Down(pt), nil
}

// PointerMove feeds a drag sample and returns the turn it started, if
// any.
func (c *Cube) PointerMove(pt ScreenPoint) (Move, bool) {
	if c.gest == nil {
		return Move{}, false
	}
	return c.gest.Move(pt)
}

// PointerUp ends the drag.
func (c *Cube) PointerUp() {
	if c.gest != nil {
		c.gest.Up()
	}
}

// scriptTurner lets the history player start turns without recording
// them a second time.
type scriptTurner struct{ c *Cube }

func (t scriptTurner) Busy() bool { return t.c.ctl.Busy() }

func (t scriptTurner) StartTurn(m cube.Move, speed float64, origin history.Origin) error {
	return t.c.start(m, speed*float64(m.Dir), origin)
}

// gestureTarget routes gesture turns through the manual gate.
type gestureTarget struct{ c *Cube }

func (t gestureTarget) Busy() bool          { return t.c.ctl.Busy() }
func (t gestureTarget) Offset() render.Vec3 { return t.c.asm.Offset() }

func (t gestureTarget) Turn(axis cube.Axis, layer int, step float64) error {
	return t.c.manual(axis, layer, step, OriginGesture)
}
