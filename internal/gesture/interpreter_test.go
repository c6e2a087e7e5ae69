package gesture

import (
	"errors"
	"testing"

	"github.com/SeamusWaldron/cubesim/internal/anim"
	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/render"
	"github.com/SeamusWaldron/cubesim/internal/scene"
)

type turnCall struct {
	axis  cube.Axis
	layer int
	step  float64
}

type fakeTarget struct {
	busy   bool
	offset render.Vec3
	calls  []turnCall
	err    error
}

func (f *fakeTarget) Busy() bool          { return f.busy }
func (f *fakeTarget) Offset() render.Vec3 { return f.offset }
func (f *fakeTarget) Turn(axis cube.Axis, layer int, step float64) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, turnCall{axis, layer, step})
	return nil
}

// fakeHits answers hit tests from a fixed table keyed by screen X.
type fakeHits map[float64]render.Hit

func (f fakeHits) HitTest(p render.ScreenPoint) (render.Hit, bool) {
	h, ok := f[p.X]
	return h, ok
}

type fakeOrbit struct{ enabled []bool }

func (o *fakeOrbit) SetEnabled(e bool) { o.enabled = append(o.enabled, e) }

func pt(x float64) render.ScreenPoint { return render.ScreenPoint{X: x} }

func TestResolveTable(t *testing.T) {
	tests := []struct {
		face cube.Face
		d    render.Vec3
		axis cube.Axis
		sign int
	}{
		{cube.Back, render.Vec3{Y: 1}, cube.Z, -1},
		{cube.Back, render.Vec3{Z: 1}, cube.Y, 1},
		{cube.Front, render.Vec3{Y: 1}, cube.Z, 1},
		{cube.Front, render.Vec3{Z: -1}, cube.Y, 1},
		{cube.Up, render.Vec3{X: 1}, cube.Z, 1},
		{cube.Up, render.Vec3{Z: 2}, cube.X, -1},
		{cube.Down, render.Vec3{X: 1}, cube.Z, -1},
		{cube.Down, render.Vec3{Z: -1}, cube.X, -1},
		{cube.Right, render.Vec3{X: 1}, cube.Y, -1},
		{cube.Right, render.Vec3{Y: 1}, cube.X, 1},
		{cube.Left, render.Vec3{X: 1}, cube.Y, 1},
		{cube.Left, render.Vec3{Y: -1}, cube.X, 1},
	}
	for _, tt := range tests {
		axis, sign, reason := Resolve(tt.face, tt.d)
		if reason != 0 || axis != tt.axis || sign != tt.sign {
			t.Errorf("Resolve(%s, %v) = %s %d %s, want %s %d", tt.face, tt.d, axis, sign, reason, tt.axis, tt.sign)
		}
	}
}

func TestResolveDiscards(t *testing.T) {
	if _, _, r := Resolve(cube.Right, render.Vec3{X: 1, Y: 1}); r != Diagonal {
		t.Errorf("diagonal delta reason = %s", r)
	}
	if _, _, r := Resolve(cube.Right, render.Vec3{Z: 1}); r != AlongNormal {
		t.Errorf("normal delta reason = %s", r)
	}
	if _, _, r := Resolve(cube.Up, render.Vec3{X: 0.2, Y: 0.1}); r != Diagonal {
		t.Errorf("sub-cell delta reason = %s", r)
	}
}

func TestDragEmitsOneTurn(t *testing.T) {
	target := &fakeTarget{offset: render.Vec3{X: 1, Y: 1, Z: 1}}
	hits := fakeHits{
		0: {Face: cube.Right, Position: render.Vec3{X: -1, Y: 0, Z: 1}},
		1: {Face: cube.Right, Position: render.Vec3{X: 0, Y: 0, Z: 1}},
		2: {Face: cube.Right, Position: render.Vec3{X: 1, Y: 0, Z: 1}},
	}
	orbit := &fakeOrbit{}
	in := New(target, hits)
	in.SetOrbit(orbit)

	if !in.Down(pt(0)) {
		t.Fatal("Down should anchor on a hit")
	}
	if _, ok := in.Move(pt(0)); ok {
		t.Error("no turn expected while still on the anchor cell")
	}
	m, ok := in.Move(pt(1))
	if !ok {
		t.Fatal("drag to the next cell should turn")
	}
	if m != (cube.Move{Axis: cube.Y, Layer: 1, Dir: cube.CCW}) {
		t.Errorf("move = %s, want y1", m)
	}
	if _, ok := in.Move(pt(2)); ok {
		t.Error("a spent gesture must not turn again before Up")
	}
	in.Up()

	if len(target.calls) != 1 {
		t.Fatalf("turn calls = %d, want 1", len(target.calls))
	}
	if c := target.calls[0]; c.step != float64(anim.Slow) {
		t.Errorf("gesture step = %v, want %v", c.step, float64(anim.Slow))
	}
	if len(orbit.enabled) != 2 || orbit.enabled[0] || !orbit.enabled[1] {
		t.Errorf("orbit toggles = %v, want [false true]", orbit.enabled)
	}
}

func TestDownMissKeepsOrbit(t *testing.T) {
	orbit := &fakeOrbit{}
	in := New(&fakeTarget{}, fakeHits{})
	in.SetOrbit(orbit)
	if in.Down(pt(5)) {
		t.Error("Down on a miss should not anchor")
	}
	in.Up()
	if len(orbit.enabled) != 0 {
		t.Errorf("orbit toggled on a miss: %v", orbit.enabled)
	}
}

func TestMoveIgnoredWhileBusy(t *testing.T) {
	target := &fakeTarget{busy: true}
	hits := fakeHits{
		0: {Face: cube.Up, Position: render.Vec3{X: 0, Y: 1}},
		1: {Face: cube.Up, Position: render.Vec3{X: 1, Y: 1}},
	}
	in := New(target, hits)
	in.Down(pt(0))
	if _, ok := in.Move(pt(1)); ok {
		t.Error("Move should be ignored while the cube is turning")
	}
	target.busy = false
	if _, ok := in.Move(pt(1)); !ok {
		t.Error("the same drag should resolve once the cube is idle")
	}
}

func TestDiscardsReachListener(t *testing.T) {
	target := &fakeTarget{}
	hits := fakeHits{
		0: {Face: cube.Right, Position: render.Vec3{X: 0, Y: 0, Z: 1}},
		1: {Face: cube.Right, Position: render.Vec3{X: 1, Y: 1, Z: 1}},
		2: {Face: cube.Up, Position: render.Vec3{X: 0, Y: 1, Z: 0}},
	}
	var got []Reason
	in := New(target, hits)
	in.OnDiscard(func(d Discard) { got = append(got, d.Reason) })

	in.Down(pt(0))
	in.Move(pt(1))
	in.Move(pt(2))
	target.err = errors.New("rejected")
	hits[3] = render.Hit{Face: cube.Right, Position: render.Vec3{X: 1, Y: 0, Z: 1}}
	in.Move(pt(3))

	want := []Reason{Diagonal, Diagonal, Rejected}
	if len(got) != len(want) {
		t.Fatalf("discards = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("discard %d = %s, want %s", i, got[i], want[i])
		}
	}
	if len(target.calls) != 0 {
		t.Error("no turn should have been made")
	}
}

func TestAlongNormalDiscard(t *testing.T) {
	hits := fakeHits{
		0: {Face: cube.Right, Position: render.Vec3{X: 0, Y: 0, Z: 1}},
		1: {Face: cube.Right, Position: render.Vec3{X: 0, Y: 0, Z: 0}},
	}
	var got []Reason
	in := New(&fakeTarget{}, hits)
	in.OnDiscard(func(d Discard) { got = append(got, d.Reason) })
	in.Down(pt(0))
	in.Move(pt(1))
	if len(got) != 1 || got[0] != AlongNormal {
		t.Errorf("discards = %v, want [along_normal]", got)
	}
}

func TestDragOnScene(t *testing.T) {
	size := cube.Size{W: 3, H: 3, D: 3}
	g, err := cube.NewGrid(size)
	if err != nil {
		t.Fatal(err)
	}
	sc := scene.New()
	asm := render.NewAssembly(sc, size)
	asm.Rebuild(g)

	from, _ := sc.Camera.Project(render.Vec3{X: 0, Y: 1, Z: 1 + scene.HalfSize})
	to, _ := sc.Camera.Project(render.Vec3{X: 0, Y: 0, Z: 1 + scene.HalfSize})

	target := &fakeTarget{offset: asm.Offset()}
	in := New(target, sc)
	if !in.Down(from) {
		t.Fatal("expected the top-center sticker to be hit")
	}
	m, ok := in.Move(to)
	if !ok {
		t.Fatal("drag down one cell should turn")
	}
	// Dragging down the +z face tilts the middle x layer forward.
	if m != (cube.Move{Axis: cube.X, Layer: 1, Dir: cube.CCW}) {
		t.Errorf("move = %s, want x1", m)
	}
}
