package scene

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/render"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func nearVec(a, b render.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func buildCube(t *testing.T, n int) (*Scene, *render.Assembly, *cube.Grid) {
	t.Helper()
	size := cube.Size{W: n, H: n, D: n}
	g, err := cube.NewGrid(size)
	if err != nil {
		t.Fatal(err)
	}
	s := New()
	asm := render.NewAssembly(s, size)
	asm.Rebuild(g)
	return s, asm, g
}

func TestRebuildCreatesOneProxyPerCell(t *testing.T) {
	s, asm, g := buildCube(t, 3)
	if s.Len() != 27 || asm.Len() != 27 {
		t.Fatalf("got %d proxies (%d in assembly), want 27", s.Len(), asm.Len())
	}
	if !nearVec(asm.Local(cube.Pos{}), render.Vec3{X: -1, Y: -1, Z: -1}) {
		t.Errorf("corner cell local = %v", asm.Local(cube.Pos{}))
	}

	asm.Rebuild(g)
	if s.Len() != 27 {
		t.Errorf("rebuild leaked proxies: %d", s.Len())
	}
	h, _ := asm.Handle(cube.Pos{X: 2, Y: 2, Z: 2})
	if parent, ok := s.Parent(h); !ok || parent != s.Root() {
		t.Error("rebuilt proxy should be attached to the root group")
	}
}

func TestLiftMovesLayerIntoPivot(t *testing.T) {
	s, asm, _ := buildCube(t, 3)
	pivot := s.NewGroup()
	lifted := asm.Lift(cube.X, 2, pivot)
	if len(lifted) != 9 {
		t.Fatalf("lifted %d proxies, want 9", len(lifted))
	}
	for _, h := range lifted {
		if parent, _ := s.Parent(h); parent != pivot {
			t.Errorf("proxy %d parent = %d, want pivot %d", h, parent, pivot)
		}
	}
	s.RemoveGroup(pivot)
	if s.Groups() != 1 {
		t.Errorf("groups after remove = %d, want 1", s.Groups())
	}
}

func TestRotateGroupTurnsProxies(t *testing.T) {
	s, asm, _ := buildCube(t, 3)
	pivot := s.NewGroup()
	asm.Lift(cube.Z, 2, pivot)
	s.RotateGroup(pivot, cube.Z, math.Pi/4)
	s.RotateGroup(pivot, cube.Z, math.Pi/4)

	if got := s.Angle(pivot); !near(got, math.Pi/2) {
		t.Errorf("pivot angle = %v, want pi/2", got)
	}
	h, _ := asm.Handle(cube.Pos{X: 2, Y: 1, Z: 2}) // local (1, 0, 1)
	got, ok := s.WorldPosition(h)
	if !ok || !nearVec(got, render.Vec3{X: 0, Y: 1, Z: 1}) {
		t.Errorf("world position = %v, want (0, 1, 1)", got)
	}
}

func TestPivotComposesWithRootTransform(t *testing.T) {
	s, asm, _ := buildCube(t, 3)
	s.SetRootTransform(render.Vec3{X: 0.5}, render.Vec3{Y: math.Pi / 2})
	pivot := s.NewGroup()
	asm.Lift(cube.Z, 2, pivot)
	s.RotateGroup(pivot, cube.Z, math.Pi/2)

	local := render.Vec3{X: 1, Y: 0, Z: 1}
	want := r3.Rotate(r3.Rotate(local, math.Pi/2, r3.Vec{Z: 1}), math.Pi/2, r3.Vec{Y: 1})
	want = r3.Add(want, render.Vec3{X: 0.5})

	h, _ := asm.Handle(cube.Pos{X: 2, Y: 1, Z: 2})
	got, ok := s.WorldPosition(h)
	if !ok || !nearVec(got, want) || !nearVec(got, render.Vec3{X: 1.5, Y: 1, Z: 0}) {
		t.Errorf("world position = %v, want %v", got, want)
	}
}

func TestRayIsUnitLength(t *testing.T) {
	c := DefaultCamera()
	for _, p := range []render.ScreenPoint{{}, {X: 1, Y: 1}, {X: -0.3, Y: 0.7}} {
		o, d := c.Ray(p)
		if o != c.Pos {
			t.Errorf("origin = %v, want camera position", o)
		}
		if !near(r3.Norm(d), 1) || d.Z >= 0 {
			t.Errorf("Ray(%v) dir = %v", p, d)
		}
	}
}

func TestHitTestCenterHitsRightFace(t *testing.T) {
	s, _, _ := buildCube(t, 3)
	hit, ok := s.HitTest(render.ScreenPoint{})
	if !ok {
		t.Fatal("center of screen should hit the cube")
	}
	if hit.Face != cube.Right {
		t.Errorf("face = %s, want right (+z)", hit.Face)
	}
	if !nearVec(hit.Position, render.Vec3{Z: 1}) {
		t.Errorf("position = %v, want (0, 0, 1)", hit.Position)
	}
}

func TestHitTestFollowsRootRotation(t *testing.T) {
	s, _, _ := buildCube(t, 3)
	s.SetRootTransform(render.Vec3{}, render.Vec3{Y: math.Pi / 2})
	hit, ok := s.HitTest(render.ScreenPoint{})
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Face != cube.Front {
		t.Errorf("face = %s, want front (-x)", hit.Face)
	}
	if !nearVec(hit.Position, render.Vec3{X: -1}) {
		t.Errorf("position = %v, want (-1, 0, 0)", hit.Position)
	}
}

func TestHitTestProjectedCells(t *testing.T) {
	s, _, _ := buildCube(t, 3)
	// The +z face of cell (x=2, y=0) sits at world (1, -1, 1.45).
	sp, ok := s.Camera.Project(render.Vec3{X: 1, Y: -1, Z: 1 + HalfSize})
	if !ok {
		t.Fatal("point should be in front of the camera")
	}
	hit, ok := s.HitTest(sp)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Face != cube.Right || !nearVec(hit.Position, render.Vec3{X: 1, Y: -1, Z: 1}) {
		t.Errorf("hit = %+v", hit)
	}
}

func TestHitTestMiss(t *testing.T) {
	s, _, _ := buildCube(t, 3)
	if _, ok := s.HitTest(render.ScreenPoint{X: 0.95, Y: 0.95}); ok {
		t.Error("corner of screen should miss the cube")
	}
}

func TestDetachedProxiesAreNotHit(t *testing.T) {
	s := New()
	h := s.CreateVisual(cube.SolvedStickers())
	if _, ok := s.HitTest(render.ScreenPoint{}); ok {
		t.Error("detached proxy should not be hit")
	}
	s.AttachTo(h, s.Root())
	if hit, ok := s.HitTest(render.ScreenPoint{}); !ok || hit.Handle != h {
		t.Error("attached proxy at origin should be hit")
	}
}
