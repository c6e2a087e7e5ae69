package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/render"
)

// Camera is a perspective camera looking down -z.
type Camera struct {
	Pos    render.Vec3
	FOV    float64 // vertical field of view in radians
	Aspect float64
}

// DefaultCamera sits 10 units in front of the origin with a 75 degree
// field of view.
func DefaultCamera() Camera {
	return Camera{
		Pos:    render.Vec3{Z: 10},
		FOV:    75 * math.Pi / 180,
		Aspect: 1,
	}
}

// Ray returns the origin and direction of the ray through p, given in
// normalized device coordinates (-1..1 on both axes, +y up).
func (c Camera) Ray(p render.ScreenPoint) (origin, dir render.Vec3) {
	t := math.Tan(c.FOV / 2)
	return c.Pos, r3.Unit(render.Vec3{X: p.X * t * c.Aspect, Y: p.Y * t, Z: -1})
}

// Project returns the normalized device coordinates of a world point.
// ok is false for points behind the camera.
func (c Camera) Project(w render.Vec3) (render.ScreenPoint, bool) {
	v := r3.Sub(w, c.Pos)
	if v.Z >= 0 {
		return render.ScreenPoint{}, false
	}
	t := math.Tan(c.FOV / 2)
	return render.ScreenPoint{
		X: v.X / (-v.Z * t * c.Aspect),
		Y: v.Y / (-v.Z * t),
	}, true
}

// HitTest implements render.HitTester. It returns the nearest attached
// proxy face under p.
func (s *Scene) HitTest(p render.ScreenPoint) (render.Hit, bool) {
	origin, dir := s.Camera.Ray(p)

	var best render.Hit
	bestT := math.Inf(1)
	found := false
	for h, px := range s.proxies {
		if px.parent == 0 {
			continue
		}
		inv := inverse(s.worldRot(px.parent))
		o := r3.Sub(inv.Rotate(r3.Sub(origin, s.rootPos)), px.pos)
		d := inv.Rotate(dir)

		t, face, ok := intersectBox(o, d, HalfSize)
		if !ok || t >= bestT {
			continue
		}
		bestT = t
		best = render.Hit{Handle: h, Face: face, Position: px.pos}
		found = true
	}
	return best, found
}

// intersectBox intersects a ray with an axis-aligned box centered on the
// origin and returns the entry distance and the face slot entered.
func intersectBox(o, d render.Vec3, half float64) (float64, cube.Face, bool) {
	tNear, tFar := math.Inf(-1), math.Inf(1)
	var entry cube.Face

	for _, a := range cube.Axes {
		oa, da := render.Component(o, a), render.Component(d, a)
		if math.Abs(da) < 1e-12 {
			if math.Abs(oa) > half {
				return 0, 0, false
			}
			continue
		}
		t1 := (-half - oa) / da
		t2 := (half - oa) / da
		// Entering through the face whose normal opposes the ray.
		face := cube.Face(2*int(a) + 1)
		if t1 > t2 {
			t1, t2 = t2, t1
			face = cube.Face(2 * int(a))
		}
		if t1 > tNear {
			tNear, entry = t1, face
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar {
			return 0, 0, false
		}
	}
	if tNear < 0 {
		return 0, 0, false
	}
	return tNear, entry, true
}
