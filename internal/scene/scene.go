// Package scene is a headless scene graph implementing the render
// contract: proxies in groups, quaternion group transforms and a
// perspective ray hit test. It backs the headless CLI and the tests.
package scene

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/render"
)

// HalfSize is half the edge length of a cubie proxy. Proxies are drawn
// slightly smaller than a cell so gaps show between them.
const HalfSize = 0.45

type proxy struct {
	stickers cube.Stickers
	pos      render.Vec3
	parent   render.Group
}

type group struct {
	orient r3.Rotation
}

// Scene holds every proxy and group of one cube.
type Scene struct {
	proxies map[render.Handle]*proxy
	groups  map[render.Group]*group
	root    render.Group

	nextHandle render.Handle
	nextGroup  render.Group

	rootPos render.Vec3
	rootRot r3.Rotation

	Camera Camera
}

// New creates an empty scene with the default camera.
func New() *Scene {
	s := &Scene{
		proxies: make(map[render.Handle]*proxy),
		groups:  make(map[render.Group]*group),
		rootRot: identity(),
		Camera:  DefaultCamera(),
	}
	s.root = s.NewGroup()
	return s
}

// CreateVisual implements render.Renderer.
func (s *Scene) CreateVisual(st cube.Stickers) render.Handle {
	s.nextHandle++
	s.proxies[s.nextHandle] = &proxy{stickers: st}
	return s.nextHandle
}

// Destroy implements render.Renderer.
func (s *Scene) Destroy(h render.Handle) {
	delete(s.proxies, h)
}

// Place implements render.Renderer.
func (s *Scene) Place(h render.Handle, pos render.Vec3) {
	if p, ok := s.proxies[h]; ok {
		p.pos = pos
	}
}

// AttachTo implements render.Renderer.
func (s *Scene) AttachTo(h render.Handle, g render.Group) {
	p, ok := s.proxies[h]
	if !ok {
		return
	}
	if _, ok := s.groups[g]; !ok {
		return
	}
	p.parent = g
}

// Detach implements render.Renderer.
func (s *Scene) Detach(h render.Handle) {
	if p, ok := s.proxies[h]; ok {
		p.parent = 0
	}
}

// Root implements render.Renderer.
func (s *Scene) Root() render.Group {
	return s.root
}

// NewGroup implements render.Renderer.
func (s *Scene) NewGroup() render.Group {
	s.nextGroup++
	s.groups[s.nextGroup] = &group{orient: identity()}
	return s.nextGroup
}

// RemoveGroup implements render.Renderer. Proxies still attached to the
// group become detached. The root group cannot be removed.
func (s *Scene) RemoveGroup(g render.Group) {
	if g == s.root {
		return
	}
	for _, p := range s.proxies {
		if p.parent == g {
			p.parent = 0
		}
	}
	delete(s.groups, g)
}

// RotateGroup implements render.Renderer.
func (s *Scene) RotateGroup(g render.Group, axis cube.Axis, delta float64) {
	grp, ok := s.groups[g]
	if !ok {
		return
	}
	grp.orient = compose(grp.orient, r3.NewRotation(delta, unit(axis)))
}

// SetRootTransform implements render.Renderer.
func (s *Scene) SetRootTransform(pos, rot render.Vec3) {
	s.rootPos = pos
	s.rootRot = fromEuler(rot)
}

// Len returns the number of live proxies.
func (s *Scene) Len() int {
	return len(s.proxies)
}

// Groups returns the number of groups, the root included.
func (s *Scene) Groups() int {
	return len(s.groups)
}

// Parent returns the group h is attached to.
func (s *Scene) Parent(h render.Handle) (render.Group, bool) {
	p, ok := s.proxies[h]
	if !ok || p.parent == 0 {
		return 0, false
	}
	return p.parent, true
}

// Stickers returns the colors a proxy was created with.
func (s *Scene) Stickers(h render.Handle) (cube.Stickers, bool) {
	p, ok := s.proxies[h]
	if !ok {
		return cube.Stickers{}, false
	}
	return p.stickers, true
}

// Angle returns the rotation angle of group g in radians.
func (s *Scene) Angle(g render.Group) float64 {
	grp, ok := s.groups[g]
	if !ok {
		return 0
	}
	r := math.Max(-1, math.Min(1, math.Abs(grp.orient.Real)))
	return 2 * math.Acos(r)
}

// WorldPosition returns the world-space center of an attached proxy.
func (s *Scene) WorldPosition(h render.Handle) (render.Vec3, bool) {
	p, ok := s.proxies[h]
	if !ok || p.parent == 0 {
		return render.Vec3{}, false
	}
	return r3.Add(s.worldRot(p.parent).Rotate(p.pos), s.rootPos), true
}

// worldRot returns the rotation from a group's frame to world space.
func (s *Scene) worldRot(g render.Group) r3.Rotation {
	return compose(s.rootRot, s.groups[g].orient)
}

func identity() r3.Rotation {
	return r3.Rotation{Real: 1}
}

// compose returns the rotation applying b first, then a.
func compose(a, b r3.Rotation) r3.Rotation {
	return r3.Rotation(quat.Mul(quat.Number(a), quat.Number(b)))
}

func inverse(r r3.Rotation) r3.Rotation {
	return r3.Rotation(quat.Conj(quat.Number(r)))
}

func unit(axis cube.Axis) r3.Vec {
	switch axis {
	case cube.X:
		return r3.Vec{X: 1}
	case cube.Y:
		return r3.Vec{Y: 1}
	default:
		return r3.Vec{Z: 1}
	}
}

// fromEuler converts XYZ-order Euler angles to a rotation.
func fromEuler(rot render.Vec3) r3.Rotation {
	q := compose(r3.NewRotation(rot.X, unit(cube.X)), r3.NewRotation(rot.Y, unit(cube.Y)))
	return compose(q, r3.NewRotation(rot.Z, unit(cube.Z)))
}
