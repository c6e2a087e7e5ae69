package render

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/SeamusWaldron/cubesim/internal/cube"
)

// Assembly owns the visual proxies of one cube: one per grid cell,
// positioned symmetrically about the origin.
type Assembly struct {
	r       Renderer
	size    cube.Size
	offset  Vec3
	handles map[cube.Pos]Handle
}

// NewAssembly creates an empty assembly for a grid of the given size.
func NewAssembly(r Renderer, size cube.Size) *Assembly {
	return &Assembly{
		r:    r,
		size: size,
		offset: Vec3{
			X: float64(size.W-1) / 2,
			Y: float64(size.H-1) / 2,
			Z: float64(size.D-1) / 2,
		},
		handles: make(map[cube.Pos]Handle, size.Count()),
	}
}

// Offset returns the center of the grid in cell coordinates.
func (a *Assembly) Offset() Vec3 {
	return a.offset
}

// Local returns the assembly-local center of cell p.
func (a *Assembly) Local(p cube.Pos) Vec3 {
	return r3.Sub(Vec3{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}, a.offset)
}

// Handle returns the proxy currently drawn for cell p.
func (a *Assembly) Handle(p cube.Pos) (Handle, bool) {
	h, ok := a.handles[p]
	return h, ok
}

// Len returns the number of live proxies.
func (a *Assembly) Len() int {
	return len(a.handles)
}

// Rebuild destroys every proxy and creates fresh ones from g, attached
// to the root group.
func (a *Assembly) Rebuild(g *cube.Grid) {
	for p, h := range a.handles {
		a.r.Destroy(h)
		delete(a.handles, p)
	}
	root := a.r.Root()
	g.Each(func(p cube.Pos, c cube.Cubie) {
		h := a.r.CreateVisual(c.Stickers)
		a.r.Place(h, a.Local(p))
		a.r.AttachTo(h, root)
		a.handles[p] = h
	})
}

// Lift moves the proxies of one layer from the root group into pivot and
// returns them.
func (a *Assembly) Lift(axis cube.Axis, layer int, pivot Group) []Handle {
	var lifted []Handle
	for p, h := range a.handles {
		if p.Coord(axis) != layer {
			continue
		}
		a.r.Detach(h)
		a.r.AttachTo(h, pivot)
		lifted = append(lifted, h)
	}
	return lifted
}
