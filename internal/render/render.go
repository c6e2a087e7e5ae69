// Package render defines the narrow contract between the cube core and a
// scene renderer, plus the Assembly that keeps one visual proxy per grid
// cell.
package render

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/SeamusWaldron/cubesim/internal/cube"
)

// Vec3 is a point or direction in the cube's local frame.
type Vec3 = r3.Vec

// Component returns the coordinate of v along a.
func Component(v Vec3, a cube.Axis) float64 {
	switch a {
	case cube.X:
		return v.X
	case cube.Y:
		return v.Y
	default:
		return v.Z
	}
}

// Handle identifies a visual proxy owned by a Renderer.
type Handle int

// Group identifies a transform group owned by a Renderer.
type Group int

// Renderer is the scene the core drives. All calls come from the single
// goroutine that ticks the cube.
type Renderer interface {
	// CreateVisual builds a proxy painted with the given stickers. The
	// proxy starts detached.
	CreateVisual(s cube.Stickers) Handle
	// Destroy releases a proxy, detaching it first if needed.
	Destroy(h Handle)
	// Place sets a proxy's position inside its group.
	Place(h Handle, pos Vec3)
	// AttachTo makes g the parent of h.
	AttachTo(h Handle, g Group)
	// Detach removes h from its parent group.
	Detach(h Handle)
	// Root returns the main assembly group.
	Root() Group
	// NewGroup creates an empty pivot sharing the root's transform.
	NewGroup() Group
	// RemoveGroup drops a pivot group and its rotation.
	RemoveGroup(g Group)
	// RotateGroup adds delta radians of rotation about axis to g.
	RotateGroup(g Group, axis cube.Axis, delta float64)
	// SetRootTransform places and orients the whole assembly, pivots
	// included. rot holds XYZ Euler angles in radians.
	SetRootTransform(pos, rot Vec3)
}

// ScreenPoint is a pointer position in renderer-defined screen units.
type ScreenPoint struct {
	X, Y float64
}

// Hit is the result of a pointer hit test against the cube.
type Hit struct {
	// Handle is the struck proxy. Hit testers that do not track
	// proxies, such as a terminal net, leave it zero.
	Handle Handle
	// Face is the slot of the proxy face that was struck.
	Face cube.Face
	// Position is the struck proxy's center in the cube's local frame.
	Position Vec3
}

// HitTester maps a screen point to the proxy face under it.
type HitTester interface {
	HitTest(p ScreenPoint) (Hit, bool)
}
