// Package cube provides the logical N×N×N cubie model: sticker
// permutations, the cubie grid and the face-turn engine.
package cube

import "fmt"

// Color identifies one of the six sticker colors.
// A solved cubie holds color i on face slot i.
type Color byte

const (
	Green  Color = 0 // Back when solved
	White  Color = 1 // Front when solved
	Orange Color = 2 // Up when solved
	Red    Color = 3 // Down when solved
	Blue   Color = 4 // Right when solved
	Yellow Color = 5 // Left when solved
)

func (c Color) String() string {
	switch c {
	case Green:
		return "G"
	case White:
		return "W"
	case Orange:
		return "O"
	case Red:
		return "R"
	case Blue:
		return "B"
	case Yellow:
		return "Y"
	default:
		return "?"
	}
}

// Face is one of the six fixed face slots of a cubie.
//
// In the cube's local frame Back and Front are the +x and -x faces, Up
// and Down are ±y, Right and Left are ±z. The slot index is therefore
// 2*axis for the positive face and 2*axis+1 for the negative one.
type Face int

const (
	Back  Face = 0
	Front Face = 1
	Up    Face = 2
	Down  Face = 3
	Right Face = 4
	Left  Face = 5
)

// Faces lists every face slot in index order.
var Faces = [6]Face{Back, Front, Up, Down, Right, Left}

func (f Face) String() string {
	switch f {
	case Back:
		return "back"
	case Front:
		return "front"
	case Up:
		return "up"
	case Down:
		return "down"
	case Right:
		return "right"
	case Left:
		return "left"
	default:
		return "?"
	}
}

// Axis returns the axis the face normal lies on.
func (f Face) Axis() Axis {
	return Axis(f / 2)
}

// Sign returns +1 for faces whose normal points along the positive axis
// and -1 otherwise.
func (f Face) Sign() int {
	if f%2 == 0 {
		return 1
	}
	return -1
}

// Stickers assigns a color to each face slot, indexed by Face.
type Stickers [6]Color

// SolvedStickers returns the identity assignment [0,1,2,3,4,5].
func SolvedStickers() Stickers {
	return Stickers{Green, White, Orange, Red, Blue, Yellow}
}

// Valid reports whether s holds each of the six colors exactly once.
func (s Stickers) Valid() bool {
	var seen [6]bool
	for _, c := range s {
		if c > Yellow || seen[c] {
			return false
		}
		seen[c] = true
	}
	return true
}

// Cubie is one unit of the puzzle. ID is fixed at construction; the
// stickers are relabeled by every turn that includes the cubie.
type Cubie struct {
	ID       int
	Stickers Stickers
}

// Size holds the grid extents along x (width), y (height) and z (depth).
type Size struct {
	W, H, D int
}

// Extent returns the number of layers along a.
func (s Size) Extent(a Axis) int {
	switch a {
	case X:
		return s.W
	case Y:
		return s.H
	case Z:
		return s.D
	default:
		return 0
	}
}

// Count returns the number of cubies in a grid of this size.
func (s Size) Count() int {
	return s.W * s.H * s.D
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%dx%d", s.W, s.H, s.D)
}

// Pos is a cell coordinate in the grid.
type Pos struct {
	X, Y, Z int
}

// Coord returns the coordinate of p along a.
func (p Pos) Coord(a Axis) int {
	switch a {
	case X:
		return p.X
	case Y:
		return p.Y
	default:
		return p.Z
	}
}

// Grid is a fixed-size 3-dimensional array of cubies indexed (z, y, x).
// A Grid is never modified once built; turns return a new Grid.
type Grid struct {
	size  Size
	cells [][][]Cubie
}

// NewGrid creates a solved grid. Cubie IDs follow construction order:
// z-major, then y, then x.
func NewGrid(size Size) (*Grid, error) {
	if size.W < 1 || size.H < 1 || size.D < 1 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSize, size)
	}
	return solvedGrid(size), nil
}

// solvedGrid builds a solved grid of an already validated size.
func solvedGrid(size Size) *Grid {
	g := newEmpty(size)
	id := 0
	g.Each(func(p Pos, _ Cubie) {
		g.cells[p.Z][p.Y][p.X] = Cubie{ID: id, Stickers: SolvedStickers()}
		id++
	})
	return g
}

// newEmpty allocates a grid of zero-valued cells.
func newEmpty(size Size) *Grid {
	cells := make([][][]Cubie, size.D)
	for z := range cells {
		cells[z] = make([][]Cubie, size.H)
		for y := range cells[z] {
			cells[z][y] = make([]Cubie, size.W)
		}
	}
	return &Grid{size: size, cells: cells}
}

// Size returns the grid extents.
func (g *Grid) Size() Size {
	return g.size
}

// Contains reports whether p lies inside the grid.
func (g *Grid) Contains(p Pos) bool {
	return p.X >= 0 && p.X < g.size.W &&
		p.Y >= 0 && p.Y < g.size.H &&
		p.Z >= 0 && p.Z < g.size.D
}

// At returns the cubie stored at p. p must be inside the grid.
func (g *Grid) At(p Pos) Cubie {
	return g.cells[p.Z][p.Y][p.X]
}

// Each calls fn for every cell in z, y, x order.
func (g *Grid) Each(fn func(p Pos, c Cubie)) {
	for z := 0; z < g.size.D; z++ {
		for y := 0; y < g.size.H; y++ {
			for x := 0; x < g.size.W; x++ {
				fn(Pos{X: x, Y: y, Z: z}, g.cells[z][y][x])
			}
		}
	}
}

// Equal reports whether both grids hold the same cubies with the same
// stickers in every cell.
func (g *Grid) Equal(o *Grid) bool {
	if o == nil || g.size != o.size {
		return false
	}
	equal := true
	g.Each(func(p Pos, c Cubie) {
		if o.At(p) != c {
			equal = false
		}
	})
	return equal
}

// IsIdentity reports whether every cubie is back in its home cell with
// the identity sticker assignment.
func (g *Grid) IsIdentity() bool {
	solved, err := NewGrid(g.size)
	if err != nil {
		return false
	}
	return g.Equal(solved)
}

// IsSolved reports whether every outer face shows a single color.
// Unlike IsIdentity this ignores interior cubies and the spin of
// center pieces, matching what a user sees.
func (g *Grid) IsSolved() bool {
	for _, f := range Faces {
		first := true
		var want Color
		ok := true
		g.Each(func(p Pos, c Cubie) {
			if !g.onFace(p, f) {
				return
			}
			if first {
				want, first = c.Stickers[f], false
				return
			}
			if c.Stickers[f] != want {
				ok = false
			}
		})
		if !ok {
			return false
		}
	}
	return true
}

// onFace reports whether the cell p shows its f slot on the outside.
func (g *Grid) onFace(p Pos, f Face) bool {
	coord := p.Coord(f.Axis())
	if f.Sign() > 0 {
		return coord == g.size.Extent(f.Axis())-1
	}
	return coord == 0
}

// Visible returns the color shown by the cell p on outer face f.
func (g *Grid) Visible(p Pos, f Face) (Color, bool) {
	if !g.Contains(p) || !g.onFace(p, f) {
		return 0, false
	}
	return g.At(p).Stickers[f], true
}

// String renders each layer as rows of cubie IDs.
func (g *Grid) String() string {
	result := ""
	for z := 0; z < g.size.D; z++ {
		result += fmt.Sprintf("z=%d\n", z)
		for y := g.size.H - 1; y >= 0; y-- {
			for x := 0; x < g.size.W; x++ {
				result += fmt.Sprintf("%3d ", g.cells[z][y][x].ID)
			}
			result += "\n"
		}
	}
	return result
}
