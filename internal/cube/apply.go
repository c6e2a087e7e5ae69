package cube

import "fmt"

// Validate checks that m can be applied to g.
func (g *Grid) Validate(m Move) error {
	if !m.Axis.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidAxis, m.Axis)
	}
	if !m.Dir.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, m.Dir)
	}
	if n := g.size.Extent(m.Axis); m.Layer < 0 || m.Layer >= n {
		return fmt.Errorf("%w: %s layer %d of %d", ErrLayerOutOfRange, m.Axis, m.Layer, n)
	}
	if !g.Turnable(m.Axis) {
		return fmt.Errorf("%w: %s turn on %s grid", ErrNonSquareLayer, m.Axis, g.size)
	}
	return nil
}

// Turnable reports whether layers perpendicular to axis are square, so
// a quarter turn maps the layer onto itself.
func (g *Grid) Turnable(axis Axis) bool {
	switch axis {
	case X:
		return g.size.H == g.size.D
	case Y:
		return g.size.W == g.size.D
	case Z:
		return g.size.W == g.size.H
	default:
		return false
	}
}

// Turn returns a new grid with m applied. g is left untouched.
//
// Every cell of the turned layer gathers the cubie whose rotated position
// lands on it, then permutes that cubie's stickers with the same axis and
// direction. Cells off the layer are copied as they are.
func (g *Grid) Turn(m Move) (*Grid, error) {
	if err := g.Validate(m); err != nil {
		return nil, err
	}

	n := g.size.Extent(inPlane(m.Axis))
	next := newEmpty(g.size)
	g.Each(func(p Pos, c Cubie) {
		if p.Coord(m.Axis) != m.Layer {
			next.cells[p.Z][p.Y][p.X] = c
			return
		}
		moved := g.At(source(p, m, n))
		moved.Stickers = Permute(moved.Stickers, m.Axis, m.Dir)
		next.cells[p.Z][p.Y][p.X] = moved
	})
	return next, nil
}

// TurnAll applies moves in order and returns the final grid.
func (g *Grid) TurnAll(moves []Move) (*Grid, error) {
	cur := g
	for i, m := range moves {
		next, err := cur.Turn(m)
		if err != nil {
			return nil, fmt.Errorf("move %d (%s): %w", i, m, err)
		}
		cur = next
	}
	return cur, nil
}

// inPlane returns one of the two axes lying in the plane of a layer
// turned about a. Both share the same extent on a turnable grid.
func inPlane(a Axis) Axis {
	if a == Y {
		return X
	}
	return Y
}

// source returns the cell whose cubie moves into p when m is applied.
// n is the extent of the turned layer's sides.
func source(p Pos, m Move, n int) Pos {
	switch m.Axis {
	case X:
		if m.Dir == CW {
			return Pos{X: p.X, Y: n - 1 - p.Z, Z: p.Y}
		}
		return Pos{X: p.X, Y: p.Z, Z: n - 1 - p.Y}
	case Y:
		if m.Dir == CW {
			return Pos{X: p.Z, Y: p.Y, Z: n - 1 - p.X}
		}
		return Pos{X: n - 1 - p.Z, Y: p.Y, Z: p.X}
	default:
		if m.Dir == CW {
			return Pos{X: n - 1 - p.Y, Y: p.X, Z: p.Z}
		}
		return Pos{X: p.Y, Y: n - 1 - p.X, Z: p.Z}
	}
}
