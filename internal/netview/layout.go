// Package netview draws a cube as an unfolded net in the terminal and
// maps terminal cells back to the cubie faces under them.
//
// The net is laid out as a cross:
//
//	      Up
//	Left Front Right Back
//	      Down
//
// Each face is seen from outside the cube. On the four side faces right
// follows the way around the belt and down is -y; Up and Down share the
// Front face's right direction (+z).
package netview

import (
	"github.com/SeamusWaldron/cubesim/internal/cube"
)

// StickerWidth is the number of terminal columns one sticker occupies.
const StickerWidth = 2

// faceGap is the number of blank columns between faces in the belt.
const faceGap = 1

// Rect is a face's area on screen in terminal cells.
type Rect struct {
	Col, Row   int // top-left corner
	Cols, Rows int // size in stickers
}

// Layout places the six faces of a grid at fixed terminal cells.
type Layout struct {
	size  cube.Size
	rects [6]Rect
}

// NewLayout computes the net layout for a grid of the given size. The
// net's top-left corner is at terminal cell (col, row).
func NewLayout(size cube.Size, col, row int) Layout {
	w, h, d := size.W, size.H, size.D

	leftCol := col
	frontCol := leftCol + w*StickerWidth + faceGap
	rightCol := frontCol + d*StickerWidth + faceGap
	backCol := rightCol + w*StickerWidth + faceGap

	beltRow := row + w + 1
	downRow := beltRow + h + 1

	var l Layout
	l.size = size
	l.rects[cube.Up] = Rect{Col: frontCol, Row: row, Cols: d, Rows: w}
	l.rects[cube.Left] = Rect{Col: leftCol, Row: beltRow, Cols: w, Rows: h}
	l.rects[cube.Front] = Rect{Col: frontCol, Row: beltRow, Cols: d, Rows: h}
	l.rects[cube.Right] = Rect{Col: rightCol, Row: beltRow, Cols: w, Rows: h}
	l.rects[cube.Back] = Rect{Col: backCol, Row: beltRow, Cols: d, Rows: h}
	l.rects[cube.Down] = Rect{Col: frontCol, Row: downRow, Cols: d, Rows: w}
	return l
}

// Size returns the grid size the layout was built for.
func (l Layout) Size() cube.Size {
	return l.size
}

// Rect returns the screen area of face f.
func (l Layout) Rect(f cube.Face) Rect {
	return l.rects[f]
}

// Width returns the width of the whole net in terminal columns.
func (l Layout) Width() int {
	back := l.rects[cube.Back]
	return back.Col + back.Cols*StickerWidth - l.rects[cube.Left].Col
}

// Height returns the height of the whole net in terminal rows.
func (l Layout) Height() int {
	down := l.rects[cube.Down]
	return down.Row + down.Rows - l.rects[cube.Up].Row
}

// Cell returns the grid cell shown by sticker (i, j) of face f, where i
// counts columns to the right and j rows down.
func (l Layout) Cell(f cube.Face, i, j int) cube.Pos {
	w, h, d := l.size.W, l.size.H, l.size.D
	switch f {
	case cube.Front:
		return cube.Pos{X: 0, Y: h - 1 - j, Z: i}
	case cube.Right:
		return cube.Pos{X: i, Y: h - 1 - j, Z: d - 1}
	case cube.Back:
		return cube.Pos{X: w - 1, Y: h - 1 - j, Z: d - 1 - i}
	case cube.Left:
		return cube.Pos{X: w - 1 - i, Y: h - 1 - j, Z: 0}
	case cube.Up:
		return cube.Pos{X: w - 1 - j, Y: h - 1, Z: i}
	default: // Down
		return cube.Pos{X: j, Y: 0, Z: i}
	}
}

// At returns the face and grid cell under terminal cell (col, row).
func (l Layout) At(col, row int) (cube.Face, cube.Pos, bool) {
	for _, f := range cube.Faces {
		r := l.rects[f]
		if row < r.Row || row >= r.Row+r.Rows {
			continue
		}
		if col < r.Col || col >= r.Col+r.Cols*StickerWidth {
			continue
		}
		i := (col - r.Col) / StickerWidth
		j := row - r.Row
		return f, l.Cell(f, i, j), true
	}
	return 0, cube.Pos{}, false
}
