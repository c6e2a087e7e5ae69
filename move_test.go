package cubesim

import (
	"errors"
	"testing"

	"github.com/SeamusWaldron/cubesim/internal/cube"
)

func TestFaceTurnLayers(t *testing.T) {
	size := Size{W: 4, H: 4, D: 4}
	tests := []struct {
		face Face
		want Move
	}{
		{Right, Move{Axis: Z, Layer: 3, Dir: CW}},
		{Left, Move{Axis: Z, Layer: 0, Dir: CCW}},
		{Up, Move{Axis: Y, Layer: 3, Dir: CW}},
		{Down, Move{Axis: Y, Layer: 0, Dir: CCW}},
		{Back, Move{Axis: X, Layer: 3, Dir: CW}},
		{Front, Move{Axis: X, Layer: 0, Dir: CCW}},
	}

	for _, tt := range tests {
		if got := FaceTurn(tt.face, size, true); got != tt.want {
			t.Errorf("FaceTurn(%s) = %v, want %v", tt.face, got, tt.want)
		}
		if got := FaceTurn(tt.face, size, false); got != tt.want.Inverse() {
			t.Errorf("FaceTurn(%s') = %v, want %v", tt.face, got, tt.want.Inverse())
		}
	}
}

func TestRightTurnLiftsFrontStickers(t *testing.T) {
	size := Size{W: 3, H: 3, D: 3}
	g, _ := cube.NewGrid(size)
	g, err := g.Turn(FaceTurn(Right, size, true))
	if err != nil {
		t.Fatal(err)
	}

	// After R the Up face's right column shows what was on the Front.
	solved := cube.SolvedStickers()
	for x := 0; x < 3; x++ {
		got, ok := g.Visible(cube.Pos{X: x, Y: 2, Z: 2}, cube.Up)
		if !ok || got != solved[cube.Front] {
			t.Errorf("Up sticker at x=%d = %v, want front color %v", x, got, solved[cube.Front])
		}
	}
}

func TestSexyMoveOrderSix(t *testing.T) {
	size := Size{W: 3, H: 3, D: 3}
	seq, err := ParseFaceMoves("R U R' U'", size)
	if err != nil {
		t.Fatal(err)
	}

	g, _ := cube.NewGrid(size)
	for i := 1; i <= 6; i++ {
		g, _ = g.TurnAll(seq)
		if solved := g.IsIdentity(); solved != (i == 6) {
			t.Errorf("after %d iterations identity = %v", i, solved)
		}
	}
}

func TestParseFaceMoves(t *testing.T) {
	size := Size{W: 3, H: 3, D: 3}
	moves, err := ParseFaceMoves("F2 B'", size)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatMoves(moves); got != "x0 x0 x2" {
		t.Errorf("F2 B' = %q", got)
	}

	for _, bad := range []string{"Q", "R3", "Rw"} {
		if _, err := ParseFaceMoves(bad, size); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseFaceMoves(%q) err = %v", bad, err)
		}
	}
}

func TestParseAnyMoves(t *testing.T) {
	size := Size{W: 3, H: 3, D: 3}

	layer, err := ParseAnyMoves("x0 y2'", size)
	if err != nil || FormatMoves(layer) != "x0 y2'" {
		t.Errorf("layer notation = %v, %v", layer, err)
	}
	face, err := ParseAnyMoves("U R'", size)
	if err != nil || FormatMoves(face) != "y2' z2" {
		t.Errorf("face notation = %v, %v", face, err)
	}
	if _, err := ParseAnyMoves("x0 R", size); err == nil {
		t.Error("mixed notation should fail")
	}
}
