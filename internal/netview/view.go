package netview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/render"
	"github.com/SeamusWaldron/cubesim/internal/scene"
)

// Palette maps sticker colors to terminal colors.
var Palette = map[cube.Color]lipgloss.Color{
	cube.Green:  lipgloss.Color("#009E60"),
	cube.White:  lipgloss.Color("#FFFFFF"),
	cube.Orange: lipgloss.Color("#FF5800"),
	cube.Red:    lipgloss.Color("#C41E3A"),
	cube.Blue:   lipgloss.Color("#0051BA"),
	cube.Yellow: lipgloss.Color("#FFD500"),
}

// Styles
var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// View is a terminal renderer. It keeps a headless scene for the
// proxies and pivots, and replaces the scene's ray hit test with a
// lookup of terminal cells in the net layout.
type View struct {
	*scene.Scene
	layout Layout
	offset render.Vec3
}

// New creates a view for a grid of the given size with the net's
// top-left corner at terminal cell (col, row).
func New(size cube.Size, col, row int) *View {
	return &View{
		Scene:  scene.New(),
		layout: NewLayout(size, col, row),
		offset: render.Vec3{
			X: float64(size.W-1) / 2,
			Y: float64(size.H-1) / 2,
			Z: float64(size.D-1) / 2,
		},
	}
}

// Layout returns the net layout.
func (v *View) Layout() Layout {
	return v.layout
}

// Move shifts the net so its top-left corner is at (col, row).
func (v *View) Move(col, row int) {
	v.layout = NewLayout(v.layout.Size(), col, row)
}

// HitTest implements render.HitTester. p holds a terminal column in X
// and a row in Y. Terminal cells carry no proxy, so the hit's Handle is
// always zero.
func (v *View) HitTest(p render.ScreenPoint) (render.Hit, bool) {
	f, pos, ok := v.layout.At(int(p.X), int(p.Y))
	if !ok {
		return render.Hit{}, false
	}
	return render.Hit{
		Face:     f,
		Position: r3.Sub(render.Vec3{X: float64(pos.X), Y: float64(pos.Y), Z: float64(pos.Z)}, v.offset),
	}, true
}

// Render draws g as a net.
//
// Stickers on the layer of an animating turn are drawn as shaded blocks
// so the turn in flight is visible before it commits.
func (v *View) Render(g *cube.Grid, turning *cube.Move) string {
	l := v.layout
	left := l.Rect(cube.Left).Col
	top := l.Rect(cube.Up).Row

	stickers := make(map[[2]int]string)
	for _, f := range cube.Faces {
		rect := l.Rect(f)
		for j := 0; j < rect.Rows; j++ {
			for i := 0; i < rect.Cols; i++ {
				p := l.Cell(f, i, j)
				color, ok := g.Visible(p, f)
				if !ok {
					continue
				}
				moving := turning != nil && p.Coord(turning.Axis) == turning.Layer
				at := [2]int{rect.Row - top + j, rect.Col - left + i*StickerWidth}
				stickers[at] = sticker(color, moving)
			}
		}
	}

	var b strings.Builder
	width, height := l.Width(), l.Height()
	for r := 0; r < height; r++ {
		for c := 0; c < width; {
			if s, ok := stickers[[2]int{r, c}]; ok {
				b.WriteString(s)
				c += StickerWidth
				continue
			}
			b.WriteByte(' ')
			c++
		}
		if r < height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Legend returns the face labels in net order.
func Legend() string {
	return labelStyle.Render("U above F; belt L F R B; D below F")
}

func sticker(c cube.Color, moving bool) string {
	color := Palette[c]
	if moving {
		return lipgloss.NewStyle().Foreground(color).Render("▒▒")
	}
	return lipgloss.NewStyle().Background(color).Render("  ")
}

// Plain draws g as a net of color letters with no styling.
func Plain(g *cube.Grid) string {
	l := NewLayout(g.Size(), 0, 0)
	width, height := l.Width(), l.Height()
	rows := make([][]byte, height)
	for r := range rows {
		rows[r] = []byte(strings.Repeat(" ", width))
	}
	for _, f := range cube.Faces {
		rect := l.Rect(f)
		for j := 0; j < rect.Rows; j++ {
			for i := 0; i < rect.Cols; i++ {
				color, _ := g.Visible(l.Cell(f, i, j), f)
				rows[rect.Row+j][rect.Col+i*StickerWidth] = color.String()[0]
			}
		}
	}
	lines := make([]string, height)
	for r, row := range rows {
		lines[r] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}
