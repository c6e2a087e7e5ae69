package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/config"
	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/eventlog"
	"github.com/SeamusWaldron/cubesim/internal/netview"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var (
	playNotes    string
	playScramble bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive cube",
	Long: `Start an interactive TUI with the cube drawn as an unfolded net.

Drag across stickers with the mouse to turn the layer under the pointer.

Keyboard shortcuts:
  x/y/z       - Select axis
  0-9         - Select layer
  left/right  - Turn the selected layer CCW/CW
  u / r       - Undo / redo one move
  s           - Scramble
  S           - Auto-solve (undo everything)
  p           - Stop scripted playback
  +           - Cycle turn speed
  R           - Reset to solved
  q/Esc       - Quit

Every committed turn is journaled unless journal is false in the config.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVar(&playNotes, "notes", "", "Notes for this session")
	playCmd.Flags().BoolVar(&playScramble, "scramble", false, "Start with a scramble")
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	turnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// The net is drawn below the title and status lines, indented by netCol.
const (
	netRow = 3
	netCol = 2
)

// Messages
type tickMsg time.Time

// playModel is the bubbletea model shared by play and replay.
type playModel struct {
	cube *cubesim.Cube
	view *netview.View
	cfg  config.Config

	// Selection for keyboard turns
	axis  cube.Axis
	layer int

	// Journal and event log, both optional
	journal *storage.Journal
	log     *eventlog.Logger

	title    string
	tickRate time.Duration
	dragging bool
	note     string
	err      error
	quitting bool
}

func newPlayModel(cfg config.Config, size cube.Size, title string) (*playModel, error) {
	view := netview.New(size, netCol, netRow)
	c, err := cubesim.New(size.W, size.H, size.D, view, cubeOptions(cfg)...)
	if err != nil {
		return nil, err
	}

	m := &playModel{
		cube:     c,
		view:     view,
		cfg:      cfg,
		title:    title,
		tickRate: time.Second / 60,
	}
	c.SetOrbit(m)
	c.OnTurn(func(mv cubesim.Move, origin cubesim.Origin) {
		if m.journal == nil {
			return
		}
		if err := m.journal.Record(mv, origin); err != nil {
			m.err = err
		}
	})
	return m, nil
}

// attachLog forwards cube events to l.
func (m *playModel) attachLog(l *eventlog.Logger) {
	m.log = l
	m.cube.OnTurnStart(l.TurnStarted)
	m.cube.OnTurn(l.TurnCommitted)
	m.cube.OnDiscard(l.GestureDiscarded)
	m.cube.OnReject(l.Rejected)
}

// SetEnabled implements the orbit control. The net has no camera, so a
// paused orbit only marks a drag in progress.
func (m *playModel) SetEnabled(enabled bool) {
	m.dragging = !enabled
}

func (m *playModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *playModel) tickCmd() tea.Cmd {
	return tea.Tick(m.tickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tickMsg:
		if err := m.cube.Tick(time.Time(msg)); err != nil {
			m.err = err
		}
		return m, m.tickCmd()
	}

	return m, nil
}

func (m *playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.cube
	key := msg.String()

	switch key {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "x", "y", "z":
		m.axis, _ = cube.ParseAxis(key)
		if m.layer >= c.Size().Extent(m.axis) {
			m.layer = 0
		}

	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if l := int(key[0] - '0'); l < c.Size().Extent(m.axis) {
			m.layer = l
		}

	case "left", "right":
		dir := cubesim.CCW
		if key == "right" {
			dir = cubesim.CW
		}
		m.report(c.Turn(m.axis, m.layer, c.Speed().Step(int(dir))))

	case "u":
		m.report(c.Undo(1, float64(c.Speed()), 0))

	case "r":
		m.report(c.Redo(float64(c.Speed())))

	case "s":
		moves, err := c.Scramble(float64(c.Speed()), m.cfg.ScrambleMoves, c.Interval())
		m.report(err)
		if err == nil && m.journal != nil {
			if err := m.journal.SetScramble(moves); err != nil {
				m.err = err
			}
		}

	case "S":
		m.report(c.Solve(float64(c.Speed()), c.Interval()))

	case "p":
		c.Stop()

	case "+":
		c.SetSpeed(c.Speed().Next())
		m.note = "speed " + c.Speed().String()

	case "R":
		m.report(c.Reset())
	}

	return m, nil
}

func (m *playModel) handleMouse(msg tea.MouseMsg) {
	pt := cubesim.ScreenPoint{X: float64(msg.X), Y: float64(msg.Y)}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			if _, err := m.cube.PointerDown(pt); err != nil {
				m.err = err
			}
		}
	case tea.MouseActionMotion:
		if mv, ok := m.cube.PointerMove(pt); ok {
			m.axis, m.layer = mv.Axis, mv.Layer
		}
	case tea.MouseActionRelease:
		m.cube.PointerUp()
	}
}

// report records the outcome of a request. Busy and auto-mode refusals
// are expected while something animates and only show as a note.
func (m *playModel) report(err error) {
	switch {
	case err == nil:
		m.note = ""
	case errors.Is(err, cubesim.ErrBusy), errors.Is(err, cubesim.ErrAutoMode):
		m.note = "busy"
	default:
		m.note = ""
		m.err = err
	}
}

func (m *playModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	c := m.cube
	var b strings.Builder

	// Title and status must stay netRow lines tall so mouse rows line up.
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", m.title, c.Size())))
	b.WriteString(statusStyle.Render(fmt.Sprintf("  speed %s", c.Speed())))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	var turning *cube.Move
	if mv, _, ok := c.Current(); ok {
		turning = &mv
	}
	pad := strings.Repeat(" ", netCol)
	for _, line := range strings.Split(m.view.Render(c.Grid(), turning), "\n") {
		b.WriteString(pad)
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(pad)
	b.WriteString(netview.Legend())
	b.WriteString("\n\n")

	h := c.History()
	if c.IsSolved() {
		b.WriteString(turnStyle.Render("SOLVED"))
	} else {
		b.WriteString(fmt.Sprintf("Moves: %d", h.Cursor))
	}
	if redo := len(h.Moves) - h.Cursor; redo > 0 {
		b.WriteString(statusStyle.Render(fmt.Sprintf("  (%d to redo)", redo)))
	}
	b.WriteString("\n")

	if applied := h.Applied(); len(applied) > 0 {
		start := 0
		prefix := ""
		if len(applied) > 20 {
			start = len(applied) - 20
			prefix = "... "
		}
		b.WriteString(prefix)
		b.WriteString(moveStyle.Render(cubesim.FormatMoves(applied[start:])))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("x/y/z 0-9 select  ←/→ turn  u/r undo/redo  s scramble  S solve  p stop  + speed  R reset  q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m *playModel) statusLine() string {
	c := m.cube
	sel := fmt.Sprintf("Axis %s  Layer %d", m.axis, m.layer)

	var state string
	if mv, origin, ok := c.Current(); ok {
		state = turnStyle.Render(fmt.Sprintf("Turning %s (%s) %3.0f%%", mv, origin, c.Progress()*100))
	} else {
		state = statusStyle.Render("Idle")
	}
	if c.Auto() {
		state += statusStyle.Render("  [auto]")
	}
	if m.dragging {
		state += statusStyle.Render("  [drag]")
	}
	if m.note != "" {
		state += statusStyle.Render("  " + m.note)
	}
	return sel + "  |  " + state
}

// openJournal starts journaling into the configured database. Failures
// only disable the journal.
func (m *playModel) openJournal(notes string) *storage.DB {
	if !m.cfg.Journal {
		return nil
	}
	db, err := openDB(m.cfg)
	if err != nil {
		fmt.Printf("Warning: journal disabled: %v\n", err)
		return nil
	}
	j, err := storage.NewJournal(db, m.cube.Size(), m.cube.Speed().String(), notes)
	if err != nil {
		fmt.Printf("Warning: journal disabled: %v\n", err)
		db.Close()
		return nil
	}
	m.journal = j
	return db
}

// openLog starts the JSONL event log when enabled. Failures only disable
// the log.
func (m *playModel) openLog() {
	if !m.cfg.LogEvents {
		return
	}
	sessionID := ""
	if m.journal != nil {
		sessionID = m.journal.SessionID()
	}
	l, err := eventlog.Create(config.LogDir(), m.cube.Size(), sessionID)
	if err != nil {
		fmt.Printf("Warning: could not start logging: %v\n", err)
		return
	}
	m.attachLog(l)
}

// finish closes the journal session and the event log.
func (m *playModel) finish() {
	if m.journal != nil {
		if err := m.journal.End(); err != nil {
			fmt.Printf("Warning: failed to end session: %v\n", err)
		}
		fmt.Printf("Session %s: %d moves journaled\n", shortID(m.journal.SessionID()), m.journal.Len())
	}
	if m.log != nil {
		if err := m.log.Err(); err != nil {
			fmt.Printf("Warning: event log incomplete: %v\n", err)
		}
		if path := m.log.FilePath(); path != "" {
			fmt.Printf("Log saved to: %s\n", path)
		}
		m.log.Close()
	}
}

func runTUI(m *playModel) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	m, err := newPlayModel(cfg, cubeSize(cfg), "cubesim")
	if err != nil {
		return err
	}
	if db := m.openJournal(playNotes); db != nil {
		defer db.Close()
	}
	m.openLog()
	defer m.finish()

	if playScramble {
		m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
		if m.err != nil {
			return m.err
		}
	}

	return runTUI(m)
}
