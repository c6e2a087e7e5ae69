package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var replayHeadless bool

var replayCmd = &cobra.Command{
	Use:   "replay [session-id]",
	Short: "Replay a journaled session",
	Long: `Replay every committed turn of a journaled session, in order, with
animated playback. Defaults to the most recent session; the ID may be any
unique prefix.

Use --headless to skip the TUI and print the final net.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayHeadless, "headless", false, "Print the final state instead of animating")
	replayCmd.Flags().BoolVar(&plainOutput, "plain", false, "Print the net as letters without colors (with --headless)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	s, err := findSession(storage.NewSessionRepository(db), id)
	if err != nil {
		return err
	}
	records, err := storage.NewMoveRepository(db).GetBySession(s.SessionID)
	if err != nil {
		return err
	}
	moves, err := storage.ToMoves(records)
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		fmt.Printf("Session %s has no moves to replay\n", shortID(s.SessionID))
		return nil
	}

	if replayHeadless {
		c, view, err := newHeadless(cfg, s.Size)
		if err != nil {
			return err
		}
		if err := c.Play(moves, float64(cubesim.Instant), 0); err != nil {
			return fmt.Errorf("session %s: %w", shortID(s.SessionID), err)
		}
		if err := settle(c); err != nil {
			return err
		}

		fmt.Printf("Replayed %d moves from session %s (%s)\n", len(moves), shortID(s.SessionID), s.Size)
		fmt.Println()
		printNet(c, view)
		fmt.Println()
		fmt.Printf("Solved: %v\n", c.IsSolved())
		return nil
	}

	m, err := newPlayModel(cfg, s.Size, "replay "+shortID(s.SessionID))
	if err != nil {
		return err
	}
	c := m.cube
	if err := c.Play(moves, float64(c.Speed()), c.Interval()); err != nil {
		return fmt.Errorf("session %s: %w", shortID(s.SessionID), err)
	}
	return runTUI(m)
}
