package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim/internal/analysis"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var (
	listLimit  int
	showMoves  bool
	ngramTopK  int
	ngramRange [2]int
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List journaled sessions",
	Long:  `Display recent sessions from the journal with basic statistics.`,
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show details of a session",
	Long: `Display a summary of one session:
- Session metadata (size, speed, duration, TPS)
- Turn counts by origin and axis
- Immediate cancellations and pauses
- Repeated move sequences

The ID may be shortened to any unique prefix. Without an ID the most
recent session is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSessionsShow,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its moves",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of sessions to display")

	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsShowCmd.Flags().BoolVar(&showMoves, "moves", false, "Print the full move sequence")
	sessionsShowCmd.Flags().IntVar(&ngramTopK, "top", 3, "Repeated sequences to show per length")
	sessionsShowCmd.Flags().IntVar(&ngramRange[0], "min-seq", 2, "Shortest repeated sequence to report")
	sessionsShowCmd.Flags().IntVar(&ngramRange[1], "max-seq", 4, "Longest repeated sequence to report")

	sessionsCmd.AddCommand(sessionsDeleteCmd)
}

// findSession resolves an ID prefix, or the latest session when id is
// empty.
func findSession(repo *storage.SessionRepository, id string) (*storage.Session, error) {
	var s *storage.Session
	var err error
	if id == "" {
		s, err = repo.Latest()
	} else {
		s, err = repo.Find(id)
	}
	if err != nil {
		return nil, err
	}
	if s == nil {
		if id == "" {
			return nil, fmt.Errorf("no sessions recorded yet")
		}
		return nil, fmt.Errorf("%w: %s", storage.ErrSessionNotFound, id)
	}
	return s, nil
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := storage.NewSessionRepository(db).List(listLimit)
	if err != nil {
		return err
	}
	moveRepo := storage.NewMoveRepository(db)

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet")
		fmt.Println("Start one with: cubesim play")
		return nil
	}

	fmt.Printf("Recent sessions (showing %d):\n", len(sessions))
	fmt.Println()
	fmt.Printf("%-8s  %-20s  %-7s  %-10s  %-6s  %-6s  %s\n", "ID", "Started", "Size", "Duration", "Moves", "TPS", "Notes")
	fmt.Println("--------  --------------------  -------  ----------  ------  ------  -----")

	for _, s := range sessions {
		duration := "-"
		tps := "-"
		moves, _ := moveRepo.Count(s.SessionID)

		if s.EndedAt != nil {
			duration = formatDuration(s.Duration())
			if ms := s.Duration().Milliseconds(); ms > 0 && moves > 0 {
				tps = fmt.Sprintf("%.2f", analysis.CalculateTPS(moves, ms))
			}
		}

		notes := ""
		if s.Notes != nil {
			notes = *s.Notes
			if len(notes) > 30 {
				notes = notes[:27] + "..."
			}
		}

		status := ""
		if s.EndedAt == nil {
			status = " (open)"
		}

		fmt.Printf("%-8s  %-20s  %-7s  %-10s  %-6d  %-6s  %s%s\n",
			shortID(s.SessionID),
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			s.Size,
			duration,
			moves,
			tps,
			notes,
			status,
		)
	}

	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
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
	sum := analysis.Summarize(s, records)

	fmt.Println("Session Details")
	fmt.Println("===============")
	fmt.Println()
	fmt.Printf("ID:       %s\n", s.SessionID)
	fmt.Printf("Started:  %s\n", s.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if s.EndedAt != nil {
		fmt.Printf("Duration: %s\n", formatDuration(s.Duration()))
	} else {
		fmt.Println("Duration: (open)")
	}
	fmt.Printf("Size:     %s\n", sum.Size)
	fmt.Printf("Speed:    %s\n", s.Speed)
	if s.ScrambleText != nil {
		fmt.Printf("Scramble: %s\n", *s.ScrambleText)
	}
	if sum.Notes != "" {
		fmt.Printf("Notes:    %s\n", sum.Notes)
	}
	fmt.Println()

	fmt.Printf("Moves:         %d (optimized %d, efficiency %.0f%%)\n", sum.TotalMoves, sum.OptimizedMoves, sum.Efficiency*100)
	fmt.Printf("Wasted:        %d (%d immediate cancellations)\n", sum.WastedMoves, sum.Cancellations)
	if sum.TPSOverall > 0 {
		fmt.Printf("TPS:           %.2f\n", sum.TPSOverall)
	}
	if sum.TotalMoves > 1 {
		fmt.Printf("Avg gap:       %s\n", formatDuration(time.Duration(sum.AvgMoveGapMs*float64(time.Millisecond))))
		fmt.Printf("Longest pause: %s (%d over %s)\n",
			formatDuration(time.Duration(sum.LongestPauseMs)*time.Millisecond),
			sum.PauseCountOver1500,
			formatDuration(analysis.DefaultPauseThresholdMs*time.Millisecond))
	}

	if len(sum.ByOrigin) > 0 {
		fmt.Println()
		fmt.Println("By origin:")
		for _, c := range analysis.Ranked(sum.ByOrigin) {
			fmt.Printf("  %-10s %d\n", c.Key, c.Count)
		}
		fmt.Println("By axis:")
		for _, c := range analysis.Ranked(sum.ByAxis) {
			fmt.Printf("  %-10s %d\n", c.Key, c.Count)
		}
	}

	moves, err := storage.ToMoves(records)
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
		return nil
	}

	report := analysis.MineNGrams(moves, ngramRange[0], ngramRange[1], ngramTopK)
	if len(report.TopNGrams) > 0 {
		fmt.Println()
		fmt.Println("Repeated sequences:")
		for n := ngramRange[0]; n <= ngramRange[1]; n++ {
			for _, ng := range report.TopNGrams[n] {
				fmt.Printf("  %-24s ×%d\n", strings.Join(ng.Sequence, " "), ng.Count)
			}
		}
	}

	if showMoves && len(records) > 0 {
		fmt.Println()
		fmt.Println("Move sequence:")
		for _, r := range records {
			offset := time.Duration(r.TsMs-records[0].TsMs) * time.Millisecond
			fmt.Printf("  %4d  %8s  %-6s %s\n", r.MoveIndex, formatDuration(offset), r.Notation, r.Origin)
		}
	}

	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewSessionRepository(db)
	s, err := findSession(repo, args[0])
	if err != nil {
		return err
	}
	if err := repo.Delete(s.SessionID); err != nil {
		return err
	}
	fmt.Printf("Deleted session %s\n", s.SessionID)
	return nil
}
