package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-core/internal/render"
	"github.com/vovakirdan/tetris-core/internal/storage"
)

var (
	flagTraceLimit   int
	flagTraceSession string
	flagTraceStats   bool
	flagTraceClear   bool
)

var tracesCmd = &cobra.Command{
	Use:   "traces",
	Short: "Show recorded rotations",
	Long: `Display rotations recorded by 'tetris demo' and 'tetris rotate --record',
newest first, or per-piece statistics with --stats.

Examples:
  tetris traces
  tetris traces --limit 50
  tetris traces --session fixture:t-spawn
  tetris traces --stats`,
	Args: cobra.NoArgs,
	RunE: runTraces,
}

func init() {
	tracesCmd.Flags().IntVar(&flagTraceLimit, "limit", 20, "Number of traces to show")
	tracesCmd.Flags().StringVar(&flagTraceSession, "session", "", "Only show traces of one session")
	tracesCmd.Flags().BoolVar(&flagTraceStats, "stats", false, "Show per-piece statistics")
	tracesCmd.Flags().BoolVar(&flagTraceClear, "clear", false, "Delete every recorded trace")
}

func runTraces(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening trace database: %w", err)
	}
	defer store.Close()

	theme := render.ThemeFor(os.Stdout)
	switch {
	case flagTraceClear:
		if err := store.ClearTraces(); err != nil {
			return fmt.Errorf("clearing traces: %w", err)
		}
		fmt.Println("Trace journal cleared.")
		return nil
	case flagTraceStats:
		return printPieceStats(store, theme)
	default:
		return printTraces(store, theme)
	}
}

func printTraces(store *storage.Store, theme render.Theme) error {
	var traces []storage.RotationTrace
	var err error
	if flagTraceSession != "" {
		traces, err = store.SessionTraces(flagTraceSession)
	} else {
		traces, err = store.RecentTraces(flagTraceLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving traces: %w", err)
	}

	if len(traces) == 0 {
		fmt.Println("No rotations recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tetris demo' or 'tetris rotate --record' to record some.")
		return nil
	}

	rows := make([][]string, 0, len(traces))
	for _, t := range traces {
		result := "ok"
		if !t.Success {
			result = "fail"
		}
		session := t.Session
		if len(session) > 16 {
			session = session[:16]
		}
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			session,
			t.Piece,
			fmt.Sprintf("%d->%d", t.FromOrientation, t.ToOrientation),
			fmt.Sprintf("(%d,%d)", t.Col, t.Row),
			strconv.Itoa(len(t.Attempts)),
			t.FailureReason,
			humanize.Time(t.CreatedAt),
			result,
		})
	}
	fmt.Println(theme.Title.Render("Rotation traces"))
	fmt.Println(render.Table(theme,
		[]string{"ID", "Session", "Piece", "Turn", "Anchor", "Tests", "Reason", "When", "Result"}, rows))
	return nil
}

func printPieceStats(store *storage.Store, theme render.Theme) error {
	stats, err := store.GetAllPieceStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	if len(stats) == 0 {
		fmt.Println("No rotations recorded yet.")
		return nil
	}

	pieces := make([]string, 0, len(stats))
	for p := range stats {
		pieces = append(pieces, p)
	}
	sort.Strings(pieces)

	rows := make([][]string, 0, len(pieces))
	for _, p := range pieces {
		ps := stats[p]
		rows = append(rows, []string{
			ps.Piece,
			humanize.Comma(int64(ps.Rotations)),
			humanize.Comma(int64(ps.Successes)),
			humanize.Comma(int64(ps.Kicked)),
			humanize.Comma(int64(ps.Collisions)),
			humanize.Comma(int64(ps.OutOfBounds)),
			strconv.FormatFloat(ps.AvgAttempts, 'f', 2, 64),
			humanize.Time(ps.LastSeen),
		})
	}
	fmt.Println(theme.Title.Render("Rotation statistics"))
	fmt.Println(render.Table(theme,
		[]string{"Piece", "Rotations", "Succeeded", "Kicked", "Collisions", "Out of bounds", "Avg tests", "Last seen"}, rows))
	return nil
}
