package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-core/internal/anim"
	"github.com/vovakirdan/tetris-core/internal/config"
	"github.com/vovakirdan/tetris-core/internal/game"
	"github.com/vovakirdan/tetris-core/internal/render"
	"github.com/vovakirdan/tetris-core/internal/storage"
)

var (
	flagDemoPieces   int
	flagDemoEvery    int
	flagDemoFast     bool
	flagDemoNoRecord bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Play a scripted game and run its effects",
	Long: `Let the built-in planner play a game. Every rotation goes through the SRS
engine and is recorded in the trace database; every scoring event is sent
to the animation orchestrator, which runs, preempts and times its effects.

The run ends after --pieces pieces, on game over or on Ctrl+C. The final
board, the score and a summary of every effect are printed at the end.

Examples:
  tetris demo
  tetris demo --pieces 100 --seed 7 --every 10
  tetris demo --fast --no-record`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().IntVar(&flagDemoPieces, "pieces", 30, "Number of pieces to play")
	demoCmd.Flags().IntVar(&flagDemoEvery, "every", 0, "Print the board every N pieces (0 = only at the end)")
	demoCmd.Flags().BoolVar(&flagDemoFast, "fast", false, "Run effects with zero duration")
	demoCmd.Flags().BoolVar(&flagDemoNoRecord, "no-record", false, "Do not record rotations")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var recorder game.TraceRecorder
	if !flagDemoNoRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening trace database: %w", err)
		}
		defer store.Close()
		recorder = store
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	budget := anim.NewBudget(cfg.Budgets, anim.LogObserver{Logger: logger})
	orch := anim.New(anim.OrchestratorConfig{Budget: budget, Logger: logger})

	session, err := game.NewSession(game.Options{
		Config:   cfg,
		Recorder: recorder,
		Budget:   budget,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	logger.Info("demo started", "session", session.ID(), "pieces", flagDemoPieces, "seed", cfg.Seed)

	effects := cfg.Effects
	if flagDemoFast {
		effects = make(map[string]config.EffectConfig, len(cfg.Effects))
		for k, e := range cfg.Effects {
			e.Duration = 0
			effects[k] = e
		}
	}
	dispatcher := game.NewDispatcher(orch, effects, logger)

	theme := render.ThemeFor(os.Stdout)
	for i := 0; i < flagDemoPieces && !session.Over() && ctx.Err() == nil; i++ {
		move, ok := game.Plan(session.Snapshot(), session.Active())
		if !ok {
			logger.Warn("no placement found", "piece", session.Active())
			break
		}
		events, err := session.Play(move)
		if err != nil {
			return fmt.Errorf("playing piece %d: %w", i+1, err)
		}
		for _, ev := range events {
			if ev.Kind != game.EventHardDrop {
				logger.Debug("event", "event", ev.String())
			}
		}
		if err := dispatcher.DispatchAll(ctx, events); err != nil {
			return fmt.Errorf("dispatching effects: %w", err)
		}
		if flagDemoEvery > 0 && (i+1)%flagDemoEvery == 0 {
			fmt.Println(renderSession(session, theme, fmt.Sprintf("after %d pieces", i+1)))
			fmt.Println()
		}
	}

	results, err := dispatcher.Wait()
	if err != nil {
		return fmt.Errorf("waiting for effects: %w", err)
	}

	fmt.Println(renderSession(session, theme, "final board"))
	fmt.Println()
	if len(results) > 0 {
		fmt.Println(theme.Title.Render("Effects"))
		fmt.Println(effectTable(theme, results))
	}
	return nil
}

// renderSession draws the board next to the stats panel, or below it on
// narrow terminals.
func renderSession(s *game.Session, theme render.Theme, title string) string {
	st := s.State()
	view := render.BoardView{Grid: s.Snapshot(), Title: title}
	if !st.Stats.Over {
		view.Active = &st.Active
		view.Ghost = &st.Ghost
	}
	board := render.DrawBoard(view)

	preview := make([]string, len(st.Preview))
	for i, id := range st.Preview {
		preview[i] = id.String()
	}
	status := "playing"
	if st.Stats.Over {
		status = "game over"
	}
	panel := render.Table(theme, []string{"Stat", "Value"}, [][]string{
		{"Score", humanize.Comma(int64(st.Stats.Score))},
		{"Lines", strconv.Itoa(st.Stats.Lines)},
		{"Level", strconv.Itoa(st.Stats.Level)},
		{"Pieces", strconv.Itoa(st.Stats.Locks)},
		{"Gravity", st.Gravity.String()},
		{"Next", strings.Join(preview, " ")},
		{"Status", status},
	})

	if render.TerminalWidth(os.Stdout, 80) < board.Width()+lipgloss.Width(panel)+2 {
		return lipgloss.JoinVertical(lipgloss.Left, board.Render(theme), panel)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, board.Render(theme), "  ", panel)
}

func effectTable(theme render.Theme, results []game.EffectResult) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		outcome := "rejected"
		elapsed := "-"
		result := "fail"
		if r.Accepted {
			outcome = r.Outcome.Status.String()
			if r.Outcome.Reason != anim.ReasonNone {
				outcome += " (" + string(r.Outcome.Reason) + ")"
			}
			elapsed = r.Outcome.Elapsed.Round(100 * time.Microsecond).String()
			if r.Outcome.Completed() {
				result = "ok"
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(r.Seq),
			r.Event.String(),
			r.Channel,
			strconv.Itoa(r.Priority),
			outcome,
			elapsed,
			result,
		})
	}
	return render.Table(theme, []string{"#", "Event", "Channel", "Priority", "Outcome", "Elapsed", "Result"}, rows)
}
