package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-core/internal/fixture"
	"github.com/vovakirdan/tetris-core/internal/render"
	"github.com/vovakirdan/tetris-core/internal/storage"
)

var (
	flagRecord  bool
	flagNoBoard bool
)

var rotateCmd = &cobra.Command{
	Use:   "rotate <fixture|dir>...",
	Short: "Replay rotation fixtures",
	Long: `Load YAML rotation fixtures, run their rotation through the SRS engine
and print the board before and after together with every kick tested.
Directories are searched recursively for .yaml and .yml files.

Fixtures that carry an expectation are checked; the command exits with
status 1 when any of them fails.

Examples:
  tetris rotate internal/fixture/testdata
  tetris rotate t-spin.yaml --record`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRotate,
}

func init() {
	rotateCmd.Flags().BoolVar(&flagRecord, "record", false, "Save each rotation to the trace database")
	rotateCmd.Flags().BoolVar(&flagNoBoard, "no-board", false, "Only print the outcome lines")
}

func loadFixtures(paths []string) ([]fixture.Fixture, error) {
	var out []fixture.Fixture
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			fixtures, err := fixture.NewLoader(path).LoadAll()
			if err != nil {
				return nil, err
			}
			out = append(out, fixtures...)
			continue
		}
		f, err := fixture.LoadFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// errFixturesFailed is returned when a replayed fixture misses its
// expectation.
var errFixturesFailed = errors.New("fixtures failed")

func runRotate(cmd *cobra.Command, args []string) error {
	fixtures, err := loadFixtures(args)
	if err != nil {
		return fmt.Errorf("loading fixtures: %w", err)
	}

	var store *storage.Store
	if flagRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening trace database: %w", err)
		}
		defer store.Close()
	}

	theme := render.ThemeFor(os.Stdout)
	failed := 0
	for i, f := range fixtures {
		res := f.Rotate()

		if i > 0 {
			fmt.Println()
		}
		title := f.ID
		if f.Name != "" {
			title = fmt.Sprintf("%s - %s", f.ID, f.Name)
		}
		fmt.Println(theme.Title.Render(title))

		if !flagNoBoard {
			before := render.DrawBoard(render.BoardView{Grid: f.Grid, Active: &f.Piece, Title: "before"})
			after := render.BoardView{Grid: f.Grid, Title: "after"}
			if res.Piece != nil {
				after.Active = res.Piece
			}
			fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top,
				before.Render(theme), "  ", render.DrawBoard(after).Render(theme)))
			fmt.Println(render.AttemptTable(theme, res))
		}
		fmt.Printf("%s %s: %s\n", f.Piece, f.Direction, render.Outcome(theme, res))

		if err := f.Verify(res); err != nil {
			failed++
			if errors.Is(err, fixture.ErrMismatch) {
				fmt.Println(theme.Failure.Render(err.Error()))
			}
			logger.Error("fixture failed", "fixture", f.ID, "file", f.FilePath, "err", err)
		}

		if store != nil {
			trace := storage.NewTrace("fixture:"+f.ID, f.Piece, f.Direction, res)
			if _, err := store.SaveTrace(trace); err != nil {
				logger.Warn("cannot record rotation", "fixture", f.ID, "err", err)
			}
		}
	}

	fmt.Println()
	fmt.Printf("%d fixture(s), %d failed\n", len(fixtures), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d %w", failed, len(fixtures), errFixturesFailed)
	}
	return nil
}
