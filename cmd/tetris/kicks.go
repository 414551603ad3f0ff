package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-core/internal/render"
	"github.com/vovakirdan/tetris-core/internal/tetris"
)

var kicksCmd = &cobra.Command{
	Use:   "kicks [piece...]",
	Short: "Show wall-kick tables",
	Long: `Print the ordered wall-kick offsets tested for every rotation of the
given pieces, including half turns. Without arguments all seven pieces are
shown. J, L, S, T and Z share one table, I has its own and O never kicks.

Examples:
  tetris kicks
  tetris kicks i t`,
	RunE: runKicks,
}

func runKicks(cmd *cobra.Command, args []string) error {
	pieces := tetris.AllPieces[:]
	if len(args) > 0 {
		pieces = make([]tetris.PieceID, 0, len(args))
		for _, arg := range args {
			id, err := tetris.ParsePieceID(arg)
			if err != nil {
				return err
			}
			pieces = append(pieces, id)
		}
	}

	theme := render.ThemeFor(os.Stdout)
	for i, id := range pieces {
		out, err := render.KickTable(theme, id)
		if err != nil {
			return fmt.Errorf("rendering %s kicks: %w", id, err)
		}
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(out)
	}
	return nil
}
