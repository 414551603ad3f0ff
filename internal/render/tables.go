package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/tetris-core/internal/tetris"
)

// Table renders rows under a header using the theme's table styles.
// A row whose last column is "ok" or "fail" gets the success or failure
// style on that column.
func Table(t Theme, headers []string, rows [][]string) string {
	last := len(headers) - 1
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.Header
			}
			if col == last && row >= 0 && row < len(rows) && col < len(rows[row]) {
				switch rows[row][col] {
				case "ok":
					return t.Success
				case "fail":
					return t.Failure
				}
			}
			return t.Label
		})
	return tbl.String()
}

// Transition is one from/to orientation pair of a kick table.
type Transition struct {
	From, To int
	Offsets  []tetris.Point
}

// Transitions lists the kick offsets of a piece in a stable order: the
// clockwise and counter-clockwise steps from each orientation, then the
// half turns.
func Transitions(id tetris.PieceID) ([]Transition, error) {
	var out []Transition
	for _, dir := range []tetris.Direction{tetris.Clockwise, tetris.CounterClockwise, tetris.Rotate180} {
		for from := 0; from < 4; from++ {
			to, err := tetris.TargetOrientation(from, dir)
			if err != nil {
				return nil, err
			}
			offsets, err := tetris.Kicks(id, from, to)
			if err != nil {
				return nil, err
			}
			out = append(out, Transition{From: from, To: to, Offsets: offsets})
		}
	}
	return out, nil
}

// KickTable renders the kick offsets of a piece. Offsets are in board
// coordinates with +y pointing down.
func KickTable(t Theme, id tetris.PieceID) (string, error) {
	transitions, err := Transitions(id)
	if err != nil {
		return "", err
	}
	rows := make([][]string, 0, len(transitions))
	for _, tr := range transitions {
		offsets := make([]string, len(tr.Offsets))
		for i, o := range tr.Offsets {
			offsets[i] = o.String()
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d->%d", tr.From, tr.To),
			strconv.Itoa(len(tr.Offsets)),
			strings.Join(offsets, " "),
		})
	}
	title := t.Title.Render(fmt.Sprintf("%s piece kicks", id))
	return title + "\n" + Table(t, []string{"Turn", "Tests", "Offsets (+y down)"}, rows), nil
}

// AttemptTable renders the kick search of one rotation.
func AttemptTable(t Theme, res tetris.RotationResult) string {
	rows := make([][]string, 0, len(res.KicksAttempted))
	for i, a := range res.KicksAttempted {
		status := "fail"
		if res.Success && i == len(res.KicksAttempted)-1 {
			status = "ok"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			a.Offset.String(),
			a.Position.String(),
			status,
		})
	}
	return Table(t, []string{"#", "Offset", "Anchor", "Result"}, rows)
}

// Outcome summarises a rotation result in one line.
func Outcome(t Theme, res tetris.RotationResult) string {
	if res.Success {
		msg := fmt.Sprintf("rotated to %s after %d test(s)", *res.Piece, len(res.KicksAttempted))
		return t.Success.Render(msg)
	}
	msg := fmt.Sprintf("rejected (%s) after %d test(s)", res.FailureReason, len(res.KicksAttempted))
	return t.Failure.Render(msg)
}
