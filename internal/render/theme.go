package render

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vovakirdan/tetris-core/internal/tetris"
)

// Theme contains all visual styles used by the renderers.
type Theme struct {
	// Locked cells per piece, indexed by piece id
	Pieces [len(tetris.AllPieces)]lipgloss.Style

	Garbage lipgloss.Style
	Empty   lipgloss.Style
	Ghost   lipgloss.Style
	Active  lipgloss.Style
	Border  lipgloss.Style

	// Report styles
	Title   lipgloss.Style
	Header  lipgloss.Style
	Label   lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
}

// DefaultTheme returns the colour theme used on terminals.
func DefaultTheme() Theme {
	return Theme{
		Pieces: [len(tetris.AllPieces)]lipgloss.Style{
			tetris.PieceI: lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // Cyan
			tetris.PieceO: lipgloss.NewStyle().Foreground(lipgloss.Color("226")), // Yellow
			tetris.PieceT: lipgloss.NewStyle().Foreground(lipgloss.Color("135")), // Purple
			tetris.PieceS: lipgloss.NewStyle().Foreground(lipgloss.Color("46")),  // Green
			tetris.PieceZ: lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // Red
			tetris.PieceJ: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),  // Blue
			tetris.PieceL: lipgloss.NewStyle().Foreground(lipgloss.Color("208")), // Orange
		},
		Garbage: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Empty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Ghost:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Active:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Border:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Padding(0, 1),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 1),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Padding(0, 1),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Padding(0, 1),
	}
}

// PlainTheme returns a theme without colours, for pipes and files.
func PlainTheme() Theme {
	plain := lipgloss.NewStyle()
	padded := plain.Padding(0, 1)
	t := Theme{
		Garbage: plain,
		Empty:   plain,
		Ghost:   plain,
		Active:  plain,
		Border:  plain,
		Title:   plain,
		Header:  padded,
		Label:   padded,
		Success: padded,
		Failure: padded,
	}
	for i := range t.Pieces {
		t.Pieces[i] = plain
	}
	return t
}

// Style returns the style for an ink.
func (t Theme) Style(ink Ink) lipgloss.Style {
	switch ink {
	case InkEmpty:
		return t.Empty
	case InkGarbage:
		return t.Garbage
	case InkGhost:
		return t.Ghost
	case InkBorder:
		return t.Border
	case InkActive:
		return t.Active
	}
	if ink >= inkPiece && int(ink-inkPiece) < len(t.Pieces) {
		return t.Pieces[ink-inkPiece]
	}
	return lipgloss.NewStyle()
}

// ThemeFor picks DefaultTheme for terminals and PlainTheme otherwise.
func ThemeFor(f *os.File) Theme {
	if term.IsTerminal(int(f.Fd())) {
		return DefaultTheme()
	}
	return PlainTheme()
}

// TerminalWidth returns the width of f, or fallback when f is not a terminal.
func TerminalWidth(f *os.File, fallback int) int {
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		return w
	}
	return fallback
}
