package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/trek/internal/theme"
)

// MinWidth is the absolute minimum terminal width we try to support.
const MinWidth = 30

// ButtonParams describes a button.
type ButtonParams struct {
	Label    string
	Theme    theme.Theme
	Size     theme.Size
	Disabled bool
	Focused  bool
}

// Button renders a bordered button.
func Button(p ButtonParams) string {
	pal := PaletteFor(p.Theme)
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, Padding(p.Size))

	switch {
	case p.Disabled:
		style = style.Foreground(pal.Muted).BorderForeground(pal.Secondary).Faint(true)
	case p.Focused:
		style = style.Foreground(pal.Surface).Background(pal.Primary).BorderForeground(pal.Primary).Bold(true)
	default:
		style = style.Foreground(pal.Primary).BorderForeground(pal.Primary)
	}
	if p.Size == theme.Large {
		style = style.Bold(true)
	}
	return style.Render(p.Label)
}

// Header renders the title bar with the theme toggle on the right.
func Header(title string, t theme.Theme, width int) string {
	s := StylesFor(t)
	left := s.Title.Render(title)
	right := ThemeToggle(t)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// ThemeToggle renders the sun/moon switch for t.
func ThemeToggle(t theme.Theme) string {
	pal := PaletteFor(t)
	on := lipgloss.NewStyle().Foreground(pal.Highlight).Bold(true)
	off := lipgloss.NewStyle().Foreground(pal.Muted)
	if t.IsDark() {
		return off.Render(SymbolSun) + " " + on.Render(SymbolMoon)
	}
	return on.Render(SymbolSun) + " " + off.Render(SymbolMoon)
}

// Divider renders a horizontal rule of width cells.
func Divider(t theme.Theme, width int) string {
	if width < 1 {
		width = 1
	}
	return StylesFor(t).Divider.Render(strings.Repeat(SymbolDivider, width))
}

// WrapInBox wraps content in a box.
func WrapInBox(content string, t theme.Theme, width int) string {
	boxWidth := width - 2
	if boxWidth < MinWidth-2 {
		boxWidth = MinWidth - 2
	}
	return StylesFor(t).Box.Width(boxWidth).Render(content)
}

// CompactHelp returns a shortened help string for small terminals.
func CompactHelp(full, compact string, width int) string {
	if width >= 80 {
		return full
	}
	return compact
}
