// Package ui handles terminal styling and the presentational components.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/trek/internal/theme"
)

// Palette is the set of colors a theme renders with.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Danger    lipgloss.Color
	Muted     lipgloss.Color
	Highlight lipgloss.Color
	Text      lipgloss.Color
	Surface   lipgloss.Color
	// Track is the low-contrast stroke behind progress rings.
	Track lipgloss.Color
}

var (
	lightPalette = Palette{
		Primary:   lipgloss.Color("#6a5acd"),
		Secondary: lipgloss.Color("250"),
		Danger:    lipgloss.Color("1"),
		Muted:     lipgloss.Color("243"),
		Highlight: lipgloss.Color("4"),
		Text:      lipgloss.Color("#000000"),
		Surface:   lipgloss.Color("255"),
		Track:     lipgloss.Color("252"),
	}

	darkPalette = Palette{
		Primary:   lipgloss.Color("#9d8cff"),
		Secondary: lipgloss.Color("8"),
		Danger:    lipgloss.Color("9"),
		Muted:     lipgloss.Color("245"),
		Highlight: lipgloss.Color("6"),
		Text:      lipgloss.Color("#ffffff"),
		Surface:   lipgloss.Color("236"),
		Track:     lipgloss.Color("238"),
	}
)

// PaletteFor returns the palette for t. Unknown themes get the light one.
func PaletteFor(t theme.Theme) Palette {
	if t.IsDark() {
		return darkPalette
	}
	return lightPalette
}

// Styles groups the lipgloss styles derived from a palette.
type Styles struct {
	Box      lipgloss.Style
	Title    lipgloss.Style
	Header   lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Divider  lipgloss.Style
	Input    lipgloss.Style
	Border   lipgloss.Style
}

// StylesFor builds the styles for t.
func StylesFor(t theme.Theme) Styles {
	p := PaletteFor(t)
	return Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Secondary).
			Padding(1, 2),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(p.Muted),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(p.Highlight),
		Normal:   lipgloss.NewStyle().Foreground(p.Text),
		Muted:    lipgloss.NewStyle().Foreground(p.Muted),
		Help:     lipgloss.NewStyle().Foreground(p.Muted),
		Error:    lipgloss.NewStyle().Foreground(p.Danger),
		Divider:  lipgloss.NewStyle().Foreground(p.Secondary),
		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1),
		Border: lipgloss.NewStyle().Foreground(p.Secondary),
	}
}

// Padding returns the horizontal padding for a size class.
func Padding(s theme.Size) int {
	switch s {
	case theme.Small:
		return 1
	case theme.Large:
		return 3
	}
	return 2
}

// Symbols
const (
	SymbolCursor    = "›"
	SymbolAsc       = "▲"
	SymbolDesc      = "▼"
	SymbolSortable  = "↕"
	SymbolDivider   = "─"
	SymbolSun       = "☀"
	SymbolMoon      = "☾"
	SymbolEllipsis  = "…"
	SymbolSelectArr = "▾"
)
