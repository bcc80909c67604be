package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/trek/internal/theme"
)

// Option is one entry of a Select.
type Option struct {
	Value int
	Label string
}

// SelectionChangedMsg is sent when a Select's selection moves.
type SelectionChangedMsg struct {
	ID     string
	Option Option
}

// Select is a single-choice picker cycled with Next and Prev.
type Select struct {
	ID       string
	Options  []Option
	Selected int
	Disabled bool
	Focused  bool
	Theme    theme.Theme
	Size     theme.Size
}

// NewSelect creates a Select over options.
func NewSelect(id string, options []Option) Select {
	return Select{ID: id, Options: options, Theme: theme.Light, Size: theme.Medium}
}

// Current returns the selected option, or false if there are none.
func (s Select) Current() (Option, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Options) {
		return Option{}, false
	}
	return s.Options[s.Selected], true
}

// SelectValue moves the selection to the option holding v. It reports
// whether such an option exists.
func (s *Select) SelectValue(v int) bool {
	for i, o := range s.Options {
		if o.Value == v {
			s.Selected = i
			return true
		}
	}
	return false
}

// Next moves to the following option, stopping at the last.
func (s *Select) Next() (SelectionChangedMsg, bool) {
	return s.move(1)
}

// Prev moves to the preceding option, stopping at the first.
func (s *Select) Prev() (SelectionChangedMsg, bool) {
	return s.move(-1)
}

func (s *Select) move(delta int) (SelectionChangedMsg, bool) {
	if s.Disabled || len(s.Options) == 0 {
		return SelectionChangedMsg{}, false
	}
	next := s.Selected + delta
	if next < 0 || next >= len(s.Options) {
		return SelectionChangedMsg{}, false
	}
	s.Selected = next
	return SelectionChangedMsg{ID: s.ID, Option: s.Options[next]}, true
}

// View renders the select as "label ▾".
func (s Select) View() string {
	pal := PaletteFor(s.Theme)
	style := lipgloss.NewStyle().Padding(0, Padding(s.Size)/2)
	switch {
	case s.Disabled:
		style = style.Foreground(pal.Muted).Faint(true)
	case s.Focused:
		style = style.Foreground(pal.Highlight).Bold(true).Underline(true)
	default:
		style = style.Foreground(pal.Text)
	}

	label := ""
	if o, ok := s.Current(); ok {
		label = o.Label
	}
	return style.Render(strings.TrimSpace(label + " " + SymbolSelectArr))
}
