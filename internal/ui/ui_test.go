package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"

	"github.com/henri123lemoine/trek/internal/theme"
)

func sizes() Select {
	return NewSelect("page-size", []Option{
		{Value: 5, Label: "5 / page"},
		{Value: 10, Label: "10 / page"},
		{Value: 0, Label: "all"},
	})
}

func TestSelectMoves(t *testing.T) {
	s := sizes()

	msg, ok := s.Next()
	if !ok {
		t.Fatal("Next() should move from the first option")
	}
	want := SelectionChangedMsg{ID: "page-size", Option: Option{Value: 10, Label: "10 / page"}}
	if diff := cmp.Diff(want, msg); diff != "" {
		t.Errorf("Next() (-want +got):\n%s", diff)
	}

	s.Next()
	if _, ok := s.Next(); ok {
		t.Error("Next() should stop at the last option")
	}
	if cur, _ := s.Current(); cur.Value != 0 {
		t.Errorf("Current() = %+v, want the last option", cur)
	}

	s.SelectValue(5)
	if _, ok := s.Prev(); ok {
		t.Error("Prev() should stop at the first option")
	}
}

func TestSelectValue(t *testing.T) {
	s := sizes()
	if !s.SelectValue(0) || s.Selected != 2 {
		t.Errorf("SelectValue(0) selected %d", s.Selected)
	}
	if s.SelectValue(7) {
		t.Error("SelectValue(7) should report a missing option")
	}
	if s.Selected != 2 {
		t.Error("A failed SelectValue should keep the selection")
	}
}

func TestSelectDisabled(t *testing.T) {
	s := sizes()
	s.Disabled = true
	if _, ok := s.Next(); ok {
		t.Error("A disabled select should not move")
	}

	var empty Select
	if _, ok := empty.Current(); ok {
		t.Error("An empty select has no current option")
	}
	if _, ok := empty.Next(); ok {
		t.Error("An empty select should not move")
	}
}

func TestSelectView(t *testing.T) {
	s := sizes()
	if got := s.View(); !strings.Contains(got, "5 / page "+SymbolSelectArr) {
		t.Errorf("View() = %q", got)
	}
}

func TestButton(t *testing.T) {
	for _, size := range []theme.Size{theme.Small, theme.Medium, theme.Large} {
		t.Run(string(size), func(t *testing.T) {
			out := Button(ButtonParams{Label: "Go", Theme: theme.Dark, Size: size})
			if !strings.Contains(out, "Go") {
				t.Fatalf("Button() = %q", out)
			}
			if h := lipgloss.Height(out); h != 3 {
				t.Errorf("height = %d, want 3", h)
			}
			if w, want := lipgloss.Width(out), 2+2*Padding(size)+2; w != want {
				t.Errorf("width = %d, want %d", w, want)
			}
		})
	}
}

func TestHeader(t *testing.T) {
	out := Header("T-Rek", theme.Light, 40)
	if w := lipgloss.Width(out); w != 40 {
		t.Errorf("width = %d, want 40", w)
	}
	if !strings.Contains(out, "T-Rek") {
		t.Errorf("Header() = %q", out)
	}

	narrow := Header("A long title", theme.Light, 5)
	if !strings.Contains(narrow, SymbolSun) {
		t.Error("The toggle should survive a narrow header")
	}
}

func TestThemeToggle(t *testing.T) {
	for _, th := range []theme.Theme{theme.Light, theme.Dark} {
		got := ThemeToggle(th)
		if !strings.Contains(got, SymbolSun) || !strings.Contains(got, SymbolMoon) {
			t.Errorf("ThemeToggle(%s) = %q", th, got)
		}
	}
}

func TestPaletteFor(t *testing.T) {
	if PaletteFor(theme.Dark) == PaletteFor(theme.Light) {
		t.Error("Expected distinct light and dark palettes")
	}
	if PaletteFor("sepia") != PaletteFor(theme.Light) {
		t.Error("Unknown themes should style as light")
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		size theme.Size
		want int
	}{
		{theme.Small, 1},
		{theme.Medium, 2},
		{theme.Large, 3},
		{"", 2},
	}
	for _, tt := range tests {
		if got := Padding(tt.size); got != tt.want {
			t.Errorf("Padding(%q) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestDivider(t *testing.T) {
	if w := lipgloss.Width(Divider(theme.Light, 12)); w != 12 {
		t.Errorf("width = %d, want 12", w)
	}
	if w := lipgloss.Width(Divider(theme.Light, 0)); w != 1 {
		t.Errorf("width = %d, want 1", w)
	}
}
