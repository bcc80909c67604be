// Package theme holds the light/dark theme and size vocabulary shared by
// every component, and the Service that broadcasts the active theme.
package theme

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/trek/internal/reactive"
)

// Theme is a color scheme name.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// IsDark reports whether t is the dark theme. Unknown themes style as light.
func (t Theme) IsDark() bool {
	return t == Dark
}

// Size is a component size class.
type Size string

const (
	Small  Size = "small"
	Medium Size = "medium"
	Large  Size = "large"
)

// ChangedMsg carries a new active theme into a Bubble Tea program.
type ChangedMsg struct {
	Theme Theme
}

// Service broadcasts the active theme.
type Service struct {
	current *reactive.Signal[Theme]
}

// NewService creates a Service starting at initial.
func NewService(initial Theme) *Service {
	return &Service{current: reactive.NewComparableSignal(initial)}
}

// Theme returns the active theme.
func (s *Service) Theme() Theme {
	return s.current.Get()
}

// Set changes the active theme.
func (s *Service) Set(t Theme) {
	s.current.Set(t)
}

// Toggle switches light to dark and anything else to light.
func (s *Service) Toggle() {
	s.current.Update(func(t Theme) Theme {
		if t == Light {
			return Dark
		}
		return Light
	})
}

// Subscribe calls fn with the active theme now and on every change.
func (s *Service) Subscribe(fn func(Theme)) func() {
	return s.current.Subscribe(fn)
}

// Watch returns a command that delivers the next theme seen on ch as a
// ChangedMsg. Re-issue it after each message to keep listening.
func Watch(ch <-chan Theme) tea.Cmd {
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return ChangedMsg{Theme: t}
	}
}

// Changes streams the active theme until ctx is done.
func (s *Service) Changes(ctx context.Context) <-chan Theme {
	return s.current.Watch(ctx)
}
