package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/henri123lemoine/trek/internal/config"
	"github.com/henri123lemoine/trek/internal/grid"
)

// KeyMap defines the showcase keybindings. Grid keys live in grid.KeyMap.
type KeyMap struct {
	// Navigation
	NextSection key.Binding
	PrevSection key.Binding

	// Actions
	Theme    key.Binding
	Language key.Binding
	Source   key.Binding
	Replay   key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextSection: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next section"),
		),
		PrevSection: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev section"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Language: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "language"),
		),
		Source: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "static/stream"),
		),
		Replay: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "replay"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextSection, k.Theme, k.Language, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextSection, k.PrevSection},
		{k.Theme, k.Language},
		{k.Source, k.Replay},
		{k.Help, k.Quit},
	}
}

// KeyMapFromConfig creates a KeyMap from config settings.
func KeyMapFromConfig(cfg *config.KeysConfig) KeyMap {
	km := DefaultKeyMap()

	rebind(&km.NextSection, cfg.NextSection, "next section")
	rebind(&km.PrevSection, cfg.PrevSection, "prev section")
	rebind(&km.Theme, cfg.Theme, "theme")
	rebind(&km.Language, cfg.Language, "language")
	rebind(&km.Source, cfg.Source, "static/stream")
	rebind(&km.Replay, cfg.Replay, "replay")
	rebind(&km.Help, cfg.Help, "help")
	rebind(&km.Quit, cfg.Quit, "quit")

	return km
}

// GridKeyMapFromConfig applies the configurable grid bindings over
// grid.DefaultKeyMap.
func GridKeyMapFromConfig(cfg *config.KeysConfig) grid.KeyMap {
	km := grid.DefaultKeyMap()

	rebind(&km.Sort, cfg.Sort, "sort")
	rebind(&km.NextPage, cfg.NextPage, "next page")
	rebind(&km.PrevPage, cfg.PrevPage, "prev page")
	rebind(&km.Filter, cfg.Filter, "filter")

	return km
}

// rebind replaces b when keys is set. The help label shows the first key.
func rebind(b *key.Binding, keys, desc string) {
	parsed := parseKeys(keys)
	if len(parsed) == 0 {
		return
	}
	*b = key.NewBinding(
		key.WithKeys(parsed...),
		key.WithHelp(parsed[0], desc),
	)
}

// parseKeys parses a comma-separated list of keys.
func parseKeys(s string) []string {
	parts := strings.Split(s, ",")
	var keys []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}
