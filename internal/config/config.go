// Package config handles trek configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config represents trek configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Grid       GridConfig       `toml:"grid"`
	Progress   ProgressConfig   `toml:"progress"`
	Typewriter TypewriterConfig `toml:"typewriter"`
	Keys       KeysConfig       `toml:"keys"`
}

// GeneralConfig contains general settings.
type GeneralConfig struct {
	// Color theme: "light" or "dark"
	Theme string `toml:"theme"`

	// Interface language, matching a catalog name ("en", "es", ...)
	Language string `toml:"language"`

	// Directory of extra <lang>.yaml translation catalogs
	TranslationsDir string `toml:"translations_dir"`

	// Debug log path (empty = state directory default)
	DebugLog string `toml:"debug_log"`

	// Component size: "small", "medium" or "large"
	Size string `toml:"size"`
}

// GridConfig contains data grid settings.
type GridConfig struct {
	// Initial page size (0 = no pagination)
	PageSize int `toml:"page_size"`

	// Page sizes offered by the page-size select
	PageSizes []int `toml:"page_sizes"`

	// Allow header sorting
	Sortable bool `toml:"sortable"`

	// Remember sort and page size between runs
	Persist bool `toml:"persist"`

	// Interval between updates of the demo live stream, in milliseconds
	StreamIntervalMS int `toml:"stream_interval_ms"`
}

// ProgressConfig contains progress ring settings.
type ProgressConfig struct {
	// Animation duration in milliseconds
	DurationMS int `toml:"duration_ms"`

	// Frames per second
	FPS int `toml:"fps"`

	// Ring radius in pixels (minimum 50)
	Radius int `toml:"radius"`

	// Arc color, any lipgloss color ("#6a5acd", "5", ...)
	Color string `toml:"color"`

	// Label size: "small", "medium" or "large"
	Size string `toml:"size"`

	// Braille dots per pixel
	DotScale float64 `toml:"dot_scale"`
}

// TypewriterConfig contains typewriter settings.
type TypewriterConfig struct {
	// Delay between characters in milliseconds
	SpeedMS int `toml:"speed_ms"`
}

// KeysConfig contains keybinding settings.
type KeysConfig struct {
	NextSection string `toml:"next_section"`
	PrevSection string `toml:"prev_section"`
	Theme       string `toml:"theme"`
	Language    string `toml:"language"`
	Source      string `toml:"source"`
	Replay      string `toml:"replay"`
	Sort        string `toml:"sort"`
	NextPage    string `toml:"next_page"`
	PrevPage    string `toml:"prev_page"`
	Filter      string `toml:"filter"`
	Help        string `toml:"help"`
	Quit        string `toml:"quit"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			Theme:    "dark",
			Language: "en",
			Size:     "medium",
		},
		Grid: GridConfig{
			PageSize:         5,
			PageSizes:        []int{5, 10, 25, 50, 100},
			Sortable:         true,
			Persist:          true,
			StreamIntervalMS: 1500,
		},
		Progress: ProgressConfig{
			DurationMS: 3500,
			FPS:        60,
			Radius:     50,
			Color:      "#6a5acd",
			Size:       "medium",
			DotScale:   0.25,
		},
		Typewriter: TypewriterConfig{
			SpeedMS: 20,
		},
		Keys: KeysConfig{
			NextSection: "tab",
			PrevSection: "shift+tab",
			Theme:       "t",
			Language:    "L",
			Source:      "S",
			Replay:      "r",
			Sort:        "enter,s",
			NextPage:    "pgdown,n",
			PrevPage:    "pgup,p",
			Filter:      "/",
			Help:        "?",
			Quit:        "q,ctrl+c",
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses ~/.config/trek/config.toml (XDG style) on all Unix systems.
func ConfigPath() string {
	// Respect XDG_CONFIG_HOME if set
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "trek", "config.toml")
	}
	// Default to ~/.config on Unix (including macOS)
	home := os.Getenv("HOME")
	if home != "" {
		return filepath.Join(home, ".config", "trek", "config.toml")
	}
	// Fallback to os.UserConfigDir() for Windows
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "trek", "config.toml")
	}
	return filepath.Join(configDir, "trek", "config.toml")
}

// DebugLogPath returns the debug log path: general.debug_log if set,
// otherwise $XDG_STATE_HOME/trek/debug.log.
func (c *Config) DebugLogPath() string {
	if c.General.DebugLog != "" {
		return c.General.DebugLog
	}
	if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
		return filepath.Join(xdgState, "trek", "debug.log")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".local", "state", "trek", "debug.log")
	}
	return filepath.Join(os.TempDir(), "trek", "debug.log")
}

// IsFirstRun returns true if no config file exists.
func IsFirstRun() bool {
	_, err := os.Stat(ConfigPath())
	return os.IsNotExist(err)
}

// Load loads configuration from the config file.
func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, err
	}

	// Unmarshal directly into default config.
	// go-toml/v2 only overwrites fields present in the TOML file,
	// preserving defaults for unspecified fields (including booleans).
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to path.
func Save(cfg *Config, path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// CreateDefaultConfigFile creates a default config file with comments.
func CreateDefaultConfigFile(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	content := generateDefaultConfigContent()
	return os.WriteFile(path, []byte(content), 0644)
}

// generateDefaultConfigContent generates a commented config file.
func generateDefaultConfigContent() string {
	var b strings.Builder
	cfg := DefaultConfig()

	b.WriteString("# trek configuration\n\n")

	b.WriteString("[general]\n")
	b.WriteString("# Color theme: \"light\" or \"dark\"\n")
	fmt.Fprintf(&b, "theme = %q\n", cfg.General.Theme)
	b.WriteString("# Interface language: \"en\", \"es\", or any catalog in translations_dir\n")
	fmt.Fprintf(&b, "language = %q\n", cfg.General.Language)
	b.WriteString("# Directory of extra <lang>.yaml translation catalogs\n")
	b.WriteString("# translations_dir = \"~/.config/trek/i18n\"\n")
	b.WriteString("# Debug log path, used with --debug\n")
	b.WriteString("# debug_log = \"/tmp/trek.log\"\n")
	b.WriteString("# Component size: \"small\", \"medium\" or \"large\"\n")
	fmt.Fprintf(&b, "size = %q\n\n", cfg.General.Size)

	b.WriteString("[grid]\n")
	b.WriteString("# Initial page size (0 shows every row)\n")
	fmt.Fprintf(&b, "page_size = %d\n", cfg.Grid.PageSize)
	b.WriteString("# Page sizes offered by the page-size select\n")
	fmt.Fprintf(&b, "page_sizes = %s\n", formatInts(cfg.Grid.PageSizes))
	b.WriteString("# Allow sorting by clicking column headers\n")
	fmt.Fprintf(&b, "sortable = %v\n", cfg.Grid.Sortable)
	b.WriteString("# Remember sort and page size between runs\n")
	fmt.Fprintf(&b, "persist = %v\n", cfg.Grid.Persist)
	b.WriteString("# Milliseconds between updates of the live demo stream\n")
	fmt.Fprintf(&b, "stream_interval_ms = %d\n\n", cfg.Grid.StreamIntervalMS)

	b.WriteString("[progress]\n")
	b.WriteString("# Animation duration in milliseconds\n")
	fmt.Fprintf(&b, "duration_ms = %d\n", cfg.Progress.DurationMS)
	b.WriteString("# Frames per second\n")
	fmt.Fprintf(&b, "fps = %d\n", cfg.Progress.FPS)
	b.WriteString("# Ring radius in pixels (minimum 50)\n")
	fmt.Fprintf(&b, "radius = %d\n", cfg.Progress.Radius)
	b.WriteString("# Arc color\n")
	fmt.Fprintf(&b, "color = %q\n", cfg.Progress.Color)
	b.WriteString("# Label size: \"small\", \"medium\" or \"large\"\n")
	fmt.Fprintf(&b, "size = %q\n", cfg.Progress.Size)
	b.WriteString("# Braille dots per pixel; larger values draw bigger rings\n")
	fmt.Fprintf(&b, "dot_scale = %v\n\n", cfg.Progress.DotScale)

	b.WriteString("[typewriter]\n")
	b.WriteString("# Delay between characters in milliseconds\n")
	fmt.Fprintf(&b, "speed_ms = %d\n\n", cfg.Typewriter.SpeedMS)

	b.WriteString("[keys]\n")
	b.WriteString("# Keybindings (comma-separated for multiple keys)\n")
	fmt.Fprintf(&b, "# next_section = %q\n", cfg.Keys.NextSection)
	fmt.Fprintf(&b, "# prev_section = %q\n", cfg.Keys.PrevSection)
	fmt.Fprintf(&b, "# theme = %q\n", cfg.Keys.Theme)
	fmt.Fprintf(&b, "# language = %q\n", cfg.Keys.Language)
	fmt.Fprintf(&b, "# source = %q\n", cfg.Keys.Source)
	fmt.Fprintf(&b, "# replay = %q\n", cfg.Keys.Replay)
	fmt.Fprintf(&b, "# sort = %q\n", cfg.Keys.Sort)
	fmt.Fprintf(&b, "# next_page = %q\n", cfg.Keys.NextPage)
	fmt.Fprintf(&b, "# prev_page = %q\n", cfg.Keys.PrevPage)
	fmt.Fprintf(&b, "# filter = %q\n", cfg.Keys.Filter)
	fmt.Fprintf(&b, "# help = %q\n", cfg.Keys.Help)
	fmt.Fprintf(&b, "# quit = %q\n", cfg.Keys.Quit)

	return b.String()
}

func formatInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{6}|#[0-9a-fA-F]{3}|[0-9]{1,3})$`)

// Validate validates the configuration and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	// Check theme value
	if c.General.Theme != "" &&
		c.General.Theme != "light" &&
		c.General.Theme != "dark" {
		warnings = append(warnings, fmt.Sprintf("Invalid value for general.theme: %s (expected light or dark)", c.General.Theme))
	}

	if !validSize(c.General.Size) {
		warnings = append(warnings, fmt.Sprintf("Invalid value for general.size: %s (expected small, medium, or large)", c.General.Size))
	}

	// Check grid paging
	if c.Grid.PageSize < 0 {
		warnings = append(warnings, fmt.Sprintf("grid.page_size must not be negative, got %d", c.Grid.PageSize))
	}
	seen := make(map[int]bool)
	for _, n := range c.Grid.PageSizes {
		if n < 1 {
			warnings = append(warnings, fmt.Sprintf("grid.page_sizes entries must be positive, got %d", n))
		}
		if seen[n] {
			warnings = append(warnings, fmt.Sprintf("Duplicate entry in grid.page_sizes: %d", n))
		}
		seen[n] = true
	}
	if c.Grid.PageSize > 0 && len(c.Grid.PageSizes) > 0 && !seen[c.Grid.PageSize] {
		warnings = append(warnings, fmt.Sprintf("grid.page_size %d is not one of grid.page_sizes", c.Grid.PageSize))
	}
	if c.Grid.StreamIntervalMS < 0 {
		warnings = append(warnings, fmt.Sprintf("grid.stream_interval_ms must not be negative, got %d", c.Grid.StreamIntervalMS))
	}

	// Check progress values
	if c.Progress.DurationMS < 0 {
		warnings = append(warnings, fmt.Sprintf("progress.duration_ms must not be negative, got %d", c.Progress.DurationMS))
	}
	if c.Progress.FPS < 0 || c.Progress.FPS > 240 {
		warnings = append(warnings, fmt.Sprintf("progress.fps must be between 0 and 240, got %d", c.Progress.FPS))
	}
	if c.Progress.Radius != 0 && c.Progress.Radius < 50 {
		warnings = append(warnings, fmt.Sprintf("progress.radius %d is below the minimum of 50 and will be raised", c.Progress.Radius))
	}
	if c.Progress.Color != "" && !colorPattern.MatchString(c.Progress.Color) {
		warnings = append(warnings, fmt.Sprintf("Invalid value for progress.color: %s (expected #rrggbb, #rgb, or an ANSI number)", c.Progress.Color))
	}
	if !validSize(c.Progress.Size) {
		warnings = append(warnings, fmt.Sprintf("Invalid value for progress.size: %s (expected small, medium, or large)", c.Progress.Size))
	}
	if c.Progress.DotScale < 0 {
		warnings = append(warnings, fmt.Sprintf("progress.dot_scale must not be negative, got %v", c.Progress.DotScale))
	}

	if c.Typewriter.SpeedMS < 0 {
		warnings = append(warnings, fmt.Sprintf("typewriter.speed_ms must not be negative, got %d", c.Typewriter.SpeedMS))
	}

	return warnings
}

func validSize(s string) bool {
	switch s {
	case "", "small", "medium", "large":
		return true
	}
	return false
}
