package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.General.Theme != "dark" {
		t.Errorf("Expected default theme 'dark', got %q", cfg.General.Theme)
	}

	if cfg.Progress.DurationMS != 3500 {
		t.Errorf("Expected duration 3500ms, got %d", cfg.Progress.DurationMS)
	}

	if cfg.Typewriter.SpeedMS != 20 {
		t.Errorf("Expected typewriter speed 20ms, got %d", cfg.Typewriter.SpeedMS)
	}

	if !cfg.Grid.Sortable {
		t.Error("Expected grid to be sortable by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      *Config
		wantWarning bool
	}{
		{
			name:        "default config is valid",
			config:      DefaultConfig(),
			wantWarning: false,
		},
		{
			name:        "zero config is valid",
			config:      &Config{},
			wantWarning: false,
		},
		{
			name: "invalid theme",
			config: &Config{
				General: GeneralConfig{Theme: "sepia"},
			},
			wantWarning: true,
		},
		{
			name: "invalid size",
			config: &Config{
				General: GeneralConfig{Size: "huge"},
			},
			wantWarning: true,
		},
		{
			name: "negative page size",
			config: &Config{
				Grid: GridConfig{PageSize: -1},
			},
			wantWarning: true,
		},
		{
			name: "page size not offered",
			config: &Config{
				Grid: GridConfig{PageSize: 7, PageSizes: []int{5, 10}},
			},
			wantWarning: true,
		},
		{
			name: "duplicate page sizes",
			config: &Config{
				Grid: GridConfig{PageSizes: []int{5, 5}},
			},
			wantWarning: true,
		},
		{
			name: "radius below floor",
			config: &Config{
				Progress: ProgressConfig{Radius: 20},
			},
			wantWarning: true,
		},
		{
			name: "invalid color",
			config: &Config{
				Progress: ProgressConfig{Color: "slateblue"},
			},
			wantWarning: true,
		},
		{
			name: "ansi color",
			config: &Config{
				Progress: ProgressConfig{Color: "212"},
			},
			wantWarning: false,
		},
		{
			name: "fps out of range",
			config: &Config{
				Progress: ProgressConfig{FPS: 1000},
			},
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.config.Validate()
			hasWarnings := len(warnings) > 0
			if hasWarnings != tt.wantWarning {
				t.Errorf("Validate() hasWarnings = %v, want %v. Warnings: %v", hasWarnings, tt.wantWarning, warnings)
			}
		})
	}
}

func TestLoadPreservesDefaults(t *testing.T) {
	// Create a temp config file with partial config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	// Only specify some values - others should keep defaults
	tomlContent := `[general]
language = "es"

[grid]
page_sizes = [3, 6]
page_size = 3
`
	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}

	// Check specified values were loaded
	if cfg.General.Language != "es" {
		t.Errorf("Expected language 'es', got %q", cfg.General.Language)
	}
	if diff := cmp.Diff([]int{3, 6}, cfg.Grid.PageSizes); diff != "" {
		t.Errorf("page sizes (-want +got):\n%s", diff)
	}

	// Check that non-specified values keep defaults
	if cfg.General.Theme != "dark" {
		t.Errorf("Expected default theme 'dark', got %q", cfg.General.Theme)
	}

	// IMPORTANT: Check that boolean defaults are preserved when not specified
	if !cfg.Grid.Sortable || !cfg.Grid.Persist {
		t.Error("Expected grid booleans to remain true (default) when not specified in config")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[grid\npage_size = "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPath(configPath); err == nil {
		t.Error("expected a parse error")
	}
}

func TestDefaultConfigFileParses(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "trek", "config.toml")
	if err := CreateDefaultConfigFile(configPath); err != nil {
		t.Fatalf("CreateDefaultConfigFile() error: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("generated file differs from defaults (-want +got):\n%s", diff)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	want := DefaultConfig()
	want.General.Theme = "light"
	want.Progress.Radius = 80
	want.Keys.Quit = "ctrl+q"

	if err := Save(want, configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := ConfigPath(); got != filepath.Join("/xdg", "trek", "config.toml") {
		t.Errorf("ConfigPath() = %q", got)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	path := ConfigPath()
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected config.toml, got %q", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != "trek" {
		t.Errorf("Expected trek dir, got %q", filepath.Dir(path))
	}
}

func TestDebugLogPath(t *testing.T) {
	cfg := DefaultConfig()
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := cfg.DebugLogPath(); got != filepath.Join("/state", "trek", "debug.log") {
		t.Errorf("DebugLogPath() = %q", got)
	}

	cfg.General.DebugLog = "/tmp/custom.log"
	if got := cfg.DebugLogPath(); got != "/tmp/custom.log" {
		t.Errorf("DebugLogPath() = %q, want configured path", got)
	}
}
