package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/henri123lemoine/trek/internal/app"
	"github.com/henri123lemoine/trek/internal/config"
	"github.com/henri123lemoine/trek/internal/debug"
	"github.com/henri123lemoine/trek/internal/i18n"
	"github.com/henri123lemoine/trek/internal/prefs"
	"github.com/henri123lemoine/trek/internal/theme"
)

var (
	configPath string
	Debug      bool
	themeName  string
	language   string
	static     bool
	width      int
)

var RootCmd = &cobra.Command{
	Use:   "trek",
	Short: "Showcase of the trek terminal components",
	Long: `
  _            _
 | |_ _ _ ___ | |__
 |  _| '_/ -_)| / /
  \__|_| \___||_\_\

A data grid, progress rings and a typewriter, themed and translated.
Run without a terminal, or with --static, to print one fully drawn frame.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default "+config.ConfigPath()+")")
	RootCmd.PersistentFlags().BoolVarP(&Debug, "debug", "d", false, "write a debug log")
	RootCmd.Flags().StringVarP(&themeName, "theme", "t", "", "color theme: light or dark")
	RootCmd.Flags().StringVarP(&language, "lang", "l", "", "interface language")
	RootCmd.Flags().BoolVarP(&static, "static", "s", false, "print one frame and exit")
	RootCmd.Flags().IntVarP(&width, "width", "w", 100, "width of the static frame")
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load()
}

// firstSet returns the first non-empty value: flag, saved preference,
// then config.
func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	for _, w := range cfg.Validate() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if Debug {
		if err := debug.Enable(cfg.DebugLogPath()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: debug log: %v\n", err)
		}
		defer debug.Close()
	}
	defer debug.Timed("trek")()

	store := prefs.Open(prefs.DefaultPath())
	saved, err := store.Load()
	if err != nil {
		debug.Log("loading prefs: %v", err)
	}

	lang := firstSet(language, saved.Language, cfg.General.Language)
	tr, err := i18n.New(lang, cfg.General.TranslationsDir)
	if errors.Is(err, i18n.ErrUnknownLanguage) && language == "" {
		fmt.Fprintf(os.Stderr, "warning: %v, using %s\n", err, i18n.DefaultLanguage)
		tr, err = i18n.New(i18n.DefaultLanguage, cfg.General.TranslationsDir)
	}
	if err != nil {
		return err
	}

	themes := theme.NewService(theme.Theme(firstSet(themeName, saved.Theme, cfg.General.Theme)))

	model := app.New(cfg, tr, themes, store)
	defer model.Close()

	out := os.Stdout.Fd()
	if static || !(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out)) {
		fmt.Println(model.Snapshot(width))
		return nil
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
