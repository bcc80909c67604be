package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/henri123lemoine/trek/internal/config"
)

var force bool

// ConfigCmd groups the config file commands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the trek config file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(resolvedConfigPath())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolvedConfigPath()
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := config.CreateDefaultConfigFile(path); err != nil {
			return err
		}
		fmt.Println("wrote", path)
		return nil
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		warnings := cfg.Validate()
		for _, w := range warnings {
			fmt.Println("warning:", w)
		}
		if len(warnings) > 0 {
			return fmt.Errorf("%d problem(s) in %s", len(warnings), resolvedConfigPath())
		}
		fmt.Println("ok")
		return nil
	},
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.ConfigPath()
}

func init() {
	configInitCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	ConfigCmd.AddCommand(configPathCmd, configInitCmd, configCheckCmd)
	RootCmd.AddCommand(ConfigCmd)
}
