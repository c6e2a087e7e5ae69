package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim/internal/config"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective settings",
	Long:  `Print the settings in effect after the config file and flags are applied.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default settings",
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file")
}

func settingsPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	fmt.Printf("File:           %s\n", settingsPath())
	fmt.Printf("Size:           %d\n", cfg.Size)
	fmt.Printf("Speed:          %s\n", cfg.Speed)
	fmt.Printf("Scramble moves: %d\n", cfg.ScrambleMoves)
	fmt.Printf("Interval:       %s\n", cfg.Interval())
	fmt.Printf("Database:       %s\n", cfg.Database())
	fmt.Printf("Journal:        %v\n", cfg.Journal)
	fmt.Printf("Event log:      %v (%s)\n", cfg.LogEvents, config.LogDir())
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := settingsPath()
	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
