// Package cli implements the command-line interface for cubesim.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	dbPath     string
	sizeFlag   int
	speedFlag  string
	verbose    bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubesim",
	Short: "Twisty cube simulator",
	Long: `cubesim - An N×N×N twisty cube simulator for the terminal.

Turn layers with the keyboard or by dragging stickers with the mouse,
scramble and auto-solve with animated playback, and keep a journal of
every session for later replay and analysis.

Moves are written as axis, layer and an optional prime for a clockwise
turn: x0 y1' z2.`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.cubesim/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubesim/cubesim.db)")
	rootCmd.PersistentFlags().IntVar(&sizeFlag, "size", 0, "Cube size N for an N×N×N cube (default from config)")
	rootCmd.PersistentFlags().StringVar(&speedFlag, "speed", "", "Turn speed: slow, normal, fast or instant")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
