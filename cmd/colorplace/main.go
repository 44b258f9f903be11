// colorplace is a terminal tile-matching puzzle: place colored tiles on a
// 5x5 board, clear groups of three, chain combos and unlock skills.
//
// Usage:
//
//	colorplace               - Start the menu
//	colorplace play          - Jump straight onto the board
//	colorplace serve         - Start SSH server for remote play
//	colorplace scores        - Show the score history
//	colorplace progress      - Show unlocks and collection progress
//	colorplace reset         - Wipe saved progress
//	colorplace rules         - Print the default rules file
//
// Global flags:
//
//	--fps <rate>     - Fastest animation step rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible games
//	--db <path>      - Set database path (default: ~/.colorplace/colorplace.db)
//	--config <path>  - Custom rules file
//	--log <path>     - Write the game event log to a file
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/colorplace/internal/config"
	"github.com/vovakirdan/colorplace/internal/core"
	"github.com/vovakirdan/colorplace/internal/platform/tui"
	"github.com/vovakirdan/colorplace/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "colorplace",
	Short: "Color Place - a tile-matching puzzle in your terminal",
	Long: `Color Place is a turn-based puzzle on a 5x5 board. Place the queued
tile where its shape allows, clear groups of three or more matching
colors, chain combos and complete missions to unlock skills.

Available commands:
  play      - Start a game directly
  serve     - Start SSH server for remote play
  scores    - View the score history
  progress  - View unlocks and collection progress
  reset     - Wipe saved progress
  rules     - Print the default rules file

Examples:
  colorplace
  colorplace play --seed 42
  colorplace serve --ssh :2222
  colorplace progress`,
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Fastest animation step rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.colorplace/colorplace.db", "Path to progress and scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write the game event log to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(rulesCmd)
}

// loadRules reads the rules or exits.
func loadRules() config.ColorPlaceConfig {
	rules, err := config.LoadColorPlace(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return rules
}

// openStoreOrWarn opens the database; play continues without it on failure.
func openStoreOrWarn() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// mustOpenStore opens the database or exits.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// eventLog opens the --log file. The TUI owns the terminal, so events are
// only logged when a file is given. The returned close func is never nil.
func eventLog() (*tui.LogSink, func()) {
	if flagLogPath == "" {
		return nil, func() {}
	}

	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return nil, func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "colorplace",
		Level:           log.DebugLevel,
	})
	//nolint:errcheck // Best-effort close on exit
	return tui.NewLogSink(logger), func() { f.Close() }
}
