package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colorplace/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game straight away, skipping the menu.

Controls:
  Arrows/hjkl  - Move the cursor
  Enter/Space  - Place the tile, or pick a target when asked
  Mouse        - Click a cell
  R            - New game (after game over)
  ?            - Show all keys
  Esc/B        - Leave the board
  Q/Ctrl+C     - Quit

A game ends when the queued tile has nowhere to go. Progress and
unlocks are saved at game over.

Examples:
  colorplace play
  colorplace play --seed 42
  colorplace play --config ./my-rules.yaml --log ./events.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	rules := loadRules()
	sink, closeLog := eventLog()
	defer closeLog()

	// Open storage, continue without it on failure
	store := openStoreOrWarn()

	_, runErr := tui.Run(rules, store, runtimeConfig(), sink)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}
