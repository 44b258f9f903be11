package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colorplace/internal/games/colorplace"
)

var (
	flagResetYes    bool
	flagResetScores bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe saved progress",
	Long: `Delete the progress record: games played, high score, unlocked
skills, collected colors and achievements. The score history is kept
unless --scores is given.

Examples:
  colorplace reset --yes
  colorplace reset --yes --scores`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetYes, "yes", false, "Confirm the reset")
	resetCmd.Flags().BoolVar(&flagResetScores, "scores", false, "Also clear the score history")
}

func runReset(_ *cobra.Command, _ []string) {
	if !flagResetYes {
		fmt.Fprintln(os.Stderr, "This deletes all saved progress. Re-run with --yes to confirm.")
		os.Exit(1)
	}

	store := mustOpenStore()
	defer store.Close()

	if err := store.ResetProgress(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println("Progress reset.")

	if flagResetScores {
		if err := store.ClearScores(colorplace.GameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Println("Score history cleared.")
	}
}
