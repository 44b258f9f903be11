package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colorplace/internal/games/colorplace"
	"github.com/vovakirdan/colorplace/internal/platform/tui"
)

var flagProgressTUI bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show unlocks and collection progress",
	Long: `List tile types, skills, hidden missions and color collection with
how far along each one is. Hidden missions stay masked until earned.

Examples:
  colorplace progress
  colorplace progress --tui`,
	Args: cobra.NoArgs,
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagProgressTUI, "tui", false, "Open the interactive progress screen")
}

func runProgress(_ *cobra.Command, _ []string) {
	rules := loadRules()
	store := mustOpenStore()
	defer store.Close()

	p, err := store.LoadProgress()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading progress: %v\n", err)
		return
	}

	if flagProgressTUI {
		cfg := runtimeConfig()
		if _, err := tui.RunProgress(p, rules, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	fmt.Printf("Games played: %d  Best: %d  Score multiplier: x%.1f\n",
		p.TotalGames, p.HighScore, p.ScoreMultiplier)

	section := ""
	for _, item := range colorplace.ProgressItems(p, rules) {
		if item.Section != section {
			section = item.Section
			fmt.Printf("\n%s\n", section)
		}
		mark := " "
		if item.Done {
			mark = "x"
		}
		fmt.Printf("  [%s] %-22s %5d/%-5d %s\n", mark, item.Name, item.Current, item.Goal, item.Condition)
	}
}
