package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colorplace/internal/config"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the default rules file",
	Long: `Print the built-in rules as YAML. Save the output to
~/.colorplace/configs/colorplace.yaml or ./configs/colorplace.yaml and
edit it to change scoring, levels, missions or pacing.

With --config, the given file is checked instead and a summary printed.

Examples:
  colorplace rules > ~/.colorplace/configs/colorplace.yaml
  colorplace rules --config ./my-rules.yaml`,
	Args: cobra.NoArgs,
	Run:  runRules,
}

func runRules(_ *cobra.Command, _ []string) {
	if flagConfig == "" {
		os.Stdout.Write(config.GetDefaultYAML())
		return
	}

	rules := loadRules()
	fmt.Printf("%s is valid\n", flagConfig)
	fmt.Printf("  levels:       %d\n", len(rules.Levels))
	fmt.Printf("  missions:     %d\n", len(rules.Missions.Shapes))
	fmt.Printf("  tile types:   %d\n", len(rules.TileTypes))
	fmt.Printf("  color change: %s\n", rules.Rules.ColorChange)
}
