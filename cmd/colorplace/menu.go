package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colorplace/internal/platform/tui"
)

func runMenu(_ *cobra.Command, _ []string) {
	rules := loadRules()
	sink, closeLog := eventLog()
	defer closeLog()

	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(store, rules, runtimeConfig(), sink); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}
