package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-marbles/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the level table",
	Long: `Shows the levels of the configured table (--levels, or the built-in
table) and marks the ones already unlocked.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	names := levelNames()
	if len(names) == 0 {
		fmt.Println("No levels available.")
		return
	}

	unlocked := 1
	if store, err := storage.Open(flagDBPath); err == nil {
		if last, lastErr := store.LastLevel(storage.LocalPlayer); lastErr == nil && last > unlocked {
			unlocked = last
		}
		store.Close()
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %s\n", "#", "Name")
	fmt.Printf("  %-3s  %s\n", "-", "----")

	for i, name := range names {
		mark := ""
		if i+1 > unlocked {
			mark = "  (locked)"
		}
		fmt.Printf("  %-3d  %s%s\n", i+1, name, mark)
	}

	fmt.Println()
	fmt.Println("Run 'marbles play --level <n>' to play an unlocked level.")
}
