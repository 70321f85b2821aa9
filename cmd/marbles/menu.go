package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-marbles/internal/platform/tui"
	"github.com/vovakirdan/tui-marbles/internal/registry"
	"github.com/vovakirdan/tui-marbles/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start marbles with the interactive menu",
	Long: `Start in interactive menu mode.

Continue picks up on the last level you reached, New game starts from
level one and Select level lets you replay any level you have unlocked.
After a game you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scoreboard
  Q            - Quit

Examples:
  marbles menu
  marbles menu --fps 30
  marbles menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := checkGameFiles(); err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	// Menu loop
	for {
		result, err := tui.RunMenu(store, storage.LocalPlayer, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		var level int
		switch result.Choice {
		case tui.ChoiceQuit, tui.ChoiceNone:
			return nil

		case tui.ChoiceScoreboard:
			goBack, sbErr := tui.RunScoreboard(store, storage.LocalPlayer, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				logger.Error("scoreboard failed", "error", sbErr)
			}
			if !goBack {
				return nil
			}
			continue

		case tui.ChoiceContinue:
			level = min(result.Progress, len(levelNames()))

		case tui.ChoiceNewGame:
			level = 1

		case tui.ChoiceSelectLevel:
			selected, quit, selErr := tui.RunLevelSelect(levelNames(), result.Progress, cfg)
			if selErr != nil {
				logger.Error("level select failed", "error", selErr)
				continue
			}
			if quit {
				return nil
			}
			if selected == 0 {
				continue // Back to menu
			}
			level = selected
		}

		game, err := registry.CreateAt(tui.GameID, level)
		if err != nil {
			return fmt.Errorf("creating game: %w", err)
		}

		// Fresh seed for each game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		back, err := tui.Run(game, store, logger, cfg)
		if err != nil {
			logger.Error("game failed", "error", err)
			continue
		}
		if !back {
			return nil
		}
	}
}

// levelNames lists the configured level table.
func levelNames() []string {
	return registry.Levels(tui.GameID)
}
