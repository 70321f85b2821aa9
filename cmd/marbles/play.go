package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-marbles/internal/platform/tui"
	"github.com/vovakirdan/tui-marbles/internal/registry"
	"github.com/vovakirdan/tui-marbles/internal/storage"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play marbles",
	Long: `Start playing. Without --level the game continues from the last
level you reached.

Controls:
  Left/Right (a/d, h/l)  - Rotate the launcher
  Space/Up               - Fire
  Down/Tab               - Swap current and next marble
  P                      - Pause
  Enter                  - Next level (after clearing one)
  R                      - Restart the level
  B/Esc                  - Leave (when paused or over)
  Q/Ctrl+C               - Quit

Difficulty options:
  easy   - 90s clock, more bombs and bonus-time marbles
  normal - 60s clock
  hard   - 45s clock shrinking faster, faster shots, fewer specials
  fixed  - Same clock on every level

Examples:
  marbles play
  marbles play --level 3
  marbles play --difficulty hard
  marbles play --config ./my-marbles.yaml --levels ./my-levels.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start level (1-indexed, default: last reached)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if err := checkGameFiles(); err != nil {
		return err
	}

	n := len(levelNames())
	if flagLevel < 0 || flagLevel > n {
		return fmt.Errorf("invalid --level %d (1-%d)", flagLevel, n)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	level := flagLevel
	if level == 0 && store != nil {
		if last, lastErr := store.LastLevel(storage.LocalPlayer); lastErr == nil {
			level = min(last, n)
		}
	}
	game, err := registry.CreateAt(tui.GameID, level)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	if _, err := tui.Run(game, store, logger, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
