// marbles is a hex-grid marble shooter for the terminal.
//
// Usage:
//
//	marbles play             - Play, starting from the last reached level
//	marbles menu             - Start menu with level select and scoreboard
//	marbles levels           - List the level table
//	marbles scores           - Show high scores
//	marbles serve            - Start SSH and websocket servers for remote play
//	marbles config           - Print the default game config
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.marbles/scores.db)
//	--config <path>       - Custom game config YAML
//	--levels <path>       - Custom level table YAML
//	--difficulty <name>   - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-marbles/internal/config"
	"github.com/vovakirdan/tui-marbles/internal/core"
	"github.com/vovakirdan/tui-marbles/internal/games/marbles"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevels     string
	flagDifficulty string
	flagLogLevel   string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "marbles",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "marbles",
	Short: "Marbles - a hex-grid marble shooter in your terminal",
	Long: `Marbles is a bubble-shooter style puzzle played in the terminal.
Aim the launcher, match three or more marbles of one color and clear
the board before the timer runs out or the marbles reach the bottom.

Available commands:
  play     - Play directly, continuing from your last level
  menu     - Interactive menu with level select and scoreboard
  levels   - List the level table
  scores   - View high scores
  serve    - Start SSH and websocket servers for remote play
  config   - Print the default game config

Examples:
  marbles play
  marbles play --level 4 --difficulty hard
  marbles menu
  marbles serve --ssh :2222 --ws :8080
  marbles scores`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger.SetLevel(level)
		log.SetDefault(logger)

		if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
			return fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", flagDifficulty)
		}
		marbles.SetConfigPath(flagConfig)
		marbles.SetLevelsPath(flagLevels)
		marbles.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.marbles/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Path to custom level table YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// runtimeConfig builds the runtime config for the local terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}

// checkGameFiles fails early on a broken --config or --levels file; the
// terminal game would otherwise fall back to the built-in setup.
func checkGameFiles() error {
	if flagConfig == "" && flagLevels == "" {
		return nil
	}
	_, _, err := marbles.Build(marbles.Options{
		ConfigPath: flagConfig,
		LevelsPath: flagLevels,
		Preset:     config.ParsePreset(flagDifficulty),
	})
	return err
}
