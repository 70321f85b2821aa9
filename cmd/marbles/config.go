package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-marbles/internal/config"
	"github.com/vovakirdan/tui-marbles/internal/platform/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default game config",
	Long: `Print the built-in marbles config as YAML. Save it to
~/.marbles/configs/marbles.yaml or ./configs/marbles.yaml, or pass it
with --config, and edit the values you want to change.

Examples:
  marbles config > ~/.marbles/configs/marbles.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		data := config.GetDefaultYAML(tui.GameID)
		if data == nil {
			return fmt.Errorf("no default config for %q", tui.GameID)
		}
		_, err := os.Stdout.Write(data)
		return err
	},
}
