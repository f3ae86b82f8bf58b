package cli

import (
	"github.com/spf13/cobra"

	"github.com/fieldstation/zimline/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the full-screen terminal user interface.

Controls:
  enter    - Search / Read selected result
  ↑/k, ↓/j - Navigate / Scroll
  Esc      - Back
  q        - Quit`,
	RunE: func(_ *cobra.Command, _ []string) error {
		reader, cleanup, err := newReader()
		if err != nil {
			return err
		}
		defer cleanup()
		return tui.Run(reader)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
