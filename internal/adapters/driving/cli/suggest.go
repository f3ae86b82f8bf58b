package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var suggestLimit int

var suggestCmd = &cobra.Command{
	Use:   "suggest [prefix]",
	Short: "Suggest entry titles for a partial query",
	Long: `Asks the archive's title index for suggestions. Archives without a
title index return nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 5, "maximum number of suggestions")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	reader, cleanup, err := newReader()
	if err != nil {
		return err
	}
	defer cleanup()

	titles, err := reader.Suggest(context.Background(), args[0], suggestLimit)
	if err != nil {
		return fmt.Errorf("suggest failed: %w", err)
	}

	if len(titles) == 0 {
		cmd.Println("No suggestions.")
		return nil
	}
	for _, t := range titles {
		cmd.Println(t)
	}
	return nil
}
