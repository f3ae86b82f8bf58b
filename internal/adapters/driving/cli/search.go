package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldstation/zimline/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the archive",
	Long: `Searches the opened archive for entries matching the query.
Strategies are tried in order: fulltext index, title suggestions,
then heuristic path guessing. Every result is verified to resolve.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	reader, cleanup, err := newReader()
	if err != nil {
		return err
	}
	defer cleanup()

	hits, err := reader.Search(context.Background(), args[0], domain.SearchOptions{Limit: searchLimit})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(hits, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printHits(cmd, hits)
	return nil
}

func printHits(cmd *cobra.Command, hits []domain.SearchHit) {
	if len(hits) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, hit := range hits {
		cmd.Printf("  [%d] %s (%s)\n", i+1, hit.Title, hit.Method)
		cmd.Printf("      %s\n", hit.Path)
		if hit.Snippet != "" {
			cmd.Printf("      %s\n", hit.Snippet)
		}
		cmd.Println()
	}
}
