package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldstation/zimline/internal/core/domain"
)

var (
	readMaxChars int
	readFull     bool
)

var readCmd = &cobra.Command{
	Use:   "read [path]",
	Short: "Resolve a path and print the rendered entry",
	Long: `Resolves an archive path (repairing stale references and following
redirects) and prints the entry as plain text blocks. Output is cut at
the configured character budget unless --full is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func init() {
	readCmd.Flags().IntVarP(&readMaxChars, "max-chars", "c", 0, "character budget (default from config)")
	readCmd.Flags().BoolVar(&readFull, "full", false, "ignore the character budget")
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	reader, cleanup, err := newReader()
	if err != nil {
		return err
	}
	defer cleanup()

	maxChars := readMaxChars
	if readFull {
		maxChars = 0
	} else if maxChars <= 0 {
		maxChars = configuredBudget()
	}

	doc, err := reader.ResolveAndRender(context.Background(), args[0], maxChars)
	if err != nil {
		return err
	}

	cmd.Println(formatDocument(doc))
	return nil
}

// configuredBudget reads the default character budget, falling back to
// unbudgeted when configuration is unavailable.
func configuredBudget() int {
	store, err := loadConfig()
	if err != nil {
		return 0
	}
	return store.Config().DefaultMaxChars
}

// formatDocument flattens a rendered document for line-oriented
// output: headings framed, list items bulleted, blocks separated by
// blank lines.
func formatDocument(doc *domain.RenderedDocument) string {
	var b strings.Builder
	if doc.Title != "" {
		b.WriteString("=== " + doc.Title + " ===\n\n")
	}
	for i, block := range doc.Blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch block.Kind {
		case domain.BlockHeading:
			b.WriteString("=== " + block.Text + " ===")
		case domain.BlockListItem:
			b.WriteString("* " + block.Text)
		default:
			b.WriteString(block.Text)
		}
	}
	return b.String()
}
