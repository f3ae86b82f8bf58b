package cli

import (
	"github.com/spf13/cobra"

	"github.com/fieldstation/zimline/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server over stdio",
	Long: `Exposes the archive as MCP tools (search, read_article,
suggest_titles) over stdio for agent front ends.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reader, cleanup, err := newReader()
		if err != nil {
			return err
		}
		defer cleanup()

		server, err := mcp.NewServer(&mcp.Ports{Reader: reader})
		if err != nil {
			return err
		}
		return server.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
