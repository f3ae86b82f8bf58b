package cli

import (
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show configured archives and the opened archive's capabilities",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, _ []string) error {
	store, err := loadConfig()
	if err != nil {
		return err
	}
	cfg := store.Config()

	entries := loadCatalog(cfg).Entries()
	if len(entries) == 0 {
		cmd.Println("No archives configured.")
		cmd.Printf("Add archives to %s or pass --archive.\n", store.Path())
	} else {
		cmd.Println("Available archives:")
		for i, e := range entries {
			cmd.Printf("  [%d] %s  (%s)\n", i+1, e.Name, e.Path)
			if e.Description != "" {
				cmd.Printf("      %s\n", e.Description)
			}
		}
	}

	reader, cleanup, err := newReader()
	if err != nil {
		// Listing alone is still useful without an openable archive.
		return nil
	}
	defer cleanup()

	info := reader.Info()
	cmd.Println()
	cmd.Printf("Opened: %s\n", info.Name)
	cmd.Printf("  Entries:        %d\n", info.EntryCount)
	cmd.Printf("  Fulltext index: %t\n", info.HasFulltext)
	cmd.Printf("  Title index:    %t\n", info.HasTitleIndex)
	return nil
}
