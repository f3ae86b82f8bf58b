// Package cli wires the cobra command surface: one-shot search and
// read commands, the interactive console for constrained links, and
// the TUI and MCP front ends.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldstation/zimline/internal/adapters/driven/archive/sqlite"
	"github.com/fieldstation/zimline/internal/adapters/driven/catalog"
	configfile "github.com/fieldstation/zimline/internal/adapters/driven/config/file"
	"github.com/fieldstation/zimline/internal/core/ports/driving"
	"github.com/fieldstation/zimline/internal/core/services"
	"github.com/fieldstation/zimline/internal/logger"
)

// version is stamped by the release build.
var version = "0.3.0"

var (
	flagVerbose bool
	flagArchive string
	flagConfig  string
)

// readerOverride lets tests inject a reader without touching disk.
var readerOverride driving.ReaderService

var rootCmd = &cobra.Command{
	Use:   "zimline",
	Short: "Offline archive reader for narrow, line-oriented links",
	Long: `zimline resolves and renders content from immutable, path-addressed
compressed archives, formatted for severely bandwidth- and
width-constrained channels such as packet radio and telnet.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "print resolution diagnostics to stderr")
	rootCmd.PersistentFlags().StringVarP(&flagArchive, "archive", "a", "", "archive file to open (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config-dir", "", "configuration directory (default ~/.zimline)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig opens the configuration store.
func loadConfig() (*configfile.Store, error) {
	return configfile.NewStore(flagConfig)
}

// loadCatalog builds the archive catalog from configuration.
func loadCatalog(cfg configfile.Config) *catalog.Catalog {
	refs := make([]catalog.Entry, 0, len(cfg.Archives))
	for _, a := range cfg.Archives {
		refs = append(refs, catalog.Entry{Name: a.Name, Description: a.Description, Path: a.Path})
	}
	return catalog.New(refs, cfg.ArchiveDir)
}

// newReader opens the selected archive and returns a reader over it
// plus a cleanup function. Selection order: --archive flag, then the
// configured catalog (single entry opens directly, multiple requires
// the flag).
func newReader() (driving.ReaderService, func(), error) {
	if readerOverride != nil {
		return readerOverride, func() {}, nil
	}

	path := flagArchive
	if path == "" {
		store, err := loadConfig()
		if err != nil {
			return nil, nil, err
		}
		entries := loadCatalog(store.Config()).Entries()
		switch len(entries) {
		case 0:
			return nil, nil, errors.New("no archives configured: add one to config.toml or pass --archive")
		case 1:
			path = entries[0].Path
		default:
			return nil, nil, fmt.Errorf("%d archives configured: pick one with --archive (see 'zimline info')", len(entries))
		}
	}

	arch, err := sqlite.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening archive: %w", err)
	}
	return services.NewReaderService(arch), func() { arch.Close() }, nil
}
