package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// ArchiveRef is one configured archive file.
type ArchiveRef struct {
	// Name is the display name shown in selection menus.
	Name string `toml:"name"`

	// Description is a one-line summary of the archive's contents.
	Description string `toml:"description,omitempty"`

	// Path is the filesystem location of the archive file.
	Path string `toml:"path"`
}

// Config is the application configuration.
type Config struct {
	// Archives lists the archive files available for opening.
	Archives []ArchiveRef `toml:"archives,omitempty"`

	// ArchiveDir, when set, is scanned (and watched) for archive
	// files in addition to the explicit list.
	ArchiveDir string `toml:"archive_dir,omitempty"`

	// DefaultMaxChars is the rendering character budget applied when
	// a caller does not choose one. 0 disables the budget.
	DefaultMaxChars int `toml:"default_max_chars"`

	// LineWidth is the display width console output is clamped to.
	LineWidth int `toml:"line_width"`

	// Callsign tags console output for RF operation.
	Callsign string `toml:"callsign,omitempty"`

	// LegacyArchivePath is the pre-multi-archive single file key.
	// Upgraded into Archives on load.
	LegacyArchivePath string `toml:"archive_path,omitempty"`
}

// Store is a TOML-file-backed configuration store.
type Store struct {
	mu       sync.RWMutex
	filePath string
	cfg      Config
}

// NewStore creates a config store rooted at configDir.
// If configDir is empty, defaults to ~/.zimline.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".zimline")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	s := &Store{filePath: filepath.Join(configDir, "config.toml")}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Config returns a copy of the current configuration.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg := s.cfg
	cfg.Archives = append([]ArchiveRef(nil), s.cfg.Archives...)
	return cfg
}

// SetConfig replaces the configuration and persists it.
func (s *Store) SetConfig(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	return s.save()
}

// Load reads configuration from the TOML file. A missing file yields
// defaults; a legacy single-archive key is upgraded in place.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = Config{DefaultMaxChars: 2000, LineWidth: 80}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &s.cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	if s.cfg.DefaultMaxChars < 0 {
		s.cfg.DefaultMaxChars = 0
	}
	if s.cfg.LineWidth <= 0 {
		s.cfg.LineWidth = 80
	}

	if s.cfg.LegacyArchivePath != "" {
		s.upgradeLegacy()
		return s.save()
	}
	return nil
}

// upgradeLegacy converts the single-archive key into an Archives entry
// (caller must hold lock).
func (s *Store) upgradeLegacy() {
	path := s.cfg.LegacyArchivePath
	s.cfg.LegacyArchivePath = ""
	for _, ref := range s.cfg.Archives {
		if ref.Path == path {
			return
		}
	}
	s.cfg.Archives = append(s.cfg.Archives, ArchiveRef{
		Name:        filepath.Base(path),
		Description: "Upgraded from single-archive configuration",
		Path:        path,
	})
}

// Save persists the current configuration to disk.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *Store) save() error {
	data, err := toml.Marshal(s.cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the configuration file path.
func (s *Store) Path() string {
	return s.filePath
}
