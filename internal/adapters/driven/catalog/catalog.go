// Package catalog tracks the archive files available to open: the
// explicitly configured list plus an optional directory scanned and
// watched for archive files dropped in while running.
package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/fieldstation/zimline/internal/logger"
)

// archiveExts are the file extensions treated as archive files when
// scanning a directory.
var archiveExts = map[string]bool{
	".zdb":    true,
	".db":     true,
	".sqlite": true,
}

// Entry is one openable archive file.
type Entry struct {
	Name        string
	Description string
	Path        string
}

// Catalog is a thread-safe list of available archives.
type Catalog struct {
	mu         sync.RWMutex
	configured []Entry
	scanned    []Entry
	dir        string
}

// New builds a catalog from the configured refs, dropping entries whose
// files do not exist, and scans dir (if non-empty) for archive files.
func New(configured []Entry, dir string) *Catalog {
	c := &Catalog{dir: dir}
	for _, ref := range configured {
		if _, err := os.Stat(ref.Path); err != nil {
			logger.Warn("Configured archive missing, skipping: %s", ref.Path)
			continue
		}
		c.configured = append(c.configured, ref)
	}
	c.rescan()
	return c
}

// Entries returns the configured archives followed by scanned ones,
// deduplicated by path.
func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Entry, 0, len(c.configured)+len(c.scanned))
	seen := make(map[string]struct{})
	for _, e := range append(append([]Entry{}, c.configured...), c.scanned...) {
		if _, dup := seen[e.Path]; dup {
			continue
		}
		seen[e.Path] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Watch follows the archive directory with fsnotify and rescans on
// changes. Blocks until ctx is cancelled. No-op when the catalog has
// no directory.
func (c *Catalog) Watch(ctx context.Context) error {
	if c.dir == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(c.dir); err != nil {
		return fmt.Errorf("watching %s: %w", c.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				logger.Debug("Archive directory changed (%s), rescanning", event.Name)
				c.rescan()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// rescan rebuilds the scanned list from the archive directory.
func (c *Catalog) rescan() {
	if c.dir == "" {
		return
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		logger.Warn("Scanning archive directory: %v", err)
		return
	}

	var scanned []Entry
	for _, de := range entries {
		if de.IsDir() || !archiveExts[filepath.Ext(de.Name())] {
			continue
		}
		path := filepath.Join(c.dir, de.Name())
		scanned = append(scanned, Entry{
			Name: strings.TrimSuffix(de.Name(), filepath.Ext(de.Name())),
			Path: path,
		})
	}
	sort.Slice(scanned, func(i, j int) bool { return scanned[i].Name < scanned[j].Name })

	c.mu.Lock()
	c.scanned = scanned
	c.mu.Unlock()
}
