package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/fieldstation/zimline/internal/adapters/driven/archive/sqlite/migrations"
)

// compressThreshold is the smallest body worth zstd-compressing.
// Tiny bodies grow under compression framing.
const compressThreshold = 128

// Builder creates archive files for fixtures and offline ingest. The
// resulting file is consumed read-only through Open.
type Builder struct {
	db      *sql.DB
	encoder *zstd.Encoder
}

// NewBuilder creates (or opens) an archive file for writing and
// installs the schema.
func NewBuilder(path string) (*Builder, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening archive for build: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}

	b := &Builder{db: db, encoder: encoder}
	if err := b.migrate(migrations.FS); err != nil {
		b.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return b, nil
}

// SetName records the archive display name.
func (b *Builder) SetName(name string) error {
	_, err := b.db.Exec(
		"INSERT INTO meta(key, value) VALUES('name', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		name)
	return err
}

// AddEntry stores a content entry and indexes it for fulltext search.
func (b *Builder) AddEntry(path, title string, content []byte) error {
	blob := content
	compressed := false
	if len(content) >= compressThreshold {
		blob = b.encoder.EncodeAll(content, nil)
		compressed = true
	}

	res, err := b.db.Exec(
		"INSERT INTO entries(path, title, is_redirect, content, compressed) VALUES(?, ?, 0, ?, ?)",
		path, title, blob, compressed)
	if err != nil {
		return fmt.Errorf("inserting entry %q: %w", path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("entry id for %q: %w", path, err)
	}

	_, err = b.db.Exec(
		"INSERT INTO entries_fts(rowid, title, body) VALUES(?, ?, ?)",
		id, title, plainText(content))
	if err != nil {
		return fmt.Errorf("indexing entry %q: %w", path, err)
	}
	return nil
}

// AddRedirect stores a redirect entry pointing at target.
func (b *Builder) AddRedirect(path, title, target string) error {
	_, err := b.db.Exec(
		"INSERT INTO entries(path, title, is_redirect, redirect_to) VALUES(?, ?, 1, ?)",
		path, title, target)
	if err != nil {
		return fmt.Errorf("inserting redirect %q: %w", path, err)
	}
	return nil
}

// Close flushes and closes the archive file.
func (b *Builder) Close() error {
	b.encoder.Close()
	return b.db.Close()
}

// migrate runs all pending migrations.
func (b *Builder) migrate(fsys embed.FS) error {
	_, err := b.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := b.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := b.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := b.db.Exec("INSERT INTO schema_migrations(version) VALUES(?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}

var tagRe = regexp.MustCompile(`<[^>]+>`)

// plainText strips markup so the FTS index matches prose, not tag
// names and attributes.
func plainText(content []byte) string {
	return tagRe.ReplaceAllString(string(content), " ")
}
