// Package sqlite provides a SQLite-backed archive store. Entry
// metadata, redirects and zstd-compressed bodies live in one database
// file; an FTS5 table supplies the fulltext capability and a title
// index supplies suggestions.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/fieldstation/zimline/internal/core/domain"
	"github.com/fieldstation/zimline/internal/core/ports/driven"
)

// Ensure Store implements the capability interfaces.
var (
	_ driven.Archive          = (*Store)(nil)
	_ driven.FulltextSearcher = (*Store)(nil)
	_ driven.TitleSuggester   = (*Store)(nil)
	_ driven.EntryLister      = (*Store)(nil)
)

// Store is a read-only SQLite-backed implementation of driven.Archive.
type Store struct {
	db      *sql.DB
	path    string
	name    string
	count   int
	decoder *zstd.Decoder
}

// Open opens an existing archive file. The file must have been
// produced by a Builder; Open never creates or migrates.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("archive file: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?mode=ro&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}

	s := &Store{
		db:      db,
		path:    path,
		decoder: decoder,
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&s.count); err != nil {
		s.Close()
		return nil, fmt.Errorf("counting entries (not an archive file?): %w", err)
	}

	s.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var name string
	if err := s.db.QueryRow("SELECT value FROM meta WHERE key = 'name'").Scan(&name); err == nil && name != "" {
		s.name = name
	}

	return s, nil
}

// Info describes the archive and its capabilities.
func (s *Store) Info() domain.ArchiveInfo {
	return domain.ArchiveInfo{
		Name:          s.name,
		Path:          s.path,
		EntryCount:    s.count,
		HasFulltext:   true,
		HasTitleIndex: true,
	}
}

// Close closes the database connection and releases the decoder.
func (s *Store) Close() error {
	s.decoder.Close()
	return s.db.Close()
}

// HasEntry reports whether path resolves to an entry.
func (s *Store) HasEntry(ctx context.Context, path string) bool {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM entries WHERE path = ?", path).Scan(&one)
	return err == nil
}

// GetEntry retrieves the entry at path.
func (s *Store) GetEntry(ctx context.Context, path string) (*domain.Entry, error) {
	entry := domain.Entry{Path: path}
	err := s.db.QueryRowContext(ctx,
		"SELECT title, is_redirect FROM entries WHERE path = ?", path,
	).Scan(&entry.Title, &entry.IsRedirect)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading entry %q: %w", path, err)
	}
	return &entry, nil
}

// RedirectTarget returns the path a redirect entry points at.
func (s *Store) RedirectTarget(ctx context.Context, entry *domain.Entry) (string, error) {
	var target sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT redirect_to FROM entries WHERE path = ? AND is_redirect = 1", entry.Path,
	).Scan(&target)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !target.Valid) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading redirect %q: %w", entry.Path, err)
	}
	return target.String, nil
}

// ReadContent returns the raw content bytes of an entry, transparently
// decompressing zstd-packed bodies.
func (s *Store) ReadContent(ctx context.Context, entry *domain.Entry) ([]byte, error) {
	var blob []byte
	var compressed bool
	err := s.db.QueryRowContext(ctx,
		"SELECT content, compressed FROM entries WHERE path = ?", entry.Path,
	).Scan(&blob, &compressed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading content %q: %w", entry.Path, domain.ErrContentUnavailable)
	}
	if !compressed {
		return blob, nil
	}
	plain, err := s.decoder.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing %q: %w", entry.Path, domain.ErrContentUnavailable)
	}
	return plain, nil
}

// SearchFulltext queries the FTS5 index. Query tokens are quoted so
// user input cannot inject FTS syntax.
func (s *Store) SearchFulltext(ctx context.Context, query string, limit int) ([]domain.SearchHit, error) {
	match := ftsQuery(query)
	if match == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.path, e.title, snippet(entries_fts, 1, '', '', '...', 12)
		FROM entries_fts
		JOIN entries e ON e.id = entries_fts.rowid
		WHERE entries_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("fulltext query: %w", err)
	}
	defer rows.Close()

	var hits []domain.SearchHit
	for rows.Next() {
		var hit domain.SearchHit
		if err := rows.Scan(&hit.Path, &hit.Title, &hit.Snippet); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}

// SuggestTitles returns titles starting with prefix, falling back to a
// substring match when the prefix form finds nothing.
func (s *Store) SuggestTitles(ctx context.Context, prefix string, limit int) ([]string, error) {
	titles, err := s.titlesLike(ctx, escapeLike(prefix)+"%", limit)
	if err != nil || len(titles) > 0 {
		return titles, err
	}
	return s.titlesLike(ctx, "%"+escapeLike(prefix)+"%", limit)
}

func (s *Store) titlesLike(ctx context.Context, pattern string, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT title FROM entries
		WHERE is_redirect = 0 AND title <> '' AND title LIKE ? ESCAPE '\'
		ORDER BY title
		LIMIT ?`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("title query: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scanning title: %w", err)
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

// ListEntries returns content entries in archive order, skipping
// system entries.
func (s *Store) ListEntries(ctx context.Context, limit int) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, title FROM entries
		WHERE is_redirect = 0 AND title <> ''
		  AND path NOT LIKE '-%' AND path NOT LIKE '\_%' ESCAPE '\'
		ORDER BY id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.Path, &e.Title); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ftsQuery rewrites free text into a safe FTS5 MATCH expression: each
// token double-quoted, joined with implicit AND.
func ftsQuery(query string) string {
	fields := strings.Fields(query)
	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, `"`, `""`)
		quoted = append(quoted, `"`+f+`"`)
	}
	return strings.Join(quoted, " ")
}

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
