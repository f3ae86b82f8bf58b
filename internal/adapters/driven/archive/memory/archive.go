// Package memory provides an in-memory archive store. It backs tests
// and code-seeded archives and implements every optional capability.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/fieldstation/zimline/internal/core/domain"
	"github.com/fieldstation/zimline/internal/core/ports/driven"
)

// Ensure Archive implements the capability interfaces.
var (
	_ driven.Archive          = (*Archive)(nil)
	_ driven.FulltextSearcher = (*Archive)(nil)
	_ driven.TitleSuggester   = (*Archive)(nil)
	_ driven.EntryLister      = (*Archive)(nil)
)

type record struct {
	entry       domain.Entry
	redirectTo  string
	content     []byte
	unavailable bool
}

// Archive is an in-memory implementation of driven.Archive.
type Archive struct {
	mu      sync.RWMutex
	name    string
	records map[string]*record
	order   []string
	closed  bool
}

// New creates an empty in-memory archive.
func New(name string) *Archive {
	return &Archive{
		name:    name,
		records: make(map[string]*record),
	}
}

// AddEntry stores a content entry at path.
func (a *Archive) AddEntry(path, title string, content []byte) {
	a.add(path, &record{
		entry:   domain.Entry{Path: path, Title: title},
		content: content,
	})
}

// AddRedirect stores a redirect entry pointing at target.
func (a *Archive) AddRedirect(path, title, target string) {
	a.add(path, &record{
		entry:      domain.Entry{Path: path, Title: title, IsRedirect: true},
		redirectTo: target,
	})
}

// MarkContentUnavailable makes ReadContent fail for path. Test hook for
// the degraded-content path.
func (a *Archive) MarkContentUnavailable(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if rec, ok := a.records[path]; ok {
		rec.unavailable = true
	}
}

func (a *Archive) add(path string, rec *record) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.records[path]; !exists {
		a.order = append(a.order, path)
	}
	a.records[path] = rec
}

// Info describes the archive.
func (a *Archive) Info() domain.ArchiveInfo {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return domain.ArchiveInfo{
		Name:          a.name,
		EntryCount:    len(a.records),
		HasFulltext:   true,
		HasTitleIndex: true,
	}
}

// HasEntry reports whether path resolves to an entry.
func (a *Archive) HasEntry(_ context.Context, path string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.records[path]
	return ok && !a.closed
}

// GetEntry retrieves the entry at path.
func (a *Archive) GetEntry(_ context.Context, path string) (*domain.Entry, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return nil, domain.ErrArchiveClosed
	}
	rec, ok := a.records[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	entry := rec.entry
	return &entry, nil
}

// RedirectTarget returns the path a redirect entry points at.
func (a *Archive) RedirectTarget(_ context.Context, entry *domain.Entry) (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	rec, ok := a.records[entry.Path]
	if !ok || !rec.entry.IsRedirect {
		return "", domain.ErrNotFound
	}
	return rec.redirectTo, nil
}

// ReadContent returns the raw content bytes of an entry.
func (a *Archive) ReadContent(_ context.Context, entry *domain.Entry) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	rec, ok := a.records[entry.Path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if rec.unavailable {
		return nil, domain.ErrContentUnavailable
	}
	return rec.content, nil
}

// Close marks the archive closed.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}

// SearchFulltext scans titles and bodies for the query terms. Linear,
// which is fine at in-memory scale.
func (a *Archive) SearchFulltext(_ context.Context, query string, limit int) ([]domain.SearchHit, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, nil
	}

	var hits []domain.SearchHit
	for _, path := range a.order {
		rec := a.records[path]
		if rec.entry.IsRedirect {
			continue
		}
		haystack := strings.ToLower(rec.entry.Title + " " + string(rec.content))
		if !containsAll(haystack, terms) {
			continue
		}
		hits = append(hits, domain.SearchHit{
			Title:   rec.entry.Title,
			Path:    rec.entry.Path,
			Snippet: snippet(string(rec.content), terms[0]),
		})
		if len(hits) >= limit {
			break
		}
	}
	return hits, nil
}

// SuggestTitles returns titles containing the prefix, case folded.
func (a *Archive) SuggestTitles(_ context.Context, prefix string, limit int) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	prefix = strings.ToLower(prefix)
	var titles []string
	for _, path := range a.order {
		rec := a.records[path]
		if rec.entry.IsRedirect || rec.entry.Title == "" {
			continue
		}
		if strings.Contains(strings.ToLower(rec.entry.Title), prefix) {
			titles = append(titles, rec.entry.Title)
			if len(titles) >= limit {
				break
			}
		}
	}
	return titles, nil
}

// ListEntries returns content entries in insertion order.
func (a *Archive) ListEntries(_ context.Context, limit int) ([]domain.Entry, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var entries []domain.Entry
	for _, path := range a.order {
		rec := a.records[path]
		if rec.entry.IsRedirect {
			continue
		}
		entries = append(entries, rec.entry)
		if len(entries) >= limit {
			break
		}
	}
	return entries, nil
}

func containsAll(haystack string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}

// snippet extracts a short excerpt around the first occurrence of term.
func snippet(content, term string) string {
	const width = 80
	idx := strings.Index(strings.ToLower(content), term)
	if idx < 0 {
		if len(content) > width {
			return content[:width]
		}
		return content
	}
	start := idx - width/4
	if start < 0 {
		start = 0
	}
	end := start + width
	if end > len(content) {
		end = len(content)
	}
	return strings.TrimSpace(content[start:end])
}
