package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldstation/zimline/internal/core/domain"
	"github.com/fieldstation/zimline/internal/core/ports/driven"
	"github.com/fieldstation/zimline/internal/core/ports/driving"
	"github.com/fieldstation/zimline/internal/logger"
	"github.com/fieldstation/zimline/internal/render"
)

// Ensure ReaderService implements the interface.
var _ driving.ReaderService = (*ReaderService)(nil)

// ReaderService is the consumer-facing facade over one opened archive:
// search, resolve-and-render, suggestions and bounded browsing.
type ReaderService struct {
	archive driven.Archive
	search  *SearchService
}

// NewReaderService creates a reader service over the given archive.
func NewReaderService(archive driven.Archive) *ReaderService {
	return &ReaderService{
		archive: archive,
		search:  NewSearchService(archive),
	}
}

// Search runs the strategy chain and returns verified hits.
func (r *ReaderService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchHit, error) {
	return r.search.Search(ctx, query, opts)
}

// ResolveAndRender resolves path to a terminal entry and renders its
// content. Stale paths are repaired through variants; redirects are
// followed up to the hop bound. Content-supply failures degrade to a
// diagnostic document rather than an error.
func (r *ReaderService) ResolveAndRender(ctx context.Context, path string, maxChars int) (*domain.RenderedDocument, error) {
	logger.Section("Resolve And Render")
	logger.Debug("Path: %q, budget: %d", path, maxChars)

	path = strings.TrimSpace(path)
	if path == "" {
		return nil, domain.ErrInvalidInput
	}

	entry, err := r.resolveEntry(ctx, path)
	if err != nil {
		return nil, err
	}

	terminal, err := ResolveRedirects(ctx, r.archive, entry)
	if err != nil {
		return nil, err
	}
	logger.Debug("Terminal entry: %q (%q)", terminal.Title, terminal.Path)

	raw, err := r.archive.ReadContent(ctx, terminal)
	if err != nil {
		logger.Warn("Content unavailable for %q: %v", terminal.Path, err)
		doc := render.Diagnostic(fmt.Sprintf("Content for %q could not be retrieved.", terminal.Title))
		doc.Title = terminal.Title
		doc.Path = terminal.Path
		return doc, nil
	}

	doc := render.Render(raw, maxChars)
	doc.Title = terminal.Title
	doc.Path = terminal.Path
	return doc, nil
}

// resolveEntry fetches the entry at path, repairing the reference
// through path variants when the exact path is stale.
func (r *ReaderService) resolveEntry(ctx context.Context, path string) (*domain.Entry, error) {
	for _, variant := range PathVariants(path) {
		entry, err := r.archive.GetEntry(ctx, variant)
		if err == nil {
			if variant != path {
				logger.Debug("Resolved %q via variant %q", path, variant)
			}
			return entry, nil
		}
	}
	return nil, fmt.Errorf("no variant of %q resolves: %w", path, domain.ErrNotFound)
}

// Suggest returns title suggestions for a partial query. Archives
// without a title index yield an empty list, never an error.
func (r *ReaderService) Suggest(ctx context.Context, partial string, limit int) ([]string, error) {
	sg, ok := r.archive.(driven.TitleSuggester)
	if !ok {
		logger.Debug("No title index, suggestions unavailable")
		return []string{}, nil
	}
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return []string{}, nil
	}
	if limit <= 0 {
		limit = 5
	}
	titles, err := sg.SuggestTitles(ctx, partial, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest %q: %w", partial, err)
	}
	return titles, nil
}

// Browse lists up to limit content entries from the front of the
// archive's entry space.
func (r *ReaderService) Browse(ctx context.Context, limit int) ([]domain.SearchHit, error) {
	lister, ok := r.archive.(driven.EntryLister)
	if !ok {
		return []domain.SearchHit{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	entries, err := lister.ListEntries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("browse: %w", err)
	}
	hits := make([]domain.SearchHit, 0, len(entries))
	for _, entry := range entries {
		hits = append(hits, domain.SearchHit{
			Title:  entry.Title,
			Path:   entry.Path,
			Method: domain.SearchMethodBrowse,
		})
	}
	return hits, nil
}

// Info describes the archive behind this reader.
func (r *ReaderService) Info() domain.ArchiveInfo {
	return r.archive.Info()
}
