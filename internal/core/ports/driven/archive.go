package driven

import (
	"context"

	"github.com/fieldstation/zimline/internal/core/domain"
)

// Archive is the read-only capability interface over one opened archive.
// Implementations must be safe for concurrent readers; the core never
// mutates an archive.
type Archive interface {
	// Info describes the archive and its capabilities.
	Info() domain.ArchiveInfo

	// HasEntry reports whether path resolves to an entry. It must not
	// follow redirects.
	HasEntry(ctx context.Context, path string) bool

	// GetEntry retrieves the entry at path.
	// Returns domain.ErrNotFound if absent.
	GetEntry(ctx context.Context, path string) (*domain.Entry, error)

	// RedirectTarget returns the path a redirect entry points at.
	// Returns domain.ErrNotFound when the entry is not a redirect or
	// the target is unknown.
	RedirectTarget(ctx context.Context, entry *domain.Entry) (string, error)

	// ReadContent returns the raw content bytes of a non-redirect
	// entry. Returns domain.ErrContentUnavailable when the bytes
	// cannot be supplied.
	ReadContent(ctx context.Context, entry *domain.Entry) ([]byte, error)

	// Close releases resources.
	Close() error
}

// FulltextSearcher is the optional fulltext capability of an archive.
// Hits returned here are untrusted: paths may be stale, encoded
// differently than stored, or missing entirely, and must pass
// verification before reaching a caller.
type FulltextSearcher interface {
	// SearchFulltext returns up to limit candidate hits for query.
	SearchFulltext(ctx context.Context, query string, limit int) ([]domain.SearchHit, error)
}

// EntryLister is the optional enumeration capability of an archive.
// Listing is always limit-bounded; the core never iterates a whole
// archive as a search fallback.
type EntryLister interface {
	// ListEntries returns up to limit content entries in archive
	// order, skipping redirects and system entries.
	ListEntries(ctx context.Context, limit int) ([]domain.Entry, error)
}

// TitleSuggester is the optional title-index capability of an archive.
type TitleSuggester interface {
	// SuggestTitles returns up to limit entry titles matching the
	// given prefix or fragment.
	SuggestTitles(ctx context.Context, prefix string, limit int) ([]string, error)
}
