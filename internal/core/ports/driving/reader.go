package driving

import (
	"context"

	"github.com/fieldstation/zimline/internal/core/domain"
)

// ReaderService is the consumer-facing surface of the resolution core.
type ReaderService interface {
	// Search runs the strategy chain for query and returns verified
	// hits. It never fails on "no match": an empty slice is the
	// expected outcome for queries nothing in the archive satisfies.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchHit, error)

	// ResolveAndRender resolves path (repairing it through variants if
	// stale), follows redirects to the terminal entry and renders its
	// content. maxChars <= 0 means no budget.
	//
	// Fails with domain.ErrNotFound when no variant resolves and
	// domain.ErrRedirectLoop when the hop bound is exceeded; content
	// problems degrade to a diagnostic document instead of failing.
	ResolveAndRender(ctx context.Context, path string, maxChars int) (*domain.RenderedDocument, error)

	// Suggest returns title suggestions for a partial query, or an
	// empty slice when the archive has no title index.
	Suggest(ctx context.Context, partial string, limit int) ([]string, error)

	// Browse lists up to limit content entries from the front of the
	// archive's entry space, verified like search hits.
	Browse(ctx context.Context, limit int) ([]domain.SearchHit, error)

	// Info describes the archive behind this reader.
	Info() domain.ArchiveInfo
}
