package services

import (
	"context"
	"fmt"

	"github.com/fieldstation/zimline/internal/core/domain"
	"github.com/fieldstation/zimline/internal/core/ports/driven"
	"github.com/fieldstation/zimline/internal/logger"
)

// maxRedirectHops bounds redirect chains. Archives in the wild contain
// cycles; exceeding the bound is a failure, never an infinite loop.
const maxRedirectHops = 10

// ResolveRedirects follows redirects from entry until a terminal
// (non-redirect) entry is reached. Non-redirect entries are returned
// unchanged. Fails with domain.ErrRedirectLoop when the hop bound is
// exceeded.
func ResolveRedirects(ctx context.Context, archive driven.Archive, entry *domain.Entry) (*domain.Entry, error) {
	for hop := 0; entry.IsRedirect; hop++ {
		if hop >= maxRedirectHops {
			return nil, fmt.Errorf("resolving %q: %w", entry.Path, domain.ErrRedirectLoop)
		}

		target, err := archive.RedirectTarget(ctx, entry)
		if err != nil {
			return nil, fmt.Errorf("redirect target of %q: %w", entry.Path, err)
		}
		logger.Debug("Redirect %q -> %q", entry.Path, target)

		next, err := archive.GetEntry(ctx, target)
		if err != nil {
			// Redirect targets suffer the same addressing drift
			// as search hits; try variants before giving up.
			next = resolveTargetVariant(ctx, archive, target)
			if next == nil {
				return nil, fmt.Errorf("dangling redirect %q -> %q: %w", entry.Path, target, domain.ErrNotFound)
			}
		}
		entry = next
	}
	return entry, nil
}

func resolveTargetVariant(ctx context.Context, archive driven.Archive, target string) *domain.Entry {
	for _, variant := range PathVariants(target) {
		if entry, err := archive.GetEntry(ctx, variant); err == nil {
			return entry
		}
	}
	return nil
}
