package services

import (
	"context"

	"github.com/fieldstation/zimline/internal/core/domain"
	"github.com/fieldstation/zimline/internal/core/ports/driven"
	"github.com/fieldstation/zimline/internal/logger"
)

// Verifier confirms that candidate hits are dereferenceable before they
// are surfaced. Search and suggestion indices routinely report paths
// that do not resolve ("phantom hits"); every hit passes through here.
type Verifier struct {
	archive driven.Archive
}

// NewVerifier creates a verifier over the given archive.
func NewVerifier(archive driven.Archive) *Verifier {
	return &Verifier{archive: archive}
}

// Verify checks that hit.Path resolves in the archive. A hit whose path
// resolves as-is passes through unchanged. Otherwise path variants
// seeded from the stale path are probed in order and the first working
// one repairs the hit. The second return is false when no variant
// resolves; such hits must be dropped.
func (v *Verifier) Verify(ctx context.Context, hit domain.SearchHit) (domain.SearchHit, bool) {
	if hit.Path == "" && hit.Title != "" {
		// Some indices return title-only hits; the title is the
		// only seed available.
		hit.Path = hit.Title
	}
	if hit.Path == "" {
		return hit, false
	}

	if v.archive.HasEntry(ctx, hit.Path) {
		return hit, true
	}

	logger.Debug("Hit %q not dereferenceable at %q, probing variants", hit.Title, hit.Path)
	for _, variant := range PathVariants(hit.Path) {
		if variant == hit.Path {
			continue
		}
		if v.archive.HasEntry(ctx, variant) {
			logger.Debug("Repaired %q -> %q", hit.Path, variant)
			hit.Path = variant
			return hit, true
		}
	}
	return hit, false
}

// VerifyAll filters hits through Verify, deduplicating by verified path
// and keeping the first occurrence. Order is preserved.
func (v *Verifier) VerifyAll(ctx context.Context, hits []domain.SearchHit) []domain.SearchHit {
	verified := make([]domain.SearchHit, 0, len(hits))
	seen := make(map[string]struct{}, len(hits))
	for _, hit := range hits {
		ok := false
		if hit, ok = v.Verify(ctx, hit); !ok {
			continue
		}
		if _, dup := seen[hit.Path]; dup {
			continue
		}
		seen[hit.Path] = struct{}{}
		verified = append(verified, hit)
	}
	return verified
}
