package services

import (
	"context"
	"strings"

	"github.com/fieldstation/zimline/internal/core/domain"
	"github.com/fieldstation/zimline/internal/core/ports/driven"
	"github.com/fieldstation/zimline/internal/logger"
)

// maxHeuristicCandidates bounds the paths probed by the path-guessing
// strategy for one query. Guessing against a large archive is the most
// expensive strategy and must stay bounded regardless of query shape.
const maxHeuristicCandidates = 192

// minTokenLength is the shortest query token worth guessing on.
// Shorter tokens ("a", "of") hit far too many unrelated titles.
const minTokenLength = 3

// SearchService runs the ordered strategy chain against an archive:
// fulltext, then suggestion-based, then heuristic path guessing. The
// chain short-circuits on the first strategy that produces at least one
// verified hit; index-backed results are materially more relevant than
// blind guessing, and guessing is comparatively expensive.
type SearchService struct {
	archive  driven.Archive
	verifier *Verifier
}

// NewSearchService creates a search service over the given archive.
func NewSearchService(archive driven.Archive) *SearchService {
	return &SearchService{
		archive:  archive,
		verifier: NewVerifier(archive),
	}
}

// Search returns verified hits for query. An empty result is the
// expected outcome for queries nothing in the archive satisfies, not an
// error.
func (s *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchHit, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchHit{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}

	fulltext, hasFulltext := s.archive.(driven.FulltextSearcher)
	suggester, hasSuggest := s.archive.(driven.TitleSuggester)
	logger.Debug("Capabilities: fulltext=%t, titleindex=%t", hasFulltext, hasSuggest)

	if hasFulltext {
		hits, err := s.fulltextStrategy(ctx, fulltext, query, limit)
		if err != nil {
			logger.Warn("Fulltext strategy failed: %v", err)
		} else if len(hits) > 0 {
			logger.Info("Fulltext strategy: %d verified hits", len(hits))
			return clamp(hits, limit), nil
		}
	}

	if hasSuggest {
		hits, err := s.suggestionStrategy(ctx, suggester, query, limit)
		if err != nil {
			logger.Warn("Suggestion strategy failed: %v", err)
		} else if len(hits) > 0 {
			logger.Info("Suggestion strategy: %d verified hits", len(hits))
			return clamp(hits, limit), nil
		}
	}

	hits := s.heuristicStrategy(ctx, query, limit)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.Info("Heuristic strategy: %d verified hits", len(hits))
	return clamp(hits, limit), nil
}

// fulltextStrategy queries the archive's fulltext index and verifies
// the raw candidates. Index hits regularly carry stale or re-encoded
// paths, so verification repairs or drops each one.
func (s *SearchService) fulltextStrategy(ctx context.Context, ft driven.FulltextSearcher, query string, limit int) ([]domain.SearchHit, error) {
	raw, err := ft.SearchFulltext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	logger.Debug("Fulltext index returned %d raw candidates", len(raw))

	for i := range raw {
		raw[i].Method = domain.SearchMethodFulltext
	}
	return s.verifier.VerifyAll(ctx, raw), nil
}

// suggestionStrategy asks the title index for suggestions per
// significant query token, keeps suggestions that share a token with
// the query, and lets the verifier materialise an actual path for each
// surviving title.
func (s *SearchService) suggestionStrategy(ctx context.Context, sg driven.TitleSuggester, query string, limit int) ([]domain.SearchHit, error) {
	tokens := significantTokens(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	lowered := make([]string, len(tokens))
	for i, t := range tokens {
		lowered[i] = strings.ToLower(t)
	}

	var candidates []domain.SearchHit
	for _, token := range tokens {
		suggestions, err := sg.SuggestTitles(ctx, token, limit*2)
		if err != nil {
			return nil, err
		}
		for _, title := range suggestions {
			if !containsAny(strings.ToLower(title), lowered) {
				continue
			}
			candidates = append(candidates, domain.SearchHit{
				Title:  title,
				Method: domain.SearchMethodSuggestion,
			})
		}
		if len(candidates) >= limit*2 {
			break
		}
	}
	logger.Debug("Suggestion strategy produced %d candidates", len(candidates))
	return s.verifier.VerifyAll(ctx, candidates), nil
}

// heuristicStrategy guesses candidate paths straight from the query
// tokens: several case forms per token, bucketed and unbucketed, plus
// every contiguous multi-word subsequence joined with underscores.
// Always available; last resort.
func (s *SearchService) heuristicStrategy(ctx context.Context, query string, limit int) []domain.SearchHit {
	tokens := significantTokens(query)
	if len(tokens) == 0 {
		return nil
	}

	var seeds []string
	for _, token := range tokens {
		seeds = append(seeds, caseForms(token)...)
	}
	// Contiguous token subsequences, longest spans last so single
	// words (the common case) are probed first.
	for span := 2; span <= len(tokens); span++ {
		for start := 0; start+span <= len(tokens); start++ {
			words := make([]string, span)
			for i, w := range tokens[start : start+span] {
				words[i] = capitalise(strings.ToLower(w))
			}
			seeds = append(seeds, strings.Join(words, "_"))
		}
	}

	var candidates []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if len(candidates) >= maxHeuristicCandidates {
			return
		}
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		candidates = append(candidates, p)
	}
	for _, seed := range seeds {
		if first := firstLetter(seed); first != "" {
			add(first + "/" + seed)
		}
		add("A/" + seed)
		add(seed)
	}
	logger.Debug("Probing %d guessed paths", len(candidates))

	var hits []domain.SearchHit
	for _, path := range candidates {
		if ctx.Err() != nil {
			break
		}
		entry, err := s.archive.GetEntry(ctx, path)
		if err != nil {
			continue
		}
		hits = append(hits, domain.SearchHit{
			Title:  entry.Title,
			Path:   entry.Path,
			Method: domain.SearchMethodHeuristic,
		})
		if len(hits) >= limit {
			break
		}
	}
	// Probed against the live archive, so already dereferenceable;
	// VerifyAll still collapses duplicate paths.
	return s.verifier.VerifyAll(ctx, hits)
}

// significantTokens splits query on whitespace and drops tokens too
// short to guess on.
func significantTokens(query string) []string {
	var tokens []string
	for _, t := range strings.Fields(query) {
		if len(t) >= minTokenLength {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func clamp(hits []domain.SearchHit, limit int) []domain.SearchHit {
	if len(hits) > limit {
		return hits[:limit]
	}
	return hits
}
