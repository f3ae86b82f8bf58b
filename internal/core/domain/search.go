package domain

// SearchMethod identifies which strategy produced a search hit.
type SearchMethod string

const (
	// SearchMethodFulltext means the archive's fulltext index matched.
	SearchMethodFulltext SearchMethod = "fulltext"

	// SearchMethodSuggestion means the title suggestion index matched.
	SearchMethodSuggestion SearchMethod = "suggestion"

	// SearchMethodHeuristic means the hit was found by path guessing.
	SearchMethodHeuristic SearchMethod = "heuristic"

	// SearchMethodBrowse means the hit came from bounded archive
	// enumeration rather than a query.
	SearchMethodBrowse SearchMethod = "browse"
)

// SearchHit represents a single search result.
//
// Hits produced by the search strategies carry a best-known Path that
// may be stale or empty; after verification the Path is guaranteed to
// be dereferenceable in the archive.
type SearchHit struct {
	// Title is the display title of the matched entry.
	Title string

	// Path is the best-known archive path for the entry.
	Path string

	// Snippet is an optional short excerpt around the match.
	Snippet string

	// Method records which strategy produced this hit.
	Method SearchMethod
}

// SearchOptions configures a search call.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int
}
