package domain

// Entry is one addressable unit of content in an archive.
// Entries are immutable and owned by the archive store; everything
// outside the store works on copies.
type Entry struct {
	// Path is the unique logical key within the archive,
	// e.g. "H/Hockey".
	Path string

	// Title is the human-readable title. Not unique.
	Title string

	// IsRedirect marks entries that point at another entry
	// instead of carrying content.
	IsRedirect bool
}

// ArchiveInfo describes an opened archive and its capabilities.
type ArchiveInfo struct {
	// Name is the display name of the archive.
	Name string

	// Path is the filesystem location of the archive file.
	Path string

	// EntryCount is the total number of entries, redirects included.
	EntryCount int

	// HasFulltext reports whether the archive carries a fulltext index.
	HasFulltext bool

	// HasTitleIndex reports whether the archive carries a title
	// suggestion index.
	HasTitleIndex bool
}
