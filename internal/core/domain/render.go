package domain

// BlockKind discriminates the typed blocks of a rendered document.
type BlockKind int

const (
	// BlockHeading is a section heading.
	BlockHeading BlockKind = iota

	// BlockParagraph is a sentence-bounded unit of flowing prose.
	BlockParagraph

	// BlockListItem is a single bullet list item.
	BlockListItem
)

// String returns the lowercase name of the block kind.
func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockParagraph:
		return "paragraph"
	case BlockListItem:
		return "listitem"
	default:
		return "unknown"
	}
}

// Block is one displayable unit of rendered content. Blocks carry no
// line-width information; wrapping is a presentation concern.
type Block struct {
	Kind BlockKind
	Text string
}

// RenderedDocument is the ordered block sequence produced by rendering
// one archive entry. It is built fresh per render call and never cached.
type RenderedDocument struct {
	// Title is the title of the rendered entry.
	Title string

	// Path is the archive path the content was read from, after
	// redirect resolution.
	Path string

	// Blocks is the ordered sequence of displayable units.
	Blocks []Block

	// Truncated reports whether a character budget cut the output.
	Truncated bool
}

// Text flattens the document into plain text with blank lines between
// blocks, the shape narrow line-oriented terminals expect.
func (d *RenderedDocument) Text() string {
	if len(d.Blocks) == 0 {
		return ""
	}
	n := 0
	for i := range d.Blocks {
		n += len(d.Blocks[i].Text) + 2
	}
	buf := make([]byte, 0, n)
	for i := range d.Blocks {
		if i > 0 {
			buf = append(buf, '\n', '\n')
		}
		buf = append(buf, d.Blocks[i].Text...)
	}
	return string(buf)
}
