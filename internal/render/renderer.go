package render

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fieldstation/zimline/internal/core/domain"
)

// ContinuationNotice is appended to documents cut by a character
// budget. It is excluded from the budget itself.
const ContinuationNotice = "[Truncated. Use 'read <n> <chars>' to request more.]"

// noContent is the diagnostic paragraph for entries with empty or
// undecodable bodies.
const noContent = "No displayable content available."

// Heading and list markers survive tag stripping and entity decoding;
// control characters never occur in decoded entities.
const (
	headingMark = "\x01"
	listMark    = "\x02"
)

// Pre-compiled regular expressions for markup conversion.
var (
	scriptTag    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag     = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	htmlComments = regexp.MustCompile(`(?s)<!--.*?-->`)
	headingTag   = regexp.MustCompile(`(?is)<h[1-6][^>]*>(.*?)</h[1-6]>`)
	openPara     = regexp.MustCompile(`(?i)<p[^>]*>`)
	closePara    = regexp.MustCompile(`(?i)</p>`)
	brTags       = regexp.MustCompile(`(?i)<br[^>]*/?>`)
	openItem     = regexp.MustCompile(`(?i)<li[^>]*>`)
	closeItem    = regexp.MustCompile(`(?i)</li>`)
	listTags     = regexp.MustCompile(`(?i)</?[ou]l[^>]*>`)
	allTags      = regexp.MustCompile(`<[^>]+>`)
	multiSpaces  = regexp.MustCompile(`[ \t\r\f]+`)
	edgeSpaces   = regexp.MustCompile(` *\n *`)
)

// Render converts raw markup bytes into a rendered document. maxChars
// bounds the flattened character count; <= 0 means no budget. The
// result always contains at least one block.
func Render(raw []byte, maxChars int) *domain.RenderedDocument {
	if !utf8.Valid(raw) {
		return &domain.RenderedDocument{
			Blocks: []domain.Block{{Kind: domain.BlockParagraph, Text: noContent}},
		}
	}

	blocks := toBlocks(string(raw))
	if len(blocks) == 0 {
		blocks = []domain.Block{{Kind: domain.BlockParagraph, Text: noContent}}
	}

	doc := &domain.RenderedDocument{Blocks: blocks}
	if maxChars > 0 {
		truncate(doc, maxChars)
	}
	return doc
}

// Diagnostic builds a single-paragraph document carrying msg. Used when
// content bytes cannot be supplied at all.
func Diagnostic(msg string) *domain.RenderedDocument {
	return &domain.RenderedDocument{
		Blocks: []domain.Block{{Kind: domain.BlockParagraph, Text: msg}},
	}
}

// toBlocks runs the markup conversion pipeline: structural markers,
// tag stripping, entity decoding, whitespace normalisation, then block
// assembly with sentence re-segmentation of flowing prose.
func toBlocks(content string) []domain.Block {
	// Script and style bodies must never reach the output.
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	// Mark structure before stripping tags.
	content = headingTag.ReplaceAllString(content, "\n\n"+headingMark+"$1\n\n")
	content = openItem.ReplaceAllString(content, "\n"+listMark)
	content = closeItem.ReplaceAllString(content, "\n")
	content = listTags.ReplaceAllString(content, "\n\n")
	content = openPara.ReplaceAllString(content, "\n\n")
	content = closePara.ReplaceAllString(content, "\n\n")
	content = brTags.ReplaceAllString(content, "\n\n")

	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	// Collapse horizontal whitespace, then whitespace hugging line
	// boundaries. NBSP arrives as   after entity decoding.
	content = strings.ReplaceAll(content, " ", " ")
	content = multiSpaces.ReplaceAllString(content, " ")
	content = edgeSpaces.ReplaceAllString(content, "\n")

	var blocks []domain.Block
	var para strings.Builder

	flush := func() {
		text := strings.TrimSpace(para.String())
		para.Reset()
		if text == "" {
			return
		}
		for _, unit := range splitSentences(text) {
			blocks = append(blocks, domain.Block{Kind: domain.BlockParagraph, Text: unit})
		}
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, headingMark):
			flush()
			if text := strings.TrimSpace(stripMarks(line)); text != "" {
				blocks = append(blocks, domain.Block{Kind: domain.BlockHeading, Text: text})
			}
		case strings.HasPrefix(line, listMark):
			flush()
			// Empty list items are dropped outright.
			if text := strings.TrimSpace(stripMarks(line)); text != "" {
				blocks = append(blocks, domain.Block{Kind: domain.BlockListItem, Text: text})
			}
		default:
			if para.Len() > 0 {
				para.WriteByte(' ')
			}
			para.WriteString(stripMarks(line))
		}
	}
	flush()

	return blocks
}

// stripMarks removes structural markers that survived inside a line,
// e.g. a heading opened and closed on the same source line as prose.
func stripMarks(s string) string {
	s = strings.ReplaceAll(s, headingMark, "")
	return strings.ReplaceAll(s, listMark, "")
}

// splitSentences re-segments flowing text into sentence-terminated
// units: a run of '.', '!' or '?' followed by whitespace or end of
// text closes a unit. Archive markup line-wraps arbitrarily
// mid-sentence; sentence-bounded units read better on narrow,
// non-scrolling terminals than the original line breaks.
func splitSentences(text string) []string {
	var units []string
	start := 0
	for i := 0; i < len(text); i++ {
		if !isTerminator(text[i]) {
			continue
		}
		j := i
		for j+1 < len(text) && isTerminator(text[j+1]) {
			j++
		}
		if j+1 == len(text) || text[j+1] == ' ' {
			if unit := strings.TrimSpace(text[start : j+1]); unit != "" {
				units = append(units, unit)
			}
			start = j + 1
		}
		i = j
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		units = append(units, rest)
	}
	return units
}

func isTerminator(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}

// truncate cuts doc at the maxChars boundary of its flattened text and
// appends the continuation notice. The kept output is a prefix of the
// untruncated rendering.
func truncate(doc *domain.RenderedDocument, maxChars int) {
	used := 0
	for i := range doc.Blocks {
		cost := len(doc.Blocks[i].Text)
		if i > 0 {
			cost += 2 // block separator in the flattened form
		}
		if used+cost <= maxChars {
			used += cost
			continue
		}

		kept := doc.Blocks[:i]
		remaining := maxChars - used
		if i > 0 {
			remaining -= 2
		}
		if remaining > 0 {
			cut := doc.Blocks[i].Text[:remaining]
			// Back off a partially sliced rune.
			for len(cut) > 0 && !utf8.ValidString(cut) {
				cut = cut[:len(cut)-1]
			}
			cut = strings.TrimRight(cut, " ")
			if cut != "" {
				block := doc.Blocks[i]
				block.Text = cut
				kept = append(kept, block)
			}
		}
		doc.Blocks = kept
		doc.Truncated = true
		doc.Blocks = append(doc.Blocks, domain.Block{Kind: domain.BlockParagraph, Text: ContinuationNotice})
		return
	}
}
