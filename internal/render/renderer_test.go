package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldstation/zimline/internal/core/domain"
)

func TestRender_SentenceSegmentation(t *testing.T) {
	doc := Render([]byte("<p>Hello. World!</p>"), 0)

	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, domain.BlockParagraph, doc.Blocks[0].Kind)
	assert.Equal(t, "Hello.", doc.Blocks[0].Text)
	assert.Equal(t, "World!", doc.Blocks[1].Text)
}

func TestRender_JoinsWrappedLines(t *testing.T) {
	// Archive markup wraps mid-sentence; the sentence survives intact.
	doc := Render([]byte("<p>The quick brown\nfox jumps over\nthe lazy dog.</p>"), 0)

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "The quick brown fox jumps over the lazy dog.", doc.Blocks[0].Text)
}

func TestRender_Headings(t *testing.T) {
	doc := Render([]byte("<h2>History</h2><p>It began. It ended.</p>"), 0)

	require.Len(t, doc.Blocks, 3)
	assert.Equal(t, domain.BlockHeading, doc.Blocks[0].Kind)
	assert.Equal(t, "History", doc.Blocks[0].Text)
	assert.Equal(t, "It began.", doc.Blocks[1].Text)
	assert.Equal(t, "It ended.", doc.Blocks[2].Text)
}

func TestRender_HeadingNeverSentenceSplit(t *testing.T) {
	doc := Render([]byte("<h1>Dr. Strangelove. A Film!</h1>"), 0)

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, domain.BlockHeading, doc.Blocks[0].Kind)
	assert.Equal(t, "Dr. Strangelove. A Film!", doc.Blocks[0].Text)
}

func TestRender_ListItems(t *testing.T) {
	doc := Render([]byte("<ul><li>First point</li><li></li><li>Second point</li></ul>"), 0)

	require.Len(t, doc.Blocks, 2, "empty list items are dropped")
	assert.Equal(t, domain.BlockListItem, doc.Blocks[0].Kind)
	assert.Equal(t, "First point", doc.Blocks[0].Text)
	assert.Equal(t, "Second point", doc.Blocks[1].Text)
}

func TestRender_StripsScriptAndStyle(t *testing.T) {
	raw := []byte(`<script>alert("boo")</script><style>p { color: red }</style><p>Visible.</p>`)
	doc := Render(raw, 0)

	text := doc.Text()
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "color")
	assert.Contains(t, text, "Visible.")
}

func TestRender_DecodesEntities(t *testing.T) {
	doc := Render([]byte("<p>Fish &amp; Chips &lt;today&gt; &quot;fresh&quot; &#39;hot&#39;&nbsp;now.</p>"), 0)

	require.NotEmpty(t, doc.Blocks)
	assert.Equal(t, `Fish & Chips <today> "fresh" 'hot' now.`, doc.Blocks[0].Text)
}

func TestRender_CollapsesWhitespace(t *testing.T) {
	doc := Render([]byte("<p>Too   many\t\tspaces.</p>"), 0)

	require.NotEmpty(t, doc.Blocks)
	assert.Equal(t, "Too many spaces.", doc.Blocks[0].Text)
}

func TestRender_Truncation(t *testing.T) {
	long := strings.Repeat("x", 500) + "."
	doc := Render([]byte("<p>"+long+"</p>"), 10)

	require.True(t, doc.Truncated)
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, "xxxxxxxxxx", doc.Blocks[0].Text)
	assert.Equal(t, ContinuationNotice, doc.Blocks[1].Text)
}

func TestRender_TruncationIsPrefix(t *testing.T) {
	raw := []byte("<p>One two three. Four five six. Seven eight nine.</p>")
	full := Render(raw, 0)
	cut := Render(raw, 20)

	require.True(t, cut.Truncated)
	// Drop the continuation notice, flatten, compare prefixes.
	kept := &domain.RenderedDocument{Blocks: cut.Blocks[:len(cut.Blocks)-1]}
	assert.True(t, strings.HasPrefix(full.Text(), kept.Text()))
	assert.LessOrEqual(t, len(kept.Text()), 20)
}

func TestRender_NoTruncationUnderBudget(t *testing.T) {
	doc := Render([]byte("<p>Short.</p>"), 1000)

	assert.False(t, doc.Truncated)
	require.Len(t, doc.Blocks, 1)
}

func TestRender_TotalOnMalformedInput(t *testing.T) {
	cases := map[string][]byte{
		"invalid utf8":  {0xff, 0xfe, 0x01},
		"empty":         {},
		"only markup":   []byte("<div><span></span></div>"),
		"unclosed tags": []byte("<p><b>broken"),
		"binary":        {0x00, 0x1f, 0x8b, 0xff},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			doc := Render(raw, 0)
			require.NotEmpty(t, doc.Blocks, "rendering must always produce a block")
		})
	}
}

func TestDiagnostic(t *testing.T) {
	doc := Diagnostic("something went sideways")

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, domain.BlockParagraph, doc.Blocks[0].Kind)
	assert.Equal(t, "something went sideways", doc.Blocks[0].Text)
}
