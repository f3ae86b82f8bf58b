package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockKindString(t *testing.T) {
	assert.Equal(t, "heading", BlockHeading.String())
	assert.Equal(t, "paragraph", BlockParagraph.String())
	assert.Equal(t, "listitem", BlockListItem.String())
	assert.Equal(t, "unknown", BlockKind(99).String())
}

func TestRenderedDocumentText(t *testing.T) {
	doc := &RenderedDocument{
		Blocks: []Block{
			{Kind: BlockHeading, Text: "History"},
			{Kind: BlockParagraph, Text: "It began."},
			{Kind: BlockListItem, Text: "A date"},
		},
	}

	assert.Equal(t, "History\n\nIt began.\n\nA date", doc.Text())
}

func TestRenderedDocumentText_Empty(t *testing.T) {
	assert.Equal(t, "", (&RenderedDocument{}).Text())
}
