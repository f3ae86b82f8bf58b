package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldstation/zimline/internal/core/domain"
)

func TestArchive_GetEntry(t *testing.T) {
	arch := New("test")
	arch.AddEntry("H/Hockey", "Hockey", []byte("body"))

	entry, err := arch.GetEntry(context.Background(), "H/Hockey")

	require.NoError(t, err)
	assert.Equal(t, "Hockey", entry.Title)
	assert.False(t, entry.IsRedirect)

	_, err = arch.GetEntry(context.Background(), "N/None")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArchive_HasEntry(t *testing.T) {
	arch := New("test")
	arch.AddEntry("H/Hockey", "Hockey", nil)

	assert.True(t, arch.HasEntry(context.Background(), "H/Hockey"))
	assert.False(t, arch.HasEntry(context.Background(), "hockey"))
}

func TestArchive_Redirects(t *testing.T) {
	arch := New("test")
	arch.AddRedirect("I/Ice_hockey", "Ice hockey", "H/Hockey")
	arch.AddEntry("H/Hockey", "Hockey", nil)

	entry, err := arch.GetEntry(context.Background(), "I/Ice_hockey")
	require.NoError(t, err)
	require.True(t, entry.IsRedirect)

	target, err := arch.RedirectTarget(context.Background(), entry)
	require.NoError(t, err)
	assert.Equal(t, "H/Hockey", target)

	content, err := arch.GetEntry(context.Background(), "H/Hockey")
	require.NoError(t, err)
	_, err = arch.RedirectTarget(context.Background(), content)
	assert.ErrorIs(t, err, domain.ErrNotFound, "non-redirects have no target")
}

func TestArchive_ReadContent(t *testing.T) {
	arch := New("test")
	arch.AddEntry("H/Hockey", "Hockey", []byte("<p>Body.</p>"))
	entry, err := arch.GetEntry(context.Background(), "H/Hockey")
	require.NoError(t, err)

	raw, err := arch.ReadContent(context.Background(), entry)

	require.NoError(t, err)
	assert.Equal(t, []byte("<p>Body.</p>"), raw)
}

func TestArchive_ContentUnavailable(t *testing.T) {
	arch := New("test")
	arch.AddEntry("H/Hockey", "Hockey", []byte("body"))
	arch.MarkContentUnavailable("H/Hockey")
	entry, err := arch.GetEntry(context.Background(), "H/Hockey")
	require.NoError(t, err)

	_, err = arch.ReadContent(context.Background(), entry)

	assert.ErrorIs(t, err, domain.ErrContentUnavailable)
}

func TestArchive_Close(t *testing.T) {
	arch := New("test")
	arch.AddEntry("H/Hockey", "Hockey", nil)
	require.NoError(t, arch.Close())

	_, err := arch.GetEntry(context.Background(), "H/Hockey")
	assert.ErrorIs(t, err, domain.ErrArchiveClosed)
	assert.False(t, arch.HasEntry(context.Background(), "H/Hockey"))
}

func TestArchive_SearchFulltext(t *testing.T) {
	arch := New("test")
	arch.AddEntry("H/Hockey", "Hockey", []byte("A stick sport on ice."))
	arch.AddEntry("F/Football", "Football", []byte("A ball sport on grass."))
	arch.AddRedirect("I/Ice", "Ice", "H/Hockey")

	hits, err := arch.SearchFulltext(context.Background(), "sport ice", 10)

	require.NoError(t, err)
	require.Len(t, hits, 1, "both terms must match, redirects never do")
	assert.Equal(t, "H/Hockey", hits[0].Path)
	assert.Contains(t, hits[0].Snippet, "stick sport")
}

func TestArchive_SearchFulltext_Limit(t *testing.T) {
	arch := New("test")
	arch.AddEntry("A/One", "One", []byte("common word"))
	arch.AddEntry("A/Two", "Two", []byte("common word"))
	arch.AddEntry("A/Three", "Three", []byte("common word"))

	hits, err := arch.SearchFulltext(context.Background(), "common", 2)

	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestArchive_SuggestTitles(t *testing.T) {
	arch := New("test")
	arch.AddEntry("H/Hockey", "Hockey", nil)
	arch.AddEntry("H/Horse", "Horse", nil)
	arch.AddEntry("F/Football", "Football", nil)

	titles, err := arch.SuggestTitles(context.Background(), "HO", 10)

	require.NoError(t, err)
	assert.Equal(t, []string{"Hockey", "Horse"}, titles)
}

func TestArchive_ListEntries(t *testing.T) {
	arch := New("test")
	arch.AddEntry("A/Alpha", "Alpha", nil)
	arch.AddRedirect("B/Beta", "Beta", "A/Alpha")
	arch.AddEntry("G/Gamma", "Gamma", nil)

	entries, err := arch.ListEntries(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "A/Alpha", entries[0].Path)
}

func TestArchive_Info(t *testing.T) {
	arch := New("pocket")
	arch.AddEntry("A/Alpha", "Alpha", nil)
	arch.AddRedirect("B/Beta", "Beta", "A/Alpha")

	info := arch.Info()

	assert.Equal(t, "pocket", info.Name)
	assert.Equal(t, 2, info.EntryCount)
	assert.True(t, info.HasFulltext)
	assert.True(t, info.HasTitleIndex)
}
