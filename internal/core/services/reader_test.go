package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldstation/zimline/internal/adapters/driven/archive/memory"
	"github.com/fieldstation/zimline/internal/core/domain"
	"github.com/fieldstation/zimline/internal/render"
)

func TestResolveAndRender_Basic(t *testing.T) {
	arch := memory.New("test")
	arch.AddEntry("H/Hockey", "Hockey", []byte("<p>Hockey is a sport. It uses sticks.</p>"))
	svc := NewReaderService(arch)

	doc, err := svc.ResolveAndRender(context.Background(), "H/Hockey", 0)

	require.NoError(t, err)
	assert.Equal(t, "Hockey", doc.Title)
	assert.Equal(t, "H/Hockey", doc.Path)
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, "Hockey is a sport.", doc.Blocks[0].Text)
	assert.False(t, doc.Truncated)
}

func TestResolveAndRender_RepairsStalePath(t *testing.T) {
	arch := memory.New("test")
	arch.AddEntry("H/Hockey", "Hockey", []byte("<p>Body.</p>"))
	svc := NewReaderService(arch)

	doc, err := svc.ResolveAndRender(context.Background(), "hockey", 0)

	require.NoError(t, err)
	assert.Equal(t, "H/Hockey", doc.Path)
}

func TestResolveAndRender_FollowsRedirects(t *testing.T) {
	arch := memory.New("test")
	arch.AddRedirect("P/Paris", "Paris", "P/Paris%2C_France")
	arch.AddEntry("P/Paris,_France", "Paris, France", []byte("<p>The capital of France.</p>"))
	svc := NewReaderService(arch)

	doc, err := svc.ResolveAndRender(context.Background(), "P/Paris", 0)

	require.NoError(t, err)
	assert.Equal(t, "Paris, France", doc.Title)
	assert.Equal(t, "P/Paris,_France", doc.Path)
	assert.Equal(t, "The capital of France.", doc.Blocks[0].Text)
}

func TestResolveAndRender_RedirectLoop(t *testing.T) {
	arch := memory.New("test")
	arch.AddRedirect("A/One", "One", "A/Two")
	arch.AddRedirect("A/Two", "Two", "A/One")
	svc := NewReaderService(arch)

	_, err := svc.ResolveAndRender(context.Background(), "A/One", 0)

	assert.ErrorIs(t, err, domain.ErrRedirectLoop)
}

func TestResolveAndRender_NotFound(t *testing.T) {
	svc := NewReaderService(memory.New("test"))

	_, err := svc.ResolveAndRender(context.Background(), "N/Nothing", 0)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveAndRender_EmptyPath(t *testing.T) {
	svc := NewReaderService(memory.New("test"))

	_, err := svc.ResolveAndRender(context.Background(), "  ", 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolveAndRender_ContentUnavailable(t *testing.T) {
	arch := memory.New("test")
	arch.AddEntry("H/Hockey", "Hockey", []byte("body"))
	arch.MarkContentUnavailable("H/Hockey")
	svc := NewReaderService(arch)

	doc, err := svc.ResolveAndRender(context.Background(), "H/Hockey", 0)

	require.NoError(t, err, "content failure degrades to a diagnostic document")
	assert.Equal(t, "Hockey", doc.Title)
	require.Len(t, doc.Blocks, 1)
	assert.Contains(t, doc.Blocks[0].Text, "could not be retrieved")
}

func TestResolveAndRender_AppliesBudget(t *testing.T) {
	arch := memory.New("test")
	arch.AddEntry("L/Long", "Long", []byte("<p>0123456789 0123456789 0123456789.</p>"))
	svc := NewReaderService(arch)

	doc, err := svc.ResolveAndRender(context.Background(), "L/Long", 10)

	require.NoError(t, err)
	require.True(t, doc.Truncated)
	assert.Equal(t, render.ContinuationNotice, doc.Blocks[len(doc.Blocks)-1].Text)
}

func TestSuggest(t *testing.T) {
	arch := memory.New("test")
	arch.AddEntry("H/Hockey", "Hockey", nil)
	arch.AddEntry("H/Horse", "Horse", nil)
	svc := NewReaderService(arch)

	titles, err := svc.Suggest(context.Background(), "ho", 5)

	require.NoError(t, err)
	assert.Equal(t, []string{"Hockey", "Horse"}, titles)
}

func TestSuggest_NoTitleIndex(t *testing.T) {
	arch := memory.New("test")
	arch.AddEntry("H/Hockey", "Hockey", nil)
	svc := NewReaderService(bareArchive{Archive: arch})

	titles, err := svc.Suggest(context.Background(), "ho", 5)

	require.NoError(t, err)
	assert.Empty(t, titles)
}

func TestBrowse(t *testing.T) {
	arch := memory.New("test")
	arch.AddEntry("A/Alpha", "Alpha", nil)
	arch.AddRedirect("B/Beta", "Beta", "A/Alpha")
	arch.AddEntry("G/Gamma", "Gamma", nil)
	svc := NewReaderService(arch)

	hits, err := svc.Browse(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, hits, 2, "redirects are not browsable content")
	assert.Equal(t, "A/Alpha", hits[0].Path)
	assert.Equal(t, domain.SearchMethodBrowse, hits[0].Method)
}

func TestBrowse_NoLister(t *testing.T) {
	svc := NewReaderService(bareArchive{Archive: memory.New("test")})

	hits, err := svc.Browse(context.Background(), 10)

	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestInfo(t *testing.T) {
	arch := memory.New("pocket-wiki")
	arch.AddEntry("A/Alpha", "Alpha", nil)
	svc := NewReaderService(arch)

	info := svc.Info()

	assert.Equal(t, "pocket-wiki", info.Name)
	assert.Equal(t, 1, info.EntryCount)
}
