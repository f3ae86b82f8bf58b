package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldstation/zimline/internal/adapters/driven/archive/memory"
	"github.com/fieldstation/zimline/internal/core/domain"
)

func TestVerify_PassThrough(t *testing.T) {
	arch := memory.New("test")
	arch.AddEntry("H/Hockey", "Hockey", []byte("<p>Stick sport.</p>"))
	v := NewVerifier(arch)

	hit, ok := v.Verify(context.Background(), domain.SearchHit{Title: "Hockey", Path: "H/Hockey"})

	require.True(t, ok)
	assert.Equal(t, "H/Hockey", hit.Path)
}

func TestVerify_RepairsStalePath(t *testing.T) {
	arch := memory.New("test")
	arch.AddEntry("H/Hockey", "Hockey", nil)
	v := NewVerifier(arch)

	hit, ok := v.Verify(context.Background(), domain.SearchHit{Title: "Hockey", Path: "hockey"})

	require.True(t, ok)
	assert.Equal(t, "H/Hockey", hit.Path)
}

func TestVerify_SeedsFromTitle(t *testing.T) {
	arch := memory.New("test")
	arch.AddEntry("I/Ice_Hockey", "Ice Hockey", nil)
	v := NewVerifier(arch)

	hit, ok := v.Verify(context.Background(), domain.SearchHit{Title: "Ice Hockey"})

	require.True(t, ok)
	assert.Equal(t, "I/Ice_Hockey", hit.Path)
}

func TestVerify_DropsPhantom(t *testing.T) {
	arch := memory.New("test")
	arch.AddEntry("H/Hockey", "Hockey", nil)
	v := NewVerifier(arch)

	_, ok := v.Verify(context.Background(), domain.SearchHit{Title: "Cricket", Path: "C/Cricket"})

	assert.False(t, ok)
}

func TestVerify_EmptyHit(t *testing.T) {
	v := NewVerifier(memory.New("test"))

	_, ok := v.Verify(context.Background(), domain.SearchHit{})

	assert.False(t, ok)
}

func TestVerify_Idempotent(t *testing.T) {
	arch := memory.New("test")
	arch.AddEntry("H/Hockey", "Hockey", nil)
	v := NewVerifier(arch)

	once, ok := v.Verify(context.Background(), domain.SearchHit{Title: "Hockey", Path: "hockey"})
	require.True(t, ok)
	twice, ok := v.Verify(context.Background(), once)
	require.True(t, ok)

	assert.Equal(t, once, twice)
}

func TestVerifyAll_FiltersAndDedups(t *testing.T) {
	arch := memory.New("test")
	arch.AddEntry("H/Hockey", "Hockey", nil)
	v := NewVerifier(arch)

	hits := v.VerifyAll(context.Background(), []domain.SearchHit{
		{Title: "Hockey", Path: "H/Hockey"},
		{Title: "Hockey", Path: "hockey"},     // repairs to the same path
		{Title: "Cricket", Path: "C/Cricket"}, // phantom
	})

	require.Len(t, hits, 1)
	assert.Equal(t, "H/Hockey", hits[0].Path)
}

func TestVerifyAll_PreservesOrder(t *testing.T) {
	arch := memory.New("test")
	arch.AddEntry("A/Alpha", "Alpha", nil)
	arch.AddEntry("B/Beta", "Beta", nil)
	arch.AddEntry("G/Gamma", "Gamma", nil)
	v := NewVerifier(arch)

	hits := v.VerifyAll(context.Background(), []domain.SearchHit{
		{Title: "Gamma", Path: "G/Gamma"},
		{Title: "Alpha", Path: "A/Alpha"},
		{Title: "Beta", Path: "B/Beta"},
	})

	require.Len(t, hits, 3)
	assert.Equal(t, "G/Gamma", hits[0].Path)
	assert.Equal(t, "A/Alpha", hits[1].Path)
	assert.Equal(t, "B/Beta", hits[2].Path)
}
