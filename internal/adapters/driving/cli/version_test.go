package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "zimline version "+version)
}

func TestInfoCmd(t *testing.T) {
	out, err := execute(t, "info")

	require.NoError(t, err)
	assert.Contains(t, out, "pocket-wiki")
}

func TestSuggestCmd(t *testing.T) {
	out, err := execute(t, "suggest", "hoc")

	require.NoError(t, err)
	assert.Contains(t, out, "Hockey")
}

func TestSuggestCmd_NoMatches(t *testing.T) {
	out, err := execute(t, "suggest", "zzz")

	require.NoError(t, err)
	assert.Contains(t, out, "No suggestions.")
}
