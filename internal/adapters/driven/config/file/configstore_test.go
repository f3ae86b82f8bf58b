package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Defaults(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	cfg := store.Config()

	assert.Empty(t, cfg.Archives)
	assert.Equal(t, 2000, cfg.DefaultMaxChars)
	assert.Equal(t, 80, cfg.LineWidth)
	assert.Empty(t, cfg.Callsign)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	want := Config{
		Archives: []ArchiveRef{
			{Name: "wiki", Description: "Offline wiki", Path: "/archives/wiki.zdb"},
		},
		ArchiveDir:      "/archives",
		DefaultMaxChars: 1500,
		LineWidth:       72,
		Callsign:        "N0CALL",
	}
	require.NoError(t, store.SetConfig(want))

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, want, reopened.Config())
}

func TestStore_LegacyUpgrade(t *testing.T) {
	dir := t.TempDir()
	legacy := `archive_path = "/archives/old.zdb"` + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(legacy), 0600))

	store, err := NewStore(dir)
	require.NoError(t, err)

	cfg := store.Config()
	require.Len(t, cfg.Archives, 1)
	assert.Equal(t, "/archives/old.zdb", cfg.Archives[0].Path)
	assert.Equal(t, "old.zdb", cfg.Archives[0].Name)
	assert.Empty(t, cfg.LegacyArchivePath, "legacy key is consumed")

	// The upgrade is persisted; reloading must not duplicate the entry.
	reopened, err := NewStore(dir)
	require.NoError(t, err)
	assert.Len(t, reopened.Config().Archives, 1)
}

func TestStore_LegacyUpgradeSkipsKnownPath(t *testing.T) {
	dir := t.TempDir()
	content := `archive_path = "/archives/old.zdb"

[[archives]]
name = "old"
path = "/archives/old.zdb"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewStore(dir)
	require.NoError(t, err)

	assert.Len(t, store.Config().Archives, 1)
}

func TestStore_ClampsBadValues(t *testing.T) {
	dir := t.TempDir()
	content := "default_max_chars = -5\nline_width = 0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewStore(dir)
	require.NoError(t, err)

	cfg := store.Config()
	assert.Equal(t, 0, cfg.DefaultMaxChars, "negative budget means unbounded")
	assert.Equal(t, 80, cfg.LineWidth)
}

func TestStore_ConfigReturnsCopy(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.SetConfig(Config{
		Archives:        []ArchiveRef{{Name: "one", Path: "/a"}},
		DefaultMaxChars: 2000,
		LineWidth:       80,
	}))

	cfg := store.Config()
	cfg.Archives[0].Name = "mutated"

	assert.Equal(t, "one", store.Config().Archives[0].Name)
}

func TestStore_Path(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}
