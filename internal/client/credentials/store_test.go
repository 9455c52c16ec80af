package credentials

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"erp/internal/client/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "nested", FileName))

	file, err := store.Load()

	require.NoError(t, err)
	assert.Empty(t, file.ServerURL)
	assert.Nil(t, file.Session)
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "nested", FileName))
	last := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	err := store.Save(&File{
		ServerURL: "http://localhost:8000",
		Session: &session.Snapshot{
			Token:        "tok",
			Principal:    session.Principal{ID: "u-1", Username: "alice"},
			LastActivity: last,
		},
	})
	require.NoError(t, err)

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePermissions), info.Mode().Perm())

	file, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", file.ServerURL)
	require.NotNil(t, file.Session)
	assert.Equal(t, "alice", file.Session.Principal.Username)
	assert.True(t, last.Equal(file.Session.LastActivity))
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := NewStoreAt(path).Load()

	assert.Error(t, err)
}

func TestNewStore_UsesXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	store, err := NewStore()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultConfigDir, FileName), store.Path())
}
