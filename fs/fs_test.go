package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/diffpane"
	"github.com/fwojciec/diffpane/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	assert.Equal(t, filepath.Join("/xdg", "diffpane", "config.yaml"), fs.DefaultConfigPath())
}

func TestDefaultConfigPath_Home(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".config", "diffpane", "config.yaml"), fs.DefaultConfigPath())
}

func TestTempStore_Create(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "tmp")
	store := fs.NewTempStore(dir)

	first, err := store.Create("/src/main.go", diffpane.TempLastSaved, []byte("one"))
	require.NoError(t, err)
	second, err := store.Create("/src/main.go", diffpane.TempLastSaved, []byte("two"))
	require.NoError(t, err)
	git, err := store.Create("/src/main.go", diffpane.TempVCSRevisionA, []byte("three"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "main_LastSave1.go"), first)
	assert.Equal(t, filepath.Join(dir, "main_LastSave2.go"), second)
	assert.Equal(t, filepath.Join(dir, "main_Git1.go"), git)

	content, err := store.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "two", string(content))
}

func TestTempStore_CreateWithoutExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := fs.NewTempStore(dir)

	path, err := store.Create("/src/Makefile", diffpane.TempVCSRevisionB, nil)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Makefile_Base1"), path)
}

func TestTempStore_ExistsAndRemove(t *testing.T) {
	t.Parallel()

	store := fs.NewTempStore(t.TempDir())
	path, err := store.Create("a.txt", diffpane.TempLastSaved, []byte("x"))
	require.NoError(t, err)

	assert.True(t, store.Exists(path))
	require.NoError(t, store.Remove(path))
	assert.False(t, store.Exists(path))
	require.NoError(t, store.Remove(path))

	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
