package yaml_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/diffpane"
	"github.com/fwojciec/diffpane/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsStore_LoadMissingFile(t *testing.T) {
	t.Parallel()

	store := yaml.NewSettingsStore(filepath.Join(t.TempDir(), "none.yaml"))

	got, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, diffpane.DefaultSettings(), got)
}

func TestSettingsStore_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	store := yaml.NewSettingsStore(path)
	want := diffpane.DefaultSettings()
	want.IgnoreCase = true
	want.OldFileView = diffpane.SubView
	want.ReplaceWindow = 100 * time.Millisecond

	require.NoError(t, store.Save(want))
	got, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSettingsStore_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ignoreSpaces: true\nwrapAround: false\nreplaceWindow: 15ms\n"), 0o644))

	got, err := yaml.NewSettingsStore(path).Load()

	require.NoError(t, err)
	want := diffpane.DefaultSettings()
	want.IgnoreSpaces = true
	want.WrapAround = false
	want.ReplaceWindow = 15 * time.Millisecond
	assert.Equal(t, want, got)
}

func TestSettingsStore_LoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed", content: "ignoreSpaces: [\n"},
		{name: "bad view", content: "oldFileView: 7\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := yaml.NewSettingsStore(path).Load()

			require.Error(t, err)
		})
	}
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	b, err := yaml.Marshal(diffpane.DefaultSettings())

	require.NoError(t, err)
	assert.Contains(t, string(b), "oldFileIsFirst: true")
	assert.Contains(t, string(b), "ignoreSpaces: false")
}
