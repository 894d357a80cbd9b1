// Package fs provides filesystem locations and temp file storage.
package fs

import (
	"os"
	"path/filepath"
)

// DefaultConfigPath returns the default settings file location.
// Uses XDG_CONFIG_HOME if set, otherwise falls back to
// ~/.config/diffpane/config.yaml, or the system temp directory if home is
// unavailable.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "diffpane", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "diffpane", "config.yaml")
	}
	return filepath.Join(home, ".config", "diffpane", "config.yaml")
}

// DefaultTempDir returns the directory temp revisions are written to.
func DefaultTempDir() string {
	return filepath.Join(os.TempDir(), "diffpane")
}
