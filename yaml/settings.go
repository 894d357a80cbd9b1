// Package yaml persists settings as YAML files.
package yaml

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/diffpane"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// SettingsStore reads and writes diffpane.Settings at a file path.
type SettingsStore struct {
	path string
}

// NewSettingsStore returns a store for the settings file at path.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// Path returns the settings file location.
func (s *SettingsStore) Path() string {
	return s.path
}

// Load reads the settings file. Keys missing from the file keep their
// defaults, and a missing file yields diffpane.DefaultSettings.
func (s *SettingsStore) Load() (diffpane.Settings, error) {
	ret := diffpane.DefaultSettings()

	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return ret, nil
	}
	if err != nil {
		return ret, errors.Wrap(err, "reading settings file")
	}

	if err := yaml.Unmarshal(b, &ret); err != nil {
		return ret, errors.Wrapf(err, "unmarshalling settings in %s", s.path)
	}
	if ret.OldFileView != diffpane.MainView && ret.OldFileView != diffpane.SubView {
		return ret, errors.Errorf("invalid oldFileView %d in %s", ret.OldFileView, s.path)
	}

	return ret, nil
}

// Save writes settings to the file, creating its directory.
func (s *SettingsStore) Save(settings diffpane.Settings) error {
	b, err := yaml.Marshal(settings)
	if err != nil {
		return errors.Wrap(err, "marshalling settings into YAML")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "creating settings directory")
	}

	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return errors.Wrap(err, "writing the settings file")
	}

	return nil
}

// Marshal renders settings as YAML.
func Marshal(settings diffpane.Settings) ([]byte, error) {
	b, err := yaml.Marshal(settings)
	if err != nil {
		return nil, errors.Wrap(err, "marshalling settings into YAML")
	}
	return b, nil
}
