package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fwojciec/diffpane"
)

// Compile-time interface verification.
var _ diffpane.TempStore = (*TempStore)(nil)

// maxTempIndex bounds the search for a free temp file name.
const maxTempIndex = 10000

// TempStore writes historical revisions to uniquely named files in a
// directory. Names follow <stem><mark><n><ext>, for example
// main_LastSave1.go.
type TempStore struct {
	dir string
}

// NewTempStore returns a store writing into dir.
func NewTempStore(dir string) *TempStore {
	return &TempStore{dir: dir}
}

// Exists reports whether path exists on disk.
func (s *TempStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Create writes content to the first free name derived from srcPath and kind.
func (s *TempStore) Create(srcPath string, kind diffpane.TempKind, content []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}

	base := filepath.Base(srcPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for i := 1; i <= maxTempIndex; i++ {
		path := filepath.Join(s.dir, stem+kind.FileMark()+strconv.Itoa(i)+ext)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating temp file: %w", err)
		}
		if _, err := f.Write(content); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("writing temp file: %w", err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return "", fmt.Errorf("closing temp file: %w", err)
		}
		return path, nil
	}
	return "", fmt.Errorf("no free temp name for %s", base)
}

// ReadFile returns the content of path.
func (s *TempStore) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Remove deletes a temp file. Removing a missing file is not an error.
func (s *TempStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing temp file: %w", err)
	}
	return nil
}
