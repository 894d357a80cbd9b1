package mock

import "github.com/fwojciec/diffpane"

// Compile-time interface verification.
var _ diffpane.TempStore = (*TempStore)(nil)

// TempStore is a mock implementation of diffpane.TempStore.
type TempStore struct {
	ExistsFn   func(path string) bool
	CreateFn   func(srcPath string, kind diffpane.TempKind, content []byte) (string, error)
	ReadFileFn func(path string) ([]byte, error)
	RemoveFn   func(path string) error
}

func (s *TempStore) Exists(path string) bool {
	return s.ExistsFn(path)
}

func (s *TempStore) Create(srcPath string, kind diffpane.TempKind, content []byte) (string, error) {
	return s.CreateFn(srcPath, kind, content)
}

func (s *TempStore) ReadFile(path string) ([]byte, error) {
	return s.ReadFileFn(path)
}

func (s *TempStore) Remove(path string) error {
	return s.RemoveFn(path)
}
