package jsonl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/diffpane"
)

// Compile-time interface verification.
var _ diffpane.ReportSaver = (*Saver)(nil)

// Saver appends compare reports to JSONL files.
type Saver struct{}

// NewSaver creates a new Saver.
func NewSaver() *Saver {
	return &Saver{}
}

// Save appends r as one line to the file at path. The file and its
// directory are created when missing.
func (s *Saver) Save(path string, r diffpane.Report) (err error) {
	line, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding report for %s: %w", r.New, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = f.Write(append(line, '\n'))
	return err
}
