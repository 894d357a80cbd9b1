package chroma

import (
	"path/filepath"

	"github.com/alecthomas/chroma/v2/lexers"
)

// Detector detects programming languages using chroma lexers.
type Detector struct{}

// NewDetector creates a new chroma-based language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the language name for a file, matching on the file name
// first and falling back to content analysis. Returns an empty string if
// the language cannot be determined.
func (d *Detector) Detect(path string, content []byte) string {
	if lexer := lexers.Match(filepath.Base(path)); lexer != nil {
		return lexer.Config().Name
	}
	if len(content) == 0 {
		return ""
	}
	if lexer := lexers.Analyse(string(content)); lexer != nil {
		return lexer.Config().Name
	}
	return ""
}
