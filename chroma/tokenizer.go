// Package chroma provides language detection and syntax tokenizing using
// the chroma library.
package chroma

import (
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/diffpane"
)

// Compile-time interface verification.
var _ diffpane.Tokenizer = (*Tokenizer)(nil)

// Tokenizer extracts syntax tokens using chroma.
type Tokenizer struct{}

// NewTokenizer creates a new chroma-based tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// TokenizeLines tokenizes source with full context, then splits tokens by
// line so multi-line constructs like block comments keep their class.
// Returns nil if the language is not supported or an error occurs.
// Returns an empty slice for empty source.
func (t *Tokenizer) TokenizeLines(language, source string) [][]diffpane.Token {
	if source == "" {
		return [][]diffpane.Token{}
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	lexer = chromalib.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil
	}

	var all []diffpane.Token
	for token := iterator(); token != chromalib.EOF; token = iterator() {
		all = append(all, diffpane.Token{Text: token.Value, Class: Classify(token.Type)})
	}
	return splitTokensByLine(all)
}

// splitTokensByLine splits a flat token list into per-line token slices,
// cutting tokens that span lines at newline boundaries.
func splitTokensByLine(tokens []diffpane.Token) [][]diffpane.Token {
	result := [][]diffpane.Token{}
	var current []diffpane.Token

	for _, tok := range tokens {
		if !strings.Contains(tok.Text, "\n") {
			current = append(current, tok)
			continue
		}

		parts := strings.Split(tok.Text, "\n")
		for i, part := range parts {
			if part != "" {
				current = append(current, diffpane.Token{Text: part, Class: tok.Class})
			}
			if i < len(parts)-1 {
				result = append(result, current)
				current = nil
			}
		}
	}

	if len(current) > 0 {
		result = append(result, current)
	}
	return result
}
