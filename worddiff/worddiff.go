// Package worddiff finds the changed words of a changed line pair.
package worddiff

import (
	"unicode/utf8"

	"github.com/fwojciec/diffpane"
)

// Compile-time interface verification.
var _ diffpane.WordDiffer = (*Differ)(nil)

// similarityThreshold is the minimum share of common tokens for a word
// diff. Less similar lines are reported as changed throughout.
const similarityThreshold = 0.4

// Differ tokenizes lines and diffs the token sequences.
type Differ struct {
	// Fold compares tokens case-insensitively.
	Fold bool
	// IgnoreSpaces treats whitespace runs as equal.
	IgnoreSpaces bool
}

// NewDiffer creates a Differ.
func NewDiffer() *Differ {
	return &Differ{}
}

// token is a lexeme of a line and its byte offset.
type token struct {
	text string
	off  int
}

type class int

const (
	classOther class = iota
	classIdent
	classNumber
	classQuote
	classOperator
	classPunct
	classSpace
)

func classOf(c byte) class {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return classIdent
	case c >= '0' && c <= '9':
		return classNumber
	case c == '"', c == '\'':
		return classQuote
	case c == ' ', c == '\t', c == '\r', c == '\n':
		return classSpace
	}
	switch c {
	case '+', '-', '*', '/', '=', '<', '>', '!', '&', '|', '^', '%', ':':
		return classOperator
	case '(', ')', '{', '}', '[', ']', ';', ',', '.':
		return classPunct
	}
	return classOther
}

// Tokenize splits s into identifiers, numbers, quoted strings, operator
// runs, punctuation, whitespace runs and single other characters. An empty
// s has no tokens.
func (d *Differ) Tokenize(s string) []string {
	toks := tokenize(s)
	if len(toks) == 0 {
		return nil
	}
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.text
	}
	return out
}

func tokenize(s string) []token {
	if s == "" {
		return nil
	}

	toks := make([]token, 0, len(s)/3+1)
	for i := 0; i < len(s); {
		start := i
		c := s[i]
		i++

		switch classOf(c) {
		case classIdent:
			for i < len(s) && (classOf(s[i]) == classIdent || classOf(s[i]) == classNumber) {
				i++
			}
		case classNumber:
			for i < len(s) && classOf(s[i]) == classNumber {
				i++
			}
			if i+1 < len(s) && s[i] == '.' && classOf(s[i+1]) == classNumber {
				i++
				for i < len(s) && classOf(s[i]) == classNumber {
					i++
				}
			}
		case classQuote:
			for i < len(s) {
				if s[i] == '\\' && i+1 < len(s) {
					i += 2
					continue
				}
				i++
				if s[i-1] == c {
					break
				}
			}
		case classOperator, classSpace:
			k := classOf(c)
			for i < len(s) && classOf(s[i]) == k {
				i++
			}
		case classPunct:
		default:
			_, size := utf8.DecodeRuneInString(s[start:])
			i = start + size
		}

		toks = append(toks, token{text: s[start:i], off: start})
	}
	return toks
}

func (d *Differ) key(t token) string {
	if d.IgnoreSpaces && classOf(t.text[0]) == classSpace {
		return " "
	}
	if d.Fold {
		return lower(t.text)
	}
	return t.text
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// Diff returns the changed byte ranges of old and new. Adjacent changed
// tokens form one range.
func (d *Differ) Diff(old, new string) (oldSpans, newSpans []diffpane.Span) {
	if old == new {
		return nil, nil
	}
	if old == "" {
		return nil, []diffpane.Span{{Start: 0, End: len(new)}}
	}
	if new == "" {
		return []diffpane.Span{{Start: 0, End: len(old)}}, nil
	}

	oldToks, newToks := tokenize(old), tokenize(new)
	oldKeys, newKeys := d.keys(oldToks), d.keys(newToks)

	if !similar(oldKeys, newKeys) {
		return []diffpane.Span{{Start: 0, End: len(old)}}, []diffpane.Span{{Start: 0, End: len(new)}}
	}

	oldKeep, newKeep := lcs(oldKeys, newKeys)
	return spans(oldToks, oldKeep), spans(newToks, newKeep)
}

func (d *Differ) keys(toks []token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = d.key(t)
	}
	return out
}

// similar reports whether the token sequences share enough tokens for a
// word diff to be readable.
func similar(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}

	counts := make(map[string]int, len(a))
	for _, t := range a {
		counts[t]++
	}
	common := 0
	for _, t := range b {
		if counts[t] > 0 {
			counts[t]--
			common++
		}
	}
	return float64(2*common)/float64(len(a)+len(b)) >= similarityThreshold
}

// lcs marks the tokens of a and b that belong to their longest common
// subsequence.
func lcs(a, b []string) (aKeep, bKeep []bool) {
	m, n := len(a), len(b)
	stride := n + 1
	table := make([]int, (m+1)*stride)

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			switch {
			case a[i-1] == b[j-1]:
				table[i*stride+j] = table[(i-1)*stride+j-1] + 1
			case table[(i-1)*stride+j] > table[i*stride+j-1]:
				table[i*stride+j] = table[(i-1)*stride+j]
			default:
				table[i*stride+j] = table[i*stride+j-1]
			}
		}
	}

	aKeep, bKeep = make([]bool, m), make([]bool, n)
	for i, j := m, n; i > 0 && j > 0; {
		switch {
		case a[i-1] == b[j-1]:
			aKeep[i-1], bKeep[j-1] = true, true
			i--
			j--
		case table[(i-1)*stride+j] > table[i*stride+j-1]:
			i--
		default:
			j--
		}
	}
	return aKeep, bKeep
}

func spans(toks []token, keep []bool) []diffpane.Span {
	var out []diffpane.Span
	for i, t := range toks {
		if keep[i] {
			continue
		}
		end := t.off + len(t.text)
		if n := len(out); n > 0 && out[n-1].End == t.off {
			out[n-1].End = end
			continue
		}
		out = append(out, diffpane.Span{Start: t.off, End: end})
	}
	return out
}
