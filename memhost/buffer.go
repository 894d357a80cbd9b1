package memhost

import (
	"errors"
	"strings"

	"github.com/fwojciec/diffpane"
)

// Edit errors.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrReadOnly      = errors.New("buffer is read-only")
	ErrUnknownBuffer = errors.New("unknown buffer")
)

// line is one document line with its per-line annotations.
type line struct {
	text       string
	markers    diffpane.Marker
	padding    int
	hidden     bool // folded under a preceding header
	indicators [][2]int
}

// Buffer is an open text document.
type Buffer struct {
	id       diffpane.BufferID
	doc      diffpane.DocID
	path     string
	label    string
	encoding string
	language string
	readOnly bool
	modified bool

	lines []*line

	undoStack []group
	redoStack []group
}

// opKind is the kind of a recorded edit.
type opKind int

const (
	opInsert opKind = iota
	opDelete
	opSet
)

// op is a single reversible line edit.
type op struct {
	kind  opKind
	line  int
	lines []string // inserted or deleted lines
	old   string   // opSet only
	text  string   // opSet only
}

func (o op) inverse() op {
	switch o.kind {
	case opInsert:
		return op{kind: opDelete, line: o.line, lines: o.lines}
	case opDelete:
		return op{kind: opInsert, line: o.line, lines: o.lines}
	default:
		return op{kind: opSet, line: o.line, old: o.text, text: o.old}
	}
}

// group is one undo unit.
type group []op

func newBuffer(id diffpane.BufferID, path, content string) *Buffer {
	b := &Buffer{
		id:       id,
		path:     path,
		label:    baseName(path),
		encoding: "utf-8",
	}
	b.setText(content)
	return b
}

func (b *Buffer) setText(content string) {
	texts := strings.Split(content, "\n")
	b.lines = make([]*line, len(texts))
	for i, t := range texts {
		b.lines[i] = &line{text: strings.TrimSuffix(t, "\r")}
	}
	b.undoStack = nil
	b.redoStack = nil
	b.modified = false
}

// Text returns the buffer content.
func (b *Buffer) Text() string {
	texts := make([]string, len(b.lines))
	for i, l := range b.lines {
		texts[i] = l.text
	}
	return strings.Join(texts, "\n")
}

func (b *Buffer) lineAt(n int) *line {
	if n < 0 || n >= len(b.lines) {
		return nil
	}
	return b.lines[n]
}

// insertLines inserts texts before line at. Markers of the displaced line
// travel with it, the new lines start unmarked.
func (b *Buffer) insertLines(at int, texts []string) {
	at = clamp(at, 0, len(b.lines)-1)
	added := make([]*line, len(texts))
	for i, t := range texts {
		added[i] = &line{text: t}
	}
	b.lines = append(b.lines[:at], append(added, b.lines[at:]...)...)
}

// deleteLines removes count whole lines starting at first. The markers of
// removed lines merge into the line that takes their place, the way an
// editor merges per-line data when joining lines.
func (b *Buffer) deleteLines(first, count int) []string {
	count = clamp(count, 0, len(b.lines)-1-first)
	if count == 0 {
		return nil
	}
	removed := make([]string, count)
	var merged diffpane.Marker
	for i := 0; i < count; i++ {
		l := b.lines[first+i]
		removed[i] = l.text
		merged |= l.markers
	}
	next := b.lines[first+count]
	next.markers |= merged
	next.padding = b.lines[first].padding
	b.lines = append(b.lines[:first], b.lines[first+count:]...)
	return removed
}

func (b *Buffer) setLine(n int, text string) string {
	l := b.lines[n]
	old := l.text
	l.text = text
	return old
}

func (b *Buffer) record(g group) {
	b.undoStack = append(b.undoStack, g)
	b.redoStack = nil
	b.modified = true
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
