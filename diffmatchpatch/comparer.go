// Package diffmatchpatch implements diffpane.Comparer on top of
// github.com/sergi/go-diff.
package diffmatchpatch

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/diffpane"
	"github.com/fwojciec/diffpane/worddiff"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

// Compile-time interface verification.
var _ diffpane.Comparer = (*Comparer)(nil)

// Comparer line-diffs two views of a host and marks the differing lines.
type Comparer struct {
	host     diffpane.ViewHost
	timeout  time.Duration
	progress func(label string)
}

// Option configures a Comparer.
type Option func(*Comparer)

// WithTimeout bounds the time spent finding a minimal diff. Zero means no
// bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Comparer) {
		c.timeout = d
	}
}

// WithProgress sets a callback receiving the progress label of each
// non-silent compare.
func WithProgress(fn func(label string)) Option {
	return func(c *Comparer) {
		c.progress = fn
	}
}

// New creates a Comparer marking lines in host.
func New(host diffpane.ViewHost, opts ...Option) *Comparer {
	c := &Comparer{host: host, timeout: time.Second}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// block is a run of lines classified alike, relative to the compared
// sections.
type block struct {
	old, new         int
	oldMask, newMask diffpane.Marker
}

// Compare diffs the requested sections, marks changed, added, removed and
// moved lines, highlights the changed words of changed line pairs and
// returns one alignment record per block.
func (c *Comparer) Compare(ctx context.Context, req diffpane.CompareRequest) (diffpane.CompareResult, diffpane.Alignment, error) {
	if err := ctx.Err(); err != nil {
		return diffpane.CompareError, nil, err
	}

	if req.Progress != "" && c.progress != nil {
		c.progress(req.Progress)
	}

	oldView := req.OldView
	newView := oldView.Other()

	oldSec, err := c.resolve(oldView, sectionOf(req, oldView))
	if err != nil {
		return diffpane.CompareError, nil, err
	}
	newSec, err := c.resolve(newView, sectionOf(req, newView))
	if err != nil {
		return diffpane.CompareError, nil, err
	}

	oldLines := c.lines(oldView, oldSec)
	newLines := c.lines(newView, newSec)

	oldKeys := normalize(oldLines, req.Options)
	newKeys := normalize(newLines, req.Options)

	oldRunes, newRunes := linesToRunes(oldKeys, newKeys)

	d := dmp.New()
	d.DiffTimeout = c.timeout
	diffs := d.DiffMainRunes(oldRunes, newRunes, false)

	if err := ctx.Err(); err != nil {
		return diffpane.CompareError, nil, err
	}

	blocks, oldMarks, newMarks := classify(diffs, len(oldLines), len(newLines))
	if len(blocks) == 0 || allEqual(blocks) {
		return diffpane.CompareMatch, alignment(blocks, oldView, oldSec, newSec), nil
	}

	if req.Options.DetectMoves {
		detectMoves(oldKeys, newKeys, oldMarks, newMarks)
	}

	c.mark(oldView, oldSec, oldMarks)
	c.mark(newView, newSec, newMarks)
	c.highlight(oldView, newView, oldSec, newSec, oldLines, newLines, oldMarks, newMarks, blocks, req.Options)

	return diffpane.CompareMismatch, alignment(blocks, oldView, oldSec, newSec), nil
}

func sectionOf(req diffpane.CompareRequest, view diffpane.ViewID) diffpane.Section {
	if view == diffpane.MainView {
		return req.Main
	}
	return req.Sub
}

// resolve expands a zero length section to the end of the document.
func (c *Comparer) resolve(view diffpane.ViewID, sec diffpane.Section) (diffpane.Section, error) {
	count := c.host.LineCount(view)
	if sec.Off < 0 || sec.Off > count {
		return sec, fmt.Errorf("section %d+%d out of range of %s view (%d lines)", sec.Off, sec.Len, view, count)
	}
	if sec.Len <= 0 || sec.Off+sec.Len > count {
		sec.Len = count - sec.Off
	}
	return sec, nil
}

func (c *Comparer) lines(view diffpane.ViewID, sec diffpane.Section) []string {
	out := make([]string, sec.Len)
	for i := range out {
		out[i] = c.host.LineText(view, sec.Off+i)
	}
	return out
}

func normalize(lines []string, opts diffpane.Options) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if opts.IgnoreSpaces {
			l = strings.Map(func(r rune) rune {
				if unicode.IsSpace(r) {
					return -1
				}
				return r
			}, l)
		}
		if opts.IgnoreCase {
			l = strings.ToLower(l)
		}
		out[i] = l
	}
	return out
}

// linesToRunes encodes each distinct line as one rune so that go-diff can
// diff line sequences. Surrogate code points are skipped.
func linesToRunes(a, b []string) ([]rune, []rune) {
	index := make(map[string]rune)
	next := rune(0)

	encode := func(lines []string) []rune {
		out := make([]rune, len(lines))
		for i, l := range lines {
			r, ok := index[l]
			if !ok {
				if next >= 0xD800 && next <= 0xDFFF {
					next = 0xE000
				}
				r = next
				index[l] = r
				next++
			}
			out[i] = r
		}
		return out
	}
	return encode(a), encode(b)
}

// classify turns go-diff output into blocks and per-line markers. Within a
// change, deleted and inserted lines pair up as changed lines; the excess
// is removed or added.
func classify(diffs []dmp.Diff, oldCount, newCount int) ([]block, []diffpane.Marker, []diffpane.Marker) {
	oldMarks := make([]diffpane.Marker, oldCount)
	newMarks := make([]diffpane.Marker, newCount)

	var blocks []block
	oi, ni := 0, 0

	for i := 0; i < len(diffs); {
		if diffs[i].Type == dmp.DiffEqual {
			n := utf8.RuneCountInString(diffs[i].Text)
			blocks = append(blocks, block{old: oi, new: ni})
			oi += n
			ni += n
			i++
			continue
		}

		deleted, inserted := 0, 0
		for ; i < len(diffs) && diffs[i].Type != dmp.DiffEqual; i++ {
			n := utf8.RuneCountInString(diffs[i].Text)
			if diffs[i].Type == dmp.DiffDelete {
				deleted += n
			} else {
				inserted += n
			}
		}

		paired := min(deleted, inserted)
		if paired > 0 {
			blocks = append(blocks, block{old: oi, new: ni, oldMask: diffpane.MarkerChanged, newMask: diffpane.MarkerChanged})
		}
		if deleted > paired {
			blocks = append(blocks, block{old: oi + paired, new: ni + paired, oldMask: diffpane.MarkerRemoved})
		}
		if inserted > paired {
			blocks = append(blocks, block{old: oi + paired, new: ni + paired, newMask: diffpane.MarkerAdded})
		}

		for k := range deleted {
			oldMarks[oi+k] = diffpane.MarkerRemoved
			if k < paired {
				oldMarks[oi+k] = diffpane.MarkerChanged
			}
		}
		for k := range inserted {
			newMarks[ni+k] = diffpane.MarkerAdded
			if k < paired {
				newMarks[ni+k] = diffpane.MarkerChanged
			}
		}

		oi += deleted
		ni += inserted
	}
	return blocks, oldMarks, newMarks
}

func allEqual(blocks []block) bool {
	for _, b := range blocks {
		if b.oldMask != 0 || b.newMask != 0 {
			return false
		}
	}
	return true
}

// detectMoves re-marks removed and added lines whose text occurs exactly
// once on each side as moved.
func detectMoves(oldKeys, newKeys []string, oldMarks, newMarks []diffpane.Marker) {
	removed := make(map[string][]int)
	for i, m := range oldMarks {
		if m == diffpane.MarkerRemoved && strings.TrimSpace(oldKeys[i]) != "" {
			removed[oldKeys[i]] = append(removed[oldKeys[i]], i)
		}
	}
	added := make(map[string][]int)
	for i, m := range newMarks {
		if m == diffpane.MarkerAdded {
			added[newKeys[i]] = append(added[newKeys[i]], i)
		}
	}
	for key, olds := range removed {
		news := added[key]
		if len(olds) != 1 || len(news) != 1 {
			continue
		}
		oldMarks[olds[0]] = diffpane.MarkerMoved
		newMarks[news[0]] = diffpane.MarkerMoved
	}
}

func (c *Comparer) mark(view diffpane.ViewID, sec diffpane.Section, marks []diffpane.Marker) {
	for i, m := range marks {
		if m != 0 {
			c.host.AddMarkers(view, sec.Off+i, m)
		}
	}
}

// highlight adds change indicators to the changed words of each changed
// line pair.
func (c *Comparer) highlight(oldView, newView diffpane.ViewID, oldSec, newSec diffpane.Section,
	oldLines, newLines []string, oldMarks, newMarks []diffpane.Marker, blocks []block, opts diffpane.Options) {
	words := &worddiff.Differ{Fold: opts.IgnoreCase, IgnoreSpaces: opts.IgnoreSpaces}

	for _, b := range blocks {
		if b.oldMask != diffpane.MarkerChanged {
			continue
		}
		for k := 0; b.old+k < len(oldMarks) && b.new+k < len(newMarks) &&
			oldMarks[b.old+k] == diffpane.MarkerChanged && newMarks[b.new+k] == diffpane.MarkerChanged; k++ {
			oldSpans, newSpans := words.Diff(oldLines[b.old+k], newLines[b.new+k])
			for _, sp := range oldSpans {
				c.host.AddIndicator(oldView, oldSec.Off+b.old+k, sp.Start, sp.End)
			}
			for _, sp := range newSpans {
				c.host.AddIndicator(newView, newSec.Off+b.new+k, sp.Start, sp.End)
			}
		}
	}
}

// alignment converts blocks into records with absolute lines.
func alignment(blocks []block, oldView diffpane.ViewID, oldSec, newSec diffpane.Section) diffpane.Alignment {
	out := make(diffpane.Alignment, 0, len(blocks))
	for _, b := range blocks {
		oldSide := diffpane.AlignmentSide{Line: oldSec.Off + b.old, DiffMask: b.oldMask}
		newSide := diffpane.AlignmentSide{Line: newSec.Off + b.new, DiffMask: b.newMask}
		if oldView == diffpane.MainView {
			out = append(out, diffpane.AlignmentPair{Main: oldSide, Sub: newSide})
		} else {
			out = append(out, diffpane.AlignmentPair{Main: newSide, Sub: oldSide})
		}
	}
	return out
}
