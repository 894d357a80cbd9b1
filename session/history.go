package session

import (
	"log/slog"
	"time"

	"github.com/fwojciec/diffpane"
)

// skipDriftLimit is the skip counter value above which drift is reported.
const skipDriftLimit = 2

// deletedSection holds the markers of lines removed by a multi-line delete.
type deletedSection struct {
	startLine   int
	restore     diffpane.EditAction // the action that replays this section
	markers     []diffpane.Marker   // one entry per line, startLine through endLine
	lineReplace bool
}

// DeletedSections is the marker history of one buffer. It remembers the
// markers of deleted lines so that an undo (or a redo of an undone delete)
// can put them back.
//
// Hosts report undo and redo as plain inserts and deletes. Pushes and pops
// are paired by action parity: a section deleted by a user edit or a redo is
// restored by an undo, one deleted by an undo is restored by a redo. A pop
// of the wrong parity arriving shortly after the push is the insert half of
// a line replace and marks the section so its own undo does not push again.
type DeletedSections struct {
	clock  diffpane.Clock
	window time.Duration
	logger *slog.Logger

	skipPush int
	lastPush time.Time
	sections []deletedSection
}

// NewDeletedSections returns an empty history. Pops within window of the
// previous push are treated as part of a line replace.
func NewDeletedSections(clock diffpane.Clock, window time.Duration, logger *slog.Logger) *DeletedSections {
	if logger == nil {
		logger = discardLogger()
	}
	return &DeletedSections{clock: clock, window: window, logger: logger}
}

// Push records the markers of lines startLine through endLine of view before
// they are deleted by action. The lines are unmarked except endLine, whose
// markers the host merges into the line that survives the delete.
func (d *DeletedSections) Push(h diffpane.ViewHost, view diffpane.ViewID, action diffpane.EditAction, startLine, endLine int) {
	if endLine <= startLine {
		return
	}

	if d.skipPush > 0 {
		d.skipPush--
		d.logger.Debug("marker history push skipped", "view", view, "line", startLine, "skip", d.skipPush)
		return
	}

	if n := len(d.sections); n > 0 {
		last := d.sections[n-1]
		if last.restore == action && last.lineReplace {
			return
		}
	}

	sec := deletedSection{
		startLine: startLine,
		restore:   action.Restore(),
		markers:   make([]diffpane.Marker, endLine-startLine+1),
	}

	h.ClearIndicators(view, startLine, endLine-startLine)

	for line := startLine; line <= endLine; line++ {
		sec.markers[line-startLine] = h.Markers(view, line)
		if line != endLine {
			h.ClearMarkers(view, line)
		}
	}

	d.sections = append(d.sections, sec)
	d.lastPush = d.clock.Now()
}

// Pop restores the markers of the most recent section once the lines it
// describes have been inserted back at startLine by action.
func (d *DeletedSections) Pop(h diffpane.ViewHost, view diffpane.ViewID, action diffpane.EditAction, startLine int) {
	n := len(d.sections)
	if n == 0 {
		d.addSkip(view, startLine)
		return
	}

	last := &d.sections[n-1]

	if last.restore != action {
		if d.clock.Now().Before(d.lastPush.Add(d.window)) {
			last.lineReplace = true
		} else {
			d.addSkip(view, startLine)
		}
		return
	}

	if last.startLine != startLine {
		return
	}

	count := len(last.markers)
	h.ClearIndicators(view, last.startLine, count)

	for i, m := range last.markers {
		h.ClearMarkers(view, last.startLine+i)
		if m != 0 {
			h.AddMarkers(view, last.startLine+i, m)
		}
	}

	d.sections = d.sections[:n-1]
}

func (d *DeletedSections) addSkip(view diffpane.ViewID, line int) {
	d.skipPush++
	if d.skipPush > skipDriftLimit {
		d.logger.Warn("marker history skip counter drifting", "view", view, "line", line, "skip", d.skipPush)
		return
	}
	d.logger.Debug("marker history pop unmatched", "view", view, "line", line, "skip", d.skipPush)
}

// Clear drops all recorded sections.
func (d *DeletedSections) Clear() {
	d.skipPush = 0
	d.sections = nil
}

// Len returns the number of recorded sections.
func (d *DeletedSections) Len() int {
	return len(d.sections)
}

// SkipPush returns the number of upcoming pushes that will be ignored.
func (d *DeletedSections) SkipPush() int {
	return d.skipPush
}
