package session

import "github.com/fwojciec/diffpane"

// clearMarks removes line markers and change highlights from count lines.
func clearMarks(h diffpane.ViewHost, view diffpane.ViewID, line, count int) {
	h.ClearIndicators(view, line, count)
	for i := line; i < line+count; i++ {
		h.ClearMarkers(view, i)
	}
}

// clearMarksAndBlanks also removes padding. A zero count means to the end.
func clearMarksAndBlanks(h diffpane.ViewHost, view diffpane.ViewID, line, count int) {
	total := h.LineCount(view)
	if count <= 0 || line+count > total {
		count = total - line
	}
	if count <= 0 {
		return
	}
	clearMarks(h, view, line, count)
	for i := line; i < line+count; i++ {
		h.SetPadding(view, i, 0)
	}
}

func clearWindow(h diffpane.ViewHost, view diffpane.ViewID) {
	clearMarksAndBlanks(h, view, 0, 0)
}

func isMarked(h diffpane.ViewHost, view diffpane.ViewID, line int) bool {
	return h.Markers(view, line)&diffpane.MarkerMaskLine != 0
}

// prevUnmarkedLine returns the nearest line at or before line carrying no
// diff markers, or 0.
func prevUnmarkedLine(h diffpane.ViewHost, view diffpane.ViewID, line int) int {
	for ; line > 0; line-- {
		if !isMarked(h, view, line) {
			return line
		}
	}
	return 0
}

// nextUnmarkedLine returns the nearest line at or after line carrying no
// diff markers, or the last line.
func nextUnmarkedLine(h diffpane.ViewHost, view diffpane.ViewID, line int) int {
	last := h.LineCount(view) - 1
	for ; line < last; line++ {
		if !isMarked(h, view, line) {
			return line
		}
	}
	return max(last, 0)
}

// viewLocation remembers the scroll position of a view by document line so
// it survives padding changes.
type viewLocation struct {
	view   diffpane.ViewID
	line   int // first visible document line
	offset int // padding rows of line scrolled out of view
}

func storeLocation(h diffpane.ViewHost, view diffpane.ViewID) *viewLocation {
	row := h.FirstVisibleLine(view)
	line := h.DocLineFromVisible(view, row)
	return &viewLocation{
		view:   view,
		line:   line,
		offset: max(row-(h.VisibleFromDocLine(view, line)-h.Padding(view, line)), 0),
	}
}

func (l *viewLocation) restore(h diffpane.ViewHost) {
	pad := h.Padding(l.view, l.line)
	h.SetFirstVisibleLine(l.view, h.VisibleFromDocLine(l.view, l.line)-pad+min(l.offset, pad))
}
