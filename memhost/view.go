package memhost

import "github.com/fwojciec/diffpane"

func (h *Host) viewLine(view diffpane.ViewID, n int) *line {
	b := h.viewBuffer(view)
	if b == nil {
		return nil
	}
	return b.lineAt(n)
}

// LineCount returns the number of lines in view.
func (h *Host) LineCount(view diffpane.ViewID) int {
	if b := h.viewBuffer(view); b != nil {
		return len(b.lines)
	}
	return 0
}

// LineText returns the text of a line in view.
func (h *Host) LineText(view diffpane.ViewID, n int) string {
	if l := h.viewLine(view, n); l != nil {
		return l.text
	}
	return ""
}

// Markers returns the markers of a line in view.
func (h *Host) Markers(view diffpane.ViewID, n int) diffpane.Marker {
	if l := h.viewLine(view, n); l != nil {
		return l.markers
	}
	return 0
}

// AddMarkers sets marker bits on a line in view.
func (h *Host) AddMarkers(view diffpane.ViewID, n int, m diffpane.Marker) {
	if l := h.viewLine(view, n); l != nil {
		l.markers |= m
	}
}

// ClearMarkers removes all markers from a line in view.
func (h *Host) ClearMarkers(view diffpane.ViewID, n int) {
	if l := h.viewLine(view, n); l != nil {
		l.markers = 0
	}
}

// AddIndicator highlights bytes [start, end) of a line in view.
func (h *Host) AddIndicator(view diffpane.ViewID, n, start, end int) {
	if l := h.viewLine(view, n); l != nil && end > start {
		l.indicators = append(l.indicators, [2]int{start, end})
	}
}

// Indicators returns the highlighted byte ranges of a line in view.
func (h *Host) Indicators(view diffpane.ViewID, n int) [][2]int {
	if l := h.viewLine(view, n); l != nil {
		return l.indicators
	}
	return nil
}

// ClearIndicators removes highlights from count lines starting at n.
func (h *Host) ClearIndicators(view diffpane.ViewID, n, count int) {
	for i := n; i < n+count; i++ {
		if l := h.viewLine(view, i); l != nil {
			l.indicators = nil
		}
	}
}

// Padding returns the blank rows shown above a line.
func (h *Host) Padding(view diffpane.ViewID, n int) int {
	if l := h.viewLine(view, n); l != nil {
		return l.padding
	}
	return 0
}

// SetPadding sets the blank rows shown above a line.
func (h *Host) SetPadding(view diffpane.ViewID, n, rows int) {
	if l := h.viewLine(view, n); l != nil {
		l.padding = max(rows, 0)
	}
}

// Fold hides lines first+1 through last under the header line first.
func (h *Host) Fold(view diffpane.ViewID, first, last int) {
	for i := first + 1; i <= last; i++ {
		if l := h.viewLine(view, i); l != nil {
			l.hidden = true
		}
	}
}

// ExpandAllFolds shows every hidden line of view.
func (h *Host) ExpandAllFolds(view diffpane.ViewID) {
	b := h.viewBuffer(view)
	if b == nil {
		return
	}
	for _, l := range b.lines {
		l.hidden = false
	}
}

// VisibleFromDocLine returns the display row of a document line. A hidden
// line maps to the row of the last visible line before it.
func (h *Host) VisibleFromDocLine(view diffpane.ViewID, n int) int {
	b := h.viewBuffer(view)
	if b == nil {
		return 0
	}
	row := 0
	for i, l := range b.lines {
		if l.hidden {
			if i == n {
				return max(row-1, 0)
			}
			continue
		}
		if i == n {
			return row + l.padding
		}
		row += l.padding + 1
	}
	return row
}

// DocLineFromVisible returns the document line displayed at row. Padding
// rows resolve to the line below them.
func (h *Host) DocLineFromVisible(view diffpane.ViewID, row int) int {
	b := h.viewBuffer(view)
	if b == nil {
		return 0
	}
	cur := 0
	last := 0
	for i, l := range b.lines {
		if l.hidden {
			continue
		}
		last = i
		cur += l.padding
		if row <= cur {
			return i
		}
		cur++
	}
	return last
}

// Rows returns the total number of display rows of view.
func (h *Host) Rows(view diffpane.ViewID) int {
	n := h.LineCount(view)
	if n == 0 {
		return 0
	}
	return h.VisibleFromDocLine(view, n-1) + 1
}

// FirstVisibleLine returns the first display row on screen.
func (h *Host) FirstVisibleLine(view diffpane.ViewID) int {
	return h.pane(view).firstRow
}

// SetFirstVisibleLine scrolls view so row is at the top.
func (h *Host) SetFirstVisibleLine(view diffpane.ViewID, row int) {
	p := h.pane(view)
	row = clamp(row, 0, max(h.Rows(view)-1, 0))
	if row == p.firstRow {
		return
	}
	p.firstRow = row
	if h.listener != nil {
		h.listener.OnScrolled(view)
	}
}

// LinesOnScreen returns the number of rows view shows.
func (h *Host) LinesOnScreen(view diffpane.ViewID) int {
	return h.pane(view).screenLines
}

// SetLinesOnScreen resizes view.
func (h *Host) SetLinesOnScreen(view diffpane.ViewID, n int) {
	h.pane(view).screenLines = max(n, 1)
}

// Zoom returns the zoom level of view.
func (h *Host) Zoom(view diffpane.ViewID) int {
	return h.pane(view).zoom
}

// SetZoom changes the zoom level of view.
func (h *Host) SetZoom(view diffpane.ViewID, zoom int) {
	p := h.pane(view)
	if p.zoom == zoom {
		return
	}
	p.zoom = zoom
	if h.listener != nil {
		h.listener.OnZoom(view)
	}
}

// CaretLine returns the caret line of view.
func (h *Host) CaretLine(view diffpane.ViewID) int {
	return h.pane(view).caret
}

// GotoLine moves the caret to n and centers it on screen.
func (h *Host) GotoLine(view diffpane.ViewID, n int) {
	p := h.pane(view)
	p.caret = clamp(n, 0, max(h.LineCount(view)-1, 0))
	h.SetFirstVisibleLine(view, h.VisibleFromDocLine(view, p.caret)-p.screenLines/2)
}

// SetSelection selects lines first through last of view.
func (h *Host) SetSelection(view diffpane.ViewID, first, last int) {
	if last < first {
		first, last = last, first
	}
	h.pane(view).selection = &diffpane.LineRange{First: first, Last: last}
}

// Selection returns the selected lines of view.
func (h *Host) Selection(view diffpane.ViewID) (diffpane.LineRange, bool) {
	sel := h.pane(view).selection
	if sel == nil {
		return diffpane.LineRange{}, false
	}
	return *sel, true
}

// ClearSelection removes the selection of view.
func (h *Host) ClearSelection(view diffpane.ViewID) {
	h.pane(view).selection = nil
}

// SetCompareView switches compare styling of view.
func (h *Host) SetCompareView(view diffpane.ViewID, on bool) {
	h.pane(view).compareView = on
}

// IsCompareView reports whether view has compare styling.
func (h *Host) IsCompareView(view diffpane.ViewID) bool {
	return h.pane(view).compareView
}

// Active returns the buffer shown in view, NoBuffer for an empty pane.
func (h *Host) Active(view diffpane.ViewID) diffpane.BufferID {
	if b := h.viewBuffer(view); b != nil {
		return b.id
	}
	return diffpane.NoBuffer
}

// IsHidden reports whether a line of view is folded away.
func (h *Host) IsHidden(view diffpane.ViewID, n int) bool {
	l := h.viewLine(view, n)
	return l != nil && l.hidden
}

// SetCaret moves the caret to n, scrolling only as far as needed to keep it
// on screen.
func (h *Host) SetCaret(view diffpane.ViewID, n int) {
	p := h.pane(view)
	p.caret = clamp(n, 0, max(h.LineCount(view)-1, 0))
	row := h.VisibleFromDocLine(view, p.caret)
	switch {
	case row < p.firstRow:
		h.SetFirstVisibleLine(view, row-h.Padding(view, p.caret))
	case row >= p.firstRow+p.screenLines:
		h.SetFirstVisibleLine(view, row-p.screenLines+1)
	}
}
