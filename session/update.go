package session

import (
	"github.com/fwojciec/diffpane"
)

const recompareProgress = "Re-comparing changes..."

// modifiedHistory keeps the marker history of buf in step with an edit.
func (s *Session) modifiedHistory(buf diffpane.BufferID, mod diffpane.Modification) {
	pair := s.registry.ByBuffer(buf)
	if pair == nil {
		return
	}
	view, ok := s.host.ViewOf(buf)
	if !ok {
		return
	}
	f := pair.FileByBuffer(buf)

	defer s.guard()()

	switch {
	case mod.Type == diffpane.ModBeforeDelete && mod.EndLine > mod.Line:
		f.History.Push(s.host, view, mod.Action, mod.Line, mod.EndLine)
	case mod.Type == diffpane.ModInsertText && mod.LinesAdded > 0:
		f.History.Pop(s.host, view, mod.Action, mod.Line)
	}
}

// modifiedUpdate coalesces an edit of buf into the pending windowed update.
func (s *Session) modifiedUpdate(buf diffpane.BufferID, mod diffpane.Modification) {
	if s.registry.ByBuffer(buf) == nil {
		return
	}
	view, ok := s.host.ViewOf(buf)
	if !ok {
		return
	}

	var next updateAction
	a, pending := s.sched.pending(kindUpdate)
	if pending {
		next = a.(updateAction)
		if next.full {
			return
		}
	}

	switch mod.Type {
	case diffpane.ModBeforeDelete:
		// Lines about to merge must not carry their markers into the survivor.
		if mod.EndLine > mod.Line {
			unlock := s.guard()
			clearMarks(s.host, view, mod.Line, mod.EndLine-mod.Line+1)
			unlock()
		}
		return
	case diffpane.ModInsertText, diffpane.ModDeleteText:
	default:
		return
	}

	s.sched.cancel(kindAlign)

	switch {
	case !pending:
		next = updateAction{view: view, line: mod.Line, end: mod.Line}
	case next.view != view, mod.Line < next.line-1, mod.Line > next.end+1:
		// Edits in both views or apart from each other cannot share one window.
		next = updateAction{full: true}
		s.sched.post(next, updateDelay)
		return
	}

	next.line = min(next.line, mod.Line)
	next.end = max(next.end+mod.LinesAdded, mod.Line+max(mod.LinesAdded, 0), next.line)
	if mod.LinesAdded > 0 {
		next.added += mod.LinesAdded
	} else {
		next.deleted -= mod.LinesAdded
	}

	s.sched.post(next, updateDelay)
}

func (s *Session) fireUpdate(a updateAction) {
	if a.full {
		pair := s.registry.ByBuffer(s.host.CurrentBuffer())
		if pair == nil {
			return
		}
		if _, err := s.recompare(pair); err != nil {
			s.logger.Debug("full update failed", "error", err)
		}
		return
	}

	pair := s.registry.ByDoc(s.host.Doc(a.view))
	if pair == nil {
		return
	}

	req, window := s.updateWindow(pair, a)

	unlock := s.guard()
	if a.added == 0 && a.deleted == 0 {
		clearMarks(s.host, a.view, a.line, 1)
		clearMarks(s.host, a.view.Other(), window.Off, window.Len)
	} else {
		clearMarksAndBlanks(s.host, diffpane.MainView, req.Main.Off, req.Main.Len)
		clearMarksAndBlanks(s.host, diffpane.SubView, req.Sub.Off, req.Sub.Len)
	}
	unlock()

	s.logger.Debug("windowed update", "view", a.view, "main", req.Main, "sub", req.Sub)

	result, fresh, err := s.comparer.Compare(s.ctx, req)
	if err != nil || result == diffpane.CompareError {
		s.logger.Error("windowed update failed", "error", err)
		s.clearPair(pair)
		return
	}

	delta := a.added - a.deleted
	mainDelta, subDelta := delta, 0
	if a.view == diffpane.SubView {
		mainDelta, subDelta = 0, delta
	}
	pair.Alignment = spliceAlignment(pair.Alignment, fresh, req.Main, req.Sub, mainDelta, subDelta)

	pair.FileByView(s.host, diffpane.MainView).History.Clear()
	pair.FileByView(s.host, diffpane.SubView).History.Clear()

	s.sched.post(alignAction{}, alignDelay)
}

// updateWindow computes the sections to re-diff after the edits in a. The
// window on the unedited side reaches out from the mapped change line to
// the nearest unmarked line in each direction; the edited side covers the
// same span shifted by the net line delta. The returned section is the
// unedited side's window.
func (s *Session) updateWindow(pair *ComparedPair, a updateAction) (diffpane.CompareRequest, diffpane.Section) {
	edited, other := a.view, a.view.Other()

	var editedSec, otherSec diffpane.Section

	if a.added == 0 && a.deleted == 0 {
		otherLine := mapLine(pair.Alignment, edited, a.line)
		otherLine = min(otherLine, max(s.host.LineCount(other)-1, 0))
		editedSec = diffpane.Section{Off: a.line, Len: 1}
		otherSec = diffpane.Section{Off: otherLine, Len: 1}
	} else {
		first := prevUnmarkedLine(s.host, other, max(mapLine(pair.Alignment, edited, a.line)-1, 0))
		last := nextUnmarkedLine(s.host, other, mapLine(pair.Alignment, edited, a.line+a.deleted)+1)
		otherSec = diffpane.Section{Off: first, Len: last - first + 1}

		editedFirst := mapLine(pair.Alignment, other, first)
		editedLast := mapLine(pair.Alignment, other, last) + a.added - a.deleted
		editedLast = min(editedLast, s.host.LineCount(edited)-1)
		editedFirst = min(editedFirst, a.line)
		editedLast = max(editedLast, min(a.line+a.added, s.host.LineCount(edited)-1))
		editedSec = diffpane.Section{Off: editedFirst, Len: max(editedLast-editedFirst+1, 1)}
	}

	req := diffpane.CompareRequest{
		OldView:  pair.Old().view(s.host),
		Options:  pair.Options,
		Progress: recompareProgress,
	}
	if edited == diffpane.MainView {
		req.Main, req.Sub = editedSec, otherSec
	} else {
		req.Main, req.Sub = otherSec, editedSec
	}
	return req, otherSec
}
