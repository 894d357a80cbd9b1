package session

import (
	"github.com/fwojciec/diffpane"
)

const outdatedMark = " - Outdated"

// OnBufferActivated handles a buffer switch.
func (s *Session) OnBufferActivated(buf diffpane.BufferID) {
	if s.registry.Len() == 0 || s.lock > 0 || s.sched.isPending(kindClose) {
		return
	}
	s.bufferActivated(buf)
}

// OnBeforeClose handles a buffer about to be closed.
func (s *Session) OnBeforeClose(buf diffpane.BufferID) {
	if s.pending != nil && s.pending.pair.Files[0].Buffer == buf {
		s.resetNewCompare()
		return
	}
	if s.registry.Len() == 0 || s.lock > 0 {
		return
	}
	s.beforeClose(buf)
}

// OnSaved handles a buffer save.
func (s *Session) OnSaved(buf diffpane.BufferID) {
	if s.registry.Len() == 0 || s.lock > 0 {
		return
	}
	s.saved(buf)
}

// OnModified routes edits of compared buffers to the incremental re-diff
// when UpdateOnChange is set and to the marker history otherwise.
func (s *Session) OnModified(buf diffpane.BufferID, mod diffpane.Modification) {
	if !s.compareMode || s.lock > 0 {
		return
	}
	if s.settings.UpdateOnChange {
		s.modifiedUpdate(buf, mod)
		return
	}
	s.modifiedHistory(buf, mod)
}

// OnPainted schedules an alignment check.
func (s *Session) OnPainted() {
	if !s.compareMode || s.lock > 0 || s.busy() {
		return
	}
	s.sched.post(alignAction{}, alignDelay)
}

// OnScrolled mirrors the scroll position of view to the other view.
func (s *Session) OnScrolled(view diffpane.ViewID) {
	if !s.compareMode || s.lock > 0 || s.storedLocation != nil || s.goToFirst || s.busy() {
		return
	}
	if s.registry.ByDoc(s.host.Doc(view)) == nil {
		return
	}
	defer s.guard()()
	s.syncViews(view)
}

// OnZoom mirrors the zoom level of the focused view to the other view.
func (s *Session) OnZoom(diffpane.ViewID) {
	if !s.compareMode || s.lock > 0 {
		return
	}
	if s.registry.ByBuffer(s.host.CurrentBuffer()) == nil {
		return
	}
	defer s.guard()()
	view := s.host.CurrentView()
	s.host.SetZoom(view.Other(), s.host.Zoom(view))
}

// OnMinimized suspends scroll sync while the window is hidden. A restore
// still waiting to lower the guard is dropped and the guard stays up.
func (s *Session) OnMinimized() {
	if s.sched.isPending(kindRestore) {
		s.sched.cancel(kindRestore)
		return
	}
	if s.lock > 0 {
		return
	}
	s.sched.cancel(kindAlign)
	s.lock++
}

// OnRestored resumes after OnMinimized.
func (s *Session) OnRestored() {
	if s.lock == 0 {
		return
	}
	s.sched.post(restoreAction{}, restoreDelay)
}

// OnBeforeShutdown clears every compare.
func (s *Session) OnBeforeShutdown() {
	s.ClearAll()
}

// busy reports whether activation, close or update processing is pending.
func (s *Session) busy() bool {
	return s.sched.isPending(kindActivate) || s.sched.isPending(kindClose) || s.sched.isPending(kindUpdate)
}

func (s *Session) bufferActivated(buf diffpane.BufferID) {
	s.sched.cancel(kindAlign)
	s.sched.cancel(kindActivate)

	if s.registry.ByBuffer(buf) == nil {
		s.setNormalMode()
		s.host.SetCompareView(s.host.CurrentView(), false)
		s.resetCompareView(s.host.CurrentView().Other())
		return
	}

	s.sched.post(activateAction{buf: buf}, activateDelay)
}

func (s *Session) setNormalMode() {
	s.compareMode = false
}

// resetCompareView restores compare styling of view if it shows a compared buffer.
func (s *Session) resetCompareView(view diffpane.ViewID) {
	if s.registry.ByDoc(s.host.Doc(view)) != nil {
		s.host.SetCompareView(view, true)
	}
}

func (s *Session) fireActivate(a activateAction) {
	pair := s.registry.ByBuffer(a.buf)
	if pair == nil {
		return
	}

	other := pair.OtherFile(a.buf)

	if s.host.Doc(s.host.CurrentView().Other()) != other.Doc {
		unlock := s.guard()
		s.host.ActivateBuffer(other.Buffer)
		s.host.ActivateBuffer(a.buf)
		unlock()
	}

	s.comparedFileActivated()
}

func (s *Session) comparedFileActivated() {
	s.compareMode = true

	s.host.SetCompareView(diffpane.MainView, true)
	s.host.SetCompareView(diffpane.SubView, true)

	s.storedLocation = storeLocation(s.host, s.host.CurrentView())

	s.sched.post(alignAction{}, alignDelay)
}

func (s *Session) fireAlign() {
	pair := s.registry.ByBuffer(s.host.CurrentBuffer())
	if pair == nil || len(pair.Alignment) == 0 {
		return
	}

	realign := s.goToFirst ||
		isAlignmentNeeded(s.host, diffpane.MainView, pair.Alignment) ||
		isAlignmentNeeded(s.host, diffpane.SubView, pair.Alignment)

	defer s.guard()()

	if realign {
		s.logger.Debug("aligning diffs", "records", len(pair.Alignment))

		if s.storedLocation == nil && !s.goToFirst {
			s.storedLocation = storeLocation(s.host, s.host.CurrentView())
		}
		alignDiffs(s.host, pair.Alignment)
	}

	switch {
	case s.goToFirst:
		s.goToFirst = false
		if view, ok := s.jumpToFirstChange(); ok {
			s.syncViews(view)
		}
		s.host.SetStatus(pair.status())
	case s.storedLocation != nil:
		loc := s.storedLocation
		s.storedLocation = nil
		loc.restore(s.host)
		s.syncViews(loc.view)
		s.host.SetStatus(pair.status())
	}
}

// syncViews scrolls the other view to the first visible row of bias.
func (s *Session) syncViews(bias diffpane.ViewID) {
	other := bias.Other()
	row := s.host.FirstVisibleLine(bias)

	if row != s.host.FirstVisibleLine(other) {
		defer s.guard()()
		s.host.SetFirstVisibleLine(other, row)
	}

	s.host.RefreshNavigation()
}

func (s *Session) beforeClose(buf diffpane.BufferID) {
	pair := s.registry.ByBuffer(buf)
	if pair == nil {
		return
	}

	s.sched.cancel(kindAlign)
	s.sched.cancel(kindUpdate)
	s.sched.cancel(kindActivate)

	closed := closeAction{bufs: []diffpane.BufferID{buf}}
	if a, ok := s.sched.pending(kindClose); ok {
		closed.bufs = append(a.(closeAction).bufs, buf)
	}
	s.sched.cancel(kindClose)

	current := s.host.CurrentBuffer()

	unlock := s.guard()

	closedFile := pair.FileByBuffer(buf)
	closedFile.onBeforeClose(s.host)

	if pair.RelativePos != 0 && closedFile.HomeView == closedFile.view(s.host) {
		other := pair.OtherFile(buf)
		other.HomeIndex = s.host.TabIndex(buf) + pair.RelativePos
		if pair.RelativePos > 0 {
			other.HomeIndex--
		} else {
			other.HomeIndex++
		}
		other.HomeIndex = max(other.HomeIndex, 0)
	}

	if current != buf {
		s.host.ActivateBuffer(current)
	}

	unlock()

	s.sched.post(closed, closeDelay)
}

func (s *Session) fireClose(a closeAction) {
	current := s.host.CurrentBuffer()

	unlock := s.guard()
	defer unlock()

	for i := len(a.bufs) - 1; i >= 0; i-- {
		pair := s.registry.ByBuffer(a.bufs[i])
		if pair == nil {
			continue
		}

		closedFile := pair.FileByBuffer(a.bufs[i])
		otherFile := pair.OtherFile(a.bufs[i])

		if closedFile.Temp != diffpane.TempNone {
			s.closeOrCleanup(closedFile)
		}

		if otherFile.Temp != diffpane.TempNone {
			s.closeOrCleanup(otherFile)
		} else if otherFile.isOpen(s.host) {
			s.logIfErr(otherFile.restore(s.host, s.store), "restoring file")
		}

		s.registry.Remove(pair)
	}

	s.host.ActivateBuffer(current)
	current = s.host.CurrentBuffer()
	s.bufferActivated(current)

	// A single remaining file belongs in the main view.
	if s.host.TabCount(diffpane.MainView)+s.host.TabCount(diffpane.SubView) == 1 &&
		s.host.CurrentView() == diffpane.SubView {
		placeholder := s.host.NewBuffer()
		s.host.ActivateBuffer(current)
		s.host.MoveToOtherView()
		s.host.ActivateBuffer(placeholder)
		s.host.CloseCurrent()
	}
}

func (s *Session) closeOrCleanup(f *ComparedFile) {
	if f.isOpen(s.host) {
		s.logIfErr(f.close(s.host, s.store), "closing temp file")
		return
	}
	s.logIfErr(f.onClose(s.store), "removing temp file")
}

func (s *Session) saved(buf diffpane.BufferID) {
	pair := s.registry.ByBuffer(buf)
	if pair == nil {
		return
	}

	other := pair.OtherFile(buf)
	current := s.host.CurrentBuffer()
	pairIsActive := current == buf || current == other.Buffer

	unlock := s.guard()

	if !pairIsActive {
		s.host.ActivateBuffer(buf)
	}

	if pairIsActive && s.settings.RecompareOnSave {
		s.sched.cancel(kindAlign)
		s.sched.cancel(kindUpdate)
		s.sched.post(updateAction{full: true}, saveDelay)
	}

	if other.Temp == diffpane.TempLastSaved {
		s.host.HideTabBar(true)
		s.host.SetTabLabel(other.Buffer, s.host.TabLabel(other.Buffer)+outdatedMark)
		s.host.HideTabBar(false)
	}

	unlock()

	if !pairIsActive {
		s.host.ActivateBuffer(current)
		s.bufferActivated(current)
	}
}

func (s *Session) fireRestore() {
	if s.lock > 0 {
		s.lock--
	}
	s.host.RefreshNavigation()
}

func (s *Session) logIfErr(err error, msg string) {
	if err != nil {
		s.logger.Error(msg, "error", err)
	}
}
