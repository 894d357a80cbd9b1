package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fwojciec/diffpane"
)

// User notices.
const (
	msgAlreadyCompared = "File \"%s\" is already compared - operation ignored."
	msgNoSelection     = "No selected lines to compare - operation ignored."
	msgOneFile         = "Only one file opened - operation ignored."
	msgNotOnDisk       = "File is not written to disk - operation ignored."
	msgTempFailed      = "Creating temp file failed - operation aborted."
	msgNoFetcher       = "No %s reference available - operation ignored."
	msgNoReference     = "File \"%s\" has no %s revision - operation ignored."
	msgCompareFailed   = "Comparing \"%s\" and \"%s\" failed - compare cleared."
	msgEncodings       = "Trying to compare files with different encodings - \nthe result might be inaccurate and misleading.\n\nCompare anyway?"

	msgMatch          = "%s \"%s\" and \"%s\" match."
	msgTempClosed     = "\n\nTemp file will be closed."
	msgCloseOnMatch   = "\n\nClose compared files?"
	msgNotModified    = "File \"%s\" has not been modified since last Save."
	msgNoChanges      = "File \"%s\" has no changes against %s."
	firstOldTabMark   = " ** Old to Compare"
	firstNewTabMark   = " ** New to Compare"
	compareProgress   = "Comparing..."
	selectedLinesWhat = "Selected lines in files"
	filesWhat         = "Files"
)

// SetFirst marks the current buffer as the first file of the next compare.
// Setting the pending first file again clears the mark.
func (s *Session) SetFirst() error {
	buf := s.host.CurrentBuffer()

	if s.pending != nil {
		same := s.pending.pair.Files[0].Buffer == buf
		s.resetNewCompare()
		if same {
			return nil
		}
	}

	if err := s.checkNotCompared(buf); err != nil {
		return err
	}

	role := diffpane.RoleOld
	if !s.settings.OldFileIsFirst {
		role = diffpane.RoleNew
	}
	s.setFirst(role)
	return nil
}

// Compare compares the pending first file, or the file in the other view
// (the adjacent tab in single view), with the current buffer. Comparing an
// already compared buffer re-compares its pair.
func (s *Session) Compare(ctx context.Context) (diffpane.CompareResult, error) {
	return s.compare(ctx, diffpane.ScopeFull)
}

// CompareSelection compares the lines selected in both views.
func (s *Session) CompareSelection(ctx context.Context) (diffpane.CompareResult, error) {
	return s.compare(ctx, diffpane.ScopeSelection)
}

// LastSaveDiff compares the current buffer with its content on disk.
func (s *Session) LastSaveDiff(ctx context.Context) (diffpane.CompareResult, error) {
	buf := s.host.CurrentBuffer()
	path := s.host.Path(buf)
	if path == "" || s.store == nil || !s.store.Exists(path) {
		s.notify(msgNotOnDisk)
		return diffpane.CompareError, fmt.Errorf("last save diff: %w", diffpane.ErrOperationIgnored)
	}

	content, err := s.store.ReadFile(path)
	if err != nil {
		s.notify(msgTempFailed)
		return diffpane.CompareError, fmt.Errorf("reading %s: %w: %w", path, diffpane.ErrTempFileCreation, err)
	}
	return s.tempCompare(ctx, diffpane.TempLastSaved, path, content)
}

// VCSDiff compares the current buffer with the revision the fetcher of kind
// returns.
func (s *Session) VCSDiff(ctx context.Context, kind diffpane.TempKind) (diffpane.CompareResult, error) {
	buf := s.host.CurrentBuffer()
	path := s.host.Path(buf)
	if path == "" || s.store == nil || !s.store.Exists(path) {
		s.notify(msgNotOnDisk)
		return diffpane.CompareError, fmt.Errorf("vcs diff: %w", diffpane.ErrOperationIgnored)
	}

	fetcher, ok := s.fetchers[kind]
	if !ok {
		s.notify(fmt.Sprintf(msgNoFetcher, kind.Source()))
		return diffpane.CompareError, fmt.Errorf("vcs diff: no fetcher for %s: %w", kind.Source(), diffpane.ErrOperationIgnored)
	}

	content, err := fetcher.Fetch(ctx, path)
	if errors.Is(err, diffpane.ErrNoReference) {
		s.notify(fmt.Sprintf(msgNoReference, filepath.Base(path), kind.Source()))
		return diffpane.CompareError, fmt.Errorf("vcs diff: %w: %w", diffpane.ErrOperationIgnored, err)
	}
	if err != nil {
		s.notify(msgTempFailed)
		return diffpane.CompareError, fmt.Errorf("fetching %s: %w: %w", path, diffpane.ErrTempFileCreation, err)
	}
	return s.tempCompare(ctx, kind, path, content)
}

// ClearActive clears the pair of the current buffer.
func (s *Session) ClearActive() {
	s.resetNewCompare()

	pair := s.registry.ByBuffer(s.host.CurrentBuffer())
	if pair == nil {
		return
	}
	s.clearPair(pair)
}

// ClearAll clears every pair and returns the files to their home positions.
func (s *Session) ClearAll() {
	s.resetNewCompare()

	if s.registry.Len() == 0 {
		return
	}

	s.sched.cancel(kindAlign)
	s.sched.cancel(kindActivate)
	s.sched.cancel(kindUpdate)
	s.sched.cancel(kindClose)

	unlock := s.guard()
	defer unlock()

	current := s.host.CurrentBuffer()
	other := diffpane.NoBuffer
	if !s.host.IsSingleView() {
		s.host.SwitchToOtherView()
		other = s.host.CurrentBuffer()
	}

	pairs := s.registry.All()
	for i := len(pairs) - 1; i >= 0; i-- {
		s.logIfErr(pairs[i].restoreFiles(s.host, s.store, diffpane.NoBuffer), "restoring files")
	}
	s.registry.Clear()

	s.setNormalMode()
	s.storedLocation = nil
	s.goToFirst = false
	s.host.SetCompareView(diffpane.MainView, false)
	s.host.SetCompareView(diffpane.SubView, false)

	for _, buf := range []diffpane.BufferID{other, current} {
		if _, ok := s.host.ViewOf(buf); ok {
			s.host.ActivateBuffer(buf)
		}
	}
}

func (s *Session) compare(ctx context.Context, scope diffpane.Scope) (diffpane.CompareResult, error) {
	current := s.host.CurrentBuffer()

	if pair := s.registry.ByBuffer(current); pair != nil {
		s.resetNewCompare()
		if scope == diffpane.ScopeSelection {
			sel, err := s.selections()
			if err != nil {
				return diffpane.CompareError, err
			}
			pair.Selections = sel
		}
		pair.Scope = scope
		return s.run(ctx, pair, true)
	}

	var sel [2]diffpane.LineRange
	if scope == diffpane.ScopeSelection {
		var err error
		if sel, err = s.selections(); err != nil {
			return diffpane.CompareError, err
		}
	}

	pair, err := s.newPair(sel)
	if err != nil {
		return diffpane.CompareError, err
	}
	pair.Scope = scope
	return s.run(ctx, pair, false)
}

// selections returns the selected line ranges of both views.
func (s *Session) selections() ([2]diffpane.LineRange, error) {
	var sel [2]diffpane.LineRange
	for _, view := range []diffpane.ViewID{diffpane.MainView, diffpane.SubView} {
		r, ok := s.host.Selection(view)
		if !ok || r.Last < r.First {
			s.notify(msgNoSelection)
			return sel, fmt.Errorf("no selection in %s view: %w", view, diffpane.ErrOperationIgnored)
		}
		sel[view] = r
	}
	return sel, nil
}

// newPair completes the pending compare with the current buffer, picking a
// first file when none is pending, and moves the files into their compare
// views. sel holds selections by the view the files are in now.
func (s *Session) newPair(sel [2]diffpane.LineRange) (*ComparedPair, error) {
	current := s.host.CurrentBuffer()

	if s.pending != nil && s.pending.pair.Files[0].Buffer == current {
		s.resetNewCompare()
	}

	if err := s.checkNotCompared(current); err != nil {
		s.resetNewCompare()
		return nil, err
	}

	if s.pending == nil {
		if err := s.pickFirst(); err != nil {
			return nil, err
		}
	}

	nc := s.pending
	s.resetNewCompare()

	pair := nc.pair
	first := pair.Files[0]

	second := &ComparedFile{Temp: nc.tempKind}
	role := diffpane.RoleNew
	if first.Role == diffpane.RoleNew {
		role = diffpane.RoleOld
	}
	second.initFromCurrent(s.host, role)
	second.History = s.newHistory()
	pair.Files[1] = second

	if s.settings.EncodingsCheck &&
		s.host.Encoding(first.Buffer) != s.host.Encoding(second.Buffer) &&
		!s.prompter.Confirm(msgEncodings) {
		return nil, fmt.Errorf("comparing %s and %s: %w",
			s.host.Encoding(first.Buffer), s.host.Encoding(second.Buffer), diffpane.ErrEncodingMismatch)
	}

	var selByBuf [2]diffpane.LineRange
	for i, f := range pair.Files {
		selByBuf[i] = sel[f.view(s.host)]
	}

	unlock := s.guard()
	pair.positionFiles(s.host, s.settings.OldFileView)
	unlock()

	for i, f := range pair.Files {
		pair.Selections[f.view(s.host)] = selByBuf[i]
	}

	return pair, nil
}

// pickFirst sets the buffer in the other view, or the adjacent tab in single
// view, as the pending first file.
func (s *Session) pickFirst() error {
	current := s.host.CurrentBuffer()

	single := s.host.IsSingleView()
	if single && s.host.TabCount(s.host.CurrentView()) < 2 {
		s.notify(msgOneFile)
		return fmt.Errorf("compare: %w", diffpane.ErrOperationIgnored)
	}

	unlock := s.guard()
	defer unlock()

	switch {
	case !single:
		s.host.SwitchToOtherView()
	case s.settings.CompareToPrev:
		s.host.PrevTab()
	default:
		s.host.NextTab()
	}

	err := s.checkNotCompared(s.host.CurrentBuffer())
	if err == nil {
		role := diffpane.RoleOld
		if !s.settings.OldFileIsFirst {
			role = diffpane.RoleNew
		}
		s.setFirst(role)
		s.host.SetTabLabel(s.host.CurrentBuffer(), s.pending.label)
	}

	s.host.ActivateBuffer(current)
	return err
}

func (s *Session) setFirst(role diffpane.Role) {
	f := &ComparedFile{}
	f.initFromCurrent(s.host, role)
	f.History = s.newHistory()

	label := s.host.TabLabel(f.Buffer)
	mark := firstOldTabMark
	if role == diffpane.RoleNew {
		mark = firstNewTabMark
	}
	s.host.SetTabLabel(f.Buffer, label+mark)

	s.pending = &newCompare{
		pair:  &ComparedPair{Files: [2]*ComparedFile{f, nil}},
		label: label,
	}
}

// resetNewCompare drops the pending first file and restores its tab label.
func (s *Session) resetNewCompare() {
	if s.pending == nil {
		return
	}
	buf := s.pending.pair.Files[0].Buffer
	if _, ok := s.host.ViewOf(buf); ok {
		s.host.SetTabLabel(buf, s.pending.label)
	}
	s.pending = nil
}

func (s *Session) checkNotCompared(buf diffpane.BufferID) error {
	if s.registry.ByBuffer(buf) == nil {
		return nil
	}
	s.notify(fmt.Sprintf(msgAlreadyCompared, s.fileName(buf)))
	return fmt.Errorf("buffer %d is already compared: %w", buf, diffpane.ErrOperationIgnored)
}

// tempCompare opens content as a read-only temp buffer of kind and compares
// the current buffer against it.
func (s *Session) tempCompare(ctx context.Context, kind diffpane.TempKind, path string, content []byte) (diffpane.CompareResult, error) {
	buf := s.host.CurrentBuffer()

	s.resetNewCompare()
	if err := s.checkNotCompared(buf); err != nil {
		return diffpane.CompareError, err
	}

	tmpPath, err := s.store.Create(path, kind, content)
	if err != nil {
		s.notify(msgTempFailed)
		return diffpane.CompareError, fmt.Errorf("creating temp file for %s: %w: %w", path, diffpane.ErrTempFileCreation, err)
	}

	unlock := s.guard()
	s.setFirst(diffpane.RoleNew)
	s.pending.tempKind = kind
	tmpBuf, err := s.host.Open(tmpPath)
	if err != nil {
		unlock()
		s.resetNewCompare()
		s.logIfErr(s.store.Remove(tmpPath), "removing temp file")
		s.notify(msgTempFailed)
		return diffpane.CompareError, fmt.Errorf("opening %s: %w: %w", tmpPath, diffpane.ErrTempFileCreation, err)
	}
	s.host.SetLanguage(tmpBuf, s.host.Language(buf))
	s.host.SetReadOnly(tmpBuf, true)
	unlock()

	result, err := s.compare(ctx, diffpane.ScopeFull)

	// A compare that never got going leaves the temp buffer behind.
	if err != nil && s.registry.ByBuffer(tmpBuf) == nil {
		if _, ok := s.host.ViewOf(tmpBuf); ok {
			f := &ComparedFile{Temp: kind, Buffer: tmpBuf, Path: tmpPath}
			unlock := s.guard()
			s.logIfErr(f.close(s.host, s.store), "closing temp file")
			s.host.ActivateBuffer(buf)
			unlock()
		}
	}
	return result, err
}

func (s *Session) recompare(pair *ComparedPair) (diffpane.CompareResult, error) {
	return s.run(s.ctx, pair, true)
}

// run diffs pair and acts on the result. A pair is registered only once its
// files are found to differ.
func (s *Session) run(ctx context.Context, pair *ComparedPair, recompare bool) (diffpane.CompareResult, error) {
	s.sched.cancel(kindAlign)
	s.sched.cancel(kindUpdate)

	pair.Options = s.settings.Options

	req := diffpane.CompareRequest{
		OldView:  pair.Old().view(s.host),
		Options:  pair.Options,
		Progress: compareProgress,
	}
	if pair.Scope == diffpane.ScopeSelection {
		req.Main = pair.Selections[diffpane.MainView].Section()
		req.Sub = pair.Selections[diffpane.SubView].Section()
	}

	s.storedLocation = nil
	s.goToFirst = !recompare || s.settings.GotoFirstDiff

	unlock := s.guard()
	if recompare {
		if !s.goToFirst {
			s.storedLocation = storeLocation(s.host, s.host.CurrentView())
		}
		pair.Files[0].clear(s.host)
		pair.Files[1].clear(s.host)
	}

	s.logger.Debug("comparing",
		"old", s.host.Path(pair.Old().Buffer), "new", s.host.Path(pair.New().Buffer),
		"scope", pair.Scope, "recompare", recompare)

	result, alignment, err := s.comparer.Compare(ctx, req)
	unlock()

	switch {
	case err != nil || result == diffpane.CompareError:
		if err == nil {
			err = errors.New("no result")
		}
		s.storedLocation = nil
		s.goToFirst = false
		s.notify(fmt.Sprintf(msgCompareFailed, s.fileName(pair.Old().Buffer), s.fileName(pair.New().Buffer)))
		s.clearPair(pair)
		return diffpane.CompareError, fmt.Errorf("%w: %w", diffpane.ErrCompareEngine, err)

	case result == diffpane.CompareMatch:
		s.storedLocation = nil
		s.goToFirst = false
		s.onMatch(pair, recompare)
		return diffpane.CompareMatch, nil
	}

	pair.Alignment = alignment

	if !recompare {
		if err := s.registry.Add(pair); err != nil {
			s.clearPair(pair)
			return diffpane.CompareError, err
		}
	}

	if pair.Scope == diffpane.ScopeSelection {
		s.host.ClearSelection(diffpane.MainView)
		s.host.ClearSelection(diffpane.SubView)
	}

	s.compareMode = true
	s.host.SetCompareView(diffpane.MainView, true)
	s.host.SetCompareView(diffpane.SubView, true)
	s.sched.post(alignAction{}, alignDelay)

	return diffpane.CompareMismatch, nil
}

func (s *Session) onMatch(pair *ComparedPair, recompare bool) {
	oldFile, newFile := pair.Old(), pair.New()
	oldName, newName := s.fileName(oldFile.Buffer), s.fileName(newFile.Buffer)

	what := filesWhat
	if pair.Scope == diffpane.ScopeSelection {
		what = selectedLinesWhat
	}
	msg := fmt.Sprintf(msgMatch, what, oldName, newName)

	temp, src := oldFile, newFile
	if temp.Temp == diffpane.TempNone {
		temp, src = newFile, oldFile
	}

	if temp.Temp != diffpane.TempNone {
		switch {
		case recompare:
			msg += msgTempClosed
		case temp.Temp == diffpane.TempLastSaved:
			msg = fmt.Sprintf(msgNotModified, s.fileName(src.Buffer))
		default:
			msg = fmt.Sprintf(msgNoChanges, s.fileName(src.Buffer), temp.Temp.Source())
		}
		s.notify(msg)
		s.clearPair(pair)
		return
	}

	if s.settings.PromptToCloseOnMatch {
		if s.prompter.Confirm(msg + msgCloseOnMatch) {
			s.closePair(pair)
		} else {
			s.clearPair(pair)
		}
		return
	}

	s.notify(msg)
	s.clearPair(pair)
}

// clearPair removes the markers of pair and returns its files home.
func (s *Session) clearPair(pair *ComparedPair) {
	s.sched.cancel(kindAlign)
	s.sched.cancel(kindUpdate)
	s.sched.cancel(kindActivate)

	current := s.host.CurrentBuffer()

	unlock := s.guard()
	s.logIfErr(pair.restoreFiles(s.host, s.store, current), "restoring files")
	s.registry.Remove(pair)
	if _, ok := s.host.ViewOf(current); ok {
		s.host.ActivateBuffer(current)
	}
	unlock()

	s.bufferActivated(s.host.CurrentBuffer())
}

// closePair closes both files of pair, the sub view one first.
func (s *Session) closePair(pair *ComparedPair) {
	s.sched.cancel(kindAlign)
	s.sched.cancel(kindUpdate)
	s.sched.cancel(kindActivate)

	unlock := s.guard()
	subFile := pair.FileByView(s.host, diffpane.SubView)
	mainFile := pair.OtherFile(subFile.Buffer)
	for _, f := range []*ComparedFile{subFile, mainFile} {
		if f.isOpen(s.host) {
			s.logIfErr(f.close(s.host, s.store), "closing file")
		}
	}
	s.registry.Remove(pair)
	unlock()

	s.bufferActivated(s.host.CurrentBuffer())
}

func (s *Session) newHistory() *DeletedSections {
	return NewDeletedSections(s.clock, s.settings.ReplaceWindow, s.logger)
}

// fileName returns the file name of buf, or its tab label when unsaved.
func (s *Session) fileName(buf diffpane.BufferID) string {
	if path := s.host.Path(buf); path != "" {
		return filepath.Base(path)
	}
	return s.host.TabLabel(buf)
}
