package session

import (
	"path/filepath"
	"strings"

	"github.com/fwojciec/diffpane"
)

// ComparedFile is one side of a compared pair.
type ComparedFile struct {
	Role diffpane.Role
	Temp diffpane.TempKind

	Buffer diffpane.BufferID
	Doc    diffpane.DocID
	Path   string

	HomeView    diffpane.ViewID // view the buffer lived in before the compare
	HomeIndex   int             // tab position in HomeView
	CompareView diffpane.ViewID // view the buffer is shown in while compared

	History *DeletedSections
}

// initFromCurrent captures the buffer active in the host.
func (f *ComparedFile) initFromCurrent(h diffpane.Host, role diffpane.Role) {
	f.Role = role
	f.Buffer = h.CurrentBuffer()
	f.HomeView = h.CurrentView()
	f.CompareView = f.HomeView
	f.HomeIndex = h.TabIndex(f.Buffer)
	f.Path = h.Path(f.Buffer)

	f.updateFromCurrent(h)
}

// updateFromCurrent refreshes the document slot after the buffer moved and
// labels temp buffers after the file they were made from.
func (f *ComparedFile) updateFromCurrent(h diffpane.Host) {
	f.Doc = h.Doc(h.CurrentView())

	if f.Temp == diffpane.TempNone {
		return
	}

	base := filepath.Base(f.Path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	i := strings.LastIndex(stem, f.Temp.FileMark())
	if i <= 0 {
		return
	}

	h.HideTabBar(true)
	h.SetTabLabel(f.Buffer, stem[:i]+ext+f.Temp.TabMark())
	h.HideTabBar(false)
}

// updateView sets CompareView from the view configured for old files.
func (f *ComparedFile) updateView(oldFileView diffpane.ViewID) {
	if f.Role == diffpane.RoleNew {
		f.CompareView = oldFileView.Other()
		return
	}
	f.CompareView = oldFileView
}

func (f *ComparedFile) view(h diffpane.Host) diffpane.ViewID {
	v, _ := h.ViewOf(f.Buffer)
	return v
}

// clear removes diff markers and padding from the whole buffer.
func (f *ComparedFile) clear(h diffpane.Host) {
	clearWindow(h, f.view(h))
	f.History.Clear()
}

// clearSection removes diff markers and padding from sec.
func (f *ComparedFile) clearSection(h diffpane.Host, sec diffpane.Section) {
	clearMarksAndBlanks(h, f.view(h), sec.Off, sec.Len)
	f.History.Clear()
}

// onBeforeClose clears the buffer while it is still addressable. Temp
// buffers are marked saved so closing them does not prompt.
func (f *ComparedFile) onBeforeClose(h diffpane.Host) {
	h.ActivateBuffer(f.Buffer)

	clearWindow(h, h.CurrentView())

	if f.Temp != diffpane.TempNone {
		h.MarkSaved(f.Buffer)
	}
}

// onClose deletes the backing file of a temp buffer.
func (f *ComparedFile) onClose(store diffpane.TempStore) error {
	if f.Temp == diffpane.TempNone || store == nil {
		return nil
	}
	return store.Remove(f.Path)
}

// close closes the buffer, then removes its temp file.
func (f *ComparedFile) close(h diffpane.Host, store diffpane.TempStore) error {
	f.onBeforeClose(h)
	h.CloseCurrent()
	return f.onClose(store)
}

// restore returns the buffer to its home view and tab position. Temp
// buffers are closed instead.
func (f *ComparedFile) restore(h diffpane.Host, store diffpane.TempStore) error {
	if f.Temp != diffpane.TempNone {
		return f.close(h, store)
	}

	h.ActivateBuffer(f.Buffer)

	clearWindow(h, h.CurrentView())

	if f.view(h) == f.HomeView {
		return nil
	}

	h.MoveToOtherView()

	if !f.isOpen(h) {
		return nil
	}

	current := h.TabIndex(f.Buffer)
	if f.HomeIndex >= current {
		return nil
	}

	for i := current - f.HomeIndex; i > 0; i-- {
		h.MoveTabBackward()
	}
	return nil
}

func (f *ComparedFile) isOpen(h diffpane.Host) bool {
	_, ok := h.ViewOf(f.Buffer)
	return ok
}

// ComparedPair is two compared files and the state of their last compare.
type ComparedPair struct {
	Files [2]*ComparedFile

	// RelativePos is the tab distance between the files at creation when
	// both lived in the same view, signed by which one stays put.
	RelativePos int

	Scope      diffpane.Scope
	Selections [2]diffpane.LineRange
	Options    diffpane.Options
	Alignment  diffpane.Alignment
}

// FileByView returns the file shown in view.
func (p *ComparedPair) FileByView(h diffpane.Host, view diffpane.ViewID) *ComparedFile {
	if p.Files[0].view(h) == view {
		return p.Files[0]
	}
	return p.Files[1]
}

// FileByBuffer returns the file holding buf.
func (p *ComparedPair) FileByBuffer(buf diffpane.BufferID) *ComparedFile {
	if p.Files[0].Buffer == buf {
		return p.Files[0]
	}
	return p.Files[1]
}

// OtherFile returns the file not holding buf.
func (p *ComparedPair) OtherFile(buf diffpane.BufferID) *ComparedFile {
	if p.Files[0].Buffer == buf {
		return p.Files[1]
	}
	return p.Files[0]
}

// FileByDoc returns the file occupying the document slot doc.
func (p *ComparedPair) FileByDoc(doc diffpane.DocID) *ComparedFile {
	if p.Files[0].Doc == doc {
		return p.Files[0]
	}
	return p.Files[1]
}

// Old returns the old side.
func (p *ComparedPair) Old() *ComparedFile {
	if p.Files[0].Role == diffpane.RoleNew {
		return p.Files[1]
	}
	return p.Files[0]
}

// New returns the new side.
func (p *ComparedPair) New() *ComparedFile {
	if p.Files[0].Role == diffpane.RoleNew {
		return p.Files[0]
	}
	return p.Files[1]
}

// positionFiles syncs zoom, records the relative tab position of the files
// and moves each file into its compare view.
func (p *ComparedPair) positionFiles(h diffpane.Host, oldFileView diffpane.ViewID) {
	h.SetZoom(h.CurrentView().Other(), h.Zoom(h.CurrentView()))

	current := h.CurrentBuffer()

	oldFile := p.Old()
	newFile := p.New()

	oldFile.updateView(oldFileView)
	newFile.updateView(oldFileView)

	switch {
	case oldFile.HomeView != newFile.HomeView:
		p.RelativePos = 0
	case oldFile.HomeView == oldFile.CompareView:
		p.RelativePos = newFile.HomeIndex - oldFile.HomeIndex
	default:
		p.RelativePos = oldFile.HomeIndex - newFile.HomeIndex
	}

	for _, f := range []*ComparedFile{oldFile, newFile} {
		if f.view(h) != f.CompareView {
			h.ActivateBuffer(f.Buffer)
			h.MoveToOtherView()
			f.updateFromCurrent(h)
		}
	}

	for _, f := range []*ComparedFile{oldFile, newFile} {
		if f.Doc != h.Doc(f.CompareView) {
			h.ActivateBuffer(f.Buffer)
		}
	}

	h.ActivateBuffer(current)
}

// restoreFiles returns both files to their home positions. The file that
// never moved anchors the other: if tabs before it were closed while
// compared, the moved file's home index shifts with it so their relative
// order survives. The file holding current is restored last.
func (p *ComparedPair) restoreFiles(h diffpane.Host, store diffpane.TempStore, current diffpane.BufferID) error {
	if p.RelativePos != 0 {
		bias, moved := p.Files[0], p.Files[1]
		if bias.view(h) != bias.HomeView {
			bias, moved = moved, bias
		}

		if bias.HomeIndex > moved.HomeIndex {
			newPos := h.TabIndex(bias.Buffer)
			if newPos != bias.HomeIndex && newPos < moved.HomeIndex {
				moved.HomeIndex = newPos
			}
		}
	}

	first, second := p.Files[0], p.Files[1]
	if current != diffpane.NoBuffer {
		first, second = p.OtherFile(current), p.FileByBuffer(current)
	}

	err1 := first.restore(h, store)
	err2 := second.restore(h, store)
	if err1 != nil {
		return err1
	}
	return err2
}

// status returns the status bar text of the pair.
func (p *ComparedPair) status() string {
	return diffpane.Status(p.Scope, p.Selections, p.Options)
}
