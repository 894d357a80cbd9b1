// Package memhost implements an in-memory two-pane host editor.
//
// It keeps tabs per pane, buffers with per-line markers, padding rows,
// highlight ranges and folds, and an undo/redo history. Host notifications
// are delivered synchronously to the registered listener.
package memhost

import (
	"fmt"
	"os"

	"github.com/fwojciec/diffpane"
)

// Compile-time interface verification.
var _ diffpane.Host = (*Host)(nil)

// NoDoc is returned by Doc for an empty pane.
const NoDoc diffpane.DocID = 0

const defaultScreenLines = 40

// pane is one of the two views.
type pane struct {
	tabs        []*Buffer
	active      int
	zoom        int
	firstRow    int
	screenLines int
	caret       int
	selection   *diffpane.LineRange
	compareView bool
}

func (p *pane) current() *Buffer {
	if len(p.tabs) == 0 {
		return nil
	}
	return p.tabs[p.active]
}

func (p *pane) index(buf diffpane.BufferID) int {
	for i, b := range p.tabs {
		if b.id == buf {
			return i
		}
	}
	return -1
}

// Host is an in-memory editor with two panes.
type Host struct {
	panes    [2]*pane
	focus    diffpane.ViewID
	listener diffpane.Notifications

	nextBuffer diffpane.BufferID
	nextDoc    diffpane.DocID
	untitled   int

	readFile  func(path string) ([]byte, error)
	writeFile func(path string, data []byte) error
	detect    func(path string, content []byte) string

	status       string
	tabBarHidden int
	navRefreshes int
	minimized    bool
}

// Option configures a Host.
type Option func(*Host)

// WithReadFile sets how Open reads files. Defaults to os.ReadFile.
func WithReadFile(fn func(path string) ([]byte, error)) Option {
	return func(h *Host) {
		h.readFile = fn
	}
}

// WithWriteFile sets how Save writes files. Defaults to os.WriteFile.
func WithWriteFile(fn func(path string, data []byte) error) Option {
	return func(h *Host) {
		h.writeFile = fn
	}
}

// WithLanguageDetector sets the function used to pick a language for opened files.
func WithLanguageDetector(fn func(path string, content []byte) string) Option {
	return func(h *Host) {
		h.detect = fn
	}
}

// WithScreenLines sets the number of rows each pane shows.
func WithScreenLines(n int) Option {
	return func(h *Host) {
		for _, p := range h.panes {
			p.screenLines = n
		}
	}
}

// New creates an empty host.
func New(opts ...Option) *Host {
	h := &Host{
		nextBuffer: 1,
		nextDoc:    1,
		readFile:   os.ReadFile,
		writeFile: func(path string, data []byte) error {
			return os.WriteFile(path, data, 0o644)
		},
	}
	for i := range h.panes {
		h.panes[i] = &pane{screenLines: defaultScreenLines}
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetListener registers the receiver of host notifications.
func (h *Host) SetListener(n diffpane.Notifications) {
	h.listener = n
}

func (h *Host) pane(view diffpane.ViewID) *pane {
	return h.panes[view]
}

func (h *Host) find(buf diffpane.BufferID) (*Buffer, diffpane.ViewID, int) {
	for v, p := range h.panes {
		if i := p.index(buf); i >= 0 {
			return p.tabs[i], diffpane.ViewID(v), i
		}
	}
	return nil, diffpane.MainView, -1
}

// Buffer returns the buffer with the given id.
func (h *Host) Buffer(buf diffpane.BufferID) (*Buffer, bool) {
	b, _, _ := h.find(buf)
	return b, b != nil
}

func (h *Host) viewBuffer(view diffpane.ViewID) *Buffer {
	return h.pane(view).current()
}

func (h *Host) attach(view diffpane.ViewID, b *Buffer) {
	p := h.pane(view)
	b.doc = h.nextDoc
	h.nextDoc++
	p.tabs = append(p.tabs, b)
	p.active = len(p.tabs) - 1
	h.focus = view
}

// AddBuffer creates a buffer holding content in view without touching disk
// and activates it.
func (h *Host) AddBuffer(view diffpane.ViewID, path, content string) diffpane.BufferID {
	b := newBuffer(h.nextBuffer, path, content)
	h.nextBuffer++
	if h.detect != nil {
		b.language = h.detect(path, []byte(content))
	}
	h.attach(view, b)
	h.resetScroll(view)
	h.activated(b.id)
	return b.id
}

func (h *Host) activated(buf diffpane.BufferID) {
	if h.listener != nil {
		h.listener.OnBufferActivated(buf)
	}
}

func (h *Host) resetScroll(view diffpane.ViewID) {
	p := h.pane(view)
	p.firstRow = 0
	p.caret = 0
	p.selection = nil
}

// CurrentView returns the focused view.
func (h *Host) CurrentView() diffpane.ViewID {
	return h.focus
}

// CurrentBuffer returns the buffer shown in the focused view.
func (h *Host) CurrentBuffer() diffpane.BufferID {
	if b := h.viewBuffer(h.focus); b != nil {
		return b.id
	}
	return diffpane.NoBuffer
}

// ActivateBuffer shows buf in its view and focuses that view.
func (h *Host) ActivateBuffer(buf diffpane.BufferID) {
	b, view, i := h.find(buf)
	if b == nil {
		return
	}
	p := h.pane(view)
	if p.active != i {
		p.active = i
		h.resetScroll(view)
	}
	h.focus = view
	h.activated(buf)
}

// ViewOf returns the view buf lives in.
func (h *Host) ViewOf(buf diffpane.BufferID) (diffpane.ViewID, bool) {
	b, view, _ := h.find(buf)
	return view, b != nil
}

// TabIndex returns the tab position of buf, -1 if it is not open.
func (h *Host) TabIndex(buf diffpane.BufferID) int {
	_, _, i := h.find(buf)
	return i
}

// Doc returns the document slot shown in view.
func (h *Host) Doc(view diffpane.ViewID) diffpane.DocID {
	if b := h.viewBuffer(view); b != nil {
		return b.doc
	}
	return NoDoc
}

// Path returns the file path of buf.
func (h *Host) Path(buf diffpane.BufferID) string {
	if b, ok := h.Buffer(buf); ok {
		return b.path
	}
	return ""
}

// Encoding returns the encoding of buf.
func (h *Host) Encoding(buf diffpane.BufferID) string {
	if b, ok := h.Buffer(buf); ok {
		return b.encoding
	}
	return ""
}

// SetEncoding changes the encoding reported for buf.
func (h *Host) SetEncoding(buf diffpane.BufferID, enc string) {
	if b, ok := h.Buffer(buf); ok {
		b.encoding = enc
	}
}

// Language returns the language of buf.
func (h *Host) Language(buf diffpane.BufferID) string {
	if b, ok := h.Buffer(buf); ok {
		return b.language
	}
	return ""
}

// SetLanguage sets the language of buf.
func (h *Host) SetLanguage(buf diffpane.BufferID, lang string) {
	if b, ok := h.Buffer(buf); ok {
		b.language = lang
	}
}

// TabLabel returns the tab text of buf.
func (h *Host) TabLabel(buf diffpane.BufferID) string {
	if b, ok := h.Buffer(buf); ok {
		return b.label
	}
	return ""
}

// SetTabLabel replaces the tab text of buf.
func (h *Host) SetTabLabel(buf diffpane.BufferID, label string) {
	if b, ok := h.Buffer(buf); ok {
		b.label = label
	}
}

// TabCount returns the number of buffers in view.
func (h *Host) TabCount(view diffpane.ViewID) int {
	return len(h.pane(view).tabs)
}

// Tabs returns the buffers of view in tab order.
func (h *Host) Tabs(view diffpane.ViewID) []diffpane.BufferID {
	p := h.pane(view)
	ids := make([]diffpane.BufferID, len(p.tabs))
	for i, b := range p.tabs {
		ids[i] = b.id
	}
	return ids
}

// IsSingleView reports whether one of the panes is empty.
func (h *Host) IsSingleView() bool {
	return len(h.panes[diffpane.MainView].tabs) == 0 || len(h.panes[diffpane.SubView].tabs) == 0
}

// Open opens the file at path in the focused view. An already open file is
// activated instead.
func (h *Host) Open(path string) (diffpane.BufferID, error) {
	for _, p := range h.panes {
		for _, b := range p.tabs {
			if b.path == path {
				h.ActivateBuffer(b.id)
				return b.id, nil
			}
		}
	}
	data, err := h.readFile(path)
	if err != nil {
		return diffpane.NoBuffer, fmt.Errorf("opening %s: %w", path, err)
	}
	return h.AddBuffer(h.focus, path, string(data)), nil
}

// NewBuffer creates an empty untitled buffer in the focused view.
func (h *Host) NewBuffer() diffpane.BufferID {
	h.untitled++
	return h.AddBuffer(h.focus, fmt.Sprintf("new %d", h.untitled), "")
}

// Text returns the content of buf.
func (h *Host) Text(buf diffpane.BufferID) string {
	if b, ok := h.Buffer(buf); ok {
		return b.Text()
	}
	return ""
}

// SetText replaces the content of buf without recording history.
func (h *Host) SetText(buf diffpane.BufferID, content string) {
	if b, ok := h.Buffer(buf); ok {
		b.setText(content)
	}
}

// SetReadOnly toggles the read-only flag of buf.
func (h *Host) SetReadOnly(buf diffpane.BufferID, readOnly bool) {
	if b, ok := h.Buffer(buf); ok {
		b.readOnly = readOnly
	}
}

// IsReadOnly reports whether buf rejects edits.
func (h *Host) IsReadOnly(buf diffpane.BufferID) bool {
	b, ok := h.Buffer(buf)
	return ok && b.readOnly
}

// MarkSaved marks buf as unmodified.
func (h *Host) MarkSaved(buf diffpane.BufferID) {
	if b, ok := h.Buffer(buf); ok {
		b.modified = false
	}
}

// IsModified reports whether buf has unsaved changes.
func (h *Host) IsModified(buf diffpane.BufferID) bool {
	b, ok := h.Buffer(buf)
	return ok && b.modified
}

// Save writes buf to its path and notifies the listener.
func (h *Host) Save(buf diffpane.BufferID) error {
	b, ok := h.Buffer(buf)
	if !ok {
		return ErrUnknownBuffer
	}
	if err := h.writeFile(b.path, []byte(b.Text())); err != nil {
		return fmt.Errorf("saving %s: %w", b.path, err)
	}
	b.modified = false
	if h.listener != nil {
		h.listener.OnSaved(buf)
	}
	return nil
}

// MoveToOtherView moves the current buffer to the end of the other view's
// tabs and focuses it.
func (h *Host) MoveToOtherView() {
	from := h.pane(h.focus)
	b := from.current()
	if b == nil {
		return
	}
	h.detach(from, from.active)
	h.attach(h.focus.Other(), b)
	h.resetScroll(h.focus)
	h.activated(b.id)
}

func (h *Host) detach(p *pane, i int) {
	p.tabs = append(p.tabs[:i], p.tabs[i+1:]...)
	if p.active >= len(p.tabs) {
		p.active = len(p.tabs) - 1
	}
	if p.active < 0 {
		p.active = 0
	}
}

// MoveTabBackward swaps the current buffer with the tab before it.
func (h *Host) MoveTabBackward() {
	p := h.pane(h.focus)
	if p.active == 0 || len(p.tabs) == 0 {
		return
	}
	p.tabs[p.active-1], p.tabs[p.active] = p.tabs[p.active], p.tabs[p.active-1]
	p.active--
}

// SwitchToOtherView focuses the other view if it holds a buffer.
func (h *Host) SwitchToOtherView() {
	other := h.focus.Other()
	b := h.viewBuffer(other)
	if b == nil {
		return
	}
	h.focus = other
	h.activated(b.id)
}

// NextTab activates the next tab of the focused view.
func (h *Host) NextTab() {
	h.stepTab(1)
}

// PrevTab activates the previous tab of the focused view.
func (h *Host) PrevTab() {
	h.stepTab(-1)
}

func (h *Host) stepTab(delta int) {
	p := h.pane(h.focus)
	n := len(p.tabs)
	if n < 2 {
		return
	}
	p.active = (p.active + delta + n) % n
	h.resetScroll(h.focus)
	h.activated(p.tabs[p.active].id)
}

// CloseCurrent closes the current buffer.
func (h *Host) CloseCurrent() {
	b := h.viewBuffer(h.focus)
	if b == nil {
		return
	}
	h.Close(b.id)
}

// Close closes buf, notifying the listener first.
func (h *Host) Close(buf diffpane.BufferID) {
	if _, ok := h.Buffer(buf); !ok {
		return
	}
	if h.listener != nil {
		h.listener.OnBeforeClose(buf)
	}
	// The listener may have closed or moved the buffer already.
	_, view, i := h.find(buf)
	if i < 0 {
		return
	}
	p := h.pane(view)
	wasActive := p.active == i
	h.detach(p, i)
	if len(p.tabs) == 0 {
		h.focus = view.Other()
	} else if wasActive {
		h.resetScroll(view)
	} else if i < p.active {
		p.active--
	}
	if cur := h.CurrentBuffer(); cur != diffpane.NoBuffer {
		h.activated(cur)
	}
}

// HideTabBar hides or shows the tab bar. Calls nest.
func (h *Host) HideTabBar(hide bool) {
	if hide {
		h.tabBarHidden++
	} else if h.tabBarHidden > 0 {
		h.tabBarHidden--
	}
}

// TabBarHidden reports whether the tab bar is hidden.
func (h *Host) TabBarHidden() bool {
	return h.tabBarHidden > 0
}

// SetStatus sets the status bar text.
func (h *Host) SetStatus(text string) {
	h.status = text
}

// Status returns the status bar text.
func (h *Host) Status() string {
	return h.status
}

// RefreshNavigation redraws the navigation overview.
func (h *Host) RefreshNavigation() {
	h.navRefreshes++
}

// NavigationRefreshes returns how many times the overview was redrawn.
func (h *Host) NavigationRefreshes() int {
	return h.navRefreshes
}

// Paint reports a repaint to the listener.
func (h *Host) Paint() {
	if h.listener != nil && !h.minimized {
		h.listener.OnPainted()
	}
}

// Minimize reports the window was minimized.
func (h *Host) Minimize() {
	h.minimized = true
	if h.listener != nil {
		h.listener.OnMinimized()
	}
}

// Restore reports the window was restored.
func (h *Host) Restore() {
	h.minimized = false
	if h.listener != nil {
		h.listener.OnRestored()
	}
}

// Shutdown reports the editor is about to exit.
func (h *Host) Shutdown() {
	if h.listener != nil {
		h.listener.OnBeforeShutdown()
	}
}
