package diffpane

// BufferHost exposes the host editor's buffers, tabs and commands.
type BufferHost interface {
	// CurrentView returns the focused view.
	CurrentView() ViewID
	// CurrentBuffer returns the buffer shown in the focused view.
	CurrentBuffer() BufferID
	// ActivateBuffer shows buf in its view and focuses that view.
	ActivateBuffer(buf BufferID)
	// ViewOf returns the view buf lives in, or false if buf is not open.
	ViewOf(buf BufferID) (ViewID, bool)
	// TabIndex returns the position of buf in its view's tab order, or -1.
	TabIndex(buf BufferID) int
	// Doc returns the document slot currently displayed in view.
	Doc(view ViewID) DocID
	// Path returns the full path of buf, empty for unsaved buffers.
	Path(buf BufferID) string
	// Encoding returns the character encoding of buf.
	Encoding(buf BufferID) string
	// Language returns the language of buf.
	Language(buf BufferID) string
	// SetLanguage sets the language of buf.
	SetLanguage(buf BufferID, lang string)
	// TabLabel returns the tab text of buf.
	TabLabel(buf BufferID) string
	// SetTabLabel replaces the tab text of buf.
	SetTabLabel(buf BufferID, label string)
	// TabCount returns the number of buffers open in view.
	TabCount(view ViewID) int
	// IsSingleView reports whether only one view is visible.
	IsSingleView() bool

	// Open opens the file at path in the focused view and activates it.
	Open(path string) (BufferID, error)
	// NewBuffer creates an empty buffer in the focused view and activates it.
	NewBuffer() BufferID
	// SetText replaces the content of buf without recording undo history
	// and marks it unmodified.
	SetText(buf BufferID, content string)
	// SetReadOnly toggles the read-only flag of buf.
	SetReadOnly(buf BufferID, readOnly bool)
	// MarkSaved marks buf as unmodified.
	MarkSaved(buf BufferID)
	// MoveToOtherView moves the current buffer into the other view.
	MoveToOtherView()
	// MoveTabBackward moves the current buffer one tab to the left.
	MoveTabBackward()
	// SwitchToOtherView focuses the other view.
	SwitchToOtherView()
	// NextTab activates the next tab of the focused view, wrapping around.
	NextTab()
	// PrevTab activates the previous tab of the focused view, wrapping around.
	PrevTab()
	// CloseCurrent closes the current buffer.
	CloseCurrent()
	// HideTabBar hides or shows the tab bar. Used to batch visual updates.
	HideTabBar(hide bool)
	// SetStatus sets the status bar text.
	SetStatus(text string)
	// RefreshNavigation redraws the navigation overview.
	RefreshNavigation()
}

// ViewHost exposes the per-view line, marker and scroll API. All line
// numbers are 0-based document lines unless stated otherwise.
type ViewHost interface {
	LineCount(view ViewID) int
	LineText(view ViewID, line int) string

	Markers(view ViewID, line int) Marker
	AddMarkers(view ViewID, line int, m Marker)
	ClearMarkers(view ViewID, line int)

	// AddIndicator highlights the byte range [start, end) of line.
	AddIndicator(view ViewID, line, start, end int)
	// ClearIndicators removes highlights from count lines starting at line.
	ClearIndicators(view ViewID, line, count int)

	// Padding returns the number of blank rows displayed above line.
	Padding(view ViewID, line int) int
	// SetPadding sets the number of blank rows displayed above line.
	SetPadding(view ViewID, line, rows int)

	// ExpandAllFolds unfolds every folded region.
	ExpandAllFolds(view ViewID)
	// VisibleFromDocLine translates a document line into a display row,
	// accounting for folds and padding.
	VisibleFromDocLine(view ViewID, line int) int
	// DocLineFromVisible translates a display row into a document line.
	DocLineFromVisible(view ViewID, row int) int

	// FirstVisibleLine returns the first display row on screen.
	FirstVisibleLine(view ViewID) int
	SetFirstVisibleLine(view ViewID, row int)
	LinesOnScreen(view ViewID) int

	Zoom(view ViewID) int
	SetZoom(view ViewID, zoom int)

	CaretLine(view ViewID) int
	// GotoLine moves the caret to line and centers it on screen.
	GotoLine(view ViewID, line int)
	// Selection returns the selected lines of view, false if nothing is selected.
	Selection(view ViewID) (LineRange, bool)
	ClearSelection(view ViewID)

	// SetCompareView switches the compare styling of view on or off.
	SetCompareView(view ViewID, on bool)
}

// Host is the narrow editor API a comparison session drives.
type Host interface {
	BufferHost
	ViewHost
}

// Notifications are the host events delivered to a comparison session.
// The host calls them on its UI thread in program order.
type Notifications interface {
	OnBufferActivated(buf BufferID)
	OnBeforeClose(buf BufferID)
	OnSaved(buf BufferID)
	OnModified(buf BufferID, mod Modification)
	OnPainted()
	OnScrolled(view ViewID)
	OnZoom(view ViewID)
	OnMinimized()
	OnRestored()
	OnBeforeShutdown()
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	Copy(content string) error
}
