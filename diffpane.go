// Package diffpane provides domain types for live two-pane text comparison sessions.
package diffpane

import "fmt"

// BufferID identifies an open text buffer. It is stable across moves between views.
type BufferID int64

// NoBuffer is returned when no buffer is available.
const NoBuffer BufferID = -1

// DocID identifies the document slot a buffer occupies in a view.
// Unlike BufferID it changes when a buffer is detached from a view and
// reattached to the other one.
type DocID int64

// ViewID identifies one of the two side-by-side panes.
type ViewID int

// Views.
const (
	MainView ViewID = iota
	SubView
)

// Other returns the opposite view.
func (v ViewID) Other() ViewID {
	if v == MainView {
		return SubView
	}
	return MainView
}

func (v ViewID) String() string {
	if v == MainView {
		return "main"
	}
	return "sub"
}

// Role is the part a buffer plays in a comparison.
type Role int

// Roles.
const (
	RoleOld Role = iota // base / reference content
	RoleNew             // modified content
)

// TempKind tells whether a buffer is a disposable materialization of
// historical content, and of which kind.
type TempKind int

// Temp kinds.
const (
	TempNone TempKind = iota
	TempLastSaved
	TempVCSRevisionA // HEAD revision
	TempVCSRevisionB // index or patch base revision
)

// FileMark returns the suffix inserted into temp file names.
func (k TempKind) FileMark() string {
	switch k {
	case TempLastSaved:
		return "_LastSave"
	case TempVCSRevisionA:
		return "_Git"
	case TempVCSRevisionB:
		return "_Base"
	default:
		return ""
	}
}

// TabMark returns the suffix appended to temp buffer tab labels.
func (k TempKind) TabMark() string {
	switch k {
	case TempLastSaved:
		return " ** Last Save"
	case TempVCSRevisionA:
		return " ** Git"
	case TempVCSRevisionB:
		return " ** Base"
	default:
		return ""
	}
}

// Source returns a human readable name of the revision a temp buffer holds.
func (k TempKind) Source() string {
	switch k {
	case TempLastSaved:
		return "last Save"
	case TempVCSRevisionA:
		return "Git"
	case TempVCSRevisionB:
		return "Base"
	default:
		return ""
	}
}

// Marker is a per-line bitset of diff classifications.
type Marker uint32

// Line markers.
const (
	MarkerChanged Marker = 1 << iota
	MarkerAdded
	MarkerRemoved
	MarkerMoved
)

// MarkerMaskLine covers all line classification markers.
const MarkerMaskLine = MarkerChanged | MarkerAdded | MarkerRemoved | MarkerMoved

// AlignmentSide is one side of an alignment record.
type AlignmentSide struct {
	Line     int    // 0-based document line
	DiffMask Marker // classification of the block starting at Line
}

// AlignmentPair maps a main view line onto a sub view line.
type AlignmentPair struct {
	Main AlignmentSide
	Sub  AlignmentSide
}

// Side returns the side of the record that belongs to view.
func (p AlignmentPair) Side(view ViewID) AlignmentSide {
	if view == MainView {
		return p.Main
	}
	return p.Sub
}

// Alignment is a sequence of alignment records, non-decreasing in both
// Main.Line and Sub.Line.
type Alignment []AlignmentPair

// Options are the comparison flags captured for a compare run.
type Options struct {
	IgnoreSpaces bool `yaml:"ignoreSpaces" json:"ignore_spaces"`
	IgnoreCase   bool `yaml:"ignoreCase" json:"ignore_case"`
	DetectMoves  bool `yaml:"detectMoves" json:"detect_moves"`
}

// Section is a range of lines. A zero Len means "to the end of the document".
type Section struct {
	Off int
	Len int
}

// Scope tells whether a pair compares whole documents or selected lines.
type Scope int

// Compare scopes.
const (
	ScopeFull Scope = iota
	ScopeSelection
)

// LineRange is an inclusive range of selected lines.
type LineRange struct {
	First int
	Last  int
}

func (r LineRange) String() string {
	return fmt.Sprintf("%d-%d", r.First+1, r.Last+1)
}

// Section converts the range into a Section.
func (r LineRange) Section() Section {
	return Section{Off: r.First, Len: r.Last - r.First + 1}
}

// EditAction distinguishes user edits from undo and redo.
type EditAction int

// Edit actions.
const (
	ActionUser EditAction = iota
	ActionUndo
	ActionRedo
)

// Restore returns the action that replays what this action removed:
// an undo-caused deletion is restored by a redo, anything else by an undo.
func (a EditAction) Restore() EditAction {
	if a == ActionUndo {
		return ActionRedo
	}
	return ActionUndo
}

func (a EditAction) String() string {
	switch a {
	case ActionUndo:
		return "undo"
	case ActionRedo:
		return "redo"
	default:
		return "user"
	}
}

// ModType is a bitset describing a text modification notification.
type ModType uint8

// Modification types.
const (
	ModInsertText ModType = 1 << iota
	ModDeleteText
	ModBeforeDelete
)

// Modification describes a text change reported by the host.
type Modification struct {
	Type       ModType
	Action     EditAction
	Line       int // line at the change position
	EndLine    int // line at the end of the range about to be deleted (ModBeforeDelete only)
	LinesAdded int // positive for inserts, negative for deletes
}

// Span is a byte range [Start, End) within a line.
type Span struct {
	Start int
	End   int
}

// WordDiffer finds the changed parts of a changed line pair.
type WordDiffer interface {
	// Diff returns the changed byte ranges of old and new.
	Diff(old, new string) (oldSpans, newSpans []Span)
}
