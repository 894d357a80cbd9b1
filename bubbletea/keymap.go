package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the compare viewer.
type KeyMap struct {
	// Movement
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding
	Select       key.Binding
	Cancel       key.Binding

	// Views and tabs
	SwitchView key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	MoveTab    key.Binding
	CloseTab   key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding

	// Compare commands
	SetFirst         key.Binding
	Compare          key.Binding
	CompareSelection key.Binding
	LastSaveDiff     key.Binding
	GitDiff          key.Binding
	BaseDiff         key.Binding
	ClearActive      key.Binding
	ClearAll         key.Binding
	NextDiff         key.Binding
	PrevDiff         key.Binding
	FirstDiff        key.Binding
	LastDiff         key.Binding
	IgnoreSpaces     key.Binding
	IgnoreCase       key.Binding
	DetectMoves      key.Binding

	// Editing
	DeleteLine key.Binding
	PutLine    key.Binding
	OpenLine   key.Binding
	CopyLine   key.Binding
	Undo       key.Binding
	Redo       key.Binding
	Save       key.Binding

	// Prompts
	Yes key.Binding

	Quit key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		Select: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "select lines"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear selection"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "other view"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "previous tab"),
		),
		MoveTab: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "move to other view"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "close tab"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		SetFirst: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "set as first"),
		),
		Compare: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "compare"),
		),
		CompareSelection: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "compare selections"),
		),
		LastSaveDiff: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "diff against last save"),
		),
		GitDiff: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "diff against git HEAD"),
		),
		BaseDiff: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "diff against base"),
		),
		ClearActive: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear compare"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear all compares"),
		),
		NextDiff: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next diff"),
		),
		PrevDiff: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "previous diff"),
		),
		FirstDiff: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "first diff"),
		),
		LastDiff: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "last diff"),
		),
		IgnoreSpaces: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle ignore spaces"),
		),
		IgnoreCase: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle ignore case"),
		),
		DetectMoves: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "toggle detect moves"),
		),
		DeleteLine: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete line"),
		),
		PutLine: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "put deleted lines below"),
		),
		OpenLine: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open line below"),
		),
		CopyLine: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy line"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "redo"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "yes"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
