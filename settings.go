package diffpane

import (
	"fmt"
	"time"
)

// Settings are the user preferences a comparison session reads live.
type Settings struct {
	Options `yaml:",inline"`

	OldFileIsFirst       bool          `yaml:"oldFileIsFirst"`       // "set as first" marks the old file
	OldFileView          ViewID        `yaml:"oldFileView"`          // view the old file is shown in
	CompareToPrev        bool          `yaml:"compareToPrev"`        // single view: pair with the previous tab instead of the next
	EncodingsCheck       bool          `yaml:"encodingsCheck"`       // confirm before comparing different encodings
	PromptToCloseOnMatch bool          `yaml:"promptToCloseOnMatch"` // offer to close matching files
	RecompareOnSave      bool          `yaml:"recompareOnSave"`      // full re-compare after a save
	UpdateOnChange       bool          `yaml:"updateOnChange"`       // re-diff edited neighborhoods while typing
	GotoFirstDiff        bool          `yaml:"gotoFirstDiff"`        // jump to the first diff on re-compare
	WrapAround           bool          `yaml:"wrapAround"`           // navigation wraps at document ends
	ReplaceWindow        time.Duration `yaml:"replaceWindow"`        // delete/insert pairs closer than this are one line replace
}

// DefaultSettings returns the settings used when none are configured.
func DefaultSettings() Settings {
	return Settings{
		OldFileIsFirst:  true,
		OldFileView:     MainView,
		EncodingsCheck:  true,
		RecompareOnSave: true,
		UpdateOnChange:  true,
		WrapAround:      true,
		ReplaceWindow:   40 * time.Millisecond,
	}
}

// Status formats the status line for a compared pair.
func Status(scope Scope, selections [2]LineRange, opts Options) string {
	cmpType := "Full"
	if scope == ScopeSelection {
		cmpType = fmt.Sprintf("Sel: %s vs. %s", selections[MainView], selections[SubView])
	}
	return fmt.Sprintf("Compare (%s)    Ignore Spaces (%s)    Ignore Case (%s)    Detect Moves (%s)",
		cmpType, yesNo(opts.IgnoreSpaces), yesNo(opts.IgnoreCase), yesNo(opts.DetectMoves))
}

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}
