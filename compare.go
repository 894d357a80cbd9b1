package diffpane

import (
	"context"
	"time"
)

// CompareResult is the outcome of a compare run.
type CompareResult int

// Compare results.
const (
	CompareError CompareResult = iota
	CompareMatch
	CompareMismatch
)

func (r CompareResult) String() string {
	switch r {
	case CompareMatch:
		return "match"
	case CompareMismatch:
		return "mismatch"
	default:
		return "error"
	}
}

// CompareRequest describes the line ranges a Comparer diffs.
type CompareRequest struct {
	Main     Section
	Sub      Section
	OldView  ViewID // view holding the old file
	Options  Options
	Progress string // label shown while comparing, empty for silent runs
}

// Comparer diffs two views, marks the differing lines in the host and
// returns the alignment of the compared sections.
type Comparer interface {
	Compare(ctx context.Context, req CompareRequest) (CompareResult, Alignment, error)
}

// ReferenceFetcher returns the reference content of a file, e.g. a VCS revision.
// It returns ErrNoReference when the file has no such revision.
type ReferenceFetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// TempStore materializes historical content as disposable files.
type TempStore interface {
	// Exists reports whether path exists on disk.
	Exists(path string) bool
	// Create writes content to a new unique temp file named after srcPath and kind.
	Create(srcPath string, kind TempKind, content []byte) (string, error)
	// ReadFile returns the content of path.
	ReadFile(path string) ([]byte, error)
	// Remove deletes a temp file.
	Remove(path string) error
}

// Prompter surfaces notices to the user.
type Prompter interface {
	// Notify shows an informational notice.
	Notify(msg string)
	// Confirm asks a yes/no question.
	Confirm(msg string) bool
}

// Timer is a cancellable delayed callback.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the
	// callback was still pending.
	Stop() bool
}

// Clock provides the current time and delayed callbacks. Callbacks must be
// delivered on the host's UI thread.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}
