package diffpane

import "errors"

// Session errors. Each is reported to the user once, where it is detected,
// and returned wrapped so callers can tell what happened.
var (
	// ErrOperationIgnored means a precondition was not met and nothing changed.
	ErrOperationIgnored = errors.New("operation ignored")
	// ErrEncodingMismatch means the user declined to compare files with different encodings.
	ErrEncodingMismatch = errors.New("encoding mismatch")
	// ErrTempFileCreation means a temp buffer could not be materialized.
	ErrTempFileCreation = errors.New("temp file creation failed")
	// ErrCompareEngine means the comparer failed; the attempted pair is cleared.
	ErrCompareEngine = errors.New("compare engine error")
	// ErrNoReference means a file has no reference revision to compare against.
	ErrNoReference = errors.New("no reference content")
)
