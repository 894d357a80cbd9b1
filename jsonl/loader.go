// Package jsonl stores compare reports as JSON lines.
package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/diffpane"
)

// Compile-time interface verification.
var _ diffpane.ReportLoader = (*Loader)(nil)

// ErrInvalidReport is returned for a line that decodes but is not a report
// written by check.
var ErrInvalidReport = errors.New("invalid report")

// maxReportLine bounds one encoded report.
const maxReportLine = 1 << 20

// results are the Result values a report can carry.
var results = map[string]bool{
	diffpane.CompareMatch.String():    true,
	diffpane.CompareMismatch.String(): true,
	diffpane.CompareError.String():    true,
}

// Loader reads reports appended by Saver.
type Loader struct{}

// NewLoader returns a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load returns the reports in path in file order. Blank lines are skipped.
func (l *Loader) Load(path string) ([]diffpane.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reports []diffpane.Report
	scanner := bufio.NewScanner(f)
	scanner.Buffer(nil, maxReportLine)
	for n := 1; scanner.Scan(); n++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		r, err := decodeReport(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, n, err)
		}
		reports = append(reports, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return reports, nil
}

func decodeReport(line []byte) (diffpane.Report, error) {
	var r diffpane.Report
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return r, err
	}
	switch {
	case r.Old == "" || r.New == "":
		return r, fmt.Errorf("missing file names: %w", ErrInvalidReport)
	case !results[r.Result]:
		return r, fmt.Errorf("unknown result %q: %w", r.Result, ErrInvalidReport)
	case r.Result == diffpane.CompareError.String() && r.Error == "":
		return r, fmt.Errorf("error result without a message: %w", ErrInvalidReport)
	}
	return r, nil
}
