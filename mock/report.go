package mock

import "github.com/fwojciec/diffpane"

// Compile-time interface verification.
var _ diffpane.ReportSaver = (*ReportSaver)(nil)

// ReportSaver is a mock implementation of diffpane.ReportSaver.
type ReportSaver struct {
	SaveFn func(path string, r diffpane.Report) error
}

func (s *ReportSaver) Save(path string, r diffpane.Report) error {
	return s.SaveFn(path, r)
}
