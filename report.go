package diffpane

import "time"

// Report summarizes one headless compare run.
type Report struct {
	Old     string        `json:"old"`
	New     string        `json:"new"`
	Result  string        `json:"result"`
	Options Options       `json:"options"`
	Counts  MarkerCounts  `json:"counts"`
	Error   string        `json:"error,omitempty"`
	Time    time.Time     `json:"time"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// MarkerCounts is the number of lines carrying each marker in one view pair.
type MarkerCounts struct {
	Changed int `json:"changed"`
	Added   int `json:"added"`
	Removed int `json:"removed"`
	Moved   int `json:"moved"`
}

// Add counts the line markers in m.
func (c *MarkerCounts) Add(m Marker) {
	if m&MarkerChanged != 0 {
		c.Changed++
	}
	if m&MarkerAdded != 0 {
		c.Added++
	}
	if m&MarkerRemoved != 0 {
		c.Removed++
	}
	if m&MarkerMoved != 0 {
		c.Moved++
	}
}

// Total returns the number of marked lines.
func (c MarkerCounts) Total() int {
	return c.Changed + c.Added + c.Removed + c.Moved
}

// CountMarkers tallies the line markers of both views.
func CountMarkers(h ViewHost) MarkerCounts {
	var c MarkerCounts
	for _, view := range []ViewID{MainView, SubView} {
		for line := range h.LineCount(view) {
			c.Add(h.Markers(view, line) & MarkerMaskLine)
		}
	}
	return c
}

// ReportSaver appends reports to a file.
type ReportSaver interface {
	Save(path string, r Report) error
}

// ReportLoader reads the reports stored in a file.
type ReportLoader interface {
	Load(path string) ([]Report, error)
}
