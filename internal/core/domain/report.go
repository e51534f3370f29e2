package domain

import "time"

// ReportKind classifies lifecycle reports.
type ReportKind string

const (
	// ReportStart is emitted when a leaf begins.
	ReportStart ReportKind = "start"
	// ReportEnd is emitted when a leaf completes successfully or is skipped.
	ReportEnd ReportKind = "end"
	// ReportError is emitted when a leaf fails.
	ReportError ReportKind = "error"
)

// Stats describes the outcome of a leaf.
type Stats struct {
	Started  time.Time
	Ended    time.Time
	Duration time.Duration
	Skipped  bool
	Err      error
	ExitCode *int
}

// Report is a single lifecycle event of a leaf.
type Report struct {
	Kind      ReportKind
	ItemID    int
	Label     string
	Timestamp time.Time
	Stats     *Stats
}

// IsTerminal reports whether the report ends a leaf.
func (r Report) IsTerminal() bool {
	return r.Kind == ReportEnd || r.Kind == ReportError
}

// Summary is the outcome of a whole run.
type Summary struct {
	RunID   string
	Reports []Report
	Errors  []Report
	Runtime time.Duration
	// Plan is a copy of the executed plan with stats attached to each leaf.
	Plan []SequenceItem
}

// Failed reports whether any leaf failed.
func (s *Summary) Failed() bool {
	return len(s.Errors) > 0
}

// ExitCode computes the process exit status for the run.
// It is zero unless a leaf failed and failOnError is set; then it is the exit
// code of the last failing report when one was recorded, and 1 otherwise.
func (s *Summary) ExitCode(failOnError bool) int {
	if !s.Failed() || !failOnError {
		return 0
	}
	last := s.Errors[len(s.Errors)-1]
	if last.Stats != nil && last.Stats.ExitCode != nil && *last.Stats.ExitCode != 0 {
		return *last.Stats.ExitCode
	}
	return 1
}
