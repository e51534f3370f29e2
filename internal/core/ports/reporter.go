package ports

import (
	"io"

	"go.trai.ch/crossbow/internal/core/domain"
)

// Reporter presents the progress and outcome of a run.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// OnResolution presents resolution failures.
	OnResolution(failures []domain.Failure)
	// OnReport presents a single lifecycle report. Calls are serialized.
	OnReport(report domain.Report)
	// OnSummary presents the outcome of the run.
	OnSummary(summary *domain.Summary)
	// Output returns a writer for the output of the leaf with the given label.
	// Closing it flushes any buffered partial line.
	Output(label string) io.WriteCloser
}
