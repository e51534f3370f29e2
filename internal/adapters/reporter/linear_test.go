package reporter_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crossbow/internal/adapters/reporter"
	"go.trai.ch/crossbow/internal/core/domain"
)

func newReporter() (*reporter.Linear, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return reporter.NewLinear(&stdout, &stderr, reporter.WithColorProfile(termenv.Ascii)), &stdout, &stderr
}

func lifecycle() []domain.Report {
	code := 2
	return []domain.Report{
		{Kind: domain.ReportStart, ItemID: 1, Label: "js"},
		{Kind: domain.ReportStart, ItemID: 2, Label: "@sh sass"},
		{Kind: domain.ReportEnd, ItemID: 1, Label: "js", Stats: &domain.Stats{Duration: 80 * time.Millisecond}},
		{Kind: domain.ReportError, ItemID: 2, Label: "@sh sass", Stats: &domain.Stats{
			Duration: 1500 * time.Millisecond,
			Err:      errors.New("exit status 2"),
			ExitCode: &code,
		}},
		{Kind: domain.ReportStart, ItemID: 3, Label: "lint"},
		{Kind: domain.ReportEnd, ItemID: 3, Label: "lint", Stats: &domain.Stats{Skipped: true}},
	}
}

func TestLinear_Lifecycle_Golden(t *testing.T) {
	t.Parallel()

	r, _, stderr := newReporter()
	for _, rep := range lifecycle() {
		r.OnReport(rep)
	}

	g := goldie.New(t)
	g.Assert(t, "lifecycle", stderr.Bytes())
}

func TestLinear_Summary_Golden(t *testing.T) {
	t.Parallel()

	reports := lifecycle()
	r, _, stderr := newReporter()
	r.OnSummary(&domain.Summary{
		RunID:   "run-1",
		Reports: reports,
		Errors:  []domain.Report{reports[3]},
		Runtime: 2 * time.Second,
	})
	r.OnSummary(&domain.Summary{RunID: "run-2", Runtime: 5 * time.Millisecond})

	g := goldie.New(t)
	g.Assert(t, "summary", stderr.Bytes())
}

func TestLinear_Resolution_Golden(t *testing.T) {
	t.Parallel()

	r, _, stderr := newReporter()
	missing := &domain.Task{BaseTaskName: "missing", RawInput: "missing"}
	nested := &domain.Task{BaseTaskName: "deploy", SubTasks: []string{"qa"}}
	r.OnResolution([]domain.Failure{
		{Task: missing, Error: domain.TaskError{Type: domain.TaskNotFound, Err: errors.New("task not found")}},
		{Task: nested, Error: domain.TaskError{Type: domain.SubtaskNotFound, Err: errors.New("sub-task not found")}},
	})

	g := goldie.New(t)
	g.Assert(t, "resolution", stderr.Bytes())
}

func TestLinear_ResolutionEmpty(t *testing.T) {
	t.Parallel()

	r, _, stderr := newReporter()
	r.OnResolution(nil)
	assert.Empty(t, stderr.String())
}

func TestLinear_OutputPrefixesLines(t *testing.T) {
	t.Parallel()

	r, stdout, _ := newReporter()
	w := r.Output("js")

	_, err := w.Write([]byte("first\nsec"))
	require.NoError(t, err)
	assert.Equal(t, "[js] first\n", stdout.String())

	_, err = w.Write([]byte("ond\r\n\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("tail"))
	require.NoError(t, err)
	assert.Equal(t, "[js] first\n[js] second\n", stdout.String())

	require.NoError(t, w.Close())
	assert.Equal(t, "[js] first\n[js] second\n[js] tail\n", stdout.String())
}

func TestLinear_ConcurrentOutputKeepsLinesWhole(t *testing.T) {
	t.Parallel()

	r, stdout, _ := newReporter()

	var wg sync.WaitGroup
	for _, label := range []string{"a", "b", "c"} {
		wg.Go(func() {
			w := r.Output(label)
			for range 50 {
				_, _ = w.Write([]byte("line\n"))
			}
			_ = w.Close()
		})
	}
	wg.Wait()

	lines := bytes.Split(bytes.TrimSuffix(stdout.Bytes(), []byte("\n")), []byte("\n"))
	require.Len(t, lines, 150)
	for _, line := range lines {
		assert.Regexp(t, `^\[[abc]\] line$`, string(line))
	}
}
