// Package reporter provides a synchronous, line-buffered reporter for terminals and CI.
package reporter

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/crossbow/internal/core/ports"
	"go.trai.ch/crossbow/internal/ui/output"
	"go.trai.ch/crossbow/internal/ui/style"
)

var _ ports.Reporter = (*Linear)(nil)

// Linear implements ports.Reporter with chronological, label-prefixed lines.
// Task output goes to stdout, lifecycle lines go to stderr.
type Linear struct {
	stdout io.Writer
	stderr io.Writer
	out    *termenv.Output

	mu sync.Mutex
}

// Option configures a Linear reporter.
type Option func(*linearConfig)

type linearConfig struct {
	profile func() termenv.Profile
}

// WithColorProfile fixes the color profile instead of detecting it.
func WithColorProfile(p termenv.Profile) Option {
	return func(c *linearConfig) {
		c.profile = func() termenv.Profile { return p }
	}
}

// NewLinear creates a new Linear reporter. Nil writers select os.Stdout and os.Stderr.
func NewLinear(stdout, stderr io.Writer, opts ...Option) *Linear {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	cfg := linearConfig{profile: output.ColorProfileANSI}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Linear{
		stdout: stdout,
		stderr: stderr,
		out:    output.NewWithProfile(stderr, cfg.profile),
	}
}

// OnResolution prints every resolution failure with the task it belongs to.
func (r *Linear) OnResolution(failures []domain.Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range failures {
		label := f.Task.RawInput
		if label == "" {
			label = f.Task.Label()
		}
		_, _ = fmt.Fprintf(r.stderr, "%s %s %s: %s\n",
			r.prefix(label), r.paint(style.Cross, style.Red), f.Error.Type, f.Error.Err)
	}
	if len(failures) > 0 {
		_, _ = fmt.Fprintf(r.stderr, "%d resolution error(s), nothing was run\n", len(failures))
	}
}

// OnReport prints a lifecycle line for a leaf.
func (r *Linear) OnReport(report domain.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := r.prefix(report.Label)
	stats := report.Stats
	if stats == nil {
		stats = &domain.Stats{}
	}

	switch report.Kind {
	case domain.ReportStart:
		_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", prefix)
	case domain.ReportEnd:
		if stats.Skipped {
			_, _ = fmt.Fprintf(r.stderr, "%s %s Skipped, inputs unchanged\n", prefix, r.paint(style.Skip, style.Slate))
			return
		}
		_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n",
			prefix, r.paint(style.Check, style.Green), formatDuration(stats.Duration))
	case domain.ReportError:
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n",
			prefix, r.paint(style.Cross, style.Red), formatDuration(stats.Duration), stats.Err)
	}
}

// OnSummary prints the totals of the run.
func (r *Linear) OnSummary(summary *domain.Summary) {
	if summary == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var completed, skipped int
	for _, rep := range summary.Reports {
		if rep.Kind != domain.ReportEnd {
			continue
		}
		if rep.Stats != nil && rep.Stats.Skipped {
			skipped++
			continue
		}
		completed++
	}

	icon := r.paint(style.Check, style.Green)
	if summary.Failed() {
		icon = r.paint(style.Cross, style.Red)
	}

	_, _ = fmt.Fprintf(r.stderr, "%s %d completed, %d skipped, %d failed in %v %s\n",
		icon, completed, skipped, len(summary.Errors), formatDuration(summary.Runtime),
		r.out.String("("+summary.RunID+")").Faint())
}

// Output returns a writer that prints complete lines of the leaf's output prefixed by label.
func (r *Linear) Output(label string) io.WriteCloser {
	return &lineWriter{r: r, label: label}
}

func (r *Linear) prefix(label string) string {
	return r.out.String(fmt.Sprintf("[%s]", label)).Faint().String()
}

func (r *Linear) paint(icon string, color lipgloss.Color) string {
	return r.out.String(icon).Foreground(r.out.Color(string(color))).String()
}

func formatDuration(d time.Duration) time.Duration {
	if d < time.Millisecond {
		return d.Round(time.Microsecond)
	}
	return d.Round(time.Millisecond)
}

type lineWriter struct {
	r     *Linear
	label string
	buf   bytes.Buffer
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.r.mu.Lock()
	defer w.r.mu.Unlock()

	w.buf.Write(p)
	for {
		idx := bytes.IndexByte(w.buf.Bytes(), '\n')
		if idx < 0 {
			break
		}
		line := w.buf.Next(idx + 1)
		w.printLocked(line)
	}
	return len(p), nil
}

// Close flushes any remaining partial line.
func (w *lineWriter) Close() error {
	w.r.mu.Lock()
	defer w.r.mu.Unlock()

	if w.buf.Len() > 0 {
		w.printLocked(w.buf.Bytes())
		w.buf.Reset()
	}
	return nil
}

// printLocked must be called with r.mu held.
func (w *lineWriter) printLocked(line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w.r.stdout, "[%s] %s\n", w.label, line)
}
