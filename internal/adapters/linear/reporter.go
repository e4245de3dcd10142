// Package linear provides a synchronous, line-oriented progress reporter.
package linear

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/chargeup/internal/core/domain"
	"go.trai.ch/chargeup/internal/core/ports"
	"go.trai.ch/chargeup/internal/ui/output"
	"go.trai.ch/chargeup/internal/ui/style"
)

var _ ports.Reporter = (*Reporter)(nil)

// Reporter implements ports.Reporter with chronological terminal output.
// Progress goes to stderr; dry-run plans go to stdout.
type Reporter struct {
	stdout io.Writer
	stderr io.Writer
	out    *termenv.Output
	errOut *termenv.Output

	mu       sync.Mutex
	verbose  bool
	sequence string
	steps    map[string]*stepState
	now      func() time.Time
}

type stepState struct {
	start time.Time
	buf   bytes.Buffer
}

// NewReporter creates a new Reporter. Nil writers default to the process streams.
func NewReporter(stdout, stderr io.Writer) *Reporter {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Reporter{
		stdout: stdout,
		stderr: stderr,
		out:    output.New(stdout),
		errOut: output.New(stderr),
		steps:  make(map[string]*stepState),
		now:    time.Now,
	}
}

// SetVerbose controls whether command output is streamed with step prefixes.
func (r *Reporter) SetVerbose(verbose bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verbose = verbose
}

// OnSequenceStart prints the sequence header.
func (r *Reporter) OnSequenceStart(sequence string, platform domain.Platform) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sequence = sequence
	header := r.errOut.String(fmt.Sprintf("==> %s (%s)", sequence, platform)).
		Foreground(termenv.RGBColor(string(style.Iris))).
		Bold()
	_, _ = fmt.Fprintln(r.stderr, header.String())
}

// OnStepStart prints a step start message.
func (r *Reporter) OnStepStart(stepID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.steps[stepID] = &stepState{start: r.now()}
	_, _ = fmt.Fprintln(r.stderr, r.errOut.String(r.prefix(stepID)+" Starting...").Faint().String())
}

// StepOutput returns a writer printing complete lines with the step prefix
// when verbose, and discarding output otherwise.
func (r *Reporter) StepOutput(stepID string) io.Writer {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.verbose {
		return io.Discard
	}
	if _, ok := r.steps[stepID]; !ok {
		r.steps[stepID] = &stepState{start: r.now()}
	}
	return &lineWriter{r: r, stepID: stepID}
}

// OnStepComplete flushes buffered output and prints the outcome.
func (r *Reporter) OnStepComplete(stepID string, outcome domain.StepOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.flushLocked(stepID)
	delete(r.steps, stepID)

	switch outcome.Status {
	case domain.StepSkipped:
		symbol := r.errOut.String(style.Skip).Foreground(termenv.RGBColor(string(style.Yellow))).String()
		_, _ = fmt.Fprintf(r.stderr, "  %s %s (%s)\n", symbol, stepID, outcome.Reason)
	case domain.StepSucceeded:
		symbol := r.errOut.String(style.Check).Foreground(termenv.RGBColor(string(style.Green))).String()
		_, _ = fmt.Fprintf(r.stderr, "  %s %s (%s)\n", symbol, stepID, outcome.Duration.Round(time.Millisecond))
		if outcome.Notes != "" {
			_, _ = fmt.Fprintf(r.stderr, "    %s %s\n", style.Arrow, outcome.Notes)
		}
	case domain.StepFailed:
		symbol := r.errOut.String(style.Cross).Foreground(termenv.RGBColor(string(style.Red))).String()
		_, _ = fmt.Fprintf(r.stderr, "  %s %s failed after %s\n", symbol, stepID, outcome.Duration.Round(time.Millisecond))
		if outcome.Err != nil {
			for _, line := range strings.Split(strings.TrimSpace(outcome.Err.Error()), "\n") {
				_, _ = fmt.Fprintf(r.stderr, "      %s\n", line)
			}
		}
	}
}

// OnSequenceComplete prints the summary of a sequence.
func (r *Reporter) OnSequenceComplete(report *domain.SequenceReport) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !report.Platform.Supported() {
		msg := fmt.Sprintf("%s %s: unsupported platform, nothing was run", style.Cross, report.Sequence)
		_, _ = fmt.Fprintln(r.stderr, r.errOut.String(msg).Foreground(termenv.RGBColor(string(style.Red))).String())
		return
	}

	var succeeded, skipped, failed int
	for _, res := range report.Outcomes {
		switch res.Outcome.Status {
		case domain.StepSucceeded:
			succeeded++
		case domain.StepSkipped:
			skipped++
		case domain.StepFailed:
			failed++
		}
	}

	summary := fmt.Sprintf("%s: %d succeeded, %d skipped, %d failed", report.Sequence, succeeded, skipped, failed)
	color := style.Green
	if step, ok := report.FailedStep(); ok {
		summary += fmt.Sprintf(" (halted at %q)", step)
		color = style.Red
	} else if report.Err != nil {
		summary += fmt.Sprintf(" (%v)", report.Err)
		color = style.Yellow
	}
	_, _ = fmt.Fprintln(r.stderr, r.errOut.String(summary).Foreground(termenv.RGBColor(string(color))).String())
}

// OnPlan prints what a sequence would do without running it.
func (r *Reporter) OnPlan(plan *domain.Plan) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stdout, "%s (%s)\n",
		r.out.String(plan.Sequence).Foreground(termenv.RGBColor(string(style.Iris))).Bold().String(),
		plan.Platform)

	if !plan.Platform.Supported() {
		_, _ = fmt.Fprintf(r.stdout, "  %s unsupported platform, no steps would run\n", style.Cross)
		return
	}

	for _, step := range plan.Steps {
		if !step.Applies {
			line := fmt.Sprintf("  %s %s (%s)", style.Circle, step.StepID, domain.SkipPlatformMismatch)
			_, _ = fmt.Fprintln(r.stdout, r.out.String(line).Faint().String())
			continue
		}
		_, _ = fmt.Fprintf(r.stdout, "  %s %s\n", style.Dot, step.StepID)
		if step.Check != nil {
			_, _ = fmt.Fprintf(r.stdout, "      skip if: %s\n", step.Check)
		}
		for _, cmd := range step.Commands {
			_, _ = fmt.Fprintf(r.stdout, "      run: %s\n", cmd)
		}
		if step.Profile != nil {
			_, _ = fmt.Fprintf(r.stdout, "      append to %s: %s\n", step.Profile.File, step.Profile.Line)
		}
	}
}

func (r *Reporter) prefix(stepID string) string {
	if r.sequence == "" {
		return "[" + stepID + "]"
	}
	return "[" + r.sequence + "/" + stepID + "]"
}

// write buffers data and prints complete lines with the step prefix.
func (r *Reporter) write(stepID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.steps[stepID]
	if !ok {
		return
	}
	st.buf.Write(data)

	for {
		line, err := st.buf.ReadBytes('\n')
		if err != nil {
			// Incomplete line, keep it for the next write.
			if len(line) > 0 {
				rest := bytes.Clone(line)
				st.buf.Reset()
				st.buf.Write(rest)
			}
			break
		}
		r.printLineLocked(stepID, line)
	}
}

// flushLocked prints any remaining partial line. Must be called with r.mu held.
func (r *Reporter) flushLocked(stepID string) {
	st, ok := r.steps[stepID]
	if !ok || st.buf.Len() == 0 {
		return
	}
	r.printLineLocked(stepID, st.buf.Bytes())
	st.buf.Reset()
}

// printLineLocked prints a line with the step prefix. Must be called with r.mu held.
func (r *Reporter) printLineLocked(stepID string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))

	if len(line) == 0 {
		return
	}

	prefix := r.out.String(r.prefix(stepID)).Faint().String()
	_, _ = fmt.Fprintf(r.stdout, "%s %s\n", prefix, line)
}

// lineWriter routes a step's output through the reporter.
type lineWriter struct {
	r      *Reporter
	stepID string
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.r.write(w.stepID, p)
	return len(p), nil
}
