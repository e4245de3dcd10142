// Package sequencer runs install sequences and the build-and-link pipeline.
package sequencer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.trai.ch/chargeup/internal/core/domain"
	"go.trai.ch/chargeup/internal/core/ports"
	"go.trai.ch/zerr"
)

// stderrTailLines bounds how much captured stderr is kept in a failure detail.
const stderrTailLines = 20

// Options tunes a sequence run.
type Options struct {
	// Force runs every applicable step even when its pre-check succeeds.
	Force bool
}

// Sequencer executes steps strictly one after another and stops at the first
// failed step.
type Sequencer struct {
	runner    ports.CommandRunner
	publisher ports.Publisher
	profiles  ports.ProfileEditor
	telemetry ports.Telemetry
	reporter  ports.Reporter
	logger    ports.Logger
	now       func() time.Time
}

// NewSequencer creates a new Sequencer.
func NewSequencer(
	runner ports.CommandRunner,
	publisher ports.Publisher,
	profiles ports.ProfileEditor,
	telemetry ports.Telemetry,
	reporter ports.Reporter,
	logger ports.Logger,
) *Sequencer {
	return &Sequencer{
		runner:    runner,
		publisher: publisher,
		profiles:  profiles,
		telemetry: telemetry,
		reporter:  reporter,
		logger:    logger,
		now:       time.Now,
	}
}

// stepFunc performs the work of one step once it is known to apply.
type stepFunc func(ctx context.Context, vertex ports.Vertex) domain.StepOutcome

type pendingStep struct {
	id      string
	applies bool
	run     stepFunc
}

// Run executes seq on platform and returns the ordered report.
//
// On an unsupported platform no step is attempted. Otherwise each step is
// executed in order; a skipped step never halts the sequence, a failed one
// always does. Cancellation of ctx is honoured between steps only.
func (s *Sequencer) Run(
	ctx context.Context,
	seq *domain.StepSequence,
	platform domain.Platform,
	opts Options,
) *domain.SequenceReport {
	steps := make([]pendingStep, len(seq.Steps))
	for i := range seq.Steps {
		step := &seq.Steps[i]
		steps[i] = pendingStep{
			id:      step.ID,
			applies: step.AppliesTo(platform),
			run: func(ctx context.Context, vertex ports.Vertex) domain.StepOutcome {
				return s.execute(ctx, step, vertex, opts.Force)
			},
		}
	}
	return s.runSteps(ctx, seq.Name, platform, steps)
}

// Publish runs the build-and-link pipeline for target.
//
// The build is never pre-checked: an existing link does not mean the
// artifact is current. The link step only runs after a successful build.
func (s *Sequencer) Publish(
	ctx context.Context,
	target *domain.PublishTarget,
	platform domain.Platform,
) *domain.SequenceReport {
	build := &domain.InstallStep{ID: domain.BuildStepID, Commands: []domain.CommandSpec{target.Build}}

	steps := []pendingStep{
		{
			id:      domain.BuildStepID,
			applies: true,
			run: func(ctx context.Context, vertex ports.Vertex) domain.StepOutcome {
				return s.execute(ctx, build, vertex, true)
			},
		},
		{
			id:      domain.LinkStepID,
			applies: true,
			run: func(ctx context.Context, _ ports.Vertex) domain.StepOutcome {
				return s.link(ctx, target)
			},
		},
	}
	return s.runSteps(ctx, domain.PublishSequence, platform, steps)
}

func (s *Sequencer) runSteps(
	ctx context.Context,
	name string,
	platform domain.Platform,
	steps []pendingStep,
) *domain.SequenceReport {
	report := &domain.SequenceReport{Sequence: name, Platform: platform}

	s.reporter.OnSequenceStart(name, platform)
	defer s.reporter.OnSequenceComplete(report)

	if !platform.Supported() {
		report.Err = domain.ErrUnsupportedPlatform
		return report
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			report.Err = errors.Join(domain.ErrSequenceInterrupted, zerr.With(err, "next_step", step.id))
			return report
		}

		outcome := s.track(ctx, name, step)
		report.Outcomes = append(report.Outcomes, domain.StepResult{StepID: step.id, Outcome: outcome})

		if outcome.Status == domain.StepFailed {
			cause := zerr.With(zerr.Wrap(outcome.Err, fmt.Sprintf("step %q failed", step.id)), "sequence", name)
			report.Err = errors.Join(domain.ErrSequenceFailed, cause)
			return report
		}
	}

	return report
}

// track wraps a step with reporting and telemetry.
func (s *Sequencer) track(ctx context.Context, sequence string, step pendingStep) domain.StepOutcome {
	if !step.applies {
		outcome := domain.Skipped(domain.SkipPlatformMismatch)
		s.reporter.OnStepComplete(step.id, outcome)
		return outcome
	}

	s.reporter.OnStepStart(step.id)
	ctx, vertex := s.telemetry.Record(ctx, sequence+"/"+step.id)

	start := s.now()
	outcome := step.run(ctx, vertex)
	outcome.Duration = s.now().Sub(start)

	if outcome.Status == domain.StepSkipped {
		vertex.Cached()
	}
	vertex.Complete(outcome.Err)
	s.reporter.OnStepComplete(step.id, outcome)

	return outcome
}

// execute runs an applicable step: pre-check, commands, then profile line.
func (s *Sequencer) execute(
	ctx context.Context,
	step *domain.InstallStep,
	vertex ports.Vertex,
	force bool,
) domain.StepOutcome {
	if step.Check != nil && !force && s.installed(ctx, step, vertex) {
		return domain.Skipped(domain.SkipAlreadyInstalled)
	}

	out := s.reporter.StepOutput(step.ID)
	stdout := io.MultiWriter(out, vertex.Stdout())
	stderr := io.MultiWriter(out, vertex.Stderr())

	for _, cmd := range step.Commands {
		if err := s.run(ctx, cmd, stdout, stderr); err != nil {
			return domain.Failed(err)
		}
	}

	if step.Profile != nil {
		if err := s.profiles.EnsureLine(step.Profile.File, step.Profile.Line); err != nil {
			return domain.Failed(err)
		}
		vertex.Log(domain.LogLevelInfo, "updated "+step.Profile.File)
	}

	outcome := domain.Succeeded()
	outcome.Notes = step.Notes
	return outcome
}

// installed runs a pre-check. A check that cannot start counts as "not installed".
func (s *Sequencer) installed(ctx context.Context, step *domain.InstallStep, vertex ports.Vertex) bool {
	result, err := s.runner.Run(ctx, *step.Check, vertex.Stdout(), vertex.Stderr())
	if err != nil {
		msg := fmt.Sprintf("pre-check for %q could not start, running the step: %v", step.ID, err)
		vertex.Log(domain.LogLevelInfo, msg)
		s.logger.Info(msg)
		return false
	}
	return result.Success
}

func (s *Sequencer) run(ctx context.Context, cmd domain.CommandSpec, stdout, stderr io.Writer) error {
	result, err := s.runner.Run(ctx, cmd, stdout, stderr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "cannot start command"), "command", cmd.String())
	}

	switch {
	case result.TimedOut:
		return commandError(domain.ErrCommandTimeout, fmt.Sprintf("%s killed after %s", cmd, cmd.Timeout), result)
	case !result.Success:
		return commandError(domain.ErrNonZeroExit, fmt.Sprintf("%s exited with code %d", cmd, result.ExitCode), result)
	}
	return nil
}

func commandError(kind error, msg string, result domain.CommandResult) error {
	if tail := tailLines(result.Stderr, stderrTailLines); tail != "" {
		msg += "\n" + tail
	}
	detail := zerr.With(zerr.New(msg), "exit_code", result.ExitCode)
	return errors.Join(kind, detail)
}

// tailLines returns at most n trailing non-empty lines of s.
func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// link verifies the artifact and points the install link at it.
func (s *Sequencer) link(ctx context.Context, target *domain.PublishTarget) domain.StepOutcome {
	artifact := target.ArtifactPath()

	if err := s.publisher.VerifyArtifact(artifact); err != nil {
		return domain.Failed(err)
	}
	if err := s.publisher.EnsureDir(ctx, target.InstallDir, target.Elevation); err != nil {
		return domain.Failed(err)
	}
	if err := s.publisher.Link(ctx, artifact, target.LinkPath(), target.Elevation); err != nil {
		return domain.Failed(err)
	}

	outcome := domain.Succeeded()
	outcome.Notes = fmt.Sprintf("%s is now available as %s", target.LinkName, target.LinkPath())
	return outcome
}
