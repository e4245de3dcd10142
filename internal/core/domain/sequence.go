package domain

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// StepSequence is an ordered, fail-fast list of steps for one installation
// target.
type StepSequence struct {
	Name        string
	Description string
	Steps       []InstallStep
}

// Fingerprint returns a stable digest of the sequence's rendered definition.
// It changes whenever a step label, platform scope, or command line changes.
func (s *StepSequence) Fingerprint() string {
	d := xxhash.New()
	write := func(v string) {
		_, _ = d.WriteString(v)
		_, _ = d.Write([]byte{0})
	}

	write(s.Name)
	for i := range s.Steps {
		step := &s.Steps[i]
		write(step.ID)
		for _, p := range step.Platforms {
			write(p.String())
		}
		if step.Check != nil {
			write("check:" + step.Check.String())
		}
		for _, cmd := range step.Commands {
			write(cmd.String())
		}
		if step.Profile != nil {
			write(step.Profile.File + ":" + step.Profile.Line)
		}
	}

	return strconv.FormatUint(d.Sum64(), 16)
}

// SequenceReport is the ordered record of a sequence run.
type SequenceReport struct {
	Sequence string
	Platform Platform
	Outcomes []StepResult
	// Err is nil when every recorded step was skipped or succeeded.
	Err error
}

// Succeeded reports whether the sequence ran to completion.
func (r *SequenceReport) Succeeded() bool {
	return r.Err == nil
}

// FailedStep returns the identifier of the step that halted the sequence, if any.
func (r *SequenceReport) FailedStep() (string, bool) {
	for _, res := range r.Outcomes {
		if res.Outcome.Status == StepFailed {
			return res.StepID, true
		}
	}
	return "", false
}

// Executed returns the number of steps that ran install commands.
func (r *SequenceReport) Executed() int {
	n := 0
	for _, res := range r.Outcomes {
		if res.Outcome.Status != StepSkipped {
			n++
		}
	}
	return n
}
