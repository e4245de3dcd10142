package domain

// PlannedStep is what a dry run reports for a single step.
type PlannedStep struct {
	StepID   string
	Applies  bool
	Check    *CommandSpec
	Commands []CommandSpec
	Profile  *ProfileLine
}

// Plan lists the steps a sequence would execute on a platform.
type Plan struct {
	Sequence string
	Platform Platform
	Steps    []PlannedStep
}

// PlanSequence builds the dry-run plan of seq on p without running anything.
func PlanSequence(seq *StepSequence, p Platform) Plan {
	plan := Plan{Sequence: seq.Name, Platform: p}
	if !p.Supported() {
		return plan
	}
	for i := range seq.Steps {
		step := &seq.Steps[i]
		plan.Steps = append(plan.Steps, PlannedStep{
			StepID:   step.ID,
			Applies:  step.AppliesTo(p),
			Check:    step.Check,
			Commands: step.Commands,
			Profile:  step.Profile,
		})
	}
	return plan
}

// Names used for the build-and-link pipeline in reports and receipts.
const (
	PublishSequence = "publish"
	BuildStepID     = "build"
	LinkStepID      = "link"
)

// PlanPublish builds the dry-run plan of the build-and-link pipeline.
func PlanPublish(target *PublishTarget, p Platform) Plan {
	plan := Plan{Sequence: PublishSequence, Platform: p}
	if !p.Supported() {
		return plan
	}
	plan.Steps = []PlannedStep{
		{
			StepID:   BuildStepID,
			Applies:  true,
			Commands: []CommandSpec{target.Build},
		},
		{
			StepID:  LinkStepID,
			Applies: true,
			Commands: []CommandSpec{
				{Argv: []string{"mkdir", "-p", target.InstallDir}},
				{Argv: []string{"ln", "-sfn", target.ArtifactPath(), target.LinkPath()}},
			},
		},
	}
	return plan
}
