package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/chargeup/internal/core/domain"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in     string
		want   domain.Platform
		wantOK bool
	}{
		{"linux", domain.Linux, true},
		{"Linux", domain.Linux, true},
		{"macos", domain.MacOS, true},
		{"darwin", domain.MacOS, true},
		{" MacOS ", domain.MacOS, true},
		{"windows", domain.Unsupported, false},
		{"", domain.Unsupported, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := domain.ParsePlatform(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestPlatform_String(t *testing.T) {
	assert.Equal(t, "linux", domain.Linux.String())
	assert.Equal(t, "macos", domain.MacOS.String())
	assert.Equal(t, "unsupported", domain.Unsupported.String())
	assert.False(t, domain.Unsupported.Supported())
}

func TestInstallStep_AppliesTo(t *testing.T) {
	linuxOnly := domain.InstallStep{ID: "gdb", Platforms: []domain.Platform{domain.Linux}}
	everywhere := domain.InstallStep{ID: "rustup"}

	assert.True(t, linuxOnly.AppliesTo(domain.Linux))
	assert.False(t, linuxOnly.AppliesTo(domain.MacOS))
	assert.False(t, linuxOnly.AppliesTo(domain.Unsupported))

	assert.True(t, everywhere.AppliesTo(domain.Linux))
	assert.True(t, everywhere.AppliesTo(domain.MacOS))
	assert.False(t, everywhere.AppliesTo(domain.Unsupported), "unsupported hosts never run steps")
}

func TestCommandSpec_String(t *testing.T) {
	spec := domain.CommandSpec{
		Argv:    []string{"sh", "-c", "curl -sSf https://sh.rustup.rs | sh"},
		Elevate: true,
	}
	assert.Equal(t, "sudo sh -c 'curl -sSf https://sh.rustup.rs | sh'", spec.String())
	assert.Equal(t, "sh", spec.Name())
	assert.Empty(t, domain.CommandSpec{}.Name())
}

func TestStepSequence_Fingerprint(t *testing.T) {
	seq := func(arg string) *domain.StepSequence {
		return &domain.StepSequence{
			Name: "debugger",
			Steps: []domain.InstallStep{{
				ID:       "install gdb",
				Commands: []domain.CommandSpec{{Argv: []string{"apt-get", "install", arg}}},
			}},
		}
	}

	assert.Equal(t, seq("gdb").Fingerprint(), seq("gdb").Fingerprint())
	assert.NotEqual(t, seq("gdb").Fingerprint(), seq("lldb").Fingerprint())
}

func TestSequenceReport(t *testing.T) {
	boom := errors.New("boom")
	report := domain.SequenceReport{
		Sequence: "llvm",
		Platform: domain.Linux,
		Outcomes: []domain.StepResult{
			{StepID: "update", Outcome: domain.Skipped(domain.SkipAlreadyInstalled)},
			{StepID: "install", Outcome: domain.Succeeded()},
			{StepID: "script", Outcome: domain.Failed(boom)},
		},
		Err: domain.ErrSequenceFailed,
	}

	assert.False(t, report.Succeeded())
	step, ok := report.FailedStep()
	require.True(t, ok)
	assert.Equal(t, "script", step)
	assert.Equal(t, 2, report.Executed())

	receipt := domain.NewReceipt(&report, "abc", time.Unix(0, 0))
	assert.False(t, receipt.Succeeded)
	assert.Equal(t, "script", receipt.FailedStep)
	assert.Equal(t, "linux", receipt.Platform)
	require.Len(t, receipt.Steps, 3)
	assert.Equal(t, "already installed", receipt.Steps[0].Detail)
	assert.Equal(t, "boom", receipt.Steps[2].Detail)
}

func TestPublishTarget_Paths(t *testing.T) {
	target := domain.PublishTarget{
		ProjectRoot: "/src/charge",
		Artifact:    "target/release/compiler_core",
		InstallDir:  "/usr/local/bin",
		LinkName:    "charge",
	}
	assert.Equal(t, "/src/charge/target/release/compiler_core", target.ArtifactPath())
	assert.Equal(t, "/usr/local/bin/charge", target.LinkPath())

	target.Artifact = "/opt/charge/bin/../compiler_core"
	assert.Equal(t, "/opt/charge/compiler_core", target.ArtifactPath())
}

func TestParseElevation(t *testing.T) {
	e, ok := domain.ParseElevation("")
	assert.True(t, ok)
	assert.Equal(t, domain.ElevateAuto, e)

	e, ok = domain.ParseElevation("Never")
	assert.True(t, ok)
	assert.Equal(t, domain.ElevateNever, e)

	_, ok = domain.ParseElevation("sometimes")
	assert.False(t, ok)
}

func TestPlanSequence(t *testing.T) {
	seq := &domain.StepSequence{
		Name: "profiler",
		Steps: []domain.InstallStep{
			{ID: "perf", Platforms: []domain.Platform{domain.Linux}},
			{ID: "instruments", Platforms: []domain.Platform{domain.MacOS}},
		},
	}

	plan := domain.PlanSequence(seq, domain.MacOS)
	require.Len(t, plan.Steps, 2)
	assert.False(t, plan.Steps[0].Applies)
	assert.True(t, plan.Steps[1].Applies)

	assert.Empty(t, domain.PlanSequence(seq, domain.Unsupported).Steps)
}

func TestManifest_Sequence(t *testing.T) {
	m := domain.Manifest{Sequences: []domain.StepSequence{{Name: "llvm"}, {Name: "rust"}}}

	seq, ok := m.Sequence("rust")
	require.True(t, ok)
	assert.Equal(t, "rust", seq.Name)

	_, ok = m.Sequence("go")
	assert.False(t, ok)
	assert.Equal(t, []string{"llvm", "rust"}, m.SequenceNames())
}

func TestPlanPublish(t *testing.T) {
	target := &domain.PublishTarget{
		ProjectRoot: "/src/charge",
		Build:       domain.CommandSpec{Argv: []string{"cargo", "build", "--release"}},
		Artifact:    "target/release/compiler_core",
		InstallDir:  "/usr/local/bin",
		LinkName:    "charge",
	}

	plan := domain.PlanPublish(target, domain.Linux)
	assert.Equal(t, domain.PublishSequence, plan.Sequence)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, domain.BuildStepID, plan.Steps[0].StepID)
	assert.Equal(t, "cargo build --release", plan.Steps[0].Commands[0].String())
	assert.Equal(t,
		"ln -sfn /src/charge/target/release/compiler_core /usr/local/bin/charge",
		plan.Steps[1].Commands[1].String(),
	)

	assert.Empty(t, domain.PlanPublish(target, domain.Unsupported).Steps)
}

func TestPublishTarget_Fingerprint(t *testing.T) {
	target := func(link string) *domain.PublishTarget {
		return &domain.PublishTarget{
			ProjectRoot: "/src/charge",
			Build:       domain.CommandSpec{Argv: []string{"cargo", "build", "--release"}},
			Artifact:    "target/release/compiler_core",
			InstallDir:  "/usr/local/bin",
			LinkName:    link,
		}
	}

	assert.Equal(t, target("charge").Fingerprint(), target("charge").Fingerprint())
	assert.NotEqual(t, target("charge").Fingerprint(), target("chg").Fingerprint())
}
