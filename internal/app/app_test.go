package app_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/chargeup/internal/adapters/linear"
	"go.trai.ch/chargeup/internal/app"
	"go.trai.ch/chargeup/internal/core/domain"
	"go.trai.ch/chargeup/internal/core/ports"
	"go.trai.ch/chargeup/internal/core/ports/mocks"
	"go.trai.ch/chargeup/internal/engine/sequencer"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	loader    *mocks.MockConfigLoader
	detector  *mocks.MockPlatformDetector
	runner    *mocks.MockCommandRunner
	publisher *mocks.MockPublisher
	store     *mocks.MockReceiptStore
	journal   *mocks.MockRunJournal
	reporter  *mocks.MockReporter
	logger    *mocks.MockLogger
	app       *app.App
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		loader:    mocks.NewMockConfigLoader(ctrl),
		detector:  mocks.NewMockPlatformDetector(ctrl),
		runner:    mocks.NewMockCommandRunner(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		store:     mocks.NewMockReceiptStore(ctrl),
		journal:   mocks.NewMockRunJournal(ctrl),
		reporter:  mocks.NewMockReporter(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}

	telemetry := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)
	telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, vertex
		}).AnyTimes()
	vertex.EXPECT().Stdout().Return(io.Discard).AnyTimes()
	vertex.EXPECT().Stderr().Return(io.Discard).AnyTimes()
	vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	vertex.EXPECT().Cached().AnyTimes()

	h.reporter.EXPECT().OnSequenceStart(gomock.Any(), gomock.Any()).AnyTimes()
	h.reporter.EXPECT().OnStepStart(gomock.Any()).AnyTimes()
	h.reporter.EXPECT().StepOutput(gomock.Any()).Return(io.Discard).AnyTimes()
	h.reporter.EXPECT().OnStepComplete(gomock.Any(), gomock.Any()).AnyTimes()
	h.reporter.EXPECT().OnSequenceComplete(gomock.Any()).AnyTimes()

	seq := sequencer.NewSequencer(h.runner, h.publisher, mocks.NewMockProfileEditor(ctrl), telemetry, h.reporter, h.logger)
	h.app = app.New(h.loader, h.detector, seq, h.store, h.journal, h.reporter, h.logger).
		WithClock(func() time.Time { return fixedNow })
	return h
}

func testManifest() *domain.Manifest {
	return &domain.Manifest{
		Source: "/src/charge/chargeup.yaml",
		Sequences: []domain.StepSequence{
			{
				Name: "debugger",
				Steps: []domain.InstallStep{
					{ID: "install GDB", Platforms: []domain.Platform{domain.Linux}, Commands: []domain.CommandSpec{{Argv: []string{"apt-get", "install", "-y", "gdb"}}}},
					{ID: "verify LLDB", Platforms: []domain.Platform{domain.MacOS}, Commands: []domain.CommandSpec{{Argv: []string{"lldb", "--version"}}}},
				},
			},
			{
				Name:  "rust",
				Steps: []domain.InstallStep{{ID: "install rustup", Commands: []domain.CommandSpec{{Argv: []string{"sh", "-c", "curl | sh"}}}}},
			},
		},
		Publish: &domain.PublishTarget{
			ProjectRoot: "/src/charge",
			Build:       domain.CommandSpec{Argv: []string{"cargo", "build", "--release"}, Dir: "/src/charge"},
			Artifact:    "target/release/compiler_core",
			InstallDir:  "/usr/local/bin",
			LinkName:    "charge",
			Elevation:   domain.ElevateAuto,
		},
	}
}

func okResult() domain.CommandResult {
	return domain.CommandResult{Success: true}
}

func TestApp_Install(t *testing.T) {
	h := newHarness(t)
	m := testManifest()

	h.loader.EXPECT().Load("", "/src/charge").Return(m, nil)
	h.detector.EXPECT().Detect().Return(domain.Linux)

	var receipts []domain.Receipt
	gomock.InOrder(
		h.runner.EXPECT().Run(gomock.Any(), m.Sequences[1].Steps[0].Commands[0], gomock.Any(), gomock.Any()).Return(okResult(), nil),
		h.store.EXPECT().Put(gomock.Any()).DoAndReturn(func(r domain.Receipt) error {
			receipts = append(receipts, r)
			return nil
		}),
		h.runner.EXPECT().Run(gomock.Any(), m.Sequences[0].Steps[0].Commands[0], gomock.Any(), gomock.Any()).Return(okResult(), nil),
		h.store.EXPECT().Put(gomock.Any()).DoAndReturn(func(r domain.Receipt) error {
			receipts = append(receipts, r)
			return nil
		}),
	)

	err := h.app.Install(t.Context(), []string{"rust", "debugger"}, app.InstallOptions{
		ConfigOptions: app.ConfigOptions{ProjectRoot: "/src/charge"},
	})
	require.NoError(t, err)

	require.Len(t, receipts, 2)
	assert.Equal(t, "rust", receipts[0].Sequence)
	assert.True(t, receipts[0].Succeeded)
	assert.Equal(t, m.Sequences[1].Fingerprint(), receipts[0].Fingerprint)
	assert.Equal(t, fixedNow, receipts[0].Timestamp)
	assert.Equal(t, "debugger", receipts[1].Sequence)
	assert.Equal(t, "linux", receipts[1].Platform)
}

func TestApp_Install_All(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(testManifest(), nil)
	h.detector.EXPECT().Detect().Return(domain.MacOS)
	h.runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(okResult(), nil).Times(2)
	h.store.EXPECT().Put(gomock.Any()).Return(nil).Times(2)

	err := h.app.Install(t.Context(), nil, app.InstallOptions{All: true})
	require.NoError(t, err)
}

func TestApp_Install_Errors(t *testing.T) {
	t.Run("no sequences", func(t *testing.T) {
		h := newHarness(t)
		h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(testManifest(), nil)

		err := h.app.Install(t.Context(), nil, app.InstallOptions{})
		require.ErrorIs(t, err, domain.ErrNoSequencesSpecified)
	})

	t.Run("unknown sequence runs nothing", func(t *testing.T) {
		h := newHarness(t)
		h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(testManifest(), nil)

		err := h.app.Install(t.Context(), []string{"rust", "go"}, app.InstallOptions{})
		require.ErrorIs(t, err, domain.ErrSequenceNotFound)
		assert.Contains(t, err.Error(), `unknown sequence "go" (available: debugger, rust)`)
		assert.False(t, app.Reported(err))
	})

	t.Run("config failure", func(t *testing.T) {
		h := newHarness(t)
		h.loader.EXPECT().Load("broken.yaml", "").Return(nil, domain.ErrConfigParseFailed)

		err := h.app.Install(t.Context(), []string{"rust"}, app.InstallOptions{
			ConfigOptions: app.ConfigOptions{ConfigPath: "broken.yaml"},
		})
		require.ErrorIs(t, err, domain.ErrConfigParseFailed)
		assert.Contains(t, err.Error(), "failed to load configuration")
	})
}

func TestApp_Install_StopsAtFailedSequence(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(testManifest(), nil)
	h.detector.EXPECT().Detect().Return(domain.Linux)

	h.runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.CommandResult{ExitCode: 100, Stderr: "E: Unable to locate package gdb"}, nil)
	h.store.EXPECT().Put(gomock.Any()).DoAndReturn(func(r domain.Receipt) error {
		assert.Equal(t, "debugger", r.Sequence)
		assert.False(t, r.Succeeded)
		assert.Equal(t, "install GDB", r.FailedStep)
		return nil
	})

	err := h.app.Install(t.Context(), []string{"debugger", "rust"}, app.InstallOptions{})
	require.ErrorIs(t, err, domain.ErrSequenceFailed)
	assert.True(t, app.Reported(err))
}

func TestApp_Install_UnsupportedPlatform(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(testManifest(), nil)
	h.detector.EXPECT().Detect().Return(domain.Unsupported)

	err := h.app.Install(t.Context(), []string{"rust"}, app.InstallOptions{})
	require.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
	assert.True(t, app.Reported(err))
}

func TestApp_Install_ReceiptFailureIsAWarning(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(testManifest(), nil)
	h.detector.EXPECT().Detect().Return(domain.Linux)
	h.runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(okResult(), nil)
	h.store.EXPECT().Put(gomock.Any()).Return(domain.ErrStoreWriteFailed)
	h.logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "could not record the rust run")
	})

	err := h.app.Install(t.Context(), []string{"rust"}, app.InstallOptions{})
	require.NoError(t, err)
}

func TestApp_Install_DryRun(t *testing.T) {
	t.Run("prints plans only", func(t *testing.T) {
		h := newHarness(t)
		h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(testManifest(), nil)
		h.detector.EXPECT().Detect().Return(domain.MacOS)

		var plans []string
		h.reporter.EXPECT().OnPlan(gomock.Any()).Do(func(p *domain.Plan) {
			plans = append(plans, p.Sequence)
			assert.Equal(t, domain.MacOS, p.Platform)
		}).Times(2)

		err := h.app.Install(t.Context(), []string{"debugger", "rust"}, app.InstallOptions{DryRun: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"debugger", "rust"}, plans)
	})

	t.Run("unsupported platform", func(t *testing.T) {
		h := newHarness(t)
		h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(testManifest(), nil)
		h.detector.EXPECT().Detect().Return(domain.Unsupported)
		h.reporter.EXPECT().OnPlan(gomock.Any())

		err := h.app.Install(t.Context(), []string{"rust"}, app.InstallOptions{DryRun: true})
		require.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
	})
}

func TestApp_Publish(t *testing.T) {
	t.Run("builds and links", func(t *testing.T) {
		h := newHarness(t)
		m := testManifest()
		h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(m, nil)
		h.detector.EXPECT().Detect().Return(domain.Linux)
		h.runner.EXPECT().Run(gomock.Any(), m.Publish.Build, gomock.Any(), gomock.Any()).Return(okResult(), nil)
		h.publisher.EXPECT().VerifyArtifact("/src/charge/target/release/compiler_core").Return(nil)
		h.publisher.EXPECT().EnsureDir(gomock.Any(), "/usr/local/bin", domain.ElevateAuto).Return(nil)
		h.publisher.EXPECT().Link(gomock.Any(), gomock.Any(), "/usr/local/bin/charge", domain.ElevateAuto).Return(nil)
		h.store.EXPECT().Put(gomock.Any()).DoAndReturn(func(r domain.Receipt) error {
			assert.Equal(t, domain.PublishSequence, r.Sequence)
			assert.Equal(t, m.Publish.Fingerprint(), r.Fingerprint)
			assert.True(t, r.Succeeded)
			return nil
		})

		require.NoError(t, h.app.Publish(t.Context(), app.PublishOptions{}))
	})

	t.Run("build failure", func(t *testing.T) {
		h := newHarness(t)
		h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(testManifest(), nil)
		h.detector.EXPECT().Detect().Return(domain.Linux)
		h.runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.CommandResult{ExitCode: 101}, nil)
		h.store.EXPECT().Put(gomock.Any()).Return(nil)

		err := h.app.Publish(t.Context(), app.PublishOptions{})
		require.ErrorIs(t, err, domain.ErrSequenceFailed)
	})

	t.Run("no publish section", func(t *testing.T) {
		h := newHarness(t)
		m := testManifest()
		m.Publish = nil
		h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(m, nil)

		err := h.app.Publish(t.Context(), app.PublishOptions{})
		require.ErrorIs(t, err, domain.ErrNoPublishTarget)
	})

	t.Run("dry run", func(t *testing.T) {
		h := newHarness(t)
		h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(testManifest(), nil)
		h.detector.EXPECT().Detect().Return(domain.Linux)
		h.reporter.EXPECT().OnPlan(gomock.Any()).Do(func(p *domain.Plan) {
			require.Len(t, p.Steps, 2)
			assert.Equal(t, domain.BuildStepID, p.Steps[0].StepID)
		})

		require.NoError(t, h.app.Publish(t.Context(), app.PublishOptions{DryRun: true}))
	})
}

func TestApp_List(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(testManifest(), nil)
	h.detector.EXPECT().Detect().Return(domain.Linux)

	catalog, err := h.app.List(t.Context(), app.ConfigOptions{})
	require.NoError(t, err)

	assert.Equal(t, "/src/charge/chargeup.yaml", catalog.Source)
	assert.Equal(t, domain.Linux, catalog.Platform)
	require.Len(t, catalog.Sequences, 2)
	assert.Equal(t, app.SequenceSummary{Name: "debugger", Steps: 2, Applicable: 1}, catalog.Sequences[0])
	assert.Equal(t, 1, catalog.Sequences[1].Applicable)
	require.NotNil(t, catalog.Publish)
}

func TestApp_Platform(t *testing.T) {
	h := newHarness(t)
	h.detector.EXPECT().Detect().Return(domain.Linux)
	h.detector.EXPECT().KernelRelease().Return("6.8.0-45-generic")

	info := h.app.Platform(t.Context())
	assert.Equal(t, domain.Linux, info.Platform)
	assert.Equal(t, "6.8.0-45-generic", info.KernelRelease)
	assert.NotEmpty(t, info.OS)
}

func TestApp_Status(t *testing.T) {
	h := newHarness(t)
	m := testManifest()
	h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(m, nil)
	h.store.EXPECT().List().Return([]domain.Receipt{
		{Sequence: "debugger", Fingerprint: "stale", Succeeded: true},
		{Sequence: "llvm", Succeeded: false, FailedStep: "install LLVM"},
		{Sequence: "rust", Fingerprint: m.Sequences[1].Fingerprint(), Succeeded: true},
	}, nil)

	statuses, err := h.app.Status(t.Context(), app.ConfigOptions{})
	require.NoError(t, err)
	require.Len(t, statuses, 4)

	assert.Equal(t, "debugger", statuses[0].Name)
	assert.True(t, statuses[0].Changed)
	assert.Equal(t, "rust", statuses[1].Name)
	assert.False(t, statuses[1].Changed)
	assert.Equal(t, domain.PublishSequence, statuses[2].Name)
	assert.Nil(t, statuses[2].Receipt)
	assert.Equal(t, "llvm", statuses[3].Name)
	assert.True(t, statuses[3].Undeclared)
}

func TestApp_Status_StoreError(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(testManifest(), nil)
	h.store.EXPECT().List().Return(nil, domain.ErrStoreReadFailed)

	_, err := h.app.Status(t.Context(), app.ConfigOptions{})
	require.ErrorIs(t, err, domain.ErrStoreReadFailed)
}

func TestApp_Log(t *testing.T) {
	steps := []domain.StepLog{
		{Name: "llvm/refresh package index", Output: "Hit:1\n"},
		{Name: "llvm/install LLVM via apt.llvm.org", Err: "exit status 1"},
		{Name: "rust/install rustup", Cached: true},
	}

	tests := []struct {
		name  string
		names []string
		want  []string
	}{
		{"everything", nil, []string{"llvm/refresh package index", "llvm/install LLVM via apt.llvm.org", "rust/install rustup"}},
		{"by sequence", []string{"llvm"}, []string{"llvm/refresh package index", "llvm/install LLVM via apt.llvm.org"}},
		{"by step", []string{"rust/install rustup"}, []string{"rust/install rustup"}},
		{"unknown", []string{"debugger"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.journal.EXPECT().Steps().Return(steps, nil)

			got, err := h.app.Log(t.Context(), tt.names)
			require.NoError(t, err)

			var names []string
			for _, s := range got {
				names = append(names, s.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}

	t.Run("read error", func(t *testing.T) {
		h := newHarness(t)
		h.journal.EXPECT().Steps().Return(nil, domain.ErrJournalReadFailed)

		_, err := h.app.Log(t.Context(), nil)
		require.ErrorIs(t, err, domain.ErrJournalReadFailed)
	})
}

func TestApp_SetVerbose(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := linear.NewReporter(io.Discard, io.Discard)
	a := app.New(nil, nil, nil, nil, nil, reporter, mocks.NewMockLogger(ctrl))

	a.SetVerbose(true)
	assert.NotEqual(t, io.Discard, reporter.StepOutput("x"))
}

func TestApp_SetLogFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := app.New(nil, nil, nil, nil, nil, mocks.NewMockReporter(ctrl), mocks.NewMockLogger(ctrl))

	require.NoError(t, a.SetLogFormat("json"), "loggers without format support ignore the setting")
}

func TestReported(t *testing.T) {
	assert.True(t, app.Reported(errors.Join(domain.ErrSequenceInterrupted, context.Canceled)))
	assert.False(t, app.Reported(domain.ErrNoPublishTarget))
	assert.False(t, app.Reported(nil))
}
