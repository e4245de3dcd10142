// Package app implements the application layer for chargeup.
package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"go.trai.ch/chargeup/internal/core/domain"
	"go.trai.ch/chargeup/internal/core/ports"
	"go.trai.ch/chargeup/internal/engine/sequencer"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	detector     ports.PlatformDetector
	sequencer    *sequencer.Sequencer
	store        ports.ReceiptStore
	journal      ports.RunJournal
	reporter     ports.Reporter
	logger       ports.Logger
	now          func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	detector ports.PlatformDetector,
	seq *sequencer.Sequencer,
	store ports.ReceiptStore,
	journal ports.RunJournal,
	reporter ports.Reporter,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		detector:     detector,
		sequencer:    seq,
		store:        store,
		journal:      journal,
		reporter:     reporter,
		logger:       log,
		now:          time.Now,
	}
}

// ConfigOptions selects the manifest a command operates on.
type ConfigOptions struct {
	// ConfigPath is the manifest file. Empty means chargeup.yaml in the
	// project root, or the built-in manifest when that does not exist.
	ConfigPath string
	// ProjectRoot is the directory templates and relative paths resolve against.
	ProjectRoot string
}

// InstallOptions configuration for the Install method.
type InstallOptions struct {
	ConfigOptions
	All    bool
	DryRun bool
	Force  bool
}

// PublishOptions configuration for the Publish method.
type PublishOptions struct {
	ConfigOptions
	DryRun bool
}

// SetLogFormat switches the log output format when the logger supports it.
func (a *App) SetLogFormat(format string) error {
	if f, ok := a.logger.(interface{ SetFormat(string) error }); ok {
		return f.SetFormat(format)
	}
	return nil
}

// SetVerbose enables streaming of command output when the reporter supports it.
func (a *App) SetVerbose(verbose bool) {
	if v, ok := a.reporter.(interface{ SetVerbose(bool) }); ok {
		v.SetVerbose(verbose)
	}
}

func (a *App) load(opts ConfigOptions) (*domain.Manifest, error) {
	manifest, err := a.configLoader.Load(opts.ConfigPath, opts.ProjectRoot)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return manifest, nil
}

// Install runs the named sequences in order. Sequences are resolved before
// anything runs, so an unknown name never leaves a partial installation.
// The first sequence that does not succeed stops the run.
func (a *App) Install(ctx context.Context, names []string, opts InstallOptions) error {
	manifest, err := a.load(opts.ConfigOptions)
	if err != nil {
		return err
	}

	if opts.All {
		names = manifest.SequenceNames()
	}
	if len(names) == 0 {
		return domain.ErrNoSequencesSpecified
	}

	sequences := make([]*domain.StepSequence, 0, len(names))
	for _, name := range names {
		seq, ok := manifest.Sequence(name)
		if !ok {
			msg := fmt.Sprintf("unknown sequence %q (available: %s)", name, strings.Join(manifest.SequenceNames(), ", "))
			return zerr.With(zerr.Wrap(domain.ErrSequenceNotFound, msg), "source", manifest.Source)
		}
		sequences = append(sequences, seq)
	}

	platform := a.detector.Detect()

	if opts.DryRun {
		for _, seq := range sequences {
			plan := domain.PlanSequence(seq, platform)
			a.reporter.OnPlan(&plan)
		}
		if !platform.Supported() {
			return domain.ErrUnsupportedPlatform
		}
		return nil
	}

	for _, seq := range sequences {
		report := a.sequencer.Run(ctx, seq, platform, sequencer.Options{Force: opts.Force})
		a.saveReceipt(report, seq.Fingerprint())
		if report.Err != nil {
			return report.Err
		}
	}
	return nil
}

// Publish runs the build-and-link pipeline declared in the manifest.
func (a *App) Publish(ctx context.Context, opts PublishOptions) error {
	manifest, err := a.load(opts.ConfigOptions)
	if err != nil {
		return err
	}
	if manifest.Publish == nil {
		return zerr.With(zerr.Wrap(domain.ErrNoPublishTarget, "nothing to publish"), "source", manifest.Source)
	}

	platform := a.detector.Detect()

	if opts.DryRun {
		plan := domain.PlanPublish(manifest.Publish, platform)
		a.reporter.OnPlan(&plan)
		if !platform.Supported() {
			return domain.ErrUnsupportedPlatform
		}
		return nil
	}

	report := a.sequencer.Publish(ctx, manifest.Publish, platform)
	a.saveReceipt(report, manifest.Publish.Fingerprint())
	return report.Err
}

// saveReceipt persists the outcome of a run. Failing to record a receipt
// never changes the outcome of the run itself.
func (a *App) saveReceipt(report *domain.SequenceReport, fingerprint string) {
	if !report.Platform.Supported() || len(report.Outcomes) == 0 {
		return
	}
	if err := a.store.Put(domain.NewReceipt(report, fingerprint, a.now())); err != nil {
		a.logger.Warn(fmt.Sprintf("could not record the %s run: %v", report.Sequence, err))
	}
}

// SequenceSummary describes a declared sequence on the current host.
type SequenceSummary struct {
	Name        string
	Description string
	Steps       int
	// Applicable is the number of steps that run on the current platform.
	Applicable int
}

// Catalog is the result of List.
type Catalog struct {
	Source    string
	Platform  domain.Platform
	Sequences []SequenceSummary
	Publish   *domain.PublishTarget
}

// List returns the sequences declared in the manifest.
func (a *App) List(_ context.Context, opts ConfigOptions) (*Catalog, error) {
	manifest, err := a.load(opts)
	if err != nil {
		return nil, err
	}

	platform := a.detector.Detect()
	catalog := &Catalog{Source: manifest.Source, Platform: platform, Publish: manifest.Publish}
	for i := range manifest.Sequences {
		seq := &manifest.Sequences[i]
		summary := SequenceSummary{Name: seq.Name, Description: seq.Description, Steps: len(seq.Steps)}
		for j := range seq.Steps {
			if seq.Steps[j].AppliesTo(platform) {
				summary.Applicable++
			}
		}
		catalog.Sequences = append(catalog.Sequences, summary)
	}
	return catalog, nil
}

// HostInfo describes the machine chargeup runs on.
type HostInfo struct {
	Platform      domain.Platform
	OS            string
	Arch          string
	KernelRelease string
}

// Platform reports the detected host platform.
func (a *App) Platform(_ context.Context) HostInfo {
	return HostInfo{
		Platform:      a.detector.Detect(),
		OS:            runtime.GOOS,
		Arch:          runtime.GOARCH,
		KernelRelease: a.detector.KernelRelease(),
	}
}

// SequenceStatus pairs a sequence with the receipt of its last run.
type SequenceStatus struct {
	Name string
	// Receipt is nil when the sequence never ran on this host.
	Receipt *domain.Receipt
	// Changed is set when the definition differs from the one that last ran.
	Changed bool
	// Undeclared is set for receipts of sequences the manifest no longer has.
	Undeclared bool
}

// Status returns the last recorded run of every declared sequence, followed
// by receipts of sequences that are no longer declared.
func (a *App) Status(_ context.Context, opts ConfigOptions) ([]SequenceStatus, error) {
	manifest, err := a.load(opts)
	if err != nil {
		return nil, err
	}

	receipts, err := a.store.List()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read receipts")
	}
	byName := make(map[string]*domain.Receipt, len(receipts))
	for i := range receipts {
		byName[receipts[i].Sequence] = &receipts[i]
	}

	var out []SequenceStatus
	add := func(name, fingerprint string) {
		status := SequenceStatus{Name: name, Receipt: byName[name]}
		if status.Receipt != nil {
			status.Changed = status.Receipt.Fingerprint != fingerprint
			delete(byName, name)
		}
		out = append(out, status)
	}

	for i := range manifest.Sequences {
		add(manifest.Sequences[i].Name, manifest.Sequences[i].Fingerprint())
	}
	if manifest.Publish != nil {
		add(domain.PublishSequence, manifest.Publish.Fingerprint())
	}

	for i := range receipts {
		if r, ok := byName[receipts[i].Sequence]; ok {
			out = append(out, SequenceStatus{Name: r.Sequence, Receipt: r, Undeclared: true})
		}
	}
	return out, nil
}

// Log returns the steps recorded during the last run that started any. Names
// select steps by sequence ("llvm") or by full step name ("llvm/install
// LLVM via Homebrew"); no names selects every step.
func (a *App) Log(_ context.Context, names []string) ([]domain.StepLog, error) {
	steps, err := a.journal.Steps()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return steps, nil
	}

	var out []domain.StepLog
	for i := range steps {
		for _, name := range names {
			if steps[i].Name == name || steps[i].Sequence() == name {
				out = append(out, steps[i])
				break
			}
		}
	}
	return out, nil
}

// Reported reports whether err was already shown to the user by the
// progress reporter, so the caller only needs to set the exit status.
func Reported(err error) bool {
	return errors.Is(err, domain.ErrSequenceFailed) ||
		errors.Is(err, domain.ErrSequenceInterrupted) ||
		errors.Is(err, domain.ErrUnsupportedPlatform)
}
