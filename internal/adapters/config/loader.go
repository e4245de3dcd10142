// Package config provides the manifest loader for chargeup.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"go.trai.ch/chargeup/internal/core/domain"
	"go.trai.ch/chargeup/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFilename is the manifest looked up in the project root.
	DefaultFilename = "chargeup.yaml"
	// BuiltinSource is the Source of the embedded default manifest.
	BuiltinSource = "<builtin>"
	// DefaultInstallDir is used when the publish section names none.
	DefaultInstallDir = "/usr/local/bin"
)

//go:embed defaults.yaml
var defaultManifest []byte

// DefaultManifest returns the embedded manifest describing the stock toolchain.
func DefaultManifest() []byte {
	return bytes.Clone(defaultManifest)
}

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	detector ports.PlatformDetector
	getenv   func(string) string
	homeDir  func() (string, error)
	goos     string
	goarch   string
}

// NewLoader creates a new Loader resolving host variables through detector.
func NewLoader(detector ports.PlatformDetector) *Loader {
	return &Loader{
		detector: detector,
		getenv:   os.Getenv,
		homeDir:  os.UserHomeDir,
		goos:     runtime.GOOS,
		goarch:   runtime.GOARCH,
	}
}

// Load reads the manifest at path. An empty path looks for chargeup.yaml in
// projectRoot and falls back to the embedded default manifest.
// An empty projectRoot means the current working directory.
func (l *Loader) Load(path, projectRoot string) (*domain.Manifest, error) {
	root, err := resolveRoot(projectRoot)
	if err != nil {
		return nil, err
	}

	source, data, err := l.read(path, root)
	if err != nil {
		return nil, err
	}

	var mf Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&mf); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(domain.ErrConfigParseFailed, zerr.With(err, "path", source))
	}

	baseDir := root
	if source != BuiltinSource {
		baseDir = filepath.Dir(source)
	}

	return l.build(&mf, source, baseDir, root)
}

func resolveRoot(projectRoot string) (string, error) {
	if projectRoot == "" {
		projectRoot = "."
	}
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return "", errors.Join(domain.ErrConfigReadFailed, zerr.With(err, "project_root", projectRoot))
	}
	return root, nil
}

func (l *Loader) read(path, root string) (source string, data []byte, err error) {
	if path == "" {
		candidate := filepath.Join(root, DefaultFilename)
		_, statErr := os.Stat(candidate)
		if errors.Is(statErr, iofs.ErrNotExist) {
			return BuiltinSource, defaultManifest, nil
		}
		if statErr != nil {
			return "", nil, errors.Join(domain.ErrConfigReadFailed, zerr.With(statErr, "path", candidate))
		}
		path = candidate
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, errors.Join(domain.ErrConfigReadFailed, zerr.With(err, "path", path))
	}

	data, err = os.ReadFile(abs) //nolint:gosec // path is provided by user
	if err != nil {
		return "", nil, errors.Join(domain.ErrConfigReadFailed, zerr.With(err, "path", abs))
	}
	return abs, data, nil
}

func (l *Loader) build(mf *Manifest, source, baseDir, root string) (*domain.Manifest, error) {
	env, err := loadEnvFiles(mf.EnvFile, baseDir)
	if err != nil {
		return nil, err
	}

	defaultTimeout, err := parseTimeout("defaultTimeout", mf.DefaultTimeout, 0)
	if err != nil {
		return nil, err
	}

	r := &renderer{vars: l.vars(root, mf.Vars), env: env, getenv: l.getenv}
	b := &builder{r: r, root: root, env: env, timeout: defaultTimeout}

	manifest := &domain.Manifest{Source: source}

	// Publish first: it may move ProjectRoot and InstallDir for every later
	// template, and the root relative command dirs resolve against.
	if mf.Publish != nil {
		target, err := b.publish(mf.Publish)
		if err != nil {
			return nil, err
		}
		manifest.Publish = target
	}

	seen := make(map[string]bool, len(mf.Sequences))
	for i := range mf.Sequences {
		seq, err := b.sequence(&mf.Sequences[i])
		if err != nil {
			return nil, err
		}
		if seen[seq.Name] {
			return nil, invalid("duplicate sequence name", "sequence", seq.Name)
		}
		seen[seq.Name] = true
		manifest.Sequences = append(manifest.Sequences, seq)
	}

	return manifest, nil
}

// vars returns the template variables available to every manifest string.
func (l *Loader) vars(root string, user map[string]string) map[string]any {
	home, err := l.homeDir()
	if err != nil {
		home = l.getenv("HOME")
	}

	platform := domain.Unsupported
	kernel := ""
	if l.detector != nil {
		platform = l.detector.Detect()
		kernel = l.detector.KernelRelease()
	}

	userVars := make(map[string]any, len(user))
	for k, v := range user {
		userVars[k] = v
	}

	return map[string]any{
		"ProjectRoot":   root,
		"InstallDir":    DefaultInstallDir,
		"Home":          home,
		"TempDir":       os.TempDir(),
		"OS":            l.goos,
		"Arch":          l.goarch,
		"KernelRelease": kernel,
		"Platform":      platform.String(),
		"Vars":          userVars,
	}
}

func loadEnvFiles(files []string, baseDir string) (map[string]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	paths := make([]string, len(files))
	for i, f := range files {
		if filepath.IsAbs(f) {
			paths[i] = f
		} else {
			paths[i] = filepath.Join(baseDir, f)
		}
	}

	env, err := godotenv.Read(paths...)
	if err != nil {
		return nil, errors.Join(domain.ErrEnvFileFailed, zerr.With(err, "files", paths))
	}
	return env, nil
}

func parseTimeout(field, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, invalid("invalid timeout", field, value)
	}
	return d, nil
}

func invalid(msg, key string, value any) error {
	return errors.Join(domain.ErrInvalidConfig, zerr.With(zerr.New(msg), key, value))
}

// builder converts DTOs into domain values.
type builder struct {
	r       *renderer
	root    string
	env     map[string]string
	timeout time.Duration
}

func (b *builder) sequence(dto *SequenceDTO) (domain.StepSequence, error) {
	if dto.Name == "" {
		return domain.StepSequence{}, invalid("sequence without a name", "description", dto.Description)
	}

	description, err := b.r.text(dto.Name+"/description", dto.Description)
	if err != nil {
		return domain.StepSequence{}, err
	}

	seq := domain.StepSequence{
		Name:        dto.Name,
		Description: description,
		Steps:       make([]domain.InstallStep, 0, len(dto.Steps)),
	}

	for i := range dto.Steps {
		step, err := b.step(dto.Name, &dto.Steps[i])
		if err != nil {
			return domain.StepSequence{}, err
		}
		seq.Steps = append(seq.Steps, step)
	}

	return seq, nil
}

func (b *builder) step(sequence string, dto *StepDTO) (domain.InstallStep, error) {
	if dto.ID == "" {
		return domain.InstallStep{}, invalid("step without an id", "sequence", sequence)
	}
	field := fmt.Sprintf("%s/%s", sequence, dto.ID)

	if len(dto.Commands) == 0 {
		return domain.InstallStep{}, invalid("step has no commands", "step", field)
	}

	step := domain.InstallStep{ID: dto.ID}

	for _, name := range dto.Platforms {
		p, ok := domain.ParsePlatform(name)
		if !ok {
			return domain.InstallStep{}, zerr.With(invalid("unknown platform", "platform", name), "step", field)
		}
		step.Platforms = append(step.Platforms, p)
	}

	if dto.Check != nil && !dto.Check.IsZero() {
		check, err := b.command(field+"/check", dto.Check)
		if err != nil {
			return domain.InstallStep{}, err
		}
		step.Check = &check
	}

	for i := range dto.Commands {
		cmd, err := b.command(fmt.Sprintf("%s/commands[%d]", field, i), &dto.Commands[i])
		if err != nil {
			return domain.InstallStep{}, err
		}
		step.Commands = append(step.Commands, cmd)
	}

	if dto.Profile != nil {
		profile, err := b.profile(field+"/profile", dto.Profile)
		if err != nil {
			return domain.InstallStep{}, err
		}
		step.Profile = profile
	}

	notes, err := b.r.text(field+"/notes", dto.Notes)
	if err != nil {
		return domain.InstallStep{}, err
	}
	step.Notes = notes

	return step, nil
}

func (b *builder) profile(field string, dto *ProfileDTO) (*domain.ProfileLine, error) {
	if dto.File == "" || dto.Line == "" {
		return nil, invalid("profile needs a file and a line", "field", field)
	}
	file, err := b.r.text(field, dto.File)
	if err != nil {
		return nil, err
	}
	line, err := b.r.text(field, dto.Line)
	if err != nil {
		return nil, err
	}
	return &domain.ProfileLine{File: file, Line: line}, nil
}

func (b *builder) command(field string, dto *CommandDTO) (domain.CommandSpec, error) {
	if dto.IsZero() {
		return domain.CommandSpec{}, invalid("empty command", "field", field)
	}

	env := maps.Clone(b.env)
	for k, v := range dto.Env {
		rendered, err := b.r.text(field, v)
		if err != nil {
			return domain.CommandSpec{}, err
		}
		if env == nil {
			env = make(map[string]string, len(dto.Env))
		}
		env[k] = rendered
	}

	argv, err := b.r.argv(field, dto, env)
	if err != nil {
		return domain.CommandSpec{}, err
	}
	if len(argv) == 0 {
		return domain.CommandSpec{}, invalid("command renders to nothing", "field", field)
	}

	dir, err := b.r.text(field, dto.Dir)
	if err != nil {
		return domain.CommandSpec{}, err
	}
	if dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(b.root, dir)
	}

	timeout, err := parseTimeout(field, dto.Timeout, b.timeout)
	if err != nil {
		return domain.CommandSpec{}, err
	}

	capture := true
	if dto.Capture != nil {
		capture = *dto.Capture
	}

	return domain.CommandSpec{
		Argv:    argv,
		Capture: capture,
		Elevate: dto.Sudo,
		Dir:     dir,
		Env:     env,
		Timeout: timeout,
	}, nil
}

func (b *builder) publish(dto *PublishDTO) (*domain.PublishTarget, error) {
	root := b.root
	if dto.ProjectRoot != "" {
		rendered, err := b.r.text("publish/projectRoot", dto.ProjectRoot)
		if err != nil {
			return nil, err
		}
		if !filepath.IsAbs(rendered) {
			rendered = filepath.Join(b.root, rendered)
		}
		root = filepath.Clean(rendered)
		b.r.vars["ProjectRoot"] = root
		b.root = root
	}

	installDir := DefaultInstallDir
	if dto.InstallDir != "" {
		rendered, err := b.r.text("publish/installDir", dto.InstallDir)
		if err != nil {
			return nil, err
		}
		installDir = rendered
	}
	if !filepath.IsAbs(installDir) {
		installDir = filepath.Join(root, installDir)
	}
	b.r.vars["InstallDir"] = installDir

	if dto.Build.IsZero() {
		return nil, invalid("publish needs a build command", "field", "publish/build")
	}
	if dto.Artifact == "" {
		return nil, invalid("publish needs an artifact", "field", "publish/artifact")
	}
	if dto.LinkName == "" {
		return nil, invalid("publish needs a link name", "field", "publish/linkName")
	}

	build, err := b.command("publish/build", &dto.Build)
	if err != nil {
		return nil, err
	}
	if build.Dir == "" {
		build.Dir = root
	}

	artifact, err := b.r.text("publish/artifact", dto.Artifact)
	if err != nil {
		return nil, err
	}
	linkName, err := b.r.text("publish/linkName", dto.LinkName)
	if err != nil {
		return nil, err
	}
	if filepath.Base(linkName) != linkName {
		return nil, invalid("link name must not contain a path separator", "linkName", linkName)
	}

	elevation, ok := domain.ParseElevation(dto.Elevation)
	if !ok {
		return nil, invalid("unknown elevation policy", "elevation", dto.Elevation)
	}

	return &domain.PublishTarget{
		ProjectRoot: root,
		Build:       build,
		Artifact:    artifact,
		InstallDir:  installDir,
		LinkName:    linkName,
		Elevation:   elevation,
	}, nil
}
