package config

import (
	"gopkg.in/yaml.v3"
)

// Manifest represents the structure of the chargeup.yaml configuration file.
type Manifest struct {
	Version        string            `yaml:"version"`
	EnvFile        []string          `yaml:"envFile"`
	DefaultTimeout string            `yaml:"defaultTimeout"`
	Vars           map[string]string `yaml:"vars"`
	Sequences      []SequenceDTO     `yaml:"sequences"`
	Publish        *PublishDTO       `yaml:"publish"`
}

// SequenceDTO represents a named install sequence.
type SequenceDTO struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Steps       []StepDTO `yaml:"steps"`
}

// StepDTO represents a single install step.
type StepDTO struct {
	ID        string       `yaml:"id"`
	Platforms []string     `yaml:"platforms"`
	Check     *CommandDTO  `yaml:"check"`
	Commands  []CommandDTO `yaml:"commands"`
	Profile   *ProfileDTO  `yaml:"profile"`
	Notes     string       `yaml:"notes"`
}

// ProfileDTO represents a line appended to a shell profile.
type ProfileDTO struct {
	File string `yaml:"file"`
	Line string `yaml:"line"`
}

// PublishDTO represents the build-and-link pipeline.
type PublishDTO struct {
	ProjectRoot string     `yaml:"projectRoot"`
	Build       CommandDTO `yaml:"build"`
	Artifact    string     `yaml:"artifact"`
	InstallDir  string     `yaml:"installDir"`
	LinkName    string     `yaml:"linkName"`
	Elevation   string     `yaml:"elevation"`
}

// CommandDTO represents a command. It accepts three shapes:
//
//	commands:
//	  - apt-get update                     # string, split like a shell would
//	  - [sh, -c, "curl ... | sh"]          # argv list, used verbatim
//	  - run: apt-get install -y gdb        # mapping with options
//	    sudo: true
type CommandDTO struct {
	Line    string
	Args    []string
	Sudo    bool
	Capture *bool
	Dir     string
	Timeout string
	Env     map[string]string
}

type commandOptions struct {
	Run     yaml.Node         `yaml:"run"`
	Sudo    bool              `yaml:"sudo"`
	Capture *bool             `yaml:"capture"`
	Dir     string            `yaml:"dir"`
	Timeout string            `yaml:"timeout"`
	Env     map[string]string `yaml:"env"`
}

// UnmarshalYAML decodes the string, list and mapping forms of a command.
func (c *CommandDTO) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&c.Line)
	case yaml.SequenceNode:
		return node.Decode(&c.Args)
	}

	var opts commandOptions
	if err := node.Decode(&opts); err != nil {
		return err
	}

	switch opts.Run.Kind {
	case yaml.ScalarNode:
		if err := opts.Run.Decode(&c.Line); err != nil {
			return err
		}
	case yaml.SequenceNode:
		if err := opts.Run.Decode(&c.Args); err != nil {
			return err
		}
	}

	c.Sudo = opts.Sudo
	c.Capture = opts.Capture
	c.Dir = opts.Dir
	c.Timeout = opts.Timeout
	c.Env = opts.Env
	return nil
}

// IsZero reports whether no command was given.
func (c *CommandDTO) IsZero() bool {
	return c.Line == "" && len(c.Args) == 0
}
