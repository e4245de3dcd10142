package config

import (
	"errors"
	"maps"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"go.trai.ch/chargeup/internal/core/domain"
	"go.trai.ch/zerr"
	"mvdan.cc/sh/v3/shell"
)

// renderer expands manifest strings against the host variables.
type renderer struct {
	vars   map[string]any
	env    map[string]string
	getenv func(string) string
}

// text renders a template string. Strings without actions are returned as is.
func (r *renderer) text(field, s string) (string, error) {
	if !strings.Contains(s, "{{") {
		return s, nil
	}

	tmpl, err := template.New(field).
		Option("missingkey=error").
		Funcs(sprig.TxtFuncMap()).
		Parse(s)
	if err != nil {
		return "", r.templateError(err, field, s)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, r.vars); err != nil {
		return "", r.templateError(err, field, s)
	}
	return b.String(), nil
}

func (r *renderer) templateError(err error, field, s string) error {
	err = zerr.With(zerr.Wrap(err, "invalid template"), "field", field)
	return errors.Join(domain.ErrTemplateFailed, zerr.With(err, "template", s))
}

// argv renders a command into an argument vector. The string form is split
// with shell word rules so quoting works, but nothing is run through a shell.
func (r *renderer) argv(field string, c *CommandDTO, env map[string]string) ([]string, error) {
	if len(c.Args) > 0 {
		args := make([]string, len(c.Args))
		for i, a := range c.Args {
			rendered, err := r.text(field, a)
			if err != nil {
				return nil, err
			}
			args[i] = rendered
		}
		return args, nil
	}

	line, err := r.text(field, c.Line)
	if err != nil {
		return nil, err
	}

	fields, err := shell.Fields(line, r.lookup(env))
	if err != nil {
		err = zerr.With(zerr.Wrap(err, "cannot split command line"), "field", field)
		return nil, errors.Join(domain.ErrInvalidConfig, zerr.With(err, "command", line))
	}
	return fields, nil
}

// lookup resolves $VARS in command lines: command env first, then the
// env files, then the parent environment.
func (r *renderer) lookup(env map[string]string) func(string) string {
	merged := maps.Clone(r.env)
	if merged == nil {
		merged = make(map[string]string, len(env))
	}
	maps.Copy(merged, env)

	return func(name string) string {
		if v, ok := merged[name]; ok {
			return v
		}
		return r.getenv(name)
	}
}
