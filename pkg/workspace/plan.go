package workspace

import (
	"github.com/arthur-debert/labws/pkg/document"
	"github.com/arthur-debert/labws/pkg/errors"
	"github.com/arthur-debert/labws/pkg/expand"
	"github.com/arthur-debert/labws/pkg/logging"
	"gopkg.in/yaml.v3"
)

// DefaultToken is the placeholder the built-in template uses.
const DefaultToken = "{{oslab}}"

// DefaultLabs are the lab identifiers the workspace is generated for.
var DefaultLabs = []string{"lab1", "lab2", "lab3", "lab4", "lab5", "lab6", "lab7"}

// DefaultSections are the sequences of the built-in template that hold
// per-lab fragments.
var DefaultSections = []string{"/folders", "/tasks/tasks", "/launch/configurations"}

// DefaultFixups point lab1's firmware at the location that lab keeps it in.
var DefaultFixups = []Fixup{
	{From: "${workspaceFolder:lab1}/tools/fw_jump.bin", To: "${workspaceFolder:lab1}/fw_jump.bin"},
}

// Fixup is a literal replacement applied to the whole expanded document.
type Fixup struct {
	From string `koanf:"from" toml:"from" yaml:"from"`
	To   string `koanf:"to" toml:"to" yaml:"to"`
}

// Plan describes how a template becomes a workspace.
type Plan struct {
	Token       string
	Identifiers []string
	// Sections are JSON pointers to the sequences to expand, in the order
	// they are expanded.
	Sections []string
	// Fixups run in order, once each, after every section is expanded.
	Fixups []Fixup
}

// DefaultPlan returns the plan that reproduces the historical workspace.
func DefaultPlan() Plan {
	return Plan{
		Token:       DefaultToken,
		Identifiers: append([]string(nil), DefaultLabs...),
		Sections:    append([]string(nil), DefaultSections...),
		Fixups:      append([]Fixup(nil), DefaultFixups...),
	}
}

// Apply returns the expanded document. tmpl is not modified; parts of it
// that need no change are shared with the result.
func (p Plan) Apply(tmpl *yaml.Node) (*yaml.Node, error) {
	logger := logging.GetLogger("workspace.plan")

	root := document.Unwrap(tmpl)
	for _, section := range p.Sections {
		next, err := p.expandSection(root, section)
		if err != nil {
			return nil, errors.AddDetail(err, "section", section)
		}
		root = next
	}

	for _, fx := range p.Fixups {
		if !expand.ContainsToken(root, fx.From) {
			logger.Warn().Str("from", fx.From).Msg("Fix-up matched nothing")
			continue
		}
		next, err := expand.Substitute(root, fx.From, fx.To)
		if err != nil {
			return nil, errors.AddDetail(err, "fixup", fx.From)
		}
		logger.Debug().Str("from", fx.From).Str("to", fx.To).Msg("Applied fix-up")
		root = next
	}
	return root, nil
}

func (p Plan) expandSection(root *yaml.Node, section string) (*yaml.Node, error) {
	ptr, err := document.ParsePointer(section)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSectionInvalid, "invalid section pointer %q", section)
	}

	seq, err := document.Lookup(root, ptr)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrPathNotFound) {
			return nil, errors.Wrapf(err, errors.ErrSectionNotFound, "section %s not found in template", section)
		}
		return nil, errors.Wrapf(err, errors.ErrSectionInvalid, "cannot resolve section %s", section)
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, errors.Newf(errors.ErrSectionInvalid, "section %s is not a list", section)
	}

	expanded, err := expand.Expand(seq.Content, p.Identifiers, p.Token)
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("workspace.plan")
	logger.Debug().
		Str("section", section).
		Int("fragments", len(seq.Content)).
		Int("expanded", len(expanded)).
		Msg("Expanded section")

	out := *seq
	out.Content = expanded
	return document.Replace(root, ptr, &out)
}
