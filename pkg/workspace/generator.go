package workspace

import (
	"github.com/arthur-debert/labws/pkg/document"
	"github.com/arthur-debert/labws/pkg/errors"
	"github.com/arthur-debert/labws/pkg/logging"
	"github.com/arthur-debert/labws/pkg/output"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Format selects how the workspace is serialized.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Default output locations, relative to the project root.
const (
	DefaultWorkspaceFile = "lzuoslab.code-workspace"
	DefaultHeaderFile    = "vsc_diag_suppress.h"
)

// DefaultIndent is the indent of the historical workspace file.
const DefaultIndent = 4

// Options configure a Generator. Empty sources fall back to the built-in
// template and header, an empty format to JSON. An Indent of 0 gives
// compact JSON.
type Options struct {
	Plan     Plan
	Template Source
	Header   Source

	WorkspacePath string
	HeaderPath    string

	Format Format
	Indent int
	// Validate checks the expanded document against the workspace schema.
	Validate bool
}

// Artifacts are the outputs of one generation.
type Artifacts struct {
	Workspace output.Artifact
	Header    output.Artifact
	// Document is the expanded workspace before encoding.
	Document *yaml.Node
}

// All returns the artifacts in write order.
func (a *Artifacts) All() []output.Artifact {
	return []output.Artifact{a.Workspace, a.Header}
}

// Get returns the artifact with the given name.
func (a *Artifacts) Get(name string) (output.Artifact, bool) {
	for _, art := range a.All() {
		if art.Name == name {
			return art, true
		}
	}
	return output.Artifact{}, false
}

// Generator produces workspace artifacts from a template.
type Generator struct {
	opts   Options
	logger zerolog.Logger
}

// NewGenerator returns a Generator for opts.
func NewGenerator(opts Options) *Generator {
	if opts.Template.Data == nil {
		opts.Template = BuiltinTemplate()
	}
	if opts.Header.Data == nil {
		opts.Header = BuiltinHeader()
	}
	if opts.WorkspacePath == "" {
		opts.WorkspacePath = DefaultWorkspaceFile
	}
	if opts.HeaderPath == "" {
		opts.HeaderPath = DefaultHeaderFile
	}
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	return &Generator{
		opts:   opts,
		logger: logging.GetLogger("workspace.generator"),
	}
}

// Generate expands the template and encodes the results. Nothing is
// written; see output.Writer for that.
func (g *Generator) Generate() (*Artifacts, error) {
	done := logging.LogOperationStart(g.logger, "generate")
	defer done()

	tmpl, err := document.Parse(g.opts.Template.Data)
	if err != nil {
		return nil, errors.AddDetail(err, "template", g.opts.Template.Name)
	}

	ws, err := g.opts.Plan.Apply(tmpl)
	if err != nil {
		return nil, errors.AddDetail(err, "template", g.opts.Template.Name)
	}

	if g.opts.Validate {
		if err := Validate(ws); err != nil {
			return nil, errors.AddDetail(err, "template", g.opts.Template.Name)
		}
	}

	data, err := g.encode(ws)
	if err != nil {
		return nil, err
	}

	g.logger.Info().
		Str("template", g.opts.Template.Name).
		Strs("labs", g.opts.Plan.Identifiers).
		Int("bytes", len(data)).
		Msg("Generated workspace")

	return &Artifacts{
		Workspace: output.Artifact{Name: "workspace", Path: g.opts.WorkspacePath, Data: data},
		Header:    output.Artifact{Name: "header", Path: g.opts.HeaderPath, Data: g.opts.Header.Data},
		Document:  ws,
	}, nil
}

func (g *Generator) encode(ws *yaml.Node) ([]byte, error) {
	switch g.opts.Format {
	case FormatJSON:
		return document.EncodeJSON(ws, g.opts.Indent)
	case FormatYAML:
		return document.EncodeYAML(ws, g.opts.Indent)
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown output format %q", g.opts.Format)
}
