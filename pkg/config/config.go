package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/labws/pkg/document"
	"github.com/arthur-debert/labws/pkg/errors"
	"github.com/arthur-debert/labws/pkg/paths"
	"github.com/arthur-debert/labws/pkg/workspace"
	toml "github.com/pelletier/go-toml/v2"
)

// Config is the effective labws configuration.
type Config struct {
	Token    string            `koanf:"token" toml:"token"`
	Labs     []string          `koanf:"labs" toml:"labs"`
	Sections []string          `koanf:"sections" toml:"sections"`
	Fixups   []workspace.Fixup `koanf:"fixups" toml:"fixups"`
	Template Template          `koanf:"template" toml:"template"`
	Output   Output            `koanf:"output" toml:"output"`

	// Sources lists the layers that were loaded, lowest precedence first.
	Sources []string `koanf:"-" toml:"-"`
}

// Template selects the inputs.
type Template struct {
	Path   string `koanf:"path" toml:"path"`
	Header string `koanf:"header" toml:"header"`
}

// Output controls where and how artifacts are written.
type Output struct {
	Dir       string `koanf:"dir" toml:"dir"`
	Workspace string `koanf:"workspace" toml:"workspace"`
	Header    string `koanf:"header" toml:"header"`
	Format    string `koanf:"format" toml:"format"`
	Indent    int    `koanf:"indent" toml:"indent"`
	Validate  bool   `koanf:"validate" toml:"validate"`
}

// MaxIndent is the largest accepted output indent.
const MaxIndent = 8

// Validate reports the first problem with c.
func (c *Config) Validate() error {
	if c.Token == "" {
		return invalid("token", "token must not be empty")
	}

	if len(c.Labs) == 0 {
		return invalid("labs", "at least one lab is required")
	}
	seen := make(map[string]bool, len(c.Labs))
	for i, lab := range c.Labs {
		switch {
		case lab == "":
			return invalid("labs", "lab %d is empty", i)
		case seen[lab]:
			return invalid("labs", "lab %q is listed twice", lab)
		case strings.Contains(lab, c.Token):
			return invalid("labs", "lab %q contains the token %q", lab, c.Token)
		}
		seen[lab] = true
	}

	seen = make(map[string]bool, len(c.Sections))
	for _, s := range c.Sections {
		if p, err := document.ParsePointer(s); err != nil || len(p) == 0 {
			return invalid("sections", "section %q is not a JSON pointer such as /tasks/tasks", s)
		}
		if seen[s] {
			return invalid("sections", "section %q is listed twice", s)
		}
		seen[s] = true
	}

	for i, fx := range c.Fixups {
		if fx.From == "" {
			return invalid("fixups", "fix-up %d has an empty 'from'", i)
		}
	}

	switch workspace.Format(c.Output.Format) {
	case workspace.FormatJSON, workspace.FormatYAML:
	default:
		return invalid("output.format", "format %q is not json or yaml", c.Output.Format)
	}
	if c.Output.Indent < 0 || c.Output.Indent > MaxIndent {
		return invalid("output.indent", "indent %d is outside 0..%d", c.Output.Indent, MaxIndent)
	}
	if c.Output.Workspace == "" || c.Output.Header == "" {
		return invalid("output", "output file names must not be empty")
	}
	if filepath.Clean(c.Output.Workspace) == filepath.Clean(c.Output.Header) {
		return invalid("output", "workspace and header would be written to the same file")
	}
	return nil
}

func invalid(key, format string, args ...interface{}) error {
	return errors.Newf(errors.ErrConfigValid, format, args...).WithDetail("key", key)
}

// Plan returns the expansion plan described by c.
func (c *Config) Plan() workspace.Plan {
	return workspace.Plan{
		Token:       c.Token,
		Identifiers: append([]string(nil), c.Labs...),
		Sections:    append([]string(nil), c.Sections...),
		Fixups:      append([]workspace.Fixup(nil), c.Fixups...),
	}
}

// WorkspacePath returns where the workspace is written for a project root.
func (c *Config) WorkspacePath(root string) string {
	return paths.Resolve(paths.Resolve(root, c.Output.Dir), c.Output.Workspace)
}

// HeaderPath returns where the header is written for a project root.
func (c *Config) HeaderPath(root string) string {
	return paths.Resolve(paths.Resolve(root, c.Output.Dir), c.Output.Header)
}

// TemplatePath returns the template path resolved against root, or "" for
// the built-in template.
func (c *Config) TemplatePath(root string) string {
	if c.Template.Path == "" {
		return ""
	}
	return paths.Resolve(root, c.Template.Path)
}

// HeaderSourcePath returns the header source resolved against root, or ""
// for the built-in header.
func (c *Config) HeaderSourcePath(root string) string {
	if c.Template.Header == "" {
		return ""
	}
	return paths.Resolve(root, c.Template.Header)
}

// TOML renders c as a TOML document.
func (c *Config) TOML() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return string(data), nil
}

// CommentedDefaults returns the embedded defaults with every value
// commented out, as a starting point for a project config.
func CommentedDefaults() string {
	lines := strings.Split(DefaultsContent(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			out = append(out, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") && !strings.HasPrefix(trimmed, "[["):
			// table headers stay so uncommented values land in the right table
			out = append(out, line)
		default:
			out = append(out, "# "+line)
		}
	}
	return strings.Join(out, "\n")
}

// String is a short summary used in log lines.
func (c *Config) String() string {
	return fmt.Sprintf("token=%s labs=%s format=%s", c.Token, strings.Join(c.Labs, ","), c.Output.Format)
}
