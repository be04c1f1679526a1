package workspace

import (
	_ "embed"

	"github.com/arthur-debert/labws/pkg/errors"
	"github.com/spf13/afero"
)

// Names reported for the embedded sources.
const (
	BuiltinTemplateName = "builtin:lzuoslab.code-workspace.yaml"
	BuiltinHeaderName   = "builtin:vsc_diag_suppress.h"
)

//go:embed templates/lzuoslab.code-workspace.yaml
var builtinTemplate []byte

//go:embed templates/vsc_diag_suppress.h
var builtinHeader []byte

// Source is the content of a template or header together with where it
// came from.
type Source struct {
	Name string
	Data []byte
}

// BuiltinTemplate returns the embedded workspace template.
func BuiltinTemplate() Source {
	return Source{Name: BuiltinTemplateName, Data: append([]byte(nil), builtinTemplate...)}
}

// BuiltinHeader returns the embedded header.
func BuiltinHeader() Source {
	return Source{Name: BuiltinHeaderName, Data: append([]byte(nil), builtinHeader...)}
}

// LoadTemplate reads the template at path, or returns the built-in one when
// path is empty.
func LoadTemplate(fs afero.Fs, path string) (Source, error) {
	if path == "" {
		return BuiltinTemplate(), nil
	}
	return load(fs, path, "template")
}

// LoadHeader reads the header at path, or returns the built-in one when
// path is empty.
func LoadHeader(fs afero.Fs, path string) (Source, error) {
	if path == "" {
		return BuiltinHeader(), nil
	}
	return load(fs, path, "header")
}

func load(fs afero.Fs, path, what string) (Source, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Source{}, errors.Wrapf(err, errors.ErrTemplateLoad, "failed to read %s", what).
			WithDetail("path", path)
	}
	return Source{Name: path, Data: data}, nil
}
