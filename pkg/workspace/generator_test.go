package workspace

import (
	"strings"
	"testing"

	"github.com/arthur-debert/labws/pkg/document"
	"github.com/arthur-debert/labws/pkg/errors"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultGenerator() *Generator {
	return NewGenerator(Options{
		Plan:     DefaultPlan(),
		Indent:   DefaultIndent,
		Validate: true,
	})
}

func TestGenerateDefaultMatchesHistoricalFiles(t *testing.T) {
	arts, err := defaultGenerator().Generate()
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "lzuoslab.code-workspace", arts.Workspace.Data)
	g.Assert(t, "vsc_diag_suppress.h", arts.Header.Data)
}

func TestGenerateArtifacts(t *testing.T) {
	arts, err := NewGenerator(Options{
		Plan:          DefaultPlan(),
		Indent:        DefaultIndent,
		WorkspacePath: "/proj/ws.code-workspace",
		HeaderPath:    "/proj/include/diag.h",
	}).Generate()
	require.NoError(t, err)

	all := arts.All()
	require.Len(t, all, 2)
	assert.Equal(t, "workspace", all[0].Name)
	assert.Equal(t, "/proj/ws.code-workspace", all[0].Path)
	assert.Equal(t, "header", all[1].Name)
	assert.Equal(t, "/proj/include/diag.h", all[1].Path)

	h, ok := arts.Get("header")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(string(h.Data), "#ifdef __INTELLISENSE__"))

	_, ok = arts.Get("nope")
	assert.False(t, ok)

	assert.False(t, strings.HasSuffix(string(arts.Workspace.Data), "\n"), "no trailing newline")
}

func TestGenerateDefaults(t *testing.T) {
	arts, err := NewGenerator(Options{Plan: DefaultPlan()}).Generate()
	require.NoError(t, err)
	assert.Equal(t, DefaultWorkspaceFile, arts.Workspace.Path)
	assert.Equal(t, DefaultHeaderFile, arts.Header.Path)
	assert.True(t, strings.HasPrefix(string(arts.Workspace.Data), `{"extensions":`), "indent 0 is compact JSON")
}

func TestGenerateFewerLabs(t *testing.T) {
	plan := DefaultPlan()
	plan.Identifiers = []string{"lab2", "lab5"}

	arts, err := NewGenerator(Options{Plan: plan, Indent: DefaultIndent, Validate: true}).Generate()
	require.NoError(t, err)

	ws := string(arts.Workspace.Data)
	assert.Contains(t, ws, `"name": "lab2"`)
	assert.Contains(t, ws, `"name": "lab5"`)
	assert.NotContains(t, ws, "lab1")
	assert.NotContains(t, ws, "{{oslab}}")
	assert.Contains(t, ws, "${workspaceFolder:lab2}/tools/fw_jump.bin", "the fix-up only concerns lab1")
	assert.Less(t, strings.Index(ws, `"lab2-make-clean"`), strings.Index(ws, `"lab5-make-clean"`))
}

func TestGenerateYAML(t *testing.T) {
	arts, err := NewGenerator(Options{Plan: DefaultPlan(), Format: FormatYAML, Indent: 2}).Generate()
	require.NoError(t, err)

	back, err := document.Parse(arts.Workspace.Data)
	require.NoError(t, err)
	assert.True(t, document.Equal(arts.Document, back))
}

func TestGenerateUnknownFormat(t *testing.T) {
	_, err := NewGenerator(Options{Plan: DefaultPlan(), Format: "xml"}).Generate()
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestGenerateCustomTemplate(t *testing.T) {
	tmpl := Source{Name: "custom.yaml", Data: []byte(`
folders:
  - {name: "{{oslab}}", path: "labs/{{oslab}}"}
`)}
	plan := Plan{Token: DefaultToken, Identifiers: []string{"a", "b"}, Sections: []string{"/folders"}}

	arts, err := NewGenerator(Options{Plan: plan, Template: tmpl, Validate: true}).Generate()
	require.NoError(t, err)
	assert.Equal(t, `{"folders":[{"name":"a","path":"labs/a"},{"name":"b","path":"labs/b"}]}`, string(arts.Workspace.Data))
}

func TestGenerateErrorsNameTheTemplate(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.ErrorCode
	}{
		{"parse", "folders: [", errors.ErrTemplateParse},
		{"missing_section", "other: []\n", errors.ErrSectionNotFound},
		{"schema", "folders: [{name: x}]\n", errors.ErrSchemaInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Plan{Token: DefaultToken, Identifiers: []string{"a"}, Sections: []string{"/folders"}}
			_, err := NewGenerator(Options{
				Plan:     plan,
				Template: Source{Name: "broken.yaml", Data: []byte(tt.src)},
				Validate: true,
			}).Generate()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.Contains(t, err.Error(), "template=broken.yaml")
		})
	}
}
