package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/labws/pkg/errors"
	"github.com/arthur-debert/labws/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goldenDir = "../../../pkg/workspace/testdata"

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func golden(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(goldenDir, name+".golden"))
	require.NoError(t, err)
	return data
}

func TestGenerateWritesBothFiles(t *testing.T) {
	project := testutil.Isolate(t).Root

	out, _, err := run(t, "generate", "--dir", project)
	require.NoError(t, err)
	assert.Contains(t, out, "lzuoslab.code-workspace")
	assert.Contains(t, out, "lab1, lab2, lab3, lab4, lab5, lab6, lab7")

	ws, err := os.ReadFile(filepath.Join(project, "lzuoslab.code-workspace"))
	require.NoError(t, err)
	assert.Equal(t, golden(t, "lzuoslab.code-workspace"), ws)

	header, err := os.ReadFile(filepath.Join(project, "vsc_diag_suppress.h"))
	require.NoError(t, err)
	assert.Equal(t, golden(t, "vsc_diag_suppress.h"), header)
}

func TestGenerateSkipsUpToDateFiles(t *testing.T) {
	project := testutil.Isolate(t).Root

	_, _, err := run(t, "generate", "--dir", project)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(project, "vsc_diag_suppress.h"), []byte("stale\n"), 0644))
	before, err := os.Stat(filepath.Join(project, "lzuoslab.code-workspace"))
	require.NoError(t, err)

	out, _, err := run(t, "generate", "--dir", project)
	require.NoError(t, err)
	assert.Regexp(t, `unchanged\s+workspace`, out)
	assert.Regexp(t, `written\s+header`, out)

	after, err := os.Stat(filepath.Join(project, "lzuoslab.code-workspace"))
	require.NoError(t, err)
	assert.True(t, os.SameFile(before, after), "an up to date file is not replaced")
	assert.Equal(t, golden(t, "vsc_diag_suppress.h"), []byte(testutil.ReadFile(t, filepath.Join(project, "vsc_diag_suppress.h"))))
}

func TestGenerateDryRunWritesNothing(t *testing.T) {
	project := testutil.Isolate(t).Root

	out, _, err := run(t, "generate", "-n", "--dir", project)
	require.NoError(t, err)
	assert.Contains(t, out, "would write")
	assert.Contains(t, out, "DRY RUN")

	_, err = os.Stat(filepath.Join(project, "lzuoslab.code-workspace"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateLabsFlag(t *testing.T) {
	project := testutil.Isolate(t).Root

	out, _, err := run(t, "show", "--dir", project, "--labs", "lab2,lab3")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "lab2"`)
	assert.Contains(t, out, `"name": "lab3"`)
	assert.NotContains(t, out, `"name": "lab1"`)
	assert.NotContains(t, out, "{{oslab}}")
}

func TestShowHeader(t *testing.T) {
	project := testutil.Isolate(t).Root

	out, _, err := run(t, "show", "header", "--dir", project)
	require.NoError(t, err)
	assert.Equal(t, string(golden(t, "vsc_diag_suppress.h")), out)
}

func TestShowRejectsUnknownArtifact(t *testing.T) {
	project := testutil.Isolate(t).Root

	_, _, err := run(t, "show", "readme", "--dir", project)
	assert.Error(t, err)
}

func TestShowYAMLFormat(t *testing.T) {
	project := testutil.Isolate(t).Root

	out, _, err := run(t, "show", "--dir", project, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "folders:")
	assert.NotContains(t, out, `"folders"`)
}

func TestDiffReportsOutdatedThenClean(t *testing.T) {
	project := testutil.Isolate(t).Root

	out, _, err := run(t, "diff", "--dir", project)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutdated))
	assert.Contains(t, out, "missing")

	_, _, err = run(t, "generate", "--dir", project)
	require.NoError(t, err)

	out, _, err = run(t, "diff", "--dir", project)
	require.NoError(t, err)
	assert.Contains(t, out, "up to date")
}

func TestDiffShowsPatchForChangedFile(t *testing.T) {
	project := testutil.Isolate(t).Root

	_, _, err := run(t, "generate", "--dir", project)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(project, "vsc_diag_suppress.h"), []byte("#pragma once\n"), 0644))

	out, _, err := run(t, "diff", "--dir", project)
	require.Error(t, err)
	assert.Contains(t, out, "changed")
	assert.Contains(t, out, "- #pragma once")
	assert.Equal(t, "header", errors.GetErrorDetails(err)["files"])
}

func TestProjectConfigIsApplied(t *testing.T) {
	project := testutil.Isolate(t).Root
	testutil.WriteFiles(t, project, map[string]string{
		"labws.toml": "labs = [\"lab5\"]\n[output]\ndir = \"out\"\n",
	})

	_, _, err := run(t, "generate", "--dir", project)
	require.NoError(t, err)

	ws := testutil.ReadFile(t, filepath.Join(project, "out", "lzuoslab.code-workspace"))
	assert.Contains(t, ws, `"name": "lab5"`)
	assert.NotContains(t, ws, `"name": "lab1"`)
}

func TestFlagsOverrideUserConfig(t *testing.T) {
	env := testutil.Isolate(t)
	env.WriteUserConfig(t, "labs = [\"lab6\"]\n")

	out, _, err := run(t, "show", "--dir", env.Root)
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "lab6"`)

	out, _, err = run(t, "show", "--dir", env.Root, "--labs", "lab4")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "lab4"`)
	assert.NotContains(t, out, `"name": "lab6"`)
}

func TestCustomTemplateAndToken(t *testing.T) {
	env := testutil.Isolate(t)
	testutil.WriteFiles(t, env.Root, map[string]string{
		"ws.yaml": "folders:\n  - path: ./@lab@\n    name: \"@lab@\"\n" +
			"tasks:\n  tasks: []\nlaunch:\n  configurations: []\n",
	})

	out, _, err := run(t, "show", "--dir", env.Root, "--template", env.Path("ws.yaml"),
		"--token", "@lab@", "--labs", "a,b")
	require.NoError(t, err)
	assert.Contains(t, out, `"path": "./a"`)
	assert.Contains(t, out, `"name": "b"`)
	assert.NotContains(t, out, "@lab@")
}

func TestInvalidConfigFails(t *testing.T) {
	project := testutil.Isolate(t).Root

	_, _, err := run(t, "generate", "--dir", project, "--format", "xml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestMissingExplicitConfigFails(t *testing.T) {
	project := testutil.Isolate(t).Root

	_, _, err := run(t, "generate", "--dir", project, "--config", filepath.Join(project, "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestConfigPrintAndWrite(t *testing.T) {
	project := testutil.Isolate(t).Root

	out, _, err := run(t, "config", "--dir", project)
	require.NoError(t, err)
	assert.Contains(t, out, "# sources: defaults")
	assert.Contains(t, out, "lab7")

	out, _, err = run(t, "config", "-w", "--dir", project)
	require.NoError(t, err)
	assert.Contains(t, out, "labws.toml")
	_, err = os.Stat(filepath.Join(project, "labws.toml"))
	require.NoError(t, err)

	_, _, err = run(t, "config", "-w", "--dir", project)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))
}

func TestConfigDefaults(t *testing.T) {
	testutil.Isolate(t)

	out, _, err := run(t, "config", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "# token")
}

func TestHelpTopic(t *testing.T) {
	testutil.Isolate(t)

	out, _, err := run(t, "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "template")
	assert.Contains(t, out, "sections")
}

func TestVersion(t *testing.T) {
	testutil.Isolate(t)

	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "labws version dev")
}

func TestCompletion(t *testing.T) {
	testutil.Isolate(t)

	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "labws")
}

func TestNoCommandIsAnError(t *testing.T) {
	testutil.Isolate(t)

	_, _, err := run(t)
	assert.Error(t, err)
}
