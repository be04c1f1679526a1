package workspace

import (
	"testing"

	"github.com/arthur-debert/labws/pkg/errors"
	"github.com/arthur-debert/labws/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplate(t *testing.T) {
	fs := testutil.MemoryFS(t, map[string]string{"/proj/ws.yaml": "folders: []\n"})

	src, err := LoadTemplate(fs, "")
	require.NoError(t, err)
	assert.Equal(t, BuiltinTemplateName, src.Name)
	assert.Contains(t, string(src.Data), "{{oslab}}")

	src, err = LoadTemplate(fs, "/proj/ws.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/proj/ws.yaml", src.Name)
	assert.Equal(t, "folders: []\n", string(src.Data))

	_, err = LoadTemplate(fs, "/proj/missing.yaml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateLoad))
	assert.Equal(t, "/proj/missing.yaml", errors.GetErrorDetails(err)["path"])
}

func TestLoadHeader(t *testing.T) {
	fs := testutil.MemoryFS(t, map[string]string{"/h.h": "#pragma once\n"})

	src, err := LoadHeader(fs, "")
	require.NoError(t, err)
	assert.Equal(t, BuiltinHeaderName, src.Name)

	src, err = LoadHeader(fs, "/h.h")
	require.NoError(t, err)
	assert.Equal(t, "#pragma once\n", string(src.Data))
}

func TestBuiltinSourcesAreCopies(t *testing.T) {
	a := BuiltinHeader()
	a.Data[0] = 'X'
	assert.Equal(t, byte('#'), BuiltinHeader().Data[0])
}
