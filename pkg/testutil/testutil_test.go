package testutil

import (
	"os"
	"testing"

	"github.com/arthur-debert/labws/pkg/paths"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolate(t *testing.T) {
	env := Isolate(t)

	info, err := os.Stat(env.Root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, env.ConfigDir, paths.ConfigDir())
	assert.Equal(t, env.StateDir, paths.StateDir())
	assert.Equal(t, "1", os.Getenv("NO_COLOR"))
}

func TestWriteFilesAndUserConfig(t *testing.T) {
	env := Isolate(t)

	WriteFiles(t, env.Root, map[string]string{"a/b/c.txt": "hello"})
	assert.Equal(t, "hello", ReadFile(t, env.Path("a", "b", "c.txt")))

	path := env.WriteUserConfig(t, "token = \"@lab@\"\n")
	assert.Contains(t, paths.UserConfigFiles(), path)
	assert.Equal(t, "token = \"@lab@\"\n", ReadFile(t, path))
}

func TestMemoryFS(t *testing.T) {
	fs := MemoryFS(t, map[string]string{"/proj/x.txt": "x"})

	data, err := afero.ReadFile(fs, "/proj/x.txt")
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}
