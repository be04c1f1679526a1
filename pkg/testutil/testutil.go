package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/labws/pkg/paths"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// Environment is an isolated set of directories for one test
type Environment struct {
	Root      string // project root, created empty
	ConfigDir string
	StateDir  string
}

// Isolate creates a fresh project root and redirects every labws
// directory lookup into the test's temp dir. Colors are disabled.
func Isolate(t *testing.T) *Environment {
	t.Helper()

	tmp := t.TempDir()
	env := &Environment{
		Root:      filepath.Join(tmp, "project"),
		ConfigDir: filepath.Join(tmp, "config"),
		StateDir:  filepath.Join(tmp, "state"),
	}
	require.NoError(t, os.MkdirAll(env.Root, 0755))

	t.Setenv(paths.EnvConfigDir, env.ConfigDir)
	t.Setenv(paths.EnvStateDir, env.StateDir)
	t.Setenv(paths.EnvRoot, "")
	t.Setenv("NO_COLOR", "1")
	return env
}

// Path joins elements onto the project root
func (e *Environment) Path(elem ...string) string {
	return filepath.Join(append([]string{e.Root}, elem...)...)
}

// WriteUserConfig writes the user-level config.toml
func (e *Environment) WriteUserConfig(t *testing.T, content string) string {
	t.Helper()
	WriteFiles(t, e.ConfigDir, map[string]string{paths.UserConfigName + ".toml": content})
	return filepath.Join(e.ConfigDir, paths.UserConfigName+".toml")
}

// WriteFiles creates files below dir, making parent directories as needed.
// Keys are slash separated paths relative to dir.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// ReadFile returns the content of path, failing the test if it is missing
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// MemoryFS returns a memory filesystem holding files. Keys are absolute
// slash separated paths.
func MemoryFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
	}
	return fs
}
