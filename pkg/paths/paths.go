package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/labws/pkg/errors"
)

// Environment variable names
const (
	EnvRoot      = "LABWS_ROOT"
	EnvConfigDir = "LABWS_CONFIG_DIR"
	EnvStateDir  = "LABWS_STATE_DIR"
	EnvHome      = "HOME"
)

const (
	// AppDirName is the directory name used under the XDG base directories
	AppDirName = "labws"

	// UserConfigName is the user-level config file, without extension
	UserConfigName = "config"

	// LogFileName is the name of the log file
	LogFileName = "labws.log"
)

// ProjectConfigFiles are the project config file names, in lookup order.
var ProjectConfigFiles = []string{"labws.toml", ".labws.toml", "labws.yaml", ".labws.yaml"}

// Root describes a resolved project root.
type Root struct {
	Dir string
	// UsedFallback is set when neither a flag, LABWS_ROOT nor git named the
	// root and the working directory was used.
	UsedFallback bool
}

// ResolveRoot returns the project root. An explicit dir wins over every
// other source.
func ResolveRoot(dir string) (Root, error) {
	if dir == "" {
		dir = os.Getenv(EnvRoot)
	}
	if dir != "" {
		abs, err := filepath.Abs(expandHome(dir))
		if err != nil {
			return Root{}, errors.Wrapf(err, errors.ErrPathInvalid, "cannot resolve %q", dir)
		}
		return Root{Dir: abs}, nil
	}

	if gitRoot, err := findGitRoot(); err == nil {
		return Root{Dir: gitRoot}, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return Root{}, errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
	}
	return Root{Dir: cwd, UsedFallback: true}, nil
}

func findGitRoot() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", errors.New(errors.ErrPathNotFound, "git root is empty")
	}
	return root, nil
}

// ConfigDir returns the user config directory.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the state directory.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return expandHome(dir)
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// UserConfigFiles returns the candidate user config files, in lookup order.
func UserConfigFiles() []string {
	dir := ConfigDir()
	return []string{
		filepath.Join(dir, UserConfigName+".toml"),
		filepath.Join(dir, UserConfigName+".yaml"),
	}
}

// LogFilePath returns the path of the log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// FindProjectConfig returns the first project config file present in root.
func FindProjectConfig(root string) (string, bool) {
	for _, name := range ProjectConfigFiles {
		p := filepath.Join(root, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Resolve makes p absolute relative to root. Absolute paths and ~ are
// honoured as given.
func Resolve(root, p string) string {
	p = expandHome(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// expandHome expands a leading ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is left alone
	return path
}
