package commands

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/labws/pkg/config"
	"github.com/arthur-debert/labws/pkg/errors"
	"github.com/arthur-debert/labws/pkg/logging"
	"github.com/arthur-debert/labws/pkg/output"
	"github.com/arthur-debert/labws/pkg/paths"
	"github.com/arthur-debert/labws/pkg/style"
	"github.com/arthur-debert/labws/pkg/workspace"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	dir        string
	configFile string
	labs       []string
	token      string
	template   string
	format     string
	noColor    bool
}

// overrides returns the config keys set on the command line
func (o *globalOptions) overrides(cmd *cobra.Command) (map[string]interface{}, error) {
	flags := cmd.Flags()
	m := map[string]interface{}{}
	if flags.Changed("labs") {
		m["labs"] = o.labs
	}
	if flags.Changed("token") {
		m["token"] = o.token
	}
	if flags.Changed("format") {
		m["output.format"] = o.format
	}
	if flags.Changed("template") {
		abs, err := filepath.Abs(o.template)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrPathInvalid, "cannot resolve %q", o.template)
		}
		m["template.path"] = abs
	}
	return m, nil
}

// session is everything a command needs once flags and config are resolved
type session struct {
	root   paths.Root
	cfg    *config.Config
	fs     afero.Fs
	writer *output.Writer
}

func (o *globalOptions) session(cmd *cobra.Command) (*session, error) {
	root, err := paths.ResolveRoot(o.dir)
	if err != nil {
		return nil, err
	}
	if root.UsedFallback {
		cmd.PrintErr(style.Render(fmt.Sprintf(MsgFallbackWarning, root.Dir)))
	}

	overrides, err := o.overrides(cmd)
	if err != nil {
		return nil, err
	}

	configFile := o.configFile
	if configFile != "" {
		if configFile, err = filepath.Abs(configFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrPathInvalid, "cannot resolve %q", o.configFile)
		}
	}

	cfg, err := config.Load(config.LoadOptions{
		Root:       root.Dir,
		ConfigFile: configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, err
	}

	fs := afero.NewOsFs()
	logger := logging.WithFields(map[string]interface{}{
		"component": "cmd.session",
		"root":      root.Dir,
		"sources":   cfg.Sources,
	})
	logger.Debug().Msg("Session ready")

	return &session{root: root, cfg: cfg, fs: fs, writer: output.NewWriter(fs)}, nil
}

func (s *session) generate() (*workspace.Artifacts, error) {
	root := s.root.Dir

	tmpl, err := workspace.LoadTemplate(s.fs, s.cfg.TemplatePath(root))
	if err != nil {
		return nil, err
	}
	header, err := workspace.LoadHeader(s.fs, s.cfg.HeaderSourcePath(root))
	if err != nil {
		return nil, err
	}

	return workspace.NewGenerator(workspace.Options{
		Plan:          s.cfg.Plan(),
		Template:      tmpl,
		Header:        header,
		WorkspacePath: s.cfg.WorkspacePath(root),
		HeaderPath:    s.cfg.HeaderPath(root),
		Format:        workspace.Format(s.cfg.Output.Format),
		Indent:        s.cfg.Output.Indent,
		Validate:      s.cfg.Output.Validate,
	}).Generate()
}

// rel shortens path for display
func (s *session) rel(path string) string {
	if r, err := filepath.Rel(s.root.Dir, path); err == nil && !startsWithParent(r) {
		return r
	}
	return path
}

func startsWithParent(p string) bool {
	return p == ".." || len(p) > 2 && p[:3] == ".."+string(filepath.Separator)
}
