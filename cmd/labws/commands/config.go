package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/labws/pkg/config"
	"github.com/arthur-debert/labws/pkg/errors"
	"github.com/arthur-debert/labws/pkg/output"
	"github.com/arthur-debert/labws/pkg/paths"
	"github.com/arthur-debert/labws/pkg/style"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	var write, defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				fmt.Fprint(cmd.OutOrStdout(), config.CommentedDefaults())
				return nil
			}

			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			rendered, err := s.cfg.TOML()
			if err != nil {
				return err
			}

			if !write {
				fmt.Fprintf(cmd.OutOrStdout(), MsgConfigSources, strings.Join(s.cfg.Sources, ", "))
				fmt.Fprint(cmd.OutOrStdout(), rendered)
				return nil
			}

			target := filepath.Join(s.root.Dir, paths.ProjectConfigFiles[0])
			_, exists, err := s.writer.Read(target)
			if err != nil {
				return err
			}
			if exists {
				return errors.Newf(errors.ErrFileWrite, MsgErrConfigExists, target).WithDetail("path", target)
			}
			if err := s.writer.WriteAll([]output.Artifact{{Name: "config", Path: target, Data: []byte(rendered)}}); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), style.Render(fmt.Sprintf(MsgConfigWritten, s.rel(target))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	cmd.MarkFlagsMutuallyExclusive("write", "defaults")
	return cmd
}
