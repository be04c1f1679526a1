package commands

import (
	"fmt"

	"github.com/arthur-debert/labws/pkg/errors"
	"github.com/spf13/cobra"
)

func newShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "show [workspace|header]",
		Short:     MsgShowShort,
		Long:      MsgShowLong,
		GroupID:   "core",
		ValidArgs: []string{"workspace", "header"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "workspace"
			if len(args) == 1 {
				name = args[0]
			}

			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			arts, err := s.generate()
			if err != nil {
				return err
			}

			a, ok := arts.Get(name)
			if !ok {
				return errors.Newf(errors.ErrInvalidInput, "unknown artifact %q", name)
			}
			_, err = cmd.OutOrStdout().Write(a.Data)
			if err == nil && stdoutIsTerminal() && len(a.Data) > 0 && a.Data[len(a.Data)-1] != '\n' {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return err
		},
	}
}
