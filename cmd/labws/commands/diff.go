package commands

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/labws/pkg/errors"
	"github.com/arthur-debert/labws/pkg/output"
	"github.com/arthur-debert/labws/pkg/style"
	"github.com/spf13/cobra"
)

func newDiffCmd(opts *globalOptions) *cobra.Command {
	var patch bool

	cmd := &cobra.Command{
		Use:     "diff",
		Aliases: []string{"check"},
		Short:   MsgDiffShort,
		Long:    MsgDiffLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			arts, err := s.generate()
			if err != nil {
				return err
			}
			diffs, err := s.writer.Diff(arts.All())
			if err != nil {
				return err
			}

			for _, d := range diffs {
				fmt.Fprintln(cmd.OutOrStdout(), style.StatusLine(style.Status(d.Status), d.Artifact.Name, s.rel(d.Artifact.Path)))
				if patch && d.Status == output.StatusChanged {
					fmt.Fprintln(cmd.OutOrStdout(), style.Indent(strings.TrimRight(d.Patch, "\n"), 2))
				}
			}

			outdated := output.Outdated(diffs)
			if len(outdated) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), MsgUpToDate)
				return nil
			}
			names := make([]string, 0, len(outdated))
			for _, d := range outdated {
				names = append(names, d.Artifact.Name)
			}
			return errors.Newf(errors.ErrOutdated, MsgErrOutdated, len(outdated)).
				WithDetail("files", strings.Join(names, ","))
		},
	}

	cmd.Flags().BoolVarP(&patch, "patch", "p", true, MsgFlagPatch)
	return cmd
}
