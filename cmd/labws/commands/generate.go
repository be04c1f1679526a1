package commands

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/labws/pkg/output"
	"github.com/arthur-debert/labws/pkg/style"
	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   MsgGenerateShort,
		Long:    MsgGenerateLong,
		Example: "  labws generate\n  labws generate --labs lab1,lab2 --dry-run",
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

			if dryRun {
				diffs, err := s.writer.Diff(arts.All())
				if err != nil {
					return err
				}
				for _, d := range diffs {
					status := style.StatusPlanned
					if d.Status == output.StatusUnchanged {
						status = style.StatusUnchanged
					}
					fmt.Fprintln(cmd.OutOrStdout(), style.StatusLine(status, d.Artifact.Name, s.rel(d.Artifact.Path)))
				}
				fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
				return nil
			}

			// files that already match are left alone so their mtime is kept
			var stale []output.Artifact
			status := make(map[string]style.Status)
			for _, a := range arts.All() {
				ok, err := s.writer.UpToDate(a)
				if err != nil {
					return err
				}
				if ok {
					status[a.Name] = style.StatusUnchanged
					continue
				}
				stale = append(stale, a)
				status[a.Name] = style.StatusWritten
			}

			if err := s.writer.WriteAll(stale); err != nil {
				return err
			}
			for _, a := range arts.All() {
				fmt.Fprintln(cmd.OutOrStdout(), style.StatusLine(status[a.Name], a.Name, s.rel(a.Path)))
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgGenerated, len(s.cfg.Labs), strings.Join(s.cfg.Labs, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	return cmd
}
