package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javajack/xlnest"
)

func newValidateCmd(o *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Report structure that would silently merge or overwrite data",
		Long: `Validate lists group titles that reappear after other groups (they will be
merged), keys repeated within a row group (the last row wins) and blank titles
or keys. Malformed input is an error. With --strict any issue is an error too.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := xlnest.NewNormalizer(o.engineOptions()...)
			g, err := o.readGrid(cmd, n, argOrStdin(args))
			if err != nil {
				return err
			}

			issues, err := n.Validate(g)
			if err != nil {
				return err
			}
			if err := o.printer(cmd).Print(cmd.Context(), newIssueList(issues)); err != nil {
				return err
			}
			if strict && len(issues) > 0 {
				return fmt.Errorf("%d issue(s) found", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when any issue is found")
	return cmd
}
