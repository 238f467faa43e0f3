package cmd

import (
	"github.com/spf13/cobra"

	"github.com/javajack/xlnest"
)

func newDescribeCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [file]",
		Short: "Show the detected origin and group trees",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := xlnest.NewNormalizer(o.engineOptions()...)
			g, err := o.readGrid(cmd, n, argOrStdin(args))
			if err != nil {
				return err
			}

			tree, origin, err := n.BuildTree(g)
			if err != nil {
				return err
			}
			t := xlnest.Flatten(tree)

			return o.printer(cmd).Print(cmd.Context(), describeView{
				Origin:       origin.Cell().String(),
				Width:        origin.Width,
				Height:       origin.Height,
				RowGroups:    t.RowGroups,
				ColumnGroups: t.ColumnGroups,
				outline:      xlnest.DescribeTable(origin, t),
			})
		},
	}
}
