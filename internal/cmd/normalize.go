package cmd

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/javajack/xlnest"
)

func newNormalizeCmd(o *rootOptions) *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "normalize [file...]",
		Short: "Rebuild the group hierarchy of one or more exports",
		Long: `Normalize reads each file (or stdin when no file or "-" is given) and prints
its row groups, column groups and cell matrix.

With several files the output is a list of {path, table} and the files are
processed concurrently, at most --jobs at a time.`,
		Example: `  xlnest normalize copy.tsv -o json
  pbpaste | xlnest normalize -o yaml
  xlnest normalize site.xlsx --sheet Copy --query '.columnGroups[].title'
  xlnest normalize a.tsv b.tsv c.xlsx --jobs 2 -o ndjson`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := o.engineOptions()

			if len(args) <= 1 {
				n := xlnest.NewNormalizer(opts...)
				g, err := o.readGrid(cmd, n, argOrStdin(args))
				if err != nil {
					return err
				}
				t, err := n.NormalizeGrid(g)
				if err != nil {
					return err
				}
				return o.printer(cmd).Print(cmd.Context(), tableView{t})
			}

			views, err := o.normalizeFiles(cmd, xlnest.NewNormalizer(opts...), args, jobs)
			if err != nil {
				return err
			}
			return o.printer(cmd).Print(cmd.Context(), views)
		},
	}

	cmd.Flags().IntVar(&jobs, "jobs", 0, "Files processed at once (default: number of CPUs)")
	return cmd
}

// normalizeFiles reads every argument the way a single input is read, so --from and
// "-" behave the same, and normalizes them at most jobs at a time.
func (o *rootOptions) normalizeFiles(cmd *cobra.Command, n *xlnest.Normalizer, args []string, jobs int) ([]fileView, error) {
	stdin := 0
	for _, arg := range args {
		if arg == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return nil, errors.New(`stdin ("-") can be given only once`)
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	views := make([]fileView, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for i, arg := range args {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			grid, err := o.readGrid(cmd, n, arg)
			if err != nil {
				return err
			}
			t, err := n.NormalizeGrid(grid)
			if err != nil {
				return fmt.Errorf("normalize %q: %w", arg, err)
			}
			views[i] = fileView{Path: arg, Table: tableView{t}}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}
