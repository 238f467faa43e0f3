package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/javajack/xlnest"
)

// readGrid reads one input document: a path, or stdin for "" and "-". --from
// overrides the format the path extension implies.
func (o *rootOptions) readGrid(cmd *cobra.Command, n *xlnest.Normalizer, arg string) (xlnest.Grid, error) {
	var format xlnest.SourceFormat
	if o.from != "" {
		f, err := xlnest.ParseSourceFormat(o.from)
		if err != nil {
			return nil, err
		}
		format = f
	}

	if arg == "" || arg == "-" {
		if format == "" {
			format = xlnest.SourceTSV
		}
		g, err := n.ReadGrid(cmd.InOrStdin(), format)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return g, nil
	}

	if format == "" {
		return n.ReadFile(arg)
	}
	f, err := os.Open(arg)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", arg, err)
	}
	defer f.Close()
	g, err := n.ReadGrid(f, format)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", arg, err)
	}
	return g, nil
}

func argOrStdin(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
