package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javajack/xlnest"
)

func newExportCmd(o *rootOptions) *cobra.Command {
	var (
		to        string
		sheetName string
	)

	cmd := &cobra.Command{
		Use:   "export [file] --to out.xlsx|out.tsv",
		Short: "Write the normalized table back as a merged-header sheet",
		Long: `Export normalizes the input and writes it back in the merged-cell layout:
.xlsx gets real merged header cells, .tsv/.txt writes each title once per span.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := xlnest.NewNormalizer(o.engineOptions()...)
			g, err := o.readGrid(cmd, n, argOrStdin(args))
			if err != nil {
				return err
			}
			t, err := n.NormalizeGrid(g)
			if err != nil {
				return err
			}

			if err := writeExport(t, to, sheetName); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", to)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Output file; the extension picks the format (.xlsx, .tsv, .txt)")
	cmd.Flags().StringVar(&sheetName, "sheet-name", "", "Worksheet name for .xlsx output (default: Sheet1)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func writeExport(t xlnest.FlattenedTable, path, sheet string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %q: %w", path, err)
		}
		if err := xlnest.WriteXLSX(t, f, sheet); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case ".tsv", ".txt":
		if err := os.WriteFile(path, []byte(xlnest.FormatTSV(t)+"\n"), 0o644); err != nil {
			return fmt.Errorf("write %q: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported export format %q (expected .xlsx, .tsv or .txt)", filepath.Ext(path))
	}
}
