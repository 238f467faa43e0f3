package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/javajack/xlnest"
	"github.com/javajack/xlnest/internal/config"
	"github.com/javajack/xlnest/internal/output"
	"github.com/javajack/xlnest/logging"
)

var (
	// Version is set at build time
	version = "dev"
	// Commit is set at build time
	commit = "none"
)

// SetVersionInfo sets the version information from build flags
func SetVersionInfo(v, c string) {
	version = v
	commit = c
}

// envGet is swapped in tests.
var envGet = os.Getenv

// rootOptions holds the global flags and what PersistentPreRunE derives from them.
type rootOptions struct {
	outputFmt    string
	queryExpr    string
	configFile   string
	debug        bool
	sheet        string
	origin       string
	selectExpr   string
	nfc          bool
	keepTrailing bool
	from         string
	htmlTable    int

	cfg *config.Config
}

// NewRootCmd builds the xlnest command tree.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}

	root := &cobra.Command{
		Use:   "xlnest",
		Short: "Normalize merged-header spreadsheet exports into nested groups",
		Long: `xlnest reads a spreadsheet export whose header cells were merged
(tab-separated text, xlsx or an HTML table), rebuilds the row and column group
hierarchy and prints it as JSON, YAML, an outline or a plain table.

Environment Variables:
  XLNEST_CONFIG       Config file path
  XLNEST_LISTEN_ADDR  Listen address for "xlnest serve"

A .env file in the working directory is loaded first.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.prepare(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&o.outputFmt, "output", "o", "text", "Output format (text|json|ndjson|table|yaml)")
	flags.StringVar(&o.queryExpr, "query", "", "jq expression to filter JSON output")
	flags.StringVar(&o.configFile, "config", "", "Config file (default: ~/.config/xlnest/config.yaml)")
	flags.BoolVar(&o.debug, "debug", false, "Enable debug logging")
	flags.StringVar(&o.sheet, "sheet", "", "Worksheet to read from xlsx input (default: first sheet)")
	flags.StringVar(&o.origin, "origin", "", "First data cell, e.g. B3 (default: detected)")
	flags.StringVar(&o.selectExpr, "select", "", `Keep only data rows matching an expression, e.g. 'key != "draft"'`)
	flags.BoolVar(&o.nfc, "nfc", false, "Normalize cells to Unicode NFC before grouping")
	flags.BoolVar(&o.keepTrailing, "keep-trailing-blank", false, "Keep blank rows at the end of the input")
	flags.StringVar(&o.from, "from", "", "Input format for stdin or unknown extensions (tsv|xlsx|html)")
	flags.IntVar(&o.htmlTable, "table", 0, "Which <table> of HTML input to read (0-based)")

	root.AddCommand(
		newNormalizeCmd(o),
		newDescribeCmd(o),
		newValidateCmd(o),
		newExportCmd(o),
		newServeCmd(o),
		newConfigCmd(o),
	)
	return root
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "error: %v\n", err)
		return err
	}
	return nil
}

func (o *rootOptions) prepare(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	level := slog.LevelWarn
	if o.debug {
		level = slog.LevelDebug
	}
	logging.SetLogger(logging.NewTextLogger(cmd.ErrOrStderr(), level))

	skipConfigLoad := cmd.Name() == "config" || (cmd.Parent() != nil && cmd.Parent().Name() == "config")
	o.cfg = &config.Config{}
	if !skipConfigLoad {
		cfg, err := o.loadConfig()
		if err != nil {
			return err
		}
		o.cfg = cfg
	}

	// Output format selection: --output > config > JSON when piped > text
	formatStr := o.outputFmt
	if !cmd.Flags().Changed("output") {
		if strings.TrimSpace(o.cfg.OutputFormat) != "" {
			formatStr = o.cfg.OutputFormat
		} else if !isTerminal(cmd.OutOrStdout()) {
			formatStr = string(output.FormatJSON)
		}
	}
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	if o.selectExpr != "" {
		if err := xlnest.CompileSelect(o.selectExpr); err != nil {
			return err
		}
	}
	if o.origin != "" {
		if _, err := xlnest.ParseCellRef(o.origin); err != nil {
			return fmt.Errorf("invalid --origin: %w", err)
		}
	}

	ctx := cmd.Context()
	ctx = output.WithFormat(ctx, format)
	ctx = output.WithQuery(ctx, o.queryExpr)
	cmd.SetContext(ctx)
	return nil
}

func (o *rootOptions) configPath() (string, error) {
	return config.ResolvePath(o.configFile, envGet)
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	path, err := o.configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// engineOptions turns flags and config into Normalizer options. Flags win.
func (o *rootOptions) engineOptions() []xlnest.Option {
	opts := []xlnest.Option{
		xlnest.WithTrimTrailingBlankRows(!o.keepTrailing && o.cfg.TrimTrailing()),
		xlnest.WithUnicodeNormalization(o.nfc || o.cfg.UnicodeNormalize),
		xlnest.WithHTMLTable(o.htmlTable),
	}

	sheet := o.sheet
	if sheet == "" {
		sheet = o.cfg.Sheet
	}
	if sheet != "" {
		opts = append(opts, xlnest.WithSheet(sheet))
	}
	if o.selectExpr != "" {
		opts = append(opts, xlnest.WithSelect(o.selectExpr))
	}
	if o.origin != "" {
		if ref, err := xlnest.ParseCellRef(o.origin); err == nil {
			opts = append(opts, xlnest.WithOrigin(ref.Col, ref.Row))
		}
	}
	return opts
}

func (o *rootOptions) printer(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), output.FormatFromContext(cmd.Context()))
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
