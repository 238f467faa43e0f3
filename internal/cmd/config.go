package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javajack/xlnest/internal/config"
	"github.com/javajack/xlnest/internal/output"
)

// configOutput is the structured form of `xlnest config show`.
type configOutput struct {
	Path                  string `json:"path" yaml:"path"`
	OutputFormat          string `json:"output_format" yaml:"output_format"`
	Sheet                 string `json:"sheet" yaml:"sheet"`
	UnicodeNormalize      bool   `json:"unicode_normalize" yaml:"unicode_normalize"`
	TrimTrailingBlankRows bool   `json:"trim_trailing_blank_rows" yaml:"trim_trailing_blank_rows"`
	ListenAddr            string `json:"listen_addr" yaml:"listen_addr"`
	MaxBodyBytes          int64  `json:"max_body_bytes" yaml:"max_body_bytes"`
}

func (c configOutput) Text() string {
	return fmt.Sprintf(`Config: %s
  output_format: %s
  sheet: %s
  unicode_normalize: %t
  trim_trailing_blank_rows: %t
  listen_addr: %s
  max_body_bytes: %d
`, c.Path, c.OutputFormat, c.Sheet, c.UnicodeNormalize, c.TrimTrailingBlankRows, c.ListenAddr, c.MaxBodyBytes)
}

// configChange is printed by `config set` and `config unset`.
type configChange struct {
	Status string `json:"status" yaml:"status"`
	Key    string `json:"key" yaml:"key"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`
}

func (c configChange) Text() string {
	if c.Status == "unset" {
		return fmt.Sprintf("Unset %s\n", c.Key)
	}
	return fmt.Sprintf("Updated %s\n", c.Key)
}

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long: `Manage the configuration stored in ~/.config/xlnest/config.yaml (or --config,
or $XLNEST_CONFIG). Keys: output_format, sheet, unicode_normalize,
trim_trailing_blank_rows, listen_addr, max_body_bytes.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, cfg, err := o.loadConfigForEdit()
			if err != nil {
				return err
			}
			return o.printer(cmd).Print(cmd.Context(), configOutput{
				Path:                  path,
				OutputFormat:          cfg.OutputFormat,
				Sheet:                 cfg.Sheet,
				UnicodeNormalize:      cfg.UnicodeNormalize,
				TrimTrailingBlankRows: cfg.TrimTrailing(),
				ListenAddr:            cfg.Addr(envGet),
				MaxBodyBytes:          cfg.BodyLimit(),
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(strings.TrimSpace(args[0]))
			value := strings.TrimSpace(args[1])

			path, cfg, err := o.loadConfigForEdit()
			if err != nil {
				return err
			}
			if err := applyConfigValue(cfg, key, value); err != nil {
				return err
			}
			if err := cfg.Save(path); err != nil {
				return err
			}
			return o.printer(cmd).Print(cmd.Context(), configChange{Status: "updated", Key: key, Value: value})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unset <key>",
		Short: "Unset a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(strings.TrimSpace(args[0]))

			path, cfg, err := o.loadConfigForEdit()
			if err != nil {
				return err
			}
			if err := clearConfigValue(cfg, key); err != nil {
				return err
			}
			if err := cfg.Save(path); err != nil {
				return err
			}
			return o.printer(cmd).Print(cmd.Context(), configChange{Status: "unset", Key: key})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := o.configPath()
			if err != nil {
				return err
			}
			if output.IsStructured(output.FormatFromContext(cmd.Context())) {
				return o.printer(cmd).Print(cmd.Context(), map[string]string{"path": path})
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	return cmd
}

// loadConfigForEdit loads the config file directly; prepare skips it for config
// commands so a broken file can still be repaired.
func (o *rootOptions) loadConfigForEdit() (string, *config.Config, error) {
	path, err := o.configPath()
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return "", nil, fmt.Errorf("config %s: %w", path, err)
	}
	return path, cfg, nil
}

func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "output_format":
		format, err := output.ParseFormat(value)
		if err != nil {
			return err
		}
		cfg.OutputFormat = string(format)
	case "sheet":
		cfg.Sheet = value
	case "unicode_normalize":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: expected true or false", key, value)
		}
		cfg.UnicodeNormalize = b
	case "trim_trailing_blank_rows":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: expected true or false", key, value)
		}
		cfg.TrimTrailingBlankRows = &b
	case "listen_addr":
		cfg.ListenAddr = value
	case "max_body_bytes":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid %s %q: expected a positive byte count", key, value)
		}
		cfg.MaxBodyBytes = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func clearConfigValue(cfg *config.Config, key string) error {
	switch key {
	case "output_format":
		cfg.OutputFormat = ""
	case "sheet":
		cfg.Sheet = ""
	case "unicode_normalize":
		cfg.UnicodeNormalize = false
	case "trim_trailing_blank_rows":
		cfg.TrimTrailingBlankRows = nil
	case "listen_addr":
		cfg.ListenAddr = ""
	case "max_body_bytes":
		cfg.MaxBodyBytes = 0
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
