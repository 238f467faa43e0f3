package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppName is the application name used for the config directory
const AppName = "xlnest"

const (
	// DefaultListenAddr is where `xlnest serve` listens when nothing else is set.
	DefaultListenAddr = ":8080"
	// DefaultMaxBodyBytes caps request bodies of the HTTP service (10 MiB).
	DefaultMaxBodyBytes int64 = 10 << 20
)

// Environment variables read by the CLI and the service.
const (
	EnvConfig     = "XLNEST_CONFIG"
	EnvListenAddr = "XLNEST_LISTEN_ADDR"
)

// Config holds CLI and service configuration
type Config struct {
	OutputFormat          string `yaml:"output_format,omitempty"` // text, json, ndjson, table, yaml
	Sheet                 string `yaml:"sheet,omitempty"`
	UnicodeNormalize      bool   `yaml:"unicode_normalize,omitempty"`
	TrimTrailingBlankRows *bool  `yaml:"trim_trailing_blank_rows,omitempty"`
	ListenAddr            string `yaml:"listen_addr,omitempty"`
	MaxBodyBytes          int64  `yaml:"max_body_bytes,omitempty"`
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DefaultConfigPath returns the default config file path
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ResolvePath picks the config file: flag value, then $XLNEST_CONFIG, then the
// default location.
func ResolvePath(flagValue string, getenv func(string) string) (string, error) {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p, nil
	}
	if getenv != nil {
		if p := strings.TrimSpace(getenv(EnvConfig)); p != "" {
			return p, nil
		}
	}
	return DefaultConfigPath()
}

// Load loads config from the given path. A missing file yields an empty Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save saves config to the given path
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// TrimTrailing reports whether trailing blank rows are dropped (default true).
func (c *Config) TrimTrailing() bool {
	if c == nil || c.TrimTrailingBlankRows == nil {
		return true
	}
	return *c.TrimTrailingBlankRows
}

// Addr returns the listen address: $XLNEST_LISTEN_ADDR, then listen_addr, then
// DefaultListenAddr.
func (c *Config) Addr(getenv func(string) string) string {
	if getenv != nil {
		if a := strings.TrimSpace(getenv(EnvListenAddr)); a != "" {
			return a
		}
	}
	if c != nil && strings.TrimSpace(c.ListenAddr) != "" {
		return strings.TrimSpace(c.ListenAddr)
	}
	return DefaultListenAddr
}

// BodyLimit returns max_body_bytes or DefaultMaxBodyBytes when unset.
func (c *Config) BodyLimit() int64 {
	if c == nil || c.MaxBodyBytes <= 0 {
		return DefaultMaxBodyBytes
	}
	return c.MaxBodyBytes
}
