// Package config loads the rowbinary CLI's YAML configuration file: buffer
// size, wire format variant, input compression, and the optional Redis
// sink used by the load subcommand.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds rowbinary CLI configuration.
type Config struct {
	BufferSize  int         `yaml:"bufferSize"`
	Format      string      `yaml:"format"`      // "rowbinary" | "rowbinary-with-names-and-types"
	Compression string      `yaml:"compression"` // "", "zstd", "lz4", "lzf"
	LogDir      string      `yaml:"logDir"`
	Redis       RedisConfig `yaml:"redis"`

	path string
}

// RedisConfig configures the load subcommand's sink.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"keyPrefix"`
	KeyColumn string `yaml:"keyColumn"`
}

// ValidationError collects configuration issues.
type ValidationError struct {
	Path   string
	Errors []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid configuration")
	if e.Path != "" {
		b.WriteString(": ")
		b.WriteString(e.Path)
	}
	for _, err := range e.Errors {
		b.WriteString("\n - ")
		b.WriteString(err)
	}
	return b.String()
}

// Load reads and validates the YAML configuration file at path.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	raw, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("opening config file %s: %w", absPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", absPath, err)
	}

	cfg.path = absPath
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults populates default values.
func (c *Config) ApplyDefaults() {
	if c.BufferSize <= 0 {
		c.BufferSize = 1 << 20
	}
	if c.Format == "" {
		c.Format = "rowbinary-with-names-and-types"
	}
	if c.LogDir == "" {
		c.LogDir = "logs"
	}
	if c.Redis.KeyColumn == "" {
		c.Redis.KeyColumn = "id"
	}
}

// Validate ensures the config is usable.
func (c *Config) Validate() error {
	var errs []string

	switch c.Format {
	case "rowbinary", "rowbinary-with-names-and-types":
	default:
		errs = append(errs, fmt.Sprintf("format must be 'rowbinary' or 'rowbinary-with-names-and-types', got %q", c.Format))
	}

	switch c.Compression {
	case "", "zstd", "lz4", "lzf":
	default:
		errs = append(errs, fmt.Sprintf("compression must be '', 'zstd', 'lz4', or 'lzf', got %q", c.Compression))
	}

	if c.BufferSize < 64 {
		errs = append(errs, fmt.Sprintf("bufferSize must be >= 64, got %d", c.BufferSize))
	}

	if len(errs) > 0 {
		return &ValidationError{Path: c.path, Errors: errs}
	}
	return nil
}

// ConfigDir returns the directory the config file was loaded from.
func (c *Config) ConfigDir() string {
	return filepath.Dir(c.path)
}

// Summary returns a concise one-line description of the active settings.
func (c *Config) Summary() string {
	redis := "none"
	if c.Redis.Addr != "" {
		redis = c.Redis.Addr
	}
	return fmt.Sprintf("format=%s compression=%s bufferSize=%d redis=%s",
		c.Format, emptyAs(c.Compression, "none"), c.BufferSize, redis)
}

func emptyAs(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
