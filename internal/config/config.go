// Package config loads qhfctl settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/qhfkit/internal/charset"
	"github.com/joshuapare/qhfkit/internal/logger"
	"github.com/joshuapare/qhfkit/internal/transcript"
	"github.com/joshuapare/qhfkit/pkg/types"
)

// Config represents the qhfctl configuration.
type Config struct {
	OwnerLabel    string  `yaml:"owner_label"`
	OutputDir     string  `yaml:"output_dir"`
	TimeLayout    string  `yaml:"time_layout"`
	TimeZone      string  `yaml:"time_zone"`
	HeaderCharset string  `yaml:"header_charset"`
	Placeholder   string  `yaml:"placeholder"`
	ArchivePath   string  `yaml:"archive_path"`
	Logging       Logging `yaml:"logging"`
}

// Logging contains logging configuration.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
	Dir    string `yaml:"dir"`    // empty logs to stderr
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		OwnerLabel:    transcript.DefaultOwnerLabel,
		TimeLayout:    transcript.DefaultTimeLayout,
		TimeZone:      "UTC",
		HeaderCharset: charset.Default,
		Placeholder:   types.DefaultPlaceholder,
		ArchivePath:   "qhf-archive.db",
		Logging: Logging{
			Level:  "warn",
			Format: "text",
		},
	}
}

// DefaultPath returns $HOME/.qhfctl/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".qhfctl", "config.yaml"), nil
}

// LoadConfig loads configuration from the specified path. Fields missing from
// the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return cfg, nil
}

// Resolve loads path when given, otherwise the default path if it exists,
// otherwise the defaults.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	def, err := DefaultPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(def); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return LoadConfig(def)
}

// Validate rejects settings the tool cannot honour.
func (c *Config) Validate() error {
	var errs []error
	if c.OwnerLabel == "" {
		errs = append(errs, errors.New("owner_label must not be empty"))
	}
	if _, err := charset.New(c.HeaderCharset); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// Location resolves TimeZone; empty means UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time_zone: %w", err)
	}
	return loc, nil
}

// ParseOptions returns the parser settings.
func (c *Config) ParseOptions() types.ParseOptions {
	return types.ParseOptions{
		HeaderCharset: c.HeaderCharset,
		Placeholder:   c.Placeholder,
	}
}

// RenderOptions returns the transcript settings.
func (c *Config) RenderOptions() transcript.Options {
	loc, err := c.Location()
	if err != nil {
		loc = time.UTC
	}
	return transcript.Options{
		OwnerLabel: c.OwnerLabel,
		TimeLayout: c.TimeLayout,
		Location:   loc,
	}
}

// LoggerOptions returns the logger settings. Level errors were already
// reported by Validate.
func (c *Config) LoggerOptions() logger.Options {
	level, _ := logger.ParseLevel(c.Logging.Level)
	return logger.Options{
		Enabled: true,
		Level:   level,
		JSON:    c.Logging.Format == "json",
		LogDir:  c.Logging.Dir,
	}
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
