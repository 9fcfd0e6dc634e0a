package platform

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultDataFileName is the store file name used when none is given.
const DefaultDataFileName = "collection.json"

// FileConfig is the optional user configuration file, in YAML or TOML.
type FileConfig struct {
	DataFile     string  `yaml:"data_file" toml:"data_file"`
	RateURL      string  `yaml:"rate_url" toml:"rate_url"`
	RateTTL      string  `yaml:"rate_ttl" toml:"rate_ttl"`
	FallbackRate float64 `yaml:"fallback_rate" toml:"fallback_rate"`
	ReadOnly     bool    `yaml:"read_only" toml:"read_only"`
	DevSafety    *bool   `yaml:"dev_safety" toml:"dev_safety"`
}

// TTL parses RateTTL. An empty value yields zero, meaning the default.
func (c FileConfig) TTL() (time.Duration, error) {
	if c.RateTTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RateTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid rate_ttl %q: %w", c.RateTTL, err)
	}
	return d, nil
}

// Options translates the file settings into service options.
func (c FileConfig) Options() []Option {
	opts := []Option{WithReadOnly(c.ReadOnly)}
	if c.DevSafety != nil {
		opts = append(opts, WithDevSafety(*c.DevSafety))
	}
	return opts
}

// XDGDataHome returns XDG_DATA_HOME or its default.
func XDGDataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share")
}

// XDGConfigHome returns XDG_CONFIG_HOME or its default.
func XDGConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

// DefaultDataFile returns the store file used when neither a flag, the
// config file nor a local collection names one.
func DefaultDataFile() string {
	return filepath.Join(XDGDataHome(), "deckhand", DefaultDataFileName)
}

// DefaultConfigPath returns the first existing config file in the deckhand
// config directory, or the YAML path if there is none.
func DefaultConfigPath() string {
	dir := filepath.Join(XDGConfigHome(), "deckhand")
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		if hasFile(dir, name) {
			return filepath.Join(dir, name)
		}
	}
	return filepath.Join(dir, "config.yaml")
}

// LoadConfig reads the config file at path. A missing file is not an error
// and yields the zero config.
func LoadConfig(path string) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("error reading config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("error decoding config file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("error decoding config file: %w", err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	if _, err := cfg.TTL(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
