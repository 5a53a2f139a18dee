package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/aqasim81/severity-palette/internal/palette"
)

// ErrNonPositiveTimeout indicates a zero or negative connect timeout.
var ErrNonPositiveTimeout = errors.New("timeout must be positive")

// Default values for configuration fields. The base colors are the
// dashboard theme's success and danger backgrounds.
const (
	DefaultLowColor       = "#198754"
	DefaultHighColor      = "#dc3545"
	DefaultFormat         = "text"
	DefaultProfile        = "default"
	DefaultConnectTimeout = 10 * time.Second
	DefaultStateFileName  = "zoom.yml"
)

// Config holds the application configuration loaded from file, environment, and flags.
type Config struct {
	LowColor       string
	HighColor      string
	Levels         []string
	Format         string
	DatabaseURL    string
	ConnectTimeout time.Duration
	StateFile      string
	Profile        string
}

// fileConfig is the raw file representation with string durations. YAML and
// TOML share the same keys.
type fileConfig struct {
	LowColor       string   `yaml:"low_color"       toml:"low_color"`
	HighColor      string   `yaml:"high_color"      toml:"high_color"`
	Levels         []string `yaml:"levels"          toml:"levels"`
	Format         string   `yaml:"format"          toml:"format"`
	DatabaseURL    string   `yaml:"database_url"    toml:"database_url"`
	ConnectTimeout string   `yaml:"connect_timeout" toml:"connect_timeout"`
	StateFile      string   `yaml:"state_file"      toml:"state_file"`
	Profile        string   `yaml:"profile"         toml:"profile"`
}

// DefaultStateFile returns the zoom state file under the user config
// directory, falling back to the working directory.
func DefaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultStateFileName
	}

	return filepath.Join(dir, "palette", DefaultStateFileName)
}

// New returns a Config populated with default values.
func New() *Config {
	return &Config{
		LowColor:       DefaultLowColor,
		HighColor:      DefaultHighColor,
		Levels:         palette.LevelNames(),
		Format:         DefaultFormat,
		ConnectTimeout: DefaultConnectTimeout,
		StateFile:      DefaultStateFile(),
		Profile:        DefaultProfile,
	}
}

// Load reads a YAML or TOML configuration file, chosen by extension, and
// returns a Config. If allowMissing is true and the file does not exist,
// defaults are returned.
func Load(path string, allowMissing bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && allowMissing {
			return New(), nil
		}

		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var raw fileConfig

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return fromFile(&raw)
}

// fromFile converts the raw file representation to a Config with defaults applied.
func fromFile(raw *fileConfig) (*Config, error) {
	cfg := New()

	if raw.LowColor != "" {
		cfg.LowColor = raw.LowColor
	}

	if raw.HighColor != "" {
		cfg.HighColor = raw.HighColor
	}

	if len(raw.Levels) > 0 {
		cfg.Levels = raw.Levels
	}

	if raw.Format != "" {
		cfg.Format = raw.Format
	}

	if raw.DatabaseURL != "" {
		cfg.DatabaseURL = raw.DatabaseURL
	}

	if raw.ConnectTimeout != "" {
		d, err := time.ParseDuration(raw.ConnectTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing connect_timeout %q: %w", raw.ConnectTimeout, err)
		}

		if d <= 0 {
			return nil, fmt.Errorf("parsing connect_timeout %q: %w", raw.ConnectTimeout, ErrNonPositiveTimeout)
		}

		cfg.ConnectTimeout = d
	}

	if raw.StateFile != "" {
		cfg.StateFile = raw.StateFile
	}

	if raw.Profile != "" {
		cfg.Profile = raw.Profile
	}

	return cfg, nil
}

// MergeEnv overrides config fields from PALETTE_* environment variables.
func MergeEnv(cfg *Config) {
	if v := os.Getenv("PALETTE_LOW_COLOR"); v != "" {
		cfg.LowColor = v
	}

	if v := os.Getenv("PALETTE_HIGH_COLOR"); v != "" {
		cfg.HighColor = v
	}

	if v := os.Getenv("PALETTE_LEVELS"); v != "" {
		cfg.Levels = SplitLevels(v)
	}

	if v := os.Getenv("PALETTE_DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}

	if v := os.Getenv("PALETTE_CONNECT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ConnectTimeout = d
		}
	}

	if v := os.Getenv("PALETTE_STATE_FILE"); v != "" {
		cfg.StateFile = v
	}

	if v := os.Getenv("PALETTE_PROFILE"); v != "" {
		cfg.Profile = v
	}
}

// SplitLevels splits a comma-separated level list, dropping empty entries.
func SplitLevels(s string) []string {
	var levels []string

	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			levels = append(levels, p)
		}
	}

	return levels
}
