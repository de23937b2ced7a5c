package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Jobs  JobsConfig  `yaml:"jobs"`
	Paths PathsConfig `yaml:"paths"`
	Log   LogConfig   `yaml:"log"`
}

// JobsConfig bounds and tunes expensive job execution
type JobsConfig struct {
	MaxConcurrent int    `yaml:"max_concurrent"`
	StateTTL      string `yaml:"state_ttl"`
	ProbeCacheTTL string `yaml:"probe_cache_ttl"`
	ProbeCacheLen int    `yaml:"probe_cache_len"`
}

// PathsConfig holds storage locations and collaborator inputs
type PathsConfig struct {
	DownloadDir string `yaml:"download_dir"`
	OutputDir   string `yaml:"output_dir"`
	CookiesFile string `yaml:"cookies_file"`
}

// LogConfig selects log verbosity and output shape
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Jobs: JobsConfig{
			MaxConcurrent: 2,
			StateTTL:      "1h",
			ProbeCacheTTL: "15m",
			ProbeCacheLen: 128,
		},
		Paths: PathsConfig{
			DownloadDir: filepath.Join(AppDir(), "downloads"),
			OutputDir:   filepath.Join(AppDir(), "output"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// AppDir returns the application directory (~/.clipsave)
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".clipsave"
	}
	return filepath.Join(home, ".clipsave")
}

// BinDir returns the bin directory for bundled tools
func BinDir() string {
	return filepath.Join(AppDir(), "bin")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// EnsureDirs creates all required directories for cfg
func (c *Config) EnsureDirs() error {
	dirs := []string{AppDir(), BinDir(), c.Paths.DownloadDir, c.Paths.OutputDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads config from file, returns default if not exists
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadDefault loads config from default path
func LoadDefault() (*Config, error) {
	return Load(ConfigPath())
}

// Save writes config to file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// StateTTL returns the ephemeral state lifetime as a duration
func (c *Config) StateTTL() (time.Duration, error) {
	return ParseDuration(c.Jobs.StateTTL)
}

// ProbeCacheTTL returns the probe memoization lifetime as a duration
func (c *Config) ProbeCacheTTL() (time.Duration, error) {
	return ParseDuration(c.Jobs.ProbeCacheTTL)
}

var durationPattern = regexp.MustCompile(`^(\d+)(m|h|d)$`)

// ParseDuration parses duration strings like "15m", "24h", "7d"
func ParseDuration(s string) (time.Duration, error) {
	matches := durationPattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid duration format: %s (use format like 15m, 24h, 7d)", s)
	}

	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch unit {
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %s", unit)
	}
}
