package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fullstackdevtools/csvfetch/internal/destination"
)

const (
	DefaultHomeDir    = ".csvfetch"
	DefaultConfigFile = "config.yml"

	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "curl/8"
	DefaultLogLevel  = "info"
)

// Config represents the csvfetch configuration file
type Config struct {
	Download DownloadConfig `yaml:"download"`
	Log      LogConfig      `yaml:"log"`
}

// DownloadConfig contains download-related settings
type DownloadConfig struct {
	Dir       string        `yaml:"dir"`        // Destination directory, "~" is expanded
	Timeout   time.Duration `yaml:"timeout"`    // Request timeout, e.g. "30s"
	UserAgent string        `yaml:"user_agent"` // User-Agent header sent with the request
	Browser   *bool         `yaml:"browser"`    // Open 403 URLs in the browser (default true)
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `yaml:"level"` // Log level: debug, info, warn, error
}

// GetHome returns the csvfetch home directory (~/.csvfetch).
func GetHome() string {
	home, _ := os.UserHomeDir()
	if home == "" {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, DefaultHomeDir)
}

// DefaultPath returns ~/.csvfetch/config.yml.
func DefaultPath() string {
	return filepath.Join(GetHome(), DefaultConfigFile)
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	dir, err := destination.DefaultDir()
	if err != nil {
		dir = filepath.Join("Downloads", destination.Subfolder)
	}
	browser := true

	return &Config{
		Download: DownloadConfig{
			Dir:       dir,
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
			Browser:   &browser,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// BrowserEnabled reports whether 403 responses open the browser.
func (c *Config) BrowserEnabled() bool {
	return c.Download.Browser == nil || *c.Download.Browser
}

// Load reads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Apply defaults for missing values
	def := DefaultConfig()
	if cfg.Download.Dir == "" {
		cfg.Download.Dir = def.Download.Dir
	}
	if cfg.Download.Timeout == 0 {
		cfg.Download.Timeout = def.Download.Timeout
	}
	if cfg.Download.UserAgent == "" {
		cfg.Download.UserAgent = def.Download.UserAgent
	}
	if cfg.Download.Browser == nil {
		cfg.Download.Browser = def.Download.Browser
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}

	return &cfg, nil
}

// LoadOrDefault loads path, falling back to defaults when the file is absent.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// Save writes configuration to a file, creating its directory.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Download.Dir) == "" {
		return fmt.Errorf("download.dir is required")
	}

	if c.Download.Timeout <= 0 {
		return fmt.Errorf("download.timeout must be positive")
	}

	if strings.TrimSpace(c.Download.UserAgent) == "" {
		return fmt.Errorf("download.user_agent is required")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}

	return nil
}
