// Package course implements the ea-course CLI internals: course guide loading,
// the third-party MCP server catalog, content syncing from the course
// repository, and GitHub token management.
package course

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"eamcp/internal/logging"
)

const appName = "ea-course"

// Config holds user configuration for the ea-course CLI.
type Config struct {
	// ContentRepo is the Git repository that holds the course content.
	ContentRepo string `yaml:"content_repo"`
	// Branch is the content branch to sync. Empty means the remote default.
	Branch string `yaml:"branch,omitempty"`
	// ContentDir is the local directory where synced content is cached.
	ContentDir string `yaml:"content_dir"`
	Version    string `yaml:"version"`
	InitTime   int64  `yaml:"init_time"`
}

// ConfigPath returns the standard config file path for the current platform.
func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// DefaultContentDir returns the default local cache for synced course content.
func DefaultContentDir() string {
	return filepath.Join(xdg.DataHome, appName, "content")
}

// DefaultConfig returns a Config with sensible defaults. The content repo is
// empty until the user points the CLI at their course repository.
func DefaultConfig() Config {
	return Config{
		ContentDir: DefaultContentDir(),
		Version:    "1.0",
	}
}

// Load reads the config from the standard location. When no config file
// exists yet it returns the defaults rather than an error, so read-only
// commands work out of the box.
func Load() (*Config, error) {
	path := ConfigPath()
	if _, err := os.Stat(path); err != nil {
		logging.Debug("no config file, using defaults", "path", path)
		cfg := DefaultConfig()
		return &cfg, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
func LoadFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.ContentDir == "" {
		cfg.ContentDir = DefaultContentDir()
	}
	return &cfg, nil
}

// Save writes the config to the standard location.
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the config to a specific path with restrictive permissions.
func (c *Config) SaveTo(path string) error {
	if c.InitTime == 0 {
		c.InitTime = time.Now().Unix()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
