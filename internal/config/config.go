// Package config provides YAML-based configuration loading for lore.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendLocal = "local"
	BackendMySQL = "mysql"
)

// Config is the top-level lore configuration, loaded from lore.yaml.
type Config struct {
	RepoRoot  string          `yaml:"repo_root"`
	Store     StoreConfig     `yaml:"store"`
	Legacy    LegacyConfig    `yaml:"legacy"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// StoreConfig selects the storage backend: a local sqlite file per managed
// repository (the default) or a shared MySQL-protocol server.
type StoreConfig struct {
	Backend  string `yaml:"backend"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
}

// LegacyConfig points at the pre-store sources picked up by the importer.
type LegacyConfig struct {
	TasksFile    string `yaml:"tasks_file"`
	InsightsFile string `yaml:"insights_file"`
	SessionLog   string `yaml:"session_log"`
}

// DashboardConfig holds settings for the local dashboard server.
type DashboardConfig struct {
	Port   int    `yaml:"port"`
	Resync string `yaml:"resync"` // cron spec for periodic legacy re-import
}

// Load reads a YAML config file from path and returns a validated Config.
// A missing file yields the default configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Parse(nil)
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse: %w", err)
		}
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// StorePath returns the sqlite store file path, resolved against the repo root.
func (c *Config) StorePath() string {
	if filepath.IsAbs(c.Store.Path) {
		return c.Store.Path
	}
	return filepath.Join(c.RepoRoot, c.Store.Path)
}

// LegacyPath resolves a legacy source path against the repo root. Empty stays
// empty, meaning the source is not configured.
func (c *Config) LegacyPath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.RepoRoot, p)
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.RepoRoot == "" {
		c.RepoRoot = "."
	}
	if c.Store.Backend == "" {
		c.Store.Backend = BackendLocal
	}
	if c.Store.Path == "" {
		c.Store.Path = filepath.Join(".lore", "lore.db")
	}
	if c.Store.Host == "" {
		c.Store.Host = "127.0.0.1"
	}
	if c.Store.Port == 0 {
		c.Store.Port = 3306
	}
	if c.Legacy.TasksFile == "" {
		c.Legacy.TasksFile = "tasks.json"
	}
	if c.Legacy.InsightsFile == "" {
		c.Legacy.InsightsFile = "insights.json"
	}
	if c.Legacy.SessionLog == "" {
		c.Legacy.SessionLog = "SESSION_LOG.md"
	}
	if c.Dashboard.Port == 0 {
		c.Dashboard.Port = 8080
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendLocal:
	case BackendMySQL:
		if c.Store.Database == "" {
			return fmt.Errorf("config: store.database is required for the mysql backend")
		}
	default:
		return fmt.Errorf("config: unknown store backend %q (expected %q or %q)",
			c.Store.Backend, BackendLocal, BackendMySQL)
	}
	if c.Dashboard.Port < 0 || c.Dashboard.Port > 65535 {
		return fmt.Errorf("config: dashboard port %d out of range", c.Dashboard.Port)
	}
	return nil
}
