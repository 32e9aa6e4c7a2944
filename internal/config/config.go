// Package config handles refcheck's global configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in
// ~/.config/refcheck/config.yml.
type GlobalConfig struct {
	LearnedPath string `yaml:"learned_path,omitempty"` // Learned-pattern store location
	HistoryDir  string `yaml:"history_dir,omitempty"`  // Run-history directory
	BatchSize   int    `yaml:"batch_size,omitempty"`   // Verification batch size
	Comments    bool   `yaml:"comments,omitempty"`     // Attach reviewer comments by default
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "refcheck"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// LearnedFile is the default learned-pattern store file name.
	LearnedFile = "learned_patterns.json"
	// HistoryFile is the run-history JSONL file name.
	HistoryFile = "history.jsonl"
	// CacheDBFile is the ephemeral history cache database.
	CacheDBFile = "history.db"
	// DefaultBatchSize is the verification batch size when unconfigured.
	DefaultBatchSize = 10
)

// GlobalConfigPath returns the path to the global config file. Respects
// XDG_CONFIG_HOME, defaults to ~/.config/refcheck/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// defaultStateDir returns the run-history directory. Respects
// XDG_STATE_HOME, defaults to ~/.local/state/refcheck.
func defaultStateDir() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, GlobalConfigDir)
}

// LoadGlobal loads the global configuration file. A missing file returns
// a config populated with defaults, not an error.
func LoadGlobal() (*GlobalConfig, error) {
	cfg := &GlobalConfig{}

	path := GlobalConfigPath()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing global config: %w", err)
			}
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills unset fields.
func (c *GlobalConfig) applyDefaults() {
	if c.LearnedPath == "" {
		if p := GlobalConfigPath(); p != "" {
			c.LearnedPath = filepath.Join(filepath.Dir(p), LearnedFile)
		}
	}
	if c.HistoryDir == "" {
		c.HistoryDir = defaultStateDir()
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
}

// Save writes the global configuration, creating the directory if needed.
func (c *GlobalConfig) Save() error {
	path := GlobalConfigPath()
	if path == "" {
		return errors.New("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding global config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing global config: %w", err)
	}
	return nil
}

// HistoryPath returns the run-history JSONL path.
func (c *GlobalConfig) HistoryPath() string {
	return filepath.Join(c.HistoryDir, HistoryFile)
}

// CacheDBPath returns the ephemeral history cache database path.
func (c *GlobalConfig) CacheDBPath() string {
	return filepath.Join(c.HistoryDir, "cache", CacheDBFile)
}
