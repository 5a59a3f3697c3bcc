// Package config loads the editor configuration from YAML, merging the file
// over built-in defaults so a partial config stays usable.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RunRuleConfig overrides or adds a run rule for a file extension. Compile
// is optional; both templates may use the {file} and {exe} placeholders.
type RunRuleConfig struct {
	Compile []string `yaml:"compile"` // Optional compile step producing {exe}
	Run     []string `yaml:"run"`     // Command executed for :r
}

// Config represents the application configuration structure.
type Config struct {
	Editor struct {
		TabWidth          int `yaml:"tab_width"`           // Spaces inserted for a tab key
		StatusTimeoutSecs int `yaml:"status_timeout_secs"` // Transient status message lifetime
		RunTimeoutSecs    int `yaml:"run_timeout_secs"`    // Subprocess timeout for :r
	} `yaml:"editor"`
	Run     map[string]RunRuleConfig `yaml:"run"` // Keyed by extension, including the dot
	Listing struct {
		Ignore []string `yaml:"ignore"` // Glob patterns hidden from :ls
	} `yaml:"listing"`
	Theme struct {
		Primary  string `yaml:"primary"`  // Mode indicator and title color
		Success  string `yaml:"success"`  // Success message color
		Warning  string `yaml:"warning"`  // Warning message color
		Error    string `yaml:"error"`    // Error message color
		Emphasis string `yaml:"emphasis"` // Dirty marker and command line color
		Border   string `yaml:"border"`   // Pager frame color
	} `yaml:"theme"`
}

// New returns the default configuration.
func New() *Config {
	return defaultConfig()
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Editor.TabWidth = 4
	cfg.Editor.StatusTimeoutSecs = 3
	cfg.Editor.RunTimeoutSecs = 30
	cfg.Run = map[string]RunRuleConfig{}
	cfg.Listing.Ignore = []string{".git", "*.o", "*.swp"}
	cfg.Theme.Primary = "#7B61FF"
	cfg.Theme.Success = "#73F59F"
	cfg.Theme.Warning = "#F5D573"
	cfg.Theme.Error = "#F57373"
	cfg.Theme.Emphasis = "#F5A973"
	cfg.Theme.Border = "#7B61FF"
	return cfg
}

// LoadConfig loads configuration from the default location
// (~/.config/tedit/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "tedit", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if tempCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = tempCfg.Editor.TabWidth
	}
	if tempCfg.Editor.StatusTimeoutSecs > 0 {
		cfg.Editor.StatusTimeoutSecs = tempCfg.Editor.StatusTimeoutSecs
	}
	if tempCfg.Editor.RunTimeoutSecs > 0 {
		cfg.Editor.RunTimeoutSecs = tempCfg.Editor.RunTimeoutSecs
	}
	for ext, rule := range tempCfg.Run {
		cfg.Run[ext] = rule
	}
	if len(tempCfg.Listing.Ignore) > 0 {
		cfg.Listing.Ignore = tempCfg.Listing.Ignore
	}
	if tempCfg.Theme.Primary != "" {
		cfg.Theme.Primary = tempCfg.Theme.Primary
	}
	if tempCfg.Theme.Success != "" {
		cfg.Theme.Success = tempCfg.Theme.Success
	}
	if tempCfg.Theme.Warning != "" {
		cfg.Theme.Warning = tempCfg.Theme.Warning
	}
	if tempCfg.Theme.Error != "" {
		cfg.Theme.Error = tempCfg.Theme.Error
	}
	if tempCfg.Theme.Emphasis != "" {
		cfg.Theme.Emphasis = tempCfg.Theme.Emphasis
	}
	if tempCfg.Theme.Border != "" {
		cfg.Theme.Border = tempCfg.Theme.Border
	}

	return cfg, nil
}
