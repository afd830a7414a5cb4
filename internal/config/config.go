// Package config handles reading and writing .swipe/config.yaml and
// resolving the submission endpoint from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for .swipe/config.yaml.
type Config struct {
	Version  int           `yaml:"version"`
	Title    string        `yaml:"title"`
	Subtitle string        `yaml:"subtitle"`
	Catalog  string        `yaml:"catalog"` // path to a catalog YAML; empty uses the built-in one
	Labels   LabelsConfig  `yaml:"labels"`
	Gesture  GestureConfig `yaml:"gesture"`
	Log      LogConfig     `yaml:"log"`
}

// LabelsConfig names the three buckets in the UI.
type LabelsConfig struct {
	Keep  string `yaml:"keep"`
	Kill  string `yaml:"kill"`
	Maybe string `yaml:"maybe"`
}

// GestureConfig holds the drag commit thresholds.
type GestureConfig struct {
	ThresholdX float64 `yaml:"threshold_x"` // cells
	ThresholdY float64 `yaml:"threshold_y"` // cells
}

// LogConfig controls where logs are written.
type LogConfig struct {
	Events      bool   `yaml:"events"`      // append survey events to .swipe/log.jsonl
	Diagnostics string `yaml:"diagnostics"` // file for diagnostic logs while the TUI runs
}

const configDir = ".swipe"
const configFile = "config.yaml"

// Dir returns the .swipe directory inside root.
func Dir(root string) string {
	return filepath.Join(root, configDir)
}

// ReadConfig reads .swipe/config.yaml from the given project directory.
// Missing fields keep the values from DefaultConfig.
func ReadConfig(dir string) (*Config, error) {
	return ReadConfigFile(filepath.Join(dir, configDir, configFile))
}

// ReadConfigFile reads a config file from an explicit path.
func ReadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.fillDefaults()

	return cfg, nil
}

// WriteConfig writes cfg to .swipe/config.yaml in the given project directory.
// Creates the .swipe/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Labels: LabelsConfig{
			Keep:  "Keep",
			Kill:  "Kill",
			Maybe: "Maybe",
		},
		Gesture: GestureConfig{
			ThresholdX: 12,
			ThresholdY: 4,
		},
		Log: LogConfig{
			Events:      true,
			Diagnostics: filepath.Join(configDir, "swipe.log"),
		},
	}
}

// fillDefaults restores defaults for values a config file blanked out.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Labels.Keep == "" {
		c.Labels.Keep = def.Labels.Keep
	}
	if c.Labels.Kill == "" {
		c.Labels.Kill = def.Labels.Kill
	}
	if c.Labels.Maybe == "" {
		c.Labels.Maybe = def.Labels.Maybe
	}
	if c.Gesture.ThresholdX <= 0 {
		c.Gesture.ThresholdX = def.Gesture.ThresholdX
	}
	if c.Gesture.ThresholdY <= 0 {
		c.Gesture.ThresholdY = def.Gesture.ThresholdY
	}
}
