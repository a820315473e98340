package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// cliConfig holds persisted defaults for the locate CLI. Fields may be
// overridden by command-line flags on any given invocation.
type cliConfig struct {
	Debug     bool    `json:"debug"`
	Threshold float64 `json:"threshold"`
	MaxCount  int     `json:"max_count"`
	Threads   int     `json:"threads"`
}

// defaultCLIConfig returns a cliConfig populated with the engine's own
// parameter defaults (match.DefaultThreshold, match.DefaultMaxCount).
func defaultCLIConfig() *cliConfig {
	return &cliConfig{
		Debug:     false,
		Threshold: 0.8,
		MaxCount:  10,
		Threads:   0,
	}
}

// validate clamps out-of-range values to safe defaults rather than failing
// the whole load.
func (c *cliConfig) validate() {
	if c.Threshold < 0 || c.Threshold > 1 {
		c.Threshold = 0.8
	}
	if c.MaxCount < 1 {
		c.MaxCount = 10
	}
	if c.Threads < 0 {
		c.Threads = 0
	}
}

// configPath resolves the persisted config file location under the
// OS-appropriate XDG config directory.
func configPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("imgmatch-locate", "config.json"))
}

// loadConfig loads cliConfig from its persisted location, falling back to
// defaults if the file doesn't exist or fails to parse.
func loadConfig() (*cliConfig, error) {
	path, err := configPath()
	if err != nil {
		return defaultCLIConfig(), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return defaultCLIConfig(), err
	}
	cfg := defaultCLIConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return defaultCLIConfig(), err
	}
	cfg.validate()
	return cfg, nil
}

// saveConfig persists cfg to its XDG-resolved location.
func saveConfig(cfg *cliConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
