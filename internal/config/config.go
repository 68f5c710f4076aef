// Package config loads the service configuration from a YAML file with
// environment-variable overrides, and can watch the file for changes so the
// admin token and rate limits apply without a restart.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Rate configures the per-client rate limiter on the public endpoints.
type Rate struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Config is the full service configuration.
type Config struct {
	// DBPath is the read-only moments database the serving path opens.
	DBPath string `yaml:"db_path"`
	// LogsDBPath is the separate request-log database.
	LogsDBPath string `yaml:"logs_db_path"`
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`
	// AdminToken gates the /admin endpoints. Empty disables them (503).
	AdminToken string `yaml:"admin_token"`
	// EpisodesDir is the ingestion input directory.
	EpisodesDir string `yaml:"episodes_dir"`
	Rate        Rate   `yaml:"rate"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath:      "echomindr.db",
		LogsDBPath:  "echomindr_logs.db",
		Listen:      ":8000",
		EpisodesDir: "episodes",
		Rate:        Rate{RPS: 5, Burst: 10},
	}
}

// Load reads the config file at path (missing file means defaults) and then
// applies ECHOMINDR_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// defaults apply
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ECHOMINDR_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("ECHOMINDR_LOGS_DB"); v != "" {
		cfg.LogsDBPath = v
	}
	if v := os.Getenv("ECHOMINDR_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("ECHOMINDR_ADMIN_TOKEN"); v != "" {
		cfg.AdminToken = v
	}
	if v := os.Getenv("ECHOMINDR_EPISODES"); v != "" {
		cfg.EpisodesDir = v
	}
	if v := os.Getenv("ECHOMINDR_RATE_RPS"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Rate.RPS = rps
		}
	}
}
