package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration a server can read for the
// ambient concerns that aren't part of the required command line (§6.2).
// Width/height/frequency/team names/slots-per-team have no config-file
// path: cliargs.Parse requires all six flags unconditionally, so they are
// CLI-only by construction and live in cliargs.Args instead.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Dev       DevConfig       `yaml:"dev"`
}

// ServerConfig holds the dashboard's listen address. The game protocol
// port itself is always CLI-only (-p), since the subject requires it be a
// required argument rather than a config default.
type ServerConfig struct {
	DashboardAddr string `yaml:"dashboard_addr"`
}

// TelemetryConfig points at the optional Postgres/Redis sinks
// internal/telemetry wraps. Either left empty disables that sink.
type TelemetryConfig struct {
	PostgresURL string `yaml:"postgres_url"`
	RedisURL    string `yaml:"redis_url"`
}

type DevConfig struct {
	Enabled  bool `yaml:"enabled"`
	Seed     int64 `yaml:"seed"`
	VerboseLog bool `yaml:"verbose_log"`
}

// Load reads and parses a YAML config file. A missing file or an empty path
// is returned as the read error; callers that want config-is-optional
// behavior fall back to Default() themselves.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			DashboardAddr: ":8080",
		},
		Telemetry: TelemetryConfig{},
		Dev: DevConfig{
			Enabled: false,
		},
	}
}
