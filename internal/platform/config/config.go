package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultStaleHorizon    = 24 * time.Hour
	defaultMonitorInterval = time.Minute
	defaultTickInterval    = time.Second
)

type Config struct {
	HomePath    string
	StatePath   string
	DBPath      string
	CatalogPath string

	StaleHorizon    time.Duration
	MonitorInterval time.Duration
	TickInterval    time.Duration
	EnforcerPath    string
}

// fileConfig is the optional on-disk override file (<home>/config.yaml).
type fileConfig struct {
	StaleHorizonHours  int    `yaml:"stale_horizon_hours"`
	MonitorIntervalSec int    `yaml:"monitor_interval_seconds"`
	TickIntervalMS     int    `yaml:"tick_interval_ms"`
	EnforcerPath       string `yaml:"enforcer_path"`
}

func New(homePath string) (Config, error) {
	if homePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		homePath = filepath.Join(home, ".mindgate")
	}
	cfg := Config{
		HomePath:        homePath,
		StatePath:       filepath.Join(homePath, "state"),
		DBPath:          filepath.Join(homePath, "state", "events.db"),
		CatalogPath:     filepath.Join(homePath, "intentions.yaml"),
		StaleHorizon:    defaultStaleHorizon,
		MonitorInterval: defaultMonitorInterval,
		TickInterval:    defaultTickInterval,
	}
	if err := cfg.applyFile(filepath.Join(homePath, "config.yaml")); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	overrides := fileConfig{}
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if overrides.StaleHorizonHours > 0 {
		c.StaleHorizon = time.Duration(overrides.StaleHorizonHours) * time.Hour
	}
	if overrides.MonitorIntervalSec > 0 {
		c.MonitorInterval = time.Duration(overrides.MonitorIntervalSec) * time.Second
	}
	if overrides.TickIntervalMS > 0 {
		c.TickInterval = time.Duration(overrides.TickIntervalMS) * time.Millisecond
	}
	if overrides.EnforcerPath != "" {
		c.EnforcerPath = overrides.EnforcerPath
	}
	return nil
}
