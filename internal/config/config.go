// Package config resolves the bridge connection settings for one invocation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables consumed to construct the bridge client and produced
// by the register command.
const (
	EnvBridgeIP       = "HUECTL_BRIDGE_IP"
	EnvBridgeUsername = "HUECTL_BRIDGE_USERNAME"
)

// Config is the bridge IP/username pair every networked command needs. It is
// resolved once per invocation and passed explicitly to command handlers.
type Config struct {
	BridgeIP string `yaml:"bridge_ip"`
	Username string `yaml:"username"`
}

// DefaultPath returns the per-user config file location. The file is optional.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "huectl", "config.yaml"), nil
}

// Load resolves the configuration from the yaml file at path, then overrides
// with environment variables. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvBridgeIP); v != "" {
		cfg.BridgeIP = v
	}
	if v := os.Getenv(EnvBridgeUsername); v != "" {
		cfg.Username = v
	}

	return cfg, nil
}

// Save writes the configuration to the yaml file at path, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate checks that the settings needed to talk to a bridge are present.
func (c *Config) Validate() error {
	if c.BridgeIP == "" {
		return fmt.Errorf("bridge IP address is not set: pass --bridge, set %s or run 'huectl register'", EnvBridgeIP)
	}
	if c.Username == "" {
		return fmt.Errorf("bridge username is not set: pass --username, set %s or run 'huectl register'", EnvBridgeUsername)
	}
	return nil
}
