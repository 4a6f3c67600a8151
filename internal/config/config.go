// Package config loads the gauth CLI configuration: the registered
// service's client credentials and the local sign-in listener settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gauth/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/gauth"
	configFileName = "config.yaml"
)

// Config holds the service registration the CLI acts on behalf of.
type Config struct {
	// ClientID identifies the registered service.
	ClientID string `yaml:"clientId"`

	// ClientSecret authenticates the registered service.
	ClientSecret string `yaml:"clientSecret"`

	// RedirectURI must match the URI registered for the service.
	RedirectURI string `yaml:"redirectUri"`

	// CallbackPort is the local sign-in listener port.
	CallbackPort int `yaml:"callbackPort"`
}

// Default returns the configuration defaults applied before the file is
// read.
func Default() Config {
	return Config{
		CallbackPort: 3000,
	}
}

// DefaultConfigPath returns the per-user configuration directory.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}

	return filepath.Join(homeDir, userConfigDir), nil
}

// Load loads configuration from the specified directory. A missing
// config.yaml yields the defaults; a malformed one is an error.
func Load(configPath string) (Config, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	cfg := Default()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("Config", "No config.yaml found at %s, using defaults", configFilePath)
			return cfg, nil
		}
		return Config{}, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}

	logging.Debug("Config", "Loaded configuration from %s", configFilePath)
	return cfg, nil
}

// Validate reports whether the configuration names a complete service
// registration.
func (c Config) Validate() error {
	if c.ClientID == "" {
		return errors.New("clientId is not configured")
	}
	if c.ClientSecret == "" {
		return errors.New("clientSecret is not configured")
	}
	if c.RedirectURI == "" {
		return errors.New("redirectUri is not configured")
	}
	return nil
}
