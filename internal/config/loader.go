package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"oauthrelay/pkg/logging"
)

// DefaultConfigFile is read from the working directory when no path is given.
const DefaultConfigFile = "oauthrelay.yaml"

// LoadConfig builds the effective configuration: defaults, then the YAML file
// at configPath (or DefaultConfigFile if present), then environment variables.
// An explicitly requested file that does not exist is an error.
func LoadConfig(configPath string) (RelayConfig, error) {
	config := GetDefaultConfig()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigFile
	}

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			// config malformed
			return RelayConfig{}, fmt.Errorf("error loading config from %s: %w", configPath, err)
		}
		logging.Info("ConfigLoader", "Loaded configuration from %s", configPath)
	case errors.Is(err, os.ErrNotExist) && !explicit:
		logging.Debug("ConfigLoader", "No %s found, using defaults and environment", configPath)
	default:
		return RelayConfig{}, fmt.Errorf("error reading config file %s: %w", configPath, err)
	}

	if err := ApplyEnv(&config); err != nil {
		return RelayConfig{}, err
	}
	return config, nil
}

// ApplyEnv overlays environment variables onto cfg. Variables that are not
// set leave the corresponding field untouched.
func ApplyEnv(cfg *RelayConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
