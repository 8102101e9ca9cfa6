package app

import (
	"oauthrelay/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug forces debug logging regardless of the configured level.
	Debug bool

	// ConfigPath is an explicit YAML file. Empty means oauthrelay.yaml in the
	// working directory, if present.
	ConfigPath string

	// RelayConfig is filled by NewApplication. Tests may pre-populate it to
	// skip loading.
	RelayConfig *config.RelayConfig
}

// NewConfig creates a new application configuration
func NewConfig(debug bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		ConfigPath: configPath,
	}
}
