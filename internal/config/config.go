// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the CLI reads from the environment.
//
// BEEMINDER_API_KEY is the personal auth token and is required; without it
// no command may touch the network. EDITOR picks the program the edit
// workflow spawns. BEEMINDER_API_URL exists for tests and proxies.
type Config struct {
	APIKey string `env:"BEEMINDER_API_KEY"`
	APIURL string `env:"BEEMINDER_API_URL" envDefault:"https://www.beeminder.com/api/v1"`
	Editor string `env:"EDITOR" envDefault:"nvim"`
}

// Load parses the environment and validates the credential.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.APIKey == "" {
		return nil, errors.New("please create environment variable BEEMINDER_API_KEY")
	}
	return cfg, nil
}
