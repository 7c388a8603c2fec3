// Copyright 2025 The ghscripts Authors
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration for ghscripts with a well-defined
// precedence order:
//
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// The configuration file is YAML and is discovered in standard locations
// unless an explicit path is given. Endpoint overrides exist mainly for
// GitHub Enterprise deployments and for tests.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable settings.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// GitHubConfig holds the API endpoints.
type GitHubConfig struct {
	// APIEndpoint is the REST base URL. Must end with a slash.
	APIEndpoint string `yaml:"api_endpoint"`

	// GraphQLEndpoint is the GraphQL URL.
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
}

// DefaultsConfig holds per-command default parameters.
type DefaultsConfig struct {
	// ContribDays is how many days back the contribs command looks.
	ContribDays int `yaml:"contrib_days"`

	// ActiveWindowDays is how many days back the active command looks for
	// workflow runs.
	ActiveWindowDays int `yaml:"active_window_days"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint:     "https://api.github.com/",
			GraphQLEndpoint: "https://api.github.com/graphql",
		},
		Defaults: DefaultsConfig{
			ContribDays:      7,
			ActiveWindowDays: 3,
		},
	}
}

// LoadConfig loads configuration from the given file, or from the first of
// the standard locations that exists:
//   - .ghscripts.yaml (current directory)
//   - ~/.config/ghscripts/config.yaml
//
// Environment variables are applied after the file, allowing runtime
// overrides. A missing file in the standard locations is not an error.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		home, _ := os.UserHomeDir()
		defaultPaths := []string{
			".ghscripts.yaml",
			filepath.Join(home, ".config", "ghscripts", "config.yaml"),
		}
		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("GITHUB_API_ENDPOINT"); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}
}

// Validate checks if the configuration contains valid values. This should be
// called after loading configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if c.GitHub.APIEndpoint == "" {
		return fmt.Errorf("GitHub API endpoint cannot be empty")
	}
	if c.GitHub.GraphQLEndpoint == "" {
		return fmt.Errorf("GitHub GraphQL endpoint cannot be empty")
	}
	if c.Defaults.ContribDays <= 0 {
		return fmt.Errorf("contrib_days must be positive, got: %d", c.Defaults.ContribDays)
	}
	if c.Defaults.ActiveWindowDays <= 0 {
		return fmt.Errorf("active_window_days must be positive, got: %d", c.Defaults.ActiveWindowDays)
	}
	return nil
}
