// Copyright 2025 Pullboard, LLC
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

// Package config provides configuration management for pullboard with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations. Secrets (the GitHub
// token and the reviewer's login) are never read from the config file;
// only the names of the environment variables carrying them are.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .pullboard.yaml (current directory)
//   - .pullboard.yml (current directory)
//   - ~/.pullboard/config.yaml
//   - ~/.pullboard/config.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides. Path expansion (~ and environment variables) is
// performed on the preference database path.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		// Try default locations
		defaultPaths := []string{
			".pullboard.yaml",
			".pullboard.yml",
			filepath.Join(os.Getenv("HOME"), ".pullboard", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".pullboard", "config.yml"),
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

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Defaults.PrefsPath = expandPath(cfg.Defaults.PrefsPath)

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
	// GitHub endpoints
	if endpoint := os.Getenv("GITHUB_API_ENDPOINT"); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}

	// Server
	if addr := os.Getenv("PULLBOARD_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}

	// Defaults
	if mins := os.Getenv("PULLBOARD_REFRESH_MINUTES"); mins != "" {
		if v, err := parsePositiveInt(mins); err == nil {
			cfg.Defaults.RefreshIntervalMins = v
		}
	}
	if path := os.Getenv("PULLBOARD_PREFS_PATH"); path != "" {
		cfg.Defaults.PrefsPath = path
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// Validate checks if the configuration contains valid values. This should
// be called after loading configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if c.Defaults.RefreshIntervalMins <= 0 {
		return fmt.Errorf("refresh interval must be positive, got: %d", c.Defaults.RefreshIntervalMins)
	}
	if c.GitHub.APIEndpoint == "" {
		return fmt.Errorf("GitHub API endpoint cannot be empty")
	}
	if c.GitHub.GraphQLEndpoint == "" {
		return fmt.Errorf("GitHub GraphQL endpoint cannot be empty")
	}
	if c.GitHub.TokenEnv == "" {
		return fmt.Errorf("token environment variable name cannot be empty")
	}
	if c.Defaults.PrefsPath == "" {
		return fmt.Errorf("preference database path cannot be empty")
	}
	return nil
}
