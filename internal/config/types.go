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

// Package config types define the configuration structures used throughout
// pullboard. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

import "os"

// Config represents the complete configuration for pullboard.
// It consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Server   ServerConfig   `yaml:"server"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// GitHubConfig contains GitHub-specific settings including API endpoints
// and authentication configuration. This allows easy configuration for
// GitHub Enterprise deployments by specifying custom endpoints.
type GitHubConfig struct {
	APIEndpoint     string `yaml:"api_endpoint"`
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	TokenEnv        string `yaml:"token_env"`
	UsernameEnv     string `yaml:"username_env"`
}

// ServerConfig contains settings for the HTTP API server started by the
// serve command.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultsConfig contains default settings that seed the preference store
// on first use. Once a preference has been persisted, the stored value
// wins; these defaults only apply to keys that have never been written.
type DefaultsConfig struct {
	RefreshIntervalMins int      `yaml:"refresh_interval_mins"`
	PrefsPath           string   `yaml:"prefs_path"`
	ExcludedAuthors     []string `yaml:"excluded_authors"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. These defaults are optimized for public GitHub.com usage but
// can be overridden for GitHub Enterprise or special requirements.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint:     "https://api.github.com",
			GraphQLEndpoint: "https://api.github.com/graphql",
			TokenEnv:        "GITHUB_TOKEN",
			UsernameEnv:     "GITHUB_USERNAME",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Defaults: DefaultsConfig{
			RefreshIntervalMins: 5,
			PrefsPath:           "~/.pullboard/prefs.db",
			ExcludedAuthors:     nil,
		},
	}
}

// Token returns the GitHub token from the configured environment variable.
func (c *Config) Token() string {
	return os.Getenv(c.GitHub.TokenEnv)
}

// Username returns the reviewer's GitHub login from the configured
// environment variable. May be empty; the serve and fetch commands fall
// back to resolving the login from the token.
func (c *Config) Username() string {
	return os.Getenv(c.GitHub.UsernameEnv)
}
