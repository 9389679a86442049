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

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pullboardhq/pullboard/internal/config"
	"github.com/pullboardhq/pullboard/internal/github"
)

func newConfigCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the effective configuration and credential state as JSON.
Secrets are never printed; the output only reports whether a token is
present.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(configFile)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Config file path (default: standard locations)")

	return cmd
}

func runConfig(configFile string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}

	client := github.NewSearchClient(github.ClientConfig{
		Token:           cfg.Token(),
		Username:        cfg.Username(),
		APIEndpoint:     cfg.GitHub.APIEndpoint,
		GraphQLEndpoint: cfg.GitHub.GraphQLEndpoint,
	})

	out := struct {
		APIEndpoint     string               `json:"api_endpoint"`
		GraphQLEndpoint string               `json:"graphql_endpoint"`
		ServerAddr      string               `json:"server_addr"`
		PrefsPath       string               `json:"prefs_path"`
		Summary         github.ConfigSummary `json:"summary"`
		Configured      bool                 `json:"configured"`
	}{
		APIEndpoint:     cfg.GitHub.APIEndpoint,
		GraphQLEndpoint: cfg.GitHub.GraphQLEndpoint,
		ServerAddr:      cfg.Server.Addr,
		PrefsPath:       cfg.Defaults.PrefsPath,
		Summary:         client.Config(nil),
		Configured:      client.Configured(),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
