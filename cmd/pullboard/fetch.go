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
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pullboardhq/pullboard/internal/config"
	"github.com/pullboardhq/pullboard/internal/github"
	"github.com/pullboardhq/pullboard/internal/output"
	"github.com/pullboardhq/pullboard/internal/prefs"
)

func newFetchCommand() *cobra.Command {
	var (
		configFile   string
		envFile      string
		dbPath       string
		token        string
		username     string
		outputFile   string
		sortBy       string
		order        string
		since        string
		reviewedByMe bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch your review queue once and output NDJSON",
		Long: `Fetch the open pull requests awaiting your review and write them as
NDJSON, one pull request per line.

The retrieval honors the persisted dashboard preferences; flags override
individual settings for this invocation only.

Authentication is required via GitHub token:
  - Use --token flag to provide token directly
  - Or set GITHUB_TOKEN environment variable

The reviewer login comes from --username, the GITHUB_USERNAME environment
variable, or is resolved from the token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			return runFetch(ctx, fetchParams{
				configFile:      configFile,
				envFile:         envFile,
				dbPath:          dbPath,
				token:           token,
				username:        username,
				outputFile:      outputFile,
				sortBy:          sortBy,
				order:           order,
				since:           since,
				reviewedByMe:    reviewedByMe,
				reviewedByMeSet: cmd.Flags().Changed("include-reviewed"),
			})
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Config file path (default: standard locations)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Env file to load before reading configuration")
	cmd.Flags().StringVar(&dbPath, "db", "", "Preference database path (overrides config)")
	cmd.Flags().StringVar(&token, "token", "", "GitHub personal access token (overrides GITHUB_TOKEN env var)")
	cmd.Flags().StringVar(&username, "username", "", "Reviewer login (overrides GITHUB_USERNAME env var)")
	cmd.Flags().StringVar(&outputFile, "output", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort key: created, updated or comments (overrides preferences)")
	cmd.Flags().StringVar(&order, "order", "", "Sort direction: asc or desc (overrides preferences)")
	cmd.Flags().StringVar(&since, "since", "", "Only include PRs created on or after this date (2006-01-02)")
	cmd.Flags().BoolVar(&reviewedByMe, "include-reviewed", false, "Also include PRs you have already reviewed (overrides preferences)")

	return cmd
}

type fetchParams struct {
	configFile      string
	envFile         string
	dbPath          string
	token           string
	username        string
	outputFile      string
	sortBy          string
	order           string
	since           string
	reviewedByMe    bool
	reviewedByMeSet bool
}

func runFetch(ctx context.Context, p fetchParams) error {
	loadEnvFile(p.envFile)

	cfg, err := config.LoadConfig(p.configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if p.dbPath != "" {
		cfg.Defaults.PrefsPath = p.dbPath
	}

	logger := zap.NewNop()
	client, err := buildClient(ctx, cfg, p.token, p.username, logger)
	if err != nil {
		return err
	}
	if !client.Configured() {
		return fmt.Errorf("GitHub token not found. Set GITHUB_TOKEN or use --token flag")
	}

	opts, err := fetchOptions(cfg, p)
	if err != nil {
		return err
	}

	var writer output.RecordWriter
	if p.outputFile == "" {
		writer = output.NewWriter(os.Stdout)
	} else {
		fileWriter, fErr := output.NewFileWriter(p.outputFile)
		if fErr != nil {
			return fErr
		}
		writer = fileWriter
	}
	defer writer.Close()

	fetcher := github.NewRetryClient(client, nil)
	records, err := github.FetchAllPullRequests(ctx, fetcher, opts)
	if err != nil {
		return err
	}

	for i := range records {
		if err := writer.Write(records[i]); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "Fetched %d pull requests\n", len(records))
	return nil
}

// fetchOptions loads the persisted preferences and applies per-invocation
// flag overrides on top.
func fetchOptions(cfg *config.Config, p fetchParams) (github.FetchOptions, error) {
	kv, err := prefs.OpenBolt(cfg.Defaults.PrefsPath)
	if err != nil {
		return github.FetchOptions{}, fmt.Errorf("failed to open preference store: %w", err)
	}
	defer kv.Close()

	manager := prefs.NewManager(kv, prefs.Defaults{
		RefreshIntervalMins: cfg.Defaults.RefreshIntervalMins,
		ExcludedAuthors:     cfg.Defaults.ExcludedAuthors,
	})

	stored, err := manager.Preferences()
	if err != nil {
		return github.FetchOptions{}, fmt.Errorf("failed to load preferences: %w", err)
	}

	opts := stored.FetchOptions()

	if p.sortBy != "" {
		switch key := github.SortKey(p.sortBy); key {
		case github.SortCreated, github.SortUpdated, github.SortComments:
			opts.Sort = key
		default:
			return github.FetchOptions{}, fmt.Errorf("invalid --sort %q: want created, updated or comments", p.sortBy)
		}
	}
	if p.order != "" {
		switch dir := github.SortDirection(p.order); dir {
		case github.SortAsc, github.SortDesc:
			opts.Direction = dir
		default:
			return github.FetchOptions{}, fmt.Errorf("invalid --order %q: want asc or desc", p.order)
		}
	}
	if p.since != "" {
		if _, err := time.Parse("2006-01-02", p.since); err != nil {
			return github.FetchOptions{}, fmt.Errorf("invalid --since date %q: expected 2006-01-02", p.since)
		}
		opts.Since = github.SinceFilter{Enabled: true, Date: p.since}
	}
	if p.reviewedByMeSet {
		opts.IncludeReviewedByMe = p.reviewedByMe
	}

	return opts, nil
}
