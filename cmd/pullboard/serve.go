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
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pullboardhq/pullboard/internal/api"
	"github.com/pullboardhq/pullboard/internal/config"
	pberrors "github.com/pullboardhq/pullboard/internal/errors"
	"github.com/pullboardhq/pullboard/internal/github"
	"github.com/pullboardhq/pullboard/internal/prefs"
	"github.com/pullboardhq/pullboard/internal/service"
)

func newServeCommand() *cobra.Command {
	var (
		configFile string
		envFile    string
		addr       string
		dbPath     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the review dashboard API",
		Long: `Start the HTTP server backing the review dashboard.

Authentication is required via a GitHub personal access token with repo
scope, read from the GITHUB_TOKEN environment variable (configurable).
The reviewer login is read from GITHUB_USERNAME; when unset, it is
resolved from the token at startup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configFile, envFile, addr, dbPath)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Config file path (default: standard locations)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Env file to load before reading configuration")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "Preference database path (overrides config)")

	return cmd
}

func runServe(ctx context.Context, configFile, envFile, addr, dbPath string) error {
	loadEnvFile(envFile)

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if dbPath != "" {
		cfg.Defaults.PrefsPath = dbPath
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := buildClient(ctx, cfg, "", "", logger)
	if err != nil {
		return err
	}

	kv, err := prefs.OpenBolt(cfg.Defaults.PrefsPath)
	if err != nil {
		return fmt.Errorf("failed to open preference store: %w", err)
	}
	defer kv.Close()

	manager := prefs.NewManager(kv, prefs.Defaults{
		RefreshIntervalMins: cfg.Defaults.RefreshIntervalMins,
		ExcludedAuthors:     cfg.Defaults.ExcludedAuthors,
	})

	svc := service.New(client, manager, logger)
	router := api.NewRouter(api.NewHandler(svc, manager, logger))

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// buildClient constructs the search client, resolving the reviewer login
// from the token when no username is configured. Flag overrides take
// precedence over the environment. Returns an unconfigured client rather
// than an error when the token is missing; the API reports that state per
// request so the dashboard can render a setup prompt.
func buildClient(ctx context.Context, cfg *config.Config, tokenFlag, userFlag string, logger *zap.Logger) (*github.SearchClient, error) {
	token := tokenFlag
	if token == "" {
		token = cfg.Token()
	}
	username := userFlag
	if username == "" {
		username = cfg.Username()
	}

	clientCfg := github.ClientConfig{
		Token:           token,
		Username:        username,
		APIEndpoint:     cfg.GitHub.APIEndpoint,
		GraphQLEndpoint: cfg.GitHub.GraphQLEndpoint,
	}
	client := github.NewSearchClient(clientCfg)

	if token != "" && username == "" {
		resolveCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		login, err := client.ViewerLogin(resolveCtx)
		if err != nil {
			if errors.Is(err, pberrors.ErrInvalidToken) {
				return nil, err
			}
			logger.Warn("failed to resolve login from token", zap.Error(err))
			return client, nil
		}

		logger.Info("resolved reviewer login from token", zap.String("login", login))
		clientCfg.Username = login
		client = github.NewSearchClient(clientCfg)
	}

	return client, nil
}

// loadEnvFile loads an env file when one was requested or a default .env
// exists. Missing files are only an error when explicitly named.
func loadEnvFile(envFile string) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load env file %s: %v\n", envFile, err)
		}
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
}
