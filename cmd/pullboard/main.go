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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pberrors "github.com/pullboardhq/pullboard/internal/errors"
	"github.com/pullboardhq/pullboard/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pullboard",
		Short: "Review dashboard for pull requests awaiting your review",
		Long: `Pullboard collects the open pull requests where your review is requested
across all repositories you have access to, and serves them as a dashboard
API or a one-shot NDJSON export.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newFetchCommand())
	rootCmd.AddCommand(newConfigCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, pberrors.ErrNotConfigured) ||
		errors.Is(err, pberrors.ErrInvalidToken) ||
		errors.Is(err, pberrors.ErrRateLimit) {
		return 2 // Authentication/configuration errors
	}

	if errors.Is(err, pberrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
