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

// Package main implements the pullboard command-line interface.
// The tool collects open pull requests awaiting the configured user's
// review across all accessible repositories, either serving them as a
// dashboard API or exporting them once as NDJSON.
//
// The CLI supports:
//   - Serving the dashboard API with the serve command
//   - One-shot NDJSON export with the fetch command
//   - Inspecting the effective configuration with the config command
//   - GitHub token authentication via flag or environment variable
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	pullboard serve [flags]
//	pullboard fetch [flags]
//	pullboard config [flags]
//
// Example:
//
//	export GITHUB_TOKEN=your_token
//	export GITHUB_USERNAME=your_login
//	pullboard fetch --output queue.ndjson
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication/configuration error
//   - 3: Network error
package main
