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

// Package github retrieves the pull requests awaiting a user's review from
// GitHub's search API. It turns a set of preferences (author
// include/exclude filters, sort key and direction, a since-date bound, a
// reviewed-by-me toggle) into search requests, paginates through the
// results, and reconstructs the repository information the search API does
// not embed.
//
// The package includes:
//   - A Client interface for fetching one page of search results
//   - SearchClient, the REST implementation with pinned API headers
//   - FetchAllPullRequests, the sequential pagination engine
//   - ResolveRepository, deriving a repository descriptor from repository_url
//   - RetryClient, an optional retrying wrapper for transient failures
//   - A mock client for testing
//
// Basic usage:
//
//	client := github.NewSearchClient(github.ClientConfig{
//	    Token:           token,
//	    Username:        "octocat",
//	    APIEndpoint:     "https://api.github.com",
//	    GraphQLEndpoint: "https://api.github.com/graphql",
//	})
//	records, err := github.FetchAllPullRequests(ctx, client, github.FetchOptions{
//	    Sort:      github.SortCreated,
//	    Direction: github.SortDesc,
//	})
//	if err != nil {
//	    // Handle error
//	}
//	for _, pr := range records {
//	    // Process pull request
//	}
package github
