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

package github

import (
	"fmt"
	"strings"
)

// DefaultExcludedAuthors is the process-wide default author filter: bot
// and service accounts whose pull requests are noise in a review queue.
// It applies whenever a caller passes a nil filter sequence.
var DefaultExcludedAuthors = []string{
	"app/dependabot",
	"app/actionbot-app",
	"SvcGitHubPATGithubPREditorPAT",
	"SvcGitHubPATREPOSAUTOINCREMENTPAT",
}

// DefaultAuthorFilters returns DefaultExcludedAuthors as exclude-mode
// filters. The result is a fresh slice the caller may modify.
func DefaultAuthorFilters() []AuthorFilter {
	filters := make([]AuthorFilter, 0, len(DefaultExcludedAuthors))
	for _, username := range DefaultExcludedAuthors {
		filters = append(filters, AuthorFilter{Username: username, Mode: FilterExclude})
	}
	return filters
}

// buildSearchQuery constructs a GitHub search query for open pull requests
// awaiting the reviewer's review. It renders the author filters as
// -author:/author: qualifiers (excludes first, each group preserving the
// sequence order), optionally widens the reviewer predicate to also match
// PRs the reviewer has already reviewed, and appends a creation-date lower
// bound when the since filter is enabled.
//
// Usernames are passed through verbatim: a malformed username yields a
// query GitHub treats as a miss, not a local error.
func buildSearchQuery(reviewer string, filters []AuthorFilter, since SinceFilter, includeReviewedByMe bool) string {
	if filters == nil {
		filters = DefaultAuthorFilters()
	}

	var excluded, included []string
	for _, f := range filters {
		switch f.Mode {
		case FilterExclude:
			excluded = append(excluded, "-author:"+f.Username)
		case FilterInclude:
			included = append(included, "author:"+f.Username)
		}
	}

	// Widening the reviewer predicate needs an OR group: a bare pair of
	// qualifiers would be AND-ed by the search syntax.
	reviewerQuery := "review-requested:" + reviewer
	if includeReviewedByMe {
		reviewerQuery = fmt.Sprintf("(review-requested:%s OR reviewed-by:%s)", reviewer, reviewer)
	}

	parts := []string{"is:open", "is:pr", reviewerQuery, "archived:false"}

	if authorQuery := joinNonEmpty(strings.Join(excluded, " "), strings.Join(included, " ")); authorQuery != "" {
		parts = append(parts, authorQuery)
	}

	if since.Enabled && since.Date != "" {
		parts = append(parts, "created:>="+since.Date)
	}

	return strings.TrimSpace(strings.Join(parts, " "))
}

// joinNonEmpty joins the non-empty arguments with single spaces.
func joinNonEmpty(parts ...string) string {
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}
