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
	"strings"
	"testing"
)

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name       string
		reviewer   string
		filters    []AuthorFilter
		since      SinceFilter
		reviewedBy bool
		expected   string
	}{
		{
			name:     "empty filter set has no author tokens",
			reviewer: "octocat",
			filters:  []AuthorFilter{},
			expected: "is:open is:pr review-requested:octocat archived:false",
		},
		{
			name:     "excludes precede includes regardless of input order",
			reviewer: "octocat",
			filters: []AuthorFilter{
				{Username: "alice", Mode: FilterInclude},
				{Username: "dependabot", Mode: FilterExclude},
				{Username: "bob", Mode: FilterInclude},
				{Username: "renovate", Mode: FilterExclude},
			},
			expected: "is:open is:pr review-requested:octocat archived:false " +
				"-author:dependabot -author:renovate author:alice author:bob",
		},
		{
			name:     "only excludes",
			reviewer: "octocat",
			filters: []AuthorFilter{
				{Username: "app/dependabot", Mode: FilterExclude},
			},
			expected: "is:open is:pr review-requested:octocat archived:false -author:app/dependabot",
		},
		{
			name:     "only includes",
			reviewer: "octocat",
			filters: []AuthorFilter{
				{Username: "alice", Mode: FilterInclude},
			},
			expected: "is:open is:pr review-requested:octocat archived:false author:alice",
		},
		{
			name:     "duplicate filters repeat the predicate",
			reviewer: "octocat",
			filters: []AuthorFilter{
				{Username: "alice", Mode: FilterExclude},
				{Username: "alice", Mode: FilterExclude},
			},
			expected: "is:open is:pr review-requested:octocat archived:false -author:alice -author:alice",
		},
		{
			name:     "since enabled appends creation bound",
			reviewer: "octocat",
			filters:  []AuthorFilter{},
			since:    SinceFilter{Enabled: true, Date: "2024-01-01"},
			expected: "is:open is:pr review-requested:octocat archived:false created:>=2024-01-01",
		},
		{
			name:     "since disabled ignores date content",
			reviewer: "octocat",
			filters:  []AuthorFilter{},
			since:    SinceFilter{Enabled: false, Date: "2024-01-01"},
			expected: "is:open is:pr review-requested:octocat archived:false",
		},
		{
			name:     "since enabled with empty date is omitted",
			reviewer: "octocat",
			filters:  []AuthorFilter{},
			since:    SinceFilter{Enabled: true, Date: ""},
			expected: "is:open is:pr review-requested:octocat archived:false",
		},
		{
			name:       "reviewed-by-me widens the reviewer predicate",
			reviewer:   "octocat",
			filters:    []AuthorFilter{},
			reviewedBy: true,
			expected:   "is:open is:pr (review-requested:octocat OR reviewed-by:octocat) archived:false",
		},
		{
			name:       "all predicate groups together",
			reviewer:   "octocat",
			reviewedBy: true,
			filters: []AuthorFilter{
				{Username: "bot", Mode: FilterExclude},
				{Username: "alice", Mode: FilterInclude},
			},
			since: SinceFilter{Enabled: true, Date: "2024-06-15"},
			expected: "is:open is:pr (review-requested:octocat OR reviewed-by:octocat) archived:false " +
				"-author:bot author:alice created:>=2024-06-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := buildSearchQuery(tt.reviewer, tt.filters, tt.since, tt.reviewedBy)
			if result != tt.expected {
				t.Errorf("buildSearchQuery() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestBuildSearchQueryDefaultFilters(t *testing.T) {
	query := buildSearchQuery("octocat", nil, SinceFilter{}, false)

	for _, bot := range DefaultExcludedAuthors {
		if !strings.Contains(query, "-author:"+bot) {
			t.Errorf("nil filters: query missing default exclude for %q: %s", bot, query)
		}
	}
	if strings.Contains(query, " author:") {
		t.Errorf("nil filters: query has unexpected include tokens: %s", query)
	}
}

func TestBuildSearchQueryPassesUsernamesVerbatim(t *testing.T) {
	// Malformed usernames are GitHub's problem, not a local error.
	query := buildSearchQuery("octocat", []AuthorFilter{
		{Username: "weird name", Mode: FilterExclude},
	}, SinceFilter{}, false)

	if !strings.Contains(query, "-author:weird name") {
		t.Errorf("expected verbatim username passthrough, got %s", query)
	}
}
