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

// Placeholder values shipped in the example env file. A token or username
// equal to its placeholder means the user copied the example without
// editing it and is treated the same as an unset value.
const (
	TokenPlaceholder    = "GITHUB_PAT_WITH_REPO_SCOPE"
	UsernamePlaceholder = "your_github_username_here"
)

// ConfigSummary is a read-only view of the client configuration combined
// with an author filter set, for display and empty-state messaging. The
// token itself is never exposed, only its presence.
type ConfigSummary struct {
	Username        string         `json:"username"`
	ExcludedAuthors []string       `json:"excluded_authors"`
	IncludedAuthors []string       `json:"included_authors"`
	AuthorFilters   []AuthorFilter `json:"author_filters"`
	HasToken        bool           `json:"has_token"`
}

// Config summarizes the client configuration for the given filter set.
// A nil filters slice falls back to the default bot-exclusion list; an
// explicit empty slice means no filters.
func (c *SearchClient) Config(filters []AuthorFilter) ConfigSummary {
	if filters == nil {
		filters = DefaultAuthorFilters()
	}

	summary := ConfigSummary{
		Username:        c.config.Username,
		ExcludedAuthors: []string{},
		IncludedAuthors: []string{},
		AuthorFilters:   filters,
		HasToken:        c.config.Token != "" && c.config.Token != TokenPlaceholder,
	}

	for _, f := range filters {
		switch f.Mode {
		case FilterExclude:
			summary.ExcludedAuthors = append(summary.ExcludedAuthors, f.Username)
		case FilterInclude:
			summary.IncludedAuthors = append(summary.IncludedAuthors, f.Username)
		}
	}

	return summary
}

// Configured reports whether both the token and the reviewer's username
// are present and not placeholders. When false, retrieval must not be
// attempted; callers render a setup prompt instead.
func (c *SearchClient) Configured() bool {
	tokenOK := c.config.Token != "" && c.config.Token != TokenPlaceholder
	userOK := c.config.Username != "" && c.config.Username != UsernamePlaceholder
	return tokenOK && userOK
}
