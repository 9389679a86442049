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

// Package github provides types and interfaces for interacting with the GitHub API.
package github

import "time"

// SortKey selects the field the search API sorts results by.
type SortKey string

// Sort keys accepted by the search API for issue and PR queries.
const (
	SortCreated  SortKey = "created"
	SortUpdated  SortKey = "updated"
	SortComments SortKey = "comments"
)

// SortDirection selects ascending or descending result order.
type SortDirection string

// Sort directions accepted by the search API.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// FilterMode determines whether an author filter narrows results to a
// username or removes that username's pull requests from them.
type FilterMode string

// Author filter modes.
const (
	FilterInclude FilterMode = "include"
	FilterExclude FilterMode = "exclude"
)

// AuthorFilter is a single author predicate for the search query. Filters
// form an ordered sequence; duplicates are legal and simply repeat a
// predicate. Entries with an unknown mode are ignored.
type AuthorFilter struct {
	Username string     `json:"username"`
	Mode     FilterMode `json:"mode"`
}

// SinceFilter bounds results to pull requests created on or after Date.
// When Enabled is false, Date is ignored regardless of content.
type SinceFilter struct {
	Enabled bool   `json:"enabled"`
	Date    string `json:"date"` // calendar date, 2006-01-02
}

// User is a GitHub user as embedded in search results.
type User struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

// Label is an issue or pull request label.
type Label struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// PullRequest is a raw pull request item as returned by the search API.
// The search API returns PRs in issue shape: there is no embedded
// repository object, only RepositoryURL. ResolveRepository reconstructs
// the repository from it.
type PullRequest struct {
	ID            int64     `json:"id"`
	Number        int       `json:"number"`
	Title         string    `json:"title"`
	HTMLURL       string    `json:"html_url"`
	State         string    `json:"state"`
	Draft         bool      `json:"draft"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	User          User      `json:"user"`
	Labels        []Label   `json:"labels"`
	Comments      int       `json:"comments"`
	RepositoryURL string    `json:"repository_url"`
}

// Repository is the repository descriptor derived from a pull request's
// RepositoryURL. Only Owner.Login is authoritative; the remaining owner
// fields are copied from the triggering PR's author as structural
// stand-ins and must not be treated as accurate. ID carries no identity:
// use FullName when a repository key is needed.
type Repository struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
	Owner    User   `json:"owner"`
}

// PullRequestRecord is a raw pull request composed with its resolved
// repository descriptor. Records are immutable once constructed and live
// only for the duration of one retrieval call.
type PullRequestRecord struct {
	PullRequest
	Repository Repository `json:"repository"`
}

// SearchPage is the JSON envelope returned by the search endpoint.
type SearchPage struct {
	TotalCount        int           `json:"total_count"`
	IncompleteResults bool          `json:"incomplete_results"`
	Items             []PullRequest `json:"items"`
}

// FetchOptions configures a retrieval: which authors to include or
// exclude, the server-side sort, an optional creation-date lower bound,
// and whether PRs the reviewer has already reviewed are matched in
// addition to PRs awaiting their review.
//
// A nil Filters slice falls back to the default bot-exclusion list; pass
// an explicit empty slice for no author filtering at all.
type FetchOptions struct {
	Filters             []AuthorFilter
	Sort                SortKey
	Direction           SortDirection
	Since               SinceFilter
	IncludeReviewedByMe bool
}

const (
	// searchPageSize is the per_page value sent on every search request.
	// GitHub's documented maximum is 100; the API caps larger values
	// server-side, so a short page still reliably signals the last page.
	searchPageSize = 500

	// maxSearchPages bounds the pagination loop. The search API caps
	// total servable matches at 1000, so this is never reached in
	// practice; it guards against an upstream total_count that overstates
	// what the API will actually serve.
	maxSearchPages = 20
)
