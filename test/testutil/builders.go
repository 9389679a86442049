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

package testutil

import (
	"fmt"
	"time"

	"github.com/pullboardhq/pullboard/internal/github"
)

// PullRequestBuilder provides a fluent API for creating test PRs in the
// raw search-result shape.
type PullRequestBuilder struct {
	number    int
	title     string
	state     string
	draft     bool
	author    string
	owner     string
	repo      string
	apiBase   string
	createdAt time.Time
	updatedAt time.Time
	labels    []github.Label
	comments  int
}

// NewPullRequestBuilder creates a new PR builder with defaults.
func NewPullRequestBuilder(number int) *PullRequestBuilder {
	now := time.Now().UTC()
	return &PullRequestBuilder{
		number:    number,
		title:     fmt.Sprintf("PR %d", number),
		state:     "open",
		author:    fmt.Sprintf("user%d", number),
		owner:     "acme",
		repo:      "widget",
		apiBase:   "https://api.github.com",
		createdAt: now.AddDate(0, 0, -number),
		updatedAt: now.AddDate(0, 0, -number).Add(time.Hour),
	}
}

// WithTitle sets the PR title.
func (b *PullRequestBuilder) WithTitle(title string) *PullRequestBuilder {
	b.title = title
	return b
}

// WithAuthor sets the PR author login.
func (b *PullRequestBuilder) WithAuthor(login string) *PullRequestBuilder {
	b.author = login
	return b
}

// WithRepo sets the owner and repository name backing RepositoryURL.
func (b *PullRequestBuilder) WithRepo(owner, repo string) *PullRequestBuilder {
	b.owner = owner
	b.repo = repo
	return b
}

// WithAPIBase sets the API base used to form RepositoryURL. Useful when
// pointing tests at a mock server.
func (b *PullRequestBuilder) WithAPIBase(base string) *PullRequestBuilder {
	b.apiBase = base
	return b
}

// WithDraft marks the PR as a draft.
func (b *PullRequestBuilder) WithDraft() *PullRequestBuilder {
	b.draft = true
	return b
}

// WithCreatedAt sets the creation time.
func (b *PullRequestBuilder) WithCreatedAt(ts time.Time) *PullRequestBuilder {
	b.createdAt = ts
	return b
}

// WithLabel appends a label.
func (b *PullRequestBuilder) WithLabel(name string) *PullRequestBuilder {
	b.labels = append(b.labels, github.Label{
		ID:   int64(len(b.labels) + 1),
		Name: name,
	})
	return b
}

// WithComments sets the comment count.
func (b *PullRequestBuilder) WithComments(n int) *PullRequestBuilder {
	b.comments = n
	return b
}

// Build assembles the pull request.
func (b *PullRequestBuilder) Build() github.PullRequest {
	return github.PullRequest{
		ID:        int64(1000 + b.number),
		Number:    b.number,
		Title:     b.title,
		State:     b.state,
		Draft:     b.draft,
		HTMLURL:   fmt.Sprintf("https://github.com/%s/%s/pull/%d", b.owner, b.repo, b.number),
		CreatedAt: b.createdAt,
		UpdatedAt: b.updatedAt,
		User: github.User{
			Login:   b.author,
			ID:      int64(2000 + b.number),
			HTMLURL: fmt.Sprintf("https://github.com/%s", b.author),
		},
		Labels:        b.labels,
		Comments:      b.comments,
		RepositoryURL: fmt.Sprintf("%s/repos/%s/%s", b.apiBase, b.owner, b.repo),
	}
}

// BuildMany builds n sequential PRs starting at the builder's number,
// all sharing its repository and author settings.
func (b *PullRequestBuilder) BuildMany(n int) []github.PullRequest {
	prs := make([]github.PullRequest, 0, n)
	for i := 0; i < n; i++ {
		clone := *b
		clone.number = b.number + i
		clone.title = fmt.Sprintf("PR %d", clone.number)
		prs = append(prs, clone.Build())
	}
	return prs
}
