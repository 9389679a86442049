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
	"context"
	"fmt"
	"time"
)

// MockClient is a mock implementation of the Client interface for testing.
// Pages holds the item lists served for page 1..len(Pages); pages past the
// end come back empty, mirroring the real search endpoint.
type MockClient struct {
	// Pages to serve, indexed by page-1.
	Pages [][]PullRequest

	// TotalCount reported on every page. Zero means the sum of all pages.
	TotalCount int

	// Error to return on every call.
	Error error

	// Track calls for verification
	CallCount int
	LastPage  int
	LastOpts  FetchOptions
}

// NewMockClient creates a mock client serving a single page of sample data.
func NewMockClient() *MockClient {
	return &MockClient{
		Pages: [][]PullRequest{generateTestPRs()},
	}
}

// FetchPage implements the Client interface.
func (m *MockClient) FetchPage(ctx context.Context, page int, opts FetchOptions) (*SearchPage, error) {
	m.CallCount++
	m.LastPage = page
	m.LastOpts = opts

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if m.Error != nil {
		return nil, m.Error
	}

	total := m.TotalCount
	if total == 0 {
		for _, p := range m.Pages {
			total += len(p)
		}
	}

	result := &SearchPage{TotalCount: total, Items: []PullRequest{}}
	if page >= 1 && page <= len(m.Pages) {
		result.Items = m.Pages[page-1]
	}
	return result, nil
}

// generateTestPRs creates sample pull request data for testing.
func generateTestPRs() []PullRequest {
	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)
	lastWeek := now.Add(-7 * 24 * time.Hour)

	return []PullRequest{
		{
			ID:            9001,
			Number:        1234,
			Title:         "Add new feature for data processing",
			HTMLURL:       "https://github.com/acme/widget/pull/1234",
			State:         "open",
			CreatedAt:     lastWeek,
			UpdatedAt:     now,
			User:          User{Login: "alice", ID: 1},
			Comments:      3,
			RepositoryURL: "https://api.github.com/repos/acme/widget",
		},
		{
			ID:            9002,
			Number:        77,
			Title:         "Fix memory leak in parser",
			HTMLURL:       "https://github.com/acme/parser/pull/77",
			State:         "open",
			Draft:         true,
			CreatedAt:     lastWeek,
			UpdatedAt:     yesterday,
			User:          User{Login: "bob", ID: 2},
			Labels:        []Label{{ID: 5, Name: "bug", Color: "d73a4a"}},
			RepositoryURL: "https://api.github.com/repos/acme/parser",
		},
		{
			ID:            9003,
			Number:        12,
			Title:         "Update documentation",
			HTMLURL:       "https://github.com/acme/docs/pull/12",
			State:         "open",
			CreatedAt:     yesterday,
			UpdatedAt:     yesterday,
			User:          User{Login: "charlie", ID: 3},
			RepositoryURL: "https://api.github.com/repos/acme/docs",
		},
	}
}

// PagesOf splits the given PRs into pages of the search page size. Useful
// for pagination tests that need realistic full pages.
func PagesOf(prs []PullRequest) [][]PullRequest {
	var pages [][]PullRequest
	for len(prs) > searchPageSize {
		pages = append(pages, prs[:searchPageSize])
		prs = prs[searchPageSize:]
	}
	return append(pages, prs)
}

// GenerateSearchPRs creates n sequentially numbered PRs in the given
// repository, for pagination tests.
func GenerateSearchPRs(owner, repo string, n int) []PullRequest {
	now := time.Now().UTC()
	prs := make([]PullRequest, 0, n)
	for i := 1; i <= n; i++ {
		prs = append(prs, PullRequest{
			ID:            int64(1000 + i),
			Number:        i,
			Title:         fmt.Sprintf("PR %d", i),
			HTMLURL:       fmt.Sprintf("https://github.com/%s/%s/pull/%d", owner, repo, i),
			State:         "open",
			CreatedAt:     now.Add(-time.Duration(i) * time.Hour),
			UpdatedAt:     now,
			User:          User{Login: fmt.Sprintf("user%d", i%7)},
			RepositoryURL: fmt.Sprintf("https://api.github.com/repos/%s/%s", owner, repo),
		})
	}
	return prs
}
