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

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	pberrors "github.com/pullboardhq/pullboard/internal/errors"
	"github.com/pullboardhq/pullboard/internal/github"
	"github.com/pullboardhq/pullboard/internal/prefs"
)

// stubClient wraps the github mock with the configuration surface the
// service needs.
type stubClient struct {
	*github.MockClient
	configured bool
	filters    []github.AuthorFilter
}

func (s *stubClient) Config(filters []github.AuthorFilter) github.ConfigSummary {
	s.filters = filters
	return github.ConfigSummary{Username: "octocat", HasToken: s.configured}
}

func (s *stubClient) Configured() bool { return s.configured }

// stubView serves a fixed preference set.
type stubView struct {
	p   prefs.Preferences
	err error
}

func (v *stubView) Preferences() (prefs.Preferences, error) { return v.p, v.err }

func testPrefs() prefs.Preferences {
	return prefs.Preferences{
		RefreshIntervalMins: 5,
		AuthorFilters:       github.DefaultAuthorFilters(),
		SortBy:              github.SortCreated,
		SortDirection:       github.SortDesc,
	}
}

func newTestService(client *stubClient, view prefs.View) *Service {
	return New(client, view, zap.NewNop())
}

func TestPullRequestsNotConfigured(t *testing.T) {
	client := &stubClient{MockClient: &github.MockClient{}, configured: false}
	svc := newTestService(client, &stubView{p: testPrefs()})

	_, err := svc.PullRequests(context.Background(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, pberrors.ErrNotConfigured)
	assert.Equal(t, 0, client.CallCount, "must not touch the network when unconfigured")
}

func TestPullRequestsFetchesAndCaches(t *testing.T) {
	prs := github.GenerateSearchPRs("acme", "widget", 3)
	client := &stubClient{
		MockClient: &github.MockClient{Pages: github.PagesOf(prs), TotalCount: len(prs)},
		configured: true,
	}
	svc := newTestService(client, &stubView{p: testPrefs()})

	first, err := svc.PullRequests(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, first.PullRequests, 3)
	assert.Equal(t, 3, first.Total)
	assert.False(t, first.FromCache)
	assert.WithinDuration(t, time.Now(), first.FetchedAt, 5*time.Second)

	calls := client.CallCount

	second, err := svc.PullRequests(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.PullRequests, second.PullRequests)
	assert.Equal(t, calls, client.CallCount, "fresh cache must not trigger a fetch")
}

func TestPullRequestsForceBypassesCache(t *testing.T) {
	prs := github.GenerateSearchPRs("acme", "widget", 2)
	client := &stubClient{
		MockClient: &github.MockClient{Pages: github.PagesOf(prs), TotalCount: len(prs)},
		configured: true,
	}
	svc := newTestService(client, &stubView{p: testPrefs()})

	_, err := svc.PullRequests(context.Background(), false)
	require.NoError(t, err)
	calls := client.CallCount

	refreshed, err := svc.PullRequests(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, refreshed.FromCache)
	assert.Greater(t, client.CallCount, calls)
}

func TestPullRequestsPreferenceChangeInvalidates(t *testing.T) {
	prs := github.GenerateSearchPRs("acme", "widget", 1)
	client := &stubClient{
		MockClient: &github.MockClient{Pages: github.PagesOf(prs), TotalCount: len(prs)},
		configured: true,
	}
	view := &stubView{p: testPrefs()}
	svc := newTestService(client, view)

	_, err := svc.PullRequests(context.Background(), false)
	require.NoError(t, err)
	calls := client.CallCount

	view.p.IncludeReviewedByMe = true
	result, err := svc.PullRequests(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, result.FromCache, "changed preferences must not be served from cache")
	assert.Greater(t, client.CallCount, calls)
}

func TestPullRequestsErrorNotCached(t *testing.T) {
	boom := errors.New("search exploded")
	client := &stubClient{
		MockClient: &github.MockClient{Error: boom},
		configured: true,
	}
	svc := newTestService(client, &stubView{p: testPrefs()})

	_, err := svc.PullRequests(context.Background(), false)
	require.Error(t, err)

	// A failed retrieval leaves nothing behind; the next call fetches again.
	client.Error = nil
	prs := github.GenerateSearchPRs("acme", "widget", 1)
	client.Pages = github.PagesOf(prs)
	client.TotalCount = len(prs)

	result, err := svc.PullRequests(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Len(t, result.PullRequests, 1)
}

func TestInvalidateDropsCache(t *testing.T) {
	prs := github.GenerateSearchPRs("acme", "widget", 1)
	client := &stubClient{
		MockClient: &github.MockClient{Pages: github.PagesOf(prs), TotalCount: len(prs)},
		configured: true,
	}
	svc := newTestService(client, &stubView{p: testPrefs()})

	_, err := svc.PullRequests(context.Background(), false)
	require.NoError(t, err)
	calls := client.CallCount

	svc.Invalidate()

	result, err := svc.PullRequests(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Greater(t, client.CallCount, calls)
}

func TestConfigUsesPreferenceFilters(t *testing.T) {
	client := &stubClient{MockClient: &github.MockClient{}, configured: true}
	p := testPrefs()
	p.AuthorFilters = []github.AuthorFilter{{Username: "alice", Mode: github.FilterInclude}}
	svc := newTestService(client, &stubView{p: p})

	summary := svc.Config()
	assert.Equal(t, "octocat", summary.Username)
	assert.Equal(t, p.AuthorFilters, client.filters)
}

func TestConfigDegradesOnPreferenceError(t *testing.T) {
	client := &stubClient{MockClient: &github.MockClient{}, configured: true}
	svc := newTestService(client, &stubView{err: errors.New("store corrupted")})

	summary := svc.Config()
	assert.Equal(t, "octocat", summary.Username)
	assert.Nil(t, client.filters)
}

func TestPreferenceLoadErrorSurfaces(t *testing.T) {
	client := &stubClient{MockClient: &github.MockClient{}, configured: true}
	svc := newTestService(client, &stubView{err: errors.New("store corrupted")})

	_, err := svc.PullRequests(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load preferences")
	assert.Equal(t, 0, client.CallCount)
}
