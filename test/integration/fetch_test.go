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

package integration

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	pberrors "github.com/pullboardhq/pullboard/internal/errors"
	"github.com/pullboardhq/pullboard/internal/github"
	"github.com/pullboardhq/pullboard/test/testutil"
)

func newClient(endpoint string) *github.SearchClient {
	return github.NewSearchClient(github.ClientConfig{
		Token:       "test-token",
		Username:    "octocat",
		APIEndpoint: endpoint,
	})
}

func TestFetchEndToEnd(t *testing.T) {
	items := testutil.NewPullRequestBuilder(1).WithRepo("acme", "widget").BuildMany(120)
	server := testutil.NewSearchServer(t, items)

	client := newClient(server.URL)
	records, err := github.FetchAllPullRequests(context.Background(), client, github.FetchOptions{})
	if err != nil {
		t.Fatalf("FetchAllPullRequests failed: %v", err)
	}

	if len(records) != 120 {
		t.Fatalf("Expected 120 records, got %d", len(records))
	}
	for i, rec := range records {
		if rec.Number != items[i].Number {
			t.Fatalf("Record %d out of order: expected #%d, got #%d", i, items[i].Number, rec.Number)
		}
		if rec.Repository.FullName != "acme/widget" {
			t.Errorf("Record %d: expected repository acme/widget, got %q", i, rec.Repository.FullName)
		}
		if rec.Repository.Owner.Login != "acme" {
			t.Errorf("Record %d: repository owner must come from the URL, got %q", i, rec.Repository.Owner.Login)
		}
	}

	queries := server.Queries()
	if len(queries) == 0 {
		t.Fatal("No queries recorded")
	}
	for _, q := range queries {
		if !strings.Contains(q, "review-requested:octocat") {
			t.Errorf("Query missing reviewer predicate: %q", q)
		}
		if !strings.Contains(q, "is:open is:pr") {
			t.Errorf("Query missing base predicates: %q", q)
		}
	}
}

func TestFetchMultiplePages(t *testing.T) {
	items := testutil.NewPullRequestBuilder(1).BuildMany(1037)
	server := testutil.NewSearchServer(t, items)

	client := newClient(server.URL)
	records, err := github.FetchAllPullRequests(context.Background(), client, github.FetchOptions{})
	if err != nil {
		t.Fatalf("FetchAllPullRequests failed: %v", err)
	}

	if len(records) != 1037 {
		t.Fatalf("Expected 1037 records, got %d", len(records))
	}
	if got := len(server.Queries()); got != 3 {
		t.Errorf("Expected 3 page requests, got %d", got)
	}
}

func TestFetchRetriesTransientFailures(t *testing.T) {
	items := testutil.NewPullRequestBuilder(1).BuildMany(5)
	server := testutil.NewTransientErrorServer(t, 2, 403, `{"message": "API rate limit exceeded for user"}`, items)

	client := github.NewRetryClient(newClient(server.URL), &github.RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        time.Millisecond,
		BackoffMultiplier: 1,
	})

	records, err := github.FetchAllPullRequests(context.Background(), client, github.FetchOptions{})
	if err != nil {
		t.Fatalf("Expected retries to recover, got: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("Expected 5 records, got %d", len(records))
	}
}

func TestFetchAuthFailure(t *testing.T) {
	server := testutil.NewErrorServer(t, 401, `{"message": "Bad credentials"}`)

	client := newClient(server.URL)
	_, err := github.FetchAllPullRequests(context.Background(), client, github.FetchOptions{})
	if err == nil {
		t.Fatal("Expected error for 401 response")
	}
	if !errors.Is(err, pberrors.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got: %v", err)
	}
}

func TestFetchRateLimitFailure(t *testing.T) {
	server := testutil.NewErrorServer(t, 403, `{"message": "API rate limit exceeded for user"}`)

	client := newClient(server.URL)
	_, err := github.FetchAllPullRequests(context.Background(), client, github.FetchOptions{})
	if err == nil {
		t.Fatal("Expected error for rate limit response")
	}
	if !errors.Is(err, pberrors.ErrRateLimit) {
		t.Errorf("Expected ErrRateLimit, got: %v", err)
	}
}

func TestFetchSincePredicateOnWire(t *testing.T) {
	items := testutil.NewPullRequestBuilder(1).BuildMany(3)
	server := testutil.NewSearchServer(t, items)

	client := newClient(server.URL)
	_, err := github.FetchAllPullRequests(context.Background(), client, github.FetchOptions{
		Since: github.SinceFilter{Enabled: true, Date: "2026-01-15"},
	})
	if err != nil {
		t.Fatalf("FetchAllPullRequests failed: %v", err)
	}

	queries := server.Queries()
	if len(queries) == 0 {
		t.Fatal("No queries recorded")
	}
	if !strings.Contains(queries[0], "created:>=2026-01-15") {
		t.Errorf("Query missing since predicate: %q", queries[0])
	}
}
