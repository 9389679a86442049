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

// Package testutil provides common test helpers for pullboard
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pullboardhq/pullboard/internal/github"
)

// SearchServer is a mock GitHub search endpoint serving a fixed result
// set with real pagination semantics. It records every query string it
// receives.
type SearchServer struct {
	*httptest.Server

	mu      sync.Mutex
	queries []string
}

// NewSearchServer creates a search server over the given items. Requests
// to /search/issues are paginated by the page and per_page parameters the
// way the live API paginates them.
func NewSearchServer(t *testing.T, items []github.PullRequest) *SearchServer {
	t.Helper()

	s := &SearchServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/issues" {
			http.NotFound(w, r)
			return
		}

		s.mu.Lock()
		s.queries = append(s.queries, r.URL.Query().Get("q"))
		s.mu.Unlock()

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}
		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
		if perPage < 1 {
			perPage = 100
		}

		start := (page - 1) * perPage
		end := start + perPage
		if start > len(items) {
			start = len(items)
		}
		if end > len(items) {
			end = len(items)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(github.SearchPage{
			TotalCount: len(items),
			Items:      items[start:end],
		})
	}))

	t.Cleanup(s.Close)
	return s
}

// Queries returns a copy of the recorded query strings in request order.
func (s *SearchServer) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.queries))
	copy(out, s.queries)
	return out
}

// NewErrorServer creates a mock server that always returns the specified
// status code and body.
func NewErrorServer(t *testing.T, statusCode int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

// NewTransientErrorServer creates a mock server that fails N times with
// the given status and body then serves the item set normally.
func NewTransientErrorServer(t *testing.T, failCount, errorCode int, body string, items []github.PullRequest) *httptest.Server {
	t.Helper()
	var requestCount int32

	inner := NewSearchServer(t, items)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count := atomic.AddInt32(&requestCount, 1)

		if count <= int32(failCount) {
			w.WriteHeader(errorCode)
			_, _ = w.Write([]byte(body))
			return
		}

		inner.Config.Handler.ServeHTTP(w, r)
	}))

	t.Cleanup(server.Close)
	return server
}
