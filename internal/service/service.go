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

// Package service orchestrates pull request retrieval on top of the
// github client and the preference store. It owns the caller-side caching
// discipline: results are cached per preference fingerprint for the
// configured refresh interval, and concurrent refreshes of the same
// fingerprint are collapsed into a single upstream retrieval.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	pberrors "github.com/pullboardhq/pullboard/internal/errors"
	"github.com/pullboardhq/pullboard/internal/github"
	"github.com/pullboardhq/pullboard/internal/prefs"
)

// GitHubClient is the client surface the service needs: page fetching for
// the pagination engine plus the configuration summary accessors.
// *github.SearchClient satisfies it.
type GitHubClient interface {
	github.Client

	// Config summarizes the client configuration for a filter set.
	Config(filters []github.AuthorFilter) github.ConfigSummary

	// Configured reports whether token and username are usable.
	Configured() bool
}

// Result is one completed retrieval. FromCache is true when the result
// was served from the cache rather than fetched for this call.
type Result struct {
	PullRequests []github.PullRequestRecord `json:"pull_requests"`
	Total        int                        `json:"total"`
	FetchedAt    time.Time                  `json:"fetched_at"`
	FromCache    bool                       `json:"from_cache"`
}

// Service retrieves pull requests according to the current preferences.
// Safe for concurrent use.
type Service struct {
	client  GitHubClient
	fetcher github.Client
	prefs   prefs.View
	log     *zap.Logger

	group singleflight.Group

	mu          sync.Mutex
	cached      *Result
	fingerprint string
}

// New creates a Service. Page fetches go through a retrying wrapper;
// retry lives here at the collaborator layer, keeping the core
// pagination path retry-free.
func New(client GitHubClient, view prefs.View, log *zap.Logger) *Service {
	return &Service{
		client:  client,
		fetcher: github.NewRetryClient(client, nil),
		prefs:   view,
		log:     log,
	}
}

// PullRequests returns the review queue for the current preferences. A
// cached result younger than the refresh interval is returned unless
// force is set. Returns ErrNotConfigured without touching the network
// when the client has no usable token or username.
func (s *Service) PullRequests(ctx context.Context, force bool) (*Result, error) {
	if !s.client.Configured() {
		return nil, pberrors.ErrNotConfigured
	}

	p, err := s.prefs.Preferences()
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	fp, err := fingerprint(p)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(p.RefreshIntervalMins) * time.Minute
	if !force {
		if cached := s.cachedResult(fp, ttl); cached != nil {
			return cached, nil
		}
	}

	// Concurrent callers with the same preference set share one
	// retrieval. A caller whose context dies while waiting still gets
	// the shared outcome; the retrieval itself runs on the initiating
	// caller's context.
	v, err, shared := s.group.Do(fp, func() (any, error) {
		res, err := s.retrieve(ctx, p, fp)
		if err != nil {
			return nil, err
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}

	result := v.(*Result)
	if shared {
		s.log.Debug("retrieval shared with concurrent caller", zap.String("fingerprint", fp))
	}
	return result, nil
}

// Config returns the configuration summary for the current author filter
// set. A preference read failure degrades to the default filter set: the
// summary backs empty-state messaging and must not fail where a setup
// prompt should render.
func (s *Service) Config() github.ConfigSummary {
	p, err := s.prefs.Preferences()
	if err != nil {
		s.log.Warn("failed to load preferences for config summary", zap.Error(err))
		return s.client.Config(nil)
	}
	return s.client.Config(p.AuthorFilters)
}

// Invalidate drops the cached result. Called after preference mutations
// so the next read reflects them immediately.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.fingerprint = ""
}

// cachedResult returns a copy of the cached result when it matches the
// fingerprint and is still fresh.
func (s *Service) cachedResult(fp string, ttl time.Duration) *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached == nil || s.fingerprint != fp {
		return nil
	}
	if time.Since(s.cached.FetchedAt) >= ttl {
		return nil
	}

	cached := *s.cached
	cached.FromCache = true
	return &cached
}

// retrieve runs the pagination engine and stores the result.
func (s *Service) retrieve(ctx context.Context, p prefs.Preferences, fp string) (*Result, error) {
	start := time.Now()

	records, err := github.FetchAllPullRequests(ctx, s.fetcher, p.FetchOptions())
	if err != nil {
		s.log.Warn("retrieval failed", zap.Error(err))
		return nil, err
	}

	result := &Result{
		PullRequests: records,
		Total:        len(records),
		FetchedAt:    time.Now().UTC(),
	}

	s.mu.Lock()
	s.cached = result
	s.fingerprint = fp
	s.mu.Unlock()

	s.log.Info("retrieved pull requests",
		zap.Int("count", len(records)),
		zap.Duration("elapsed", time.Since(start)))

	return result, nil
}

// fingerprint identifies a preference set for cache matching. The refresh
// interval is deliberately excluded: changing the cadence must not throw
// away a result fetched under the old cadence.
func fingerprint(p prefs.Preferences) (string, error) {
	key := struct {
		Filters    []github.AuthorFilter `json:"filters"`
		Sort       github.SortKey        `json:"sort"`
		Direction  github.SortDirection  `json:"direction"`
		Since      github.SinceFilter    `json:"since"`
		ReviewedBy bool                  `json:"reviewed_by"`
	}{p.AuthorFilters, p.SortBy, p.SortDirection,
		github.SinceFilter{Enabled: p.SinceEnabled, Date: p.SinceDate}, p.IncludeReviewedByMe}

	raw, err := json.Marshal(key)
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint preferences: %w", err)
	}
	return string(raw), nil
}
