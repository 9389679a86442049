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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shurcooL/graphql"

	pberrors "github.com/pullboardhq/pullboard/internal/errors"
	"github.com/pullboardhq/pullboard/internal/giterror"
)

// Client defines the interface for fetching pages of pull request search
// results. This interface allows for easy mocking in tests.
type Client interface {
	// FetchPage retrieves one page of search results. Pages are indexed
	// from 1. A page past the end returns an empty item list, not an error.
	FetchPage(ctx context.Context, page int, opts FetchOptions) (*SearchPage, error)
}

// APIError is a non-success HTTP response from the GitHub API. Body holds
// the response body verbatim; GitHub puts its structured error message
// there and swallowing it makes failures undebuggable.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("github api error: status %d: %s", e.StatusCode, e.Body)
}

// ClientConfig carries everything a SearchClient needs. It is an explicit,
// immutable value so tests can run multiple configurations side by side
// without process-wide state.
type ClientConfig struct {
	// Token is the bearer token used for all API calls.
	Token string

	// Username is the GitHub login of the reviewer whose queue is fetched.
	Username string

	// APIEndpoint is the REST base URL, e.g. https://api.github.com.
	APIEndpoint string

	// GraphQLEndpoint is the GraphQL URL, used only to resolve the
	// viewer's login when Username is not configured.
	GraphQLEndpoint string
}

// SearchClient implements Client against GitHub's REST search endpoint.
type SearchClient struct {
	config     ClientConfig
	httpClient *http.Client
	gql        *graphql.Client
	inspector  giterror.Inspector
}

// NewSearchClient creates a client for the given configuration. The
// underlying transport adds the pinned GitHub API headers and bearer
// authentication to every request and caps response bodies at 10MB.
func NewSearchClient(cfg ClientConfig) *SearchClient {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	httpClient := &http.Client{
		Transport: &authTransport{
			token: cfg.Token,
			base:  transport,
		},
	}

	return &SearchClient{
		config:     cfg,
		httpClient: httpClient,
		gql:        graphql.NewClient(cfg.GraphQLEndpoint, httpClient),
		inspector:  giterror.NewInspector(),
	}
}

// FetchPage issues one authenticated GET against the search endpoint and
// decodes the result envelope. The page size is fixed at searchPageSize;
// sort and direction default to created/desc when unset.
func (c *SearchClient) FetchPage(ctx context.Context, page int, opts FetchOptions) (*SearchPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("page index must be positive, got %d", page)
	}

	sort := opts.Sort
	if sort == "" {
		sort = SortCreated
	}
	direction := opts.Direction
	if direction == "" {
		direction = SortDesc
	}

	params := url.Values{}
	params.Set("q", buildSearchQuery(c.config.Username, opts.Filters, opts.Since, opts.IncludeReviewedByMe))
	params.Set("sort", string(sort))
	params.Set("order", string(direction))
	params.Set("per_page", strconv.Itoa(searchPageSize))
	params.Set("page", strconv.Itoa(page))

	endpoint := c.config.APIEndpoint + "/search/issues?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.mapTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return nil, c.mapStatusError(&APIError{StatusCode: resp.StatusCode, Body: string(body)})
	}

	var searchPage SearchPage
	if err := json.NewDecoder(resp.Body).Decode(&searchPage); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %v: %w", err, pberrors.ErrMalformedResponse)
	}

	return &searchPage, nil
}

// mapStatusError classifies a non-success response and chains the matching
// sentinel behind the APIError, so callers can use errors.As for the
// status and body and errors.Is for the category.
func (c *SearchClient) mapStatusError(apiErr *APIError) error {
	switch {
	case c.inspector.IsRateLimitError(apiErr):
		return fmt.Errorf("%w: %w", apiErr, pberrors.ErrRateLimit)
	case c.inspector.IsAuthError(apiErr):
		return fmt.Errorf("%w: %w", apiErr, pberrors.ErrInvalidToken)
	default:
		return apiErr
	}
}

// mapTransportError classifies request-level failures that never produced
// an HTTP response. Context cancellation passes through untouched so
// callers can distinguish it from a genuine network failure.
func (c *SearchClient) mapTransportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("request to GitHub API failed: %v: %w", err, pberrors.ErrNetworkFailure)
	}
	return fmt.Errorf("request to GitHub API failed: %w", err)
}
