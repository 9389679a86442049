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
	"math"
	"time"

	"github.com/pullboardhq/pullboard/internal/giterror"
)

// RetryConfig configures the retry behavior for API calls.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts
	MaxRetries int
	// InitialBackoff is the initial backoff duration
	InitialBackoff time.Duration
	// MaxBackoff is the maximum backoff duration
	MaxBackoff time.Duration
	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// RetryClient wraps a Client with automatic retry for rate limits and
// transient network errors using exponential backoff. Retry lives in this
// wrapper, not in the search client: the core fetch path stays
// retry-free, and callers that want different policy compose their own.
type RetryClient struct {
	client    Client
	config    *RetryConfig
	inspector giterror.Inspector
}

// NewRetryClient creates a RetryClient with the given configuration.
// A nil config uses DefaultRetryConfig.
func NewRetryClient(client Client, config *RetryConfig) *RetryClient {
	if config == nil {
		config = DefaultRetryConfig()
	}
	return &RetryClient{
		client:    client,
		config:    config,
		inspector: giterror.NewInspector(),
	}
}

// FetchPage implements the Client interface with retry logic.
func (r *RetryClient) FetchPage(ctx context.Context, page int, opts FetchOptions) (*SearchPage, error) {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		searchPage, err := r.client.FetchPage(ctx, page, opts)
		if err == nil {
			return searchPage, nil
		}

		lastErr = err

		if !r.shouldRetry(err) || attempt == r.config.MaxRetries {
			return nil, err
		}

		select {
		case <-time.After(r.backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// shouldRetry reports whether the error is transient. Auth failures and
// client-side errors are permanent; retrying them just burns quota.
func (r *RetryClient) shouldRetry(err error) bool {
	return r.inspector.IsRateLimitError(err) || r.inspector.IsNetworkError(err)
}

// backoff computes the exponential backoff duration for an attempt.
func (r *RetryClient) backoff(attempt int) time.Duration {
	backoff := float64(r.config.InitialBackoff) * math.Pow(r.config.BackoffMultiplier, float64(attempt))
	if backoff > float64(r.config.MaxBackoff) {
		backoff = float64(r.config.MaxBackoff)
	}
	return time.Duration(backoff)
}
