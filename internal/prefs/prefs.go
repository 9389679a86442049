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

// Package prefs persists per-user dashboard preferences: the author filter
// set, sort key and direction, the since-date bound, the reviewed-by-me
// toggle, and the refresh cadence. Each preference is stored under its own
// key with a documented default applied (and persisted) on first use.
//
// The reading and writing capabilities are split: View is all a consumer
// needs to run a retrieval, while Manager additionally mutates. Wire the
// narrow interface wherever mutation is not required.
package prefs

import (
	"fmt"
	"time"

	"github.com/pullboardhq/pullboard/internal/github"
)

// Preferences is the complete preference set driving a retrieval and the
// dashboard refresh cadence.
type Preferences struct {
	RefreshIntervalMins int                   `json:"refresh_interval_mins"`
	AuthorFilters       []github.AuthorFilter `json:"author_filters"`
	SortBy              github.SortKey        `json:"sort_by"`
	SortDirection       github.SortDirection  `json:"sort_direction"`
	SinceEnabled        bool                  `json:"since_enabled"`
	SinceDate           string                `json:"since_date"`
	IncludeReviewedByMe bool                  `json:"include_reviewed_by_me"`
}

// FetchOptions converts the preference set into retrieval options.
func (p Preferences) FetchOptions() github.FetchOptions {
	return github.FetchOptions{
		Filters:             p.AuthorFilters,
		Sort:                p.SortBy,
		Direction:           p.SortDirection,
		Since:               github.SinceFilter{Enabled: p.SinceEnabled, Date: p.SinceDate},
		IncludeReviewedByMe: p.IncludeReviewedByMe,
	}
}

// View is the read-only preference capability.
type View interface {
	// Preferences returns the current preference set, seeding any key not
	// yet persisted with its default.
	Preferences() (Preferences, error)
}

// Mutator is the preference mutation capability, available only where a
// persistence backend is wired.
type Mutator interface {
	// SetPreferences persists the complete preference set.
	SetPreferences(Preferences) error
}

// Defaults seeds preference keys on first use.
type Defaults struct {
	// RefreshIntervalMins defaults the refresh cadence; 5 when zero.
	RefreshIntervalMins int

	// ExcludedAuthors defaults the author filter set as excludes. When
	// nil, the built-in bot-exclusion list applies.
	ExcludedAuthors []string

	// now is overridable in tests for the since-date default.
	now func() time.Time
}

// Manager reads and writes the preference set through a KV store. It
// implements both View and Mutator.
type Manager struct {
	kv       KV
	defaults Defaults
}

// NewManager creates a Manager over the given store.
func NewManager(kv KV, defaults Defaults) *Manager {
	if defaults.RefreshIntervalMins <= 0 {
		defaults.RefreshIntervalMins = 5
	}
	if defaults.now == nil {
		defaults.now = time.Now
	}
	return &Manager{kv: kv, defaults: defaults}
}

// defaultAuthorFilters renders the configured exclusion list as filters.
func (m *Manager) defaultAuthorFilters() []github.AuthorFilter {
	if m.defaults.ExcludedAuthors == nil {
		return github.DefaultAuthorFilters()
	}
	filters := make([]github.AuthorFilter, 0, len(m.defaults.ExcludedAuthors))
	for _, username := range m.defaults.ExcludedAuthors {
		filters = append(filters, github.AuthorFilter{Username: username, Mode: github.FilterExclude})
	}
	return filters
}

// defaultSinceDate is 30 days before first use. It is computed once and
// persisted by the first read, never recomputed afterwards.
func (m *Manager) defaultSinceDate() string {
	return m.defaults.now().AddDate(0, 0, -30).Format("2006-01-02")
}

// Preferences implements View.
func (m *Manager) Preferences() (Preferences, error) {
	var p Preferences
	var err error

	if p.RefreshIntervalMins, err = m.kv.GetInt(KeyRefreshIntervalMins, m.defaults.RefreshIntervalMins); err != nil {
		return Preferences{}, err
	}
	if err = m.kv.GetJSON(KeyAuthorFilters, &p.AuthorFilters, m.defaultAuthorFilters()); err != nil {
		return Preferences{}, err
	}

	var sortBy, sortDirection string
	if sortBy, err = m.kv.GetString(KeySortBy, string(github.SortCreated)); err != nil {
		return Preferences{}, err
	}
	if sortDirection, err = m.kv.GetString(KeySortDirection, string(github.SortDesc)); err != nil {
		return Preferences{}, err
	}
	p.SortBy = github.SortKey(sortBy)
	p.SortDirection = github.SortDirection(sortDirection)

	if p.SinceEnabled, err = m.kv.GetBool(KeySinceEnabled, false); err != nil {
		return Preferences{}, err
	}
	if p.SinceDate, err = m.kv.GetString(KeySinceDate, m.defaultSinceDate()); err != nil {
		return Preferences{}, err
	}
	if p.IncludeReviewedByMe, err = m.kv.GetBool(KeyIncludeReviewedByMe, false); err != nil {
		return Preferences{}, err
	}

	return p, nil
}

// SetPreferences implements Mutator. The set is validated before any key
// is written, so a rejected update leaves the store untouched.
func (m *Manager) SetPreferences(p Preferences) error {
	if err := Validate(p); err != nil {
		return err
	}

	if err := m.kv.SetInt(KeyRefreshIntervalMins, p.RefreshIntervalMins); err != nil {
		return err
	}
	if err := m.kv.SetJSON(KeyAuthorFilters, p.AuthorFilters); err != nil {
		return err
	}
	if err := m.kv.SetString(KeySortBy, string(p.SortBy)); err != nil {
		return err
	}
	if err := m.kv.SetString(KeySortDirection, string(p.SortDirection)); err != nil {
		return err
	}
	if err := m.kv.SetBool(KeySinceEnabled, p.SinceEnabled); err != nil {
		return err
	}
	if err := m.kv.SetString(KeySinceDate, p.SinceDate); err != nil {
		return err
	}
	return m.kv.SetBool(KeyIncludeReviewedByMe, p.IncludeReviewedByMe)
}

// Validate checks a preference set for values the retrieval layer would
// choke on. Filter usernames may be blank transiently while a user edits
// them in a UI, but never in a persisted set.
func Validate(p Preferences) error {
	switch p.SortBy {
	case github.SortCreated, github.SortUpdated, github.SortComments:
	default:
		return fmt.Errorf("invalid sort key %q", p.SortBy)
	}

	switch p.SortDirection {
	case github.SortAsc, github.SortDesc:
	default:
		return fmt.Errorf("invalid sort direction %q", p.SortDirection)
	}

	if p.RefreshIntervalMins < 1 {
		return fmt.Errorf("refresh interval must be at least 1 minute, got %d", p.RefreshIntervalMins)
	}

	for i, f := range p.AuthorFilters {
		if f.Username == "" {
			return fmt.Errorf("author filter %d has an empty username", i)
		}
		if f.Mode != github.FilterInclude && f.Mode != github.FilterExclude {
			return fmt.Errorf("author filter %d has invalid mode %q", i, f.Mode)
		}
	}

	if p.SinceEnabled {
		if _, err := time.Parse("2006-01-02", p.SinceDate); err != nil {
			return fmt.Errorf("invalid since date %q: want YYYY-MM-DD", p.SinceDate)
		}
	}

	return nil
}
