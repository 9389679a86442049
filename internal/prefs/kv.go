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

package prefs

// KV is a generic persisted key-value store for preference values. Each
// getter takes a default that is returned AND persisted when the key has
// never been written, so first use fixes the value a fresh installation
// sees (the since-date default depends on the current date, and must not
// drift on subsequent reads).
type KV interface {
	// GetString reads a string value, persisting def on first use.
	GetString(key string, def string) (string, error)

	// SetString writes a string value.
	SetString(key string, value string) error

	// GetInt reads an integer value, persisting def on first use.
	GetInt(key string, def int) (int, error)

	// SetInt writes an integer value.
	SetInt(key string, value int) error

	// GetBool reads a boolean value, persisting def on first use.
	GetBool(key string, def bool) (bool, error)

	// SetBool writes a boolean value.
	SetBool(key string, value bool) error

	// GetJSON decodes the stored value into out, persisting def on first use.
	GetJSON(key string, out any, def any) error

	// SetJSON stores value encoded as JSON.
	SetJSON(key string, value any) error
}

// Preference keys. Each key is persisted independently so adding a
// preference never invalidates existing stored values.
const (
	KeyRefreshIntervalMins = "refresh_interval_mins"
	KeyAuthorFilters       = "author_filters"
	KeySortBy              = "sort_by"
	KeySortDirection       = "sort_direction"
	KeySinceEnabled        = "since_enabled"
	KeySinceDate           = "since_date"
	KeyIncludeReviewedByMe = "include_reviewed_by_me"
)
