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

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pullboardhq/pullboard/internal/github"
)

func openTestKV(t *testing.T) *BoltKV {
	t.Helper()
	kv, err := OpenBolt(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestBoltKVTypedRoundTrip(t *testing.T) {
	kv := openTestKV(t)

	require.NoError(t, kv.SetString("s", "hello"))
	s, err := kv.GetString("s", "def")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	require.NoError(t, kv.SetInt("i", 42))
	i, err := kv.GetInt("i", 0)
	require.NoError(t, err)
	assert.Equal(t, 42, i)

	require.NoError(t, kv.SetBool("b", true))
	b, err := kv.GetBool("b", false)
	require.NoError(t, err)
	assert.True(t, b)
}

func TestBoltKVPersistsDefaultOnFirstUse(t *testing.T) {
	kv := openTestKV(t)

	v, err := kv.GetString("fresh", "initial")
	require.NoError(t, err)
	assert.Equal(t, "initial", v)

	// A different default on the second read must not win: the first
	// read persisted the value.
	v, err = kv.GetString("fresh", "changed")
	require.NoError(t, err)
	assert.Equal(t, "initial", v)
}

func TestManagerDefaults(t *testing.T) {
	kv := openTestKV(t)
	m := NewManager(kv, Defaults{})

	p, err := m.Preferences()
	require.NoError(t, err)

	assert.Equal(t, 5, p.RefreshIntervalMins)
	assert.Equal(t, github.SortCreated, p.SortBy)
	assert.Equal(t, github.SortDesc, p.SortDirection)
	assert.False(t, p.SinceEnabled)
	assert.False(t, p.IncludeReviewedByMe)
	assert.Equal(t, github.DefaultAuthorFilters(), p.AuthorFilters)

	// Default since date is 30 days before first use.
	wantDate := time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	assert.Equal(t, wantDate, p.SinceDate)
}

func TestManagerSinceDateComputedOnce(t *testing.T) {
	kv := openTestKV(t)

	day1 := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	m := NewManager(kv, Defaults{now: func() time.Time { return day1 }})

	p, err := m.Preferences()
	require.NoError(t, err)
	assert.Equal(t, "2025-02-08", p.SinceDate)

	// A read a month later must see the persisted date, not a
	// recomputed one.
	day2 := day1.AddDate(0, 1, 0)
	m2 := NewManager(kv, Defaults{now: func() time.Time { return day2 }})
	p2, err := m2.Preferences()
	require.NoError(t, err)
	assert.Equal(t, "2025-02-08", p2.SinceDate)
}

func TestManagerRoundTrip(t *testing.T) {
	kv := openTestKV(t)
	m := NewManager(kv, Defaults{})

	want := Preferences{
		RefreshIntervalMins: 15,
		AuthorFilters: []github.AuthorFilter{
			{Username: "alice", Mode: github.FilterInclude},
			{Username: "bot", Mode: github.FilterExclude},
		},
		SortBy:              github.SortUpdated,
		SortDirection:       github.SortAsc,
		SinceEnabled:        true,
		SinceDate:           "2024-06-01",
		IncludeReviewedByMe: true,
	}
	require.NoError(t, m.SetPreferences(want))

	got, err := m.Preferences()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestManagerExplicitEmptyFilters(t *testing.T) {
	kv := openTestKV(t)
	m := NewManager(kv, Defaults{})

	p, err := m.Preferences()
	require.NoError(t, err)
	p.AuthorFilters = []github.AuthorFilter{}
	require.NoError(t, m.SetPreferences(p))

	got, err := m.Preferences()
	require.NoError(t, err)
	assert.Empty(t, got.AuthorFilters)
	assert.NotNil(t, got.AuthorFilters, "explicit empty set must not revert to defaults")
}

func TestManagerConfiguredDefaultExcludes(t *testing.T) {
	kv := openTestKV(t)
	m := NewManager(kv, Defaults{ExcludedAuthors: []string{"custombot"}})

	p, err := m.Preferences()
	require.NoError(t, err)
	require.Len(t, p.AuthorFilters, 1)
	assert.Equal(t, "custombot", p.AuthorFilters[0].Username)
	assert.Equal(t, github.FilterExclude, p.AuthorFilters[0].Mode)
}

func TestValidate(t *testing.T) {
	valid := Preferences{
		RefreshIntervalMins: 5,
		SortBy:              github.SortCreated,
		SortDirection:       github.SortDesc,
	}

	tests := []struct {
		name    string
		mutate  func(*Preferences)
		wantErr bool
	}{
		{"valid", func(p *Preferences) {}, false},
		{"bad sort key", func(p *Preferences) { p.SortBy = "stars" }, true},
		{"bad direction", func(p *Preferences) { p.SortDirection = "sideways" }, true},
		{"zero interval", func(p *Preferences) { p.RefreshIntervalMins = 0 }, true},
		{"empty filter username", func(p *Preferences) {
			p.AuthorFilters = []github.AuthorFilter{{Username: "", Mode: github.FilterExclude}}
		}, true},
		{"bad filter mode", func(p *Preferences) {
			p.AuthorFilters = []github.AuthorFilter{{Username: "x", Mode: "maybe"}}
		}, true},
		{"bad since date when enabled", func(p *Preferences) {
			p.SinceEnabled = true
			p.SinceDate = "01/02/2024"
		}, true},
		{"bad since date ignored when disabled", func(p *Preferences) {
			p.SinceEnabled = false
			p.SinceDate = "garbage"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := Validate(p)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetPreferencesRejectsInvalid(t *testing.T) {
	kv := openTestKV(t)
	m := NewManager(kv, Defaults{})

	before, err := m.Preferences()
	require.NoError(t, err)

	bad := before
	bad.SortBy = "stars"
	require.Error(t, m.SetPreferences(bad))

	after, err := m.Preferences()
	require.NoError(t, err)
	assert.Equal(t, before, after, "rejected update must leave the store untouched")
}
