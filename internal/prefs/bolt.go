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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// prefsBucket holds all preference values, one JSON-encoded value per key.
var prefsBucket = []byte("preferences")

// BoltKV implements KV on a bbolt database file. bbolt gives atomic
// single-writer updates for free, so concurrent preference reads during a
// write never observe a torn value.
type BoltKV struct {
	db *bolt.DB
}

// OpenBolt opens (creating if necessary) the preference database at path.
// The parent directory is created when missing. The open times out after
// one second so a second process holding the file lock fails fast instead
// of hanging.
func OpenBolt(path string) (*BoltKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create preference directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open preference database %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(prefsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize preference database: %w", err)
	}

	return &BoltKV{db: db}, nil
}

// Close closes the underlying database file.
func (s *BoltKV) Close() error {
	return s.db.Close()
}

// GetString implements KV.
func (s *BoltKV) GetString(key string, def string) (string, error) {
	var v string
	if err := s.GetJSON(key, &v, def); err != nil {
		return "", err
	}
	return v, nil
}

// SetString implements KV.
func (s *BoltKV) SetString(key string, value string) error {
	return s.SetJSON(key, value)
}

// GetInt implements KV.
func (s *BoltKV) GetInt(key string, def int) (int, error) {
	var v int
	if err := s.GetJSON(key, &v, def); err != nil {
		return 0, err
	}
	return v, nil
}

// SetInt implements KV.
func (s *BoltKV) SetInt(key string, value int) error {
	return s.SetJSON(key, value)
}

// GetBool implements KV.
func (s *BoltKV) GetBool(key string, def bool) (bool, error) {
	var v bool
	if err := s.GetJSON(key, &v, def); err != nil {
		return false, err
	}
	return v, nil
}

// SetBool implements KV.
func (s *BoltKV) SetBool(key string, value bool) error {
	return s.SetJSON(key, value)
}

// GetJSON implements KV. A key that has never been written gets def
// persisted and decoded into out.
func (s *BoltKV) GetJSON(key string, out any, def any) error {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(prefsBucket).Get([]byte(key)); v != nil {
			raw = make([]byte, len(v))
			copy(raw, v)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to read preference %s: %w", key, err)
	}

	if raw == nil {
		raw, err = json.Marshal(def)
		if err != nil {
			return fmt.Errorf("failed to encode default for preference %s: %w", key, err)
		}
		if err := s.put(key, raw); err != nil {
			return err
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("preference %s is corrupted: %w", key, err)
	}
	return nil
}

// SetJSON implements KV.
func (s *BoltKV) SetJSON(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode preference %s: %w", key, err)
	}
	return s.put(key, raw)
}

func (s *BoltKV) put(key string, raw []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(prefsBucket).Put([]byte(key), raw)
	})
	if err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return nil
}
