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

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pullboardhq/pullboard/internal/github"
)

// RecordWriter defines the interface for writing pull request records.
type RecordWriter interface {
	// Write writes a single record, flushing it immediately.
	Write(record github.PullRequestRecord) error

	// Close closes the underlying writer and releases any resources.
	Close() error
}

// Writer streams pull request records as NDJSON. Safe for concurrent use.
type Writer struct {
	mu        sync.Mutex
	encoder   *json.Encoder
	count     int
	closeFunc func() error
}

// NewWriter creates an NDJSON writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{encoder: json.NewEncoder(w)}
}

// NewFileWriter creates an NDJSON writer backed by a file. The caller
// must call Close when done.
func NewFileWriter(filename string) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &Writer{
		encoder:   json.NewEncoder(file),
		closeFunc: file.Close,
	}, nil
}

// Write writes a single record as one NDJSON line.
func (w *Writer) Write(record github.PullRequestRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	w.count++
	return nil
}

// WriteAll writes every record, stopping at the first failure.
func (w *Writer) WriteAll(records []github.PullRequestRecord) error {
	for i := range records {
		if err := w.Write(records[i]); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close closes the underlying writer if it's a file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closeFunc != nil {
		return w.closeFunc()
	}
	return nil
}
