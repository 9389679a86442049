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

// Package output writes pull request records in NDJSON (Newline Delimited
// JSON) format. Each line is one complete record, so the output can be
// piped into jq or line-oriented tooling without buffering the full
// result set.
//
// The primary type is Writer, which provides thread-safe writing of
// records to an io.Writer or file. Records are flushed as they are
// written.
//
// Example usage:
//
//	w, err := output.NewFileWriter("pulls.ndjson")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	for _, record := range records {
//	    if err := w.Write(record); err != nil {
//	        log.Printf("Failed to write record: %v", err)
//	    }
//	}
package output
