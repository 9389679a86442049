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

// Package giterror classifies errors coming back from the GitHub API.
//
// GitHub reports failures inconsistently across its REST and GraphQL
// surfaces: sometimes as HTTP status codes, sometimes as message text
// inside an otherwise successful response. The Inspector interface hides
// that inconsistency behind predicate methods (auth, not-found, rate
// limit, network) so the rest of the codebase can classify errors without
// string matching of its own.
package giterror
