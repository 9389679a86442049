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
	"fmt"
	"strings"
)

// ResolveRepository derives a repository descriptor from a pull request's
// repository_url field, which has the form .../repos/{owner}/{repo}. The
// search API does not embed a repository object, so this reconstruction is
// the only source of repository information for a search result.
//
// The owner login comes from the URL, never from the PR author: a PR
// author is not necessarily the repo owner. The author is used only as a
// structural stand-in for the non-login owner fields. A repository_url
// that does not yield both an owner and a name is rejected with an error
// rather than degraded into a nonsensical descriptor.
func ResolveRepository(repositoryURL string, author User) (Repository, error) {
	parts := strings.Split(strings.TrimRight(repositoryURL, "/"), "/")
	if len(parts) < 2 {
		return Repository{}, fmt.Errorf("malformed repository url %q: want .../{owner}/{repo}", repositoryURL)
	}

	name := parts[len(parts)-1]
	ownerLogin := parts[len(parts)-2]
	if name == "" || ownerLogin == "" {
		return Repository{}, fmt.Errorf("malformed repository url %q: empty owner or name", repositoryURL)
	}

	owner := author
	owner.Login = ownerLogin

	return Repository{
		ID:       0, // no authoritative source; never an identity key
		Name:     name,
		FullName: ownerLogin + "/" + name,
		HTMLURL:  "https://github.com/" + ownerLogin + "/" + name,
		Owner:    owner,
	}, nil
}
