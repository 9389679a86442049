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
	"fmt"
)

// FetchAllPullRequests drives the client page by page and returns the
// merged, repository-annotated result list in API order. Pages are fetched
// strictly sequentially: the stopping rule depends on the cumulative count,
// so pages cannot be fetched concurrently without knowing total_count
// upfront.
//
// The loop stops when a page comes back empty, when a page is shorter than
// the requested page size, or when the accumulated count reaches the
// page's reported total_count. The search API silently caps total servable
// matches, so total_count can overstate what will actually be served; the
// short-page and empty-page rules terminate in that case, with
// maxSearchPages as a final guard.
//
// The context is checked before every page fetch. Any page error fails the
// whole retrieval; no partial accumulation is returned.
func FetchAllPullRequests(ctx context.Context, client Client, opts FetchOptions) ([]PullRequestRecord, error) {
	var records []PullRequestRecord

	for page := 1; page <= maxSearchPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		searchPage, err := client.FetchPage(ctx, page, opts)
		if err != nil {
			return nil, err
		}

		if len(searchPage.Items) == 0 {
			break
		}

		for _, item := range searchPage.Items {
			repo, err := ResolveRepository(item.RepositoryURL, item.User)
			if err != nil {
				return nil, fmt.Errorf("pull request #%d: %w", item.Number, err)
			}
			records = append(records, PullRequestRecord{PullRequest: item, Repository: repo})
		}

		if len(searchPage.Items) < searchPageSize || len(records) >= searchPage.TotalCount {
			break
		}
	}

	return records, nil
}
