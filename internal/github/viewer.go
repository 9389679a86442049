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

	"github.com/shurcooL/graphql"

	pberrors "github.com/pullboardhq/pullboard/internal/errors"
)

// ViewerLogin resolves the login of the user the token belongs to, via the
// GraphQL viewer query. Used at startup when no username is configured:
// the reviewer predicate in the search query needs a login, and the token
// already identifies one.
func (c *SearchClient) ViewerLogin(ctx context.Context) (string, error) {
	var query struct {
		Viewer struct {
			Login graphql.String
		}
	}

	if err := c.gql.Query(ctx, &query, nil); err != nil {
		if c.inspector.IsAuthError(err) {
			return "", fmt.Errorf("failed to resolve viewer login: %w", pberrors.ErrInvalidToken)
		}
		return "", fmt.Errorf("failed to resolve viewer login: %w", err)
	}

	return string(query.Viewer.Login), nil
}
