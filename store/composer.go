/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package store

import (
	"math"

	"github.com/uptrace/bun"

	"github.com/tomoncle/relations/types"
)

// ApplyWhere appends the conditions to the query. Every referenced column must
// be in the whitelist and every operator must be a supported comparison,
// otherwise the query is rejected with InvalidQueryError before it reaches the
// database.
func ApplyWhere(q *bun.SelectQuery, where []types.Condition, columns map[string]bool) (*bun.SelectQuery, error) {
	for _, c := range where {
		if !columns[c.Column] || !c.Op.IsValid() {
			return nil, &types.InvalidQueryError{Column: c.Column}
		}
		q = q.Where("? "+c.Op.SQL()+" ?", bun.Ident(c.Column), c.Value)
	}
	return q, nil
}

// ApplyFindMany composes filter, sort, and pagination onto the query. Skip and
// take apply strictly after filtering and sorting, and id ASC is always the
// final sort key so pages stay stable under equal sort values.
func ApplyFindMany(q *bun.SelectQuery, args types.FindManyArgs, columns map[string]bool) (*bun.SelectQuery, error) {
	q, err := ApplyWhere(q, args.Where, columns)
	if err != nil {
		return nil, err
	}
	if s := args.SortBy; s != nil {
		if !columns[s.Column] {
			return nil, &types.InvalidQueryError{Column: s.Column}
		}
		direction := "ASC"
		if s.Desc {
			direction = "DESC"
		}
		q = q.OrderExpr("? "+direction, bun.Ident(s.Column))
	}
	q = q.OrderExpr("? ASC", bun.Ident("id"))
	if args.Skip != nil {
		if args.Take == nil {
			// sqlite and mysql reject OFFSET without LIMIT.
			q = q.Limit(math.MaxInt32)
		}
		q = q.Offset(*args.Skip)
	}
	if args.Take != nil {
		q = q.Limit(*args.Take)
	}
	return q, nil
}
