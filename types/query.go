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

package types

// Op is a comparison operator applied by a query condition.
type Op string

const (
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
)

// IsValid reports whether the operator is one of the supported comparisons.
func (o Op) IsValid() bool {
	switch o {
	case OpEq, OpGt, OpGte, OpLt, OpLte:
		return true
	}
	return false
}

func (o Op) String() string { return string(o) }

// SQL returns the SQL comparison token for the operator. Unknown operators
// fall back to equality; callers validate with IsValid first.
func (o Op) SQL() string {
	switch o {
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	default:
		return "="
	}
}

// Condition narrows a result set to rows whose column compares to the value.
type Condition struct {
	Column string
	Op     Op
	Value  interface{}
}

// Eq builds an equality condition.
func Eq(column string, value interface{}) Condition {
	return Condition{Column: column, Op: OpEq, Value: value}
}

// Sort names a column and a direction for ordering.
type Sort struct {
	Column string
	Desc   bool
}

// FindManyArgs is the typed query structure consumed by the composer: optional
// per-column conditions, then skip and take applied strictly after filtering
// and sorting.
type FindManyArgs struct {
	Where  []Condition
	Skip   *int
	Take   *int
	SortBy *Sort
}

// Int returns a pointer to n, for Skip/Take literals.
func Int(n int) *int { return &n }

// Meta carries the total number of rows matching a query's filter.
type Meta struct {
	Count int `json:"count"`
}
