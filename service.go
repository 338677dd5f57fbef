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

package relations

import (
	"context"
	"errors"

	"github.com/tomoncle/relations/store"
	"github.com/tomoncle/relations/types"
)

// resource is the shared shape behind the three services: identity reads
// through the composer, partial updates with conflict translation, and
// filter-only counts.
type resource[T any] struct {
	store *store.Store[T]
}

// get reads one record through the same composed path Find uses, with an
// identity filter.
func (r *resource[T]) get(ctx context.Context, id string, relations ...string) (*T, error) {
	args := types.FindManyArgs{
		Where: []types.Condition{types.Eq("id", id)},
		Take:  types.Int(1),
	}
	recs, err := r.store.Select(ctx, args, relations...)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, &types.NotFoundError{Resource: r.store.Resource(), ID: id}
	}
	return recs[0], nil
}

// update writes the named columns and translates the zero-rows signal: the
// record either vanished (not found) or the write lost a race (conflict).
func (r *resource[T]) update(ctx context.Context, id string, rec *T, columns []string) error {
	err := r.store.Update(ctx, rec, columns)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNoRowsUpdated) {
		return err
	}
	ok, existsErr := r.store.Exists(ctx, id)
	if existsErr != nil {
		return existsErr
	}
	if !ok {
		return &types.NotFoundError{Resource: r.store.Resource(), ID: id}
	}
	return &types.ConflictError{Resource: r.store.Resource(), ID: id}
}

// meta counts the rows matching the filter. Pagination and sorting never
// change the count.
func (r *resource[T]) meta(ctx context.Context, where []types.Condition) (*types.Meta, error) {
	n, err := r.store.Count(ctx, where)
	if err != nil {
		return nil, err
	}
	return &types.Meta{Count: n}, nil
}

// resolveRef checks a scalar reference against its store. Unresolvable
// references come back nil and are silently dropped by create paths.
func resolveRef[T any](ctx context.Context, st *store.Store[T], id *string) (*string, error) {
	if id == nil {
		return nil, nil
	}
	ok, err := st.Exists(ctx, *id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return id, nil
}
