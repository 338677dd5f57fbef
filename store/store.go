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

// Package store is the typed persistence layer: a generic record store over
// Bun plus the query composer and the relation reconciler.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/tomoncle/relations/database"
	"github.com/tomoncle/relations/model"
	"github.com/tomoncle/relations/types"
)

// ErrNoRowsUpdated signals that an update matched no rows. The caller decides
// whether the record vanished or the write lost a race, the store cannot tell.
var ErrNoRowsUpdated = errors.New("store: no rows updated")

// Store is a generic record store for one resource. T is the bare model
// struct, e.g. Store[model.Customer].
type Store[T any] struct {
	db       *bun.DB
	resource string
	columns  map[string]bool
}

// NewStore builds a store for one resource. resource is the table name used in
// error values, columns the filter/sort whitelist for the composer.
func NewStore[T any](db *bun.DB, resource string, columns map[string]bool) *Store[T] {
	return &Store[T]{db: db, resource: resource, columns: columns}
}

// Resource returns the table name this store serves.
func (s *Store[T]) Resource() string { return s.resource }

// FindByID loads one record, eagerly loading the named Bun relations.
func (s *Store[T]) FindByID(ctx context.Context, id string, relations ...string) (*T, error) {
	rec := new(T)
	q := s.db.NewSelect().Model(rec).Where("id = ?", id)
	for _, rel := range relations {
		q = q.Relation(rel)
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &types.NotFoundError{Resource: s.resource, ID: id}
		}
		return nil, &types.StorageError{Op: "select " + s.resource, Err: err}
	}
	return rec, nil
}

// Select runs a composed listing. An empty result is an empty slice, not nil.
func (s *Store[T]) Select(ctx context.Context, args types.FindManyArgs, relations ...string) ([]*T, error) {
	recs := make([]*T, 0)
	q := s.db.NewSelect().Model(&recs)
	for _, rel := range relations {
		q = q.Relation(rel)
	}
	q, err := ApplyFindMany(q, args, s.columns)
	if err != nil {
		return nil, err
	}
	if err := q.Scan(ctx); err != nil {
		return nil, &types.StorageError{Op: "select " + s.resource, Err: err}
	}
	return recs, nil
}

// Count returns the number of rows matching the conditions. Pagination and
// sorting never apply here.
func (s *Store[T]) Count(ctx context.Context, where []types.Condition) (int, error) {
	q := s.db.NewSelect().Model((*T)(nil))
	q, err := ApplyWhere(q, where, s.columns)
	if err != nil {
		return 0, err
	}
	n, err := q.Count(ctx)
	if err != nil {
		return 0, &types.StorageError{Op: "count " + s.resource, Err: err}
	}
	return n, nil
}

// Exists reports whether a row with the id is present.
func (s *Store[T]) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := s.db.NewSelect().Model((*T)(nil)).Where("id = ?", id).Exists(ctx)
	if err != nil {
		return false, &types.StorageError{Op: "select " + s.resource, Err: err}
	}
	return ok, nil
}

// Insert writes a new record, assigning a UUID when the record carries no id.
// A duplicate key surfaces as ConflictError.
func (s *Store[T]) Insert(ctx context.Context, rec *T) error {
	id := ""
	if r, ok := any(rec).(model.Record); ok {
		if r.RecordID() == "" {
			r.SetRecordID(uuid.NewString())
		}
		id = r.RecordID()
	}
	if _, err := s.db.NewInsert().Model(rec).Exec(ctx); err != nil {
		if is, kind := database.IsSqlError(err); is && kind == database.DuplicateKeyErr {
			return &types.ConflictError{Resource: s.resource, ID: id}
		}
		return &types.StorageError{Op: "insert " + s.resource, Err: err}
	}
	return nil
}

// Update writes only the named columns of the record, matched by primary key.
// Zero affected rows surfaces as ErrNoRowsUpdated.
func (s *Store[T]) Update(ctx context.Context, rec *T, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	res, err := s.db.NewUpdate().Model(rec).Column(columns...).WherePK().Exec(ctx)
	if err != nil {
		return &types.StorageError{Op: "update " + s.resource, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &types.StorageError{Op: "update " + s.resource, Err: err}
	}
	if n == 0 {
		return ErrNoRowsUpdated
	}
	return nil
}

// Delete removes one record by id. Zero affected rows surfaces as
// NotFoundError.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	res, err := s.db.NewDelete().Model((*T)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return &types.StorageError{Op: "delete " + s.resource, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &types.StorageError{Op: "delete " + s.resource, Err: err}
	}
	if n == 0 {
		return &types.NotFoundError{Resource: s.resource, ID: id}
	}
	return nil
}
