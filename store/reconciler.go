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
	"context"
	"errors"

	"github.com/uptrace/bun"

	"github.com/tomoncle/relations/model"
	"github.com/tomoncle/relations/types"
)

// Reconciler mutates FK-backed relations by set difference. Every operation is
// one read-compute-write sequence inside a single transaction: resolve the
// candidate ids, read the currently linked set, and issue the minimal UPDATEs
// against the FK-holding side.
type Reconciler struct {
	db *bun.DB
}

// NewReconciler builds a reconciler over the handle.
func NewReconciler(db *bun.DB) *Reconciler {
	return &Reconciler{db: db}
}

// Connect links the ids to the owner. The union is idempotent: already-linked
// ids are skipped, unknown ids are dropped during resolution, and an empty
// resolved set is NotFoundError.
func (r *Reconciler) Connect(ctx context.Context, assoc model.Association, ownerID string, ids []string) error {
	return r.run(ctx, assoc, func(ctx context.Context, tx bun.Tx) error {
		if err := r.requireOwner(ctx, tx, assoc, ownerID); err != nil {
			return err
		}
		resolved, err := r.resolveIDs(ctx, tx, assoc, ids)
		if err != nil {
			return err
		}
		if len(resolved) == 0 {
			return &types.NotFoundError{Resource: assoc.Child}
		}
		linked, err := r.linkedIDs(ctx, tx, assoc, ownerID)
		if err != nil {
			return err
		}
		return r.setOwner(ctx, tx, assoc, ownerID, difference(resolved, linked))
	})
}

// Disconnect unlinks the ids from the owner. Ids that are unknown or linked
// elsewhere are ignored.
func (r *Reconciler) Disconnect(ctx context.Context, assoc model.Association, ownerID string, ids []string) error {
	return r.run(ctx, assoc, func(ctx context.Context, tx bun.Tx) error {
		if err := r.requireOwner(ctx, tx, assoc, ownerID); err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		_, err := tx.NewUpdate().Table(assoc.Child).
			Set("? = NULL", bun.Ident(assoc.FK)).
			Where("? = ?", bun.Ident(assoc.FK), ownerID).
			Where("id IN (?)", bun.In(ids)).
			Exec(ctx)
		return err
	})
}

// Replace overwrites the owner's linked set with the resolved ids. An empty
// resolved set is NotFoundError even when the caller intends to clear; Assign
// is the tolerant variant.
func (r *Reconciler) Replace(ctx context.Context, assoc model.Association, ownerID string, ids []string) error {
	return r.run(ctx, assoc, func(ctx context.Context, tx bun.Tx) error {
		if err := r.requireOwner(ctx, tx, assoc, ownerID); err != nil {
			return err
		}
		resolved, err := r.resolveIDs(ctx, tx, assoc, ids)
		if err != nil {
			return err
		}
		if len(resolved) == 0 {
			return &types.NotFoundError{Resource: assoc.Child}
		}
		return r.overwrite(ctx, tx, assoc, ownerID, resolved)
	})
}

// Assign overwrites the owner's linked set like Replace but tolerates an empty
// resolved set, clearing every link. Create and update paths use this form.
func (r *Reconciler) Assign(ctx context.Context, assoc model.Association, ownerID string, ids []string) error {
	return r.run(ctx, assoc, func(ctx context.Context, tx bun.Tx) error {
		if err := r.requireOwner(ctx, tx, assoc, ownerID); err != nil {
			return err
		}
		resolved, err := r.resolveIDs(ctx, tx, assoc, ids)
		if err != nil {
			return err
		}
		return r.overwrite(ctx, tx, assoc, ownerID, resolved)
	})
}

func (r *Reconciler) run(ctx context.Context, assoc model.Association, fn func(context.Context, bun.Tx) error) error {
	err := r.db.RunInTx(ctx, nil, fn)
	return wrapStorage("reconcile "+assoc.Owner+"."+assoc.Name, err)
}

func (r *Reconciler) requireOwner(ctx context.Context, tx bun.Tx, assoc model.Association, ownerID string) error {
	ok, err := tx.NewSelect().Table(assoc.Owner).Where("id = ?", ownerID).Exists(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return &types.NotFoundError{Resource: assoc.Owner, ID: ownerID}
	}
	return nil
}

func (r *Reconciler) resolveIDs(ctx context.Context, tx bun.Tx, assoc model.Association, ids []string) ([]string, error) {
	resolved := make([]string, 0, len(ids))
	if len(ids) == 0 {
		return resolved, nil
	}
	err := tx.NewSelect().Table(assoc.Child).Column("id").
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx, &resolved)
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

func (r *Reconciler) linkedIDs(ctx context.Context, tx bun.Tx, assoc model.Association, ownerID string) ([]string, error) {
	var linked []string
	err := tx.NewSelect().Table(assoc.Child).Column("id").
		Where("? = ?", bun.Ident(assoc.FK), ownerID).
		Scan(ctx, &linked)
	if err != nil {
		return nil, err
	}
	return linked, nil
}

func (r *Reconciler) setOwner(ctx context.Context, tx bun.Tx, assoc model.Association, ownerID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := tx.NewUpdate().Table(assoc.Child).
		Set("? = ?", bun.Ident(assoc.FK), ownerID).
		Where("id IN (?)", bun.In(ids)).
		Exec(ctx)
	return err
}

func (r *Reconciler) overwrite(ctx context.Context, tx bun.Tx, assoc model.Association, ownerID string, resolved []string) error {
	unlink := tx.NewUpdate().Table(assoc.Child).
		Set("? = NULL", bun.Ident(assoc.FK)).
		Where("? = ?", bun.Ident(assoc.FK), ownerID)
	if len(resolved) > 0 {
		unlink = unlink.Where("id NOT IN (?)", bun.In(resolved))
	}
	if _, err := unlink.Exec(ctx); err != nil {
		return err
	}
	return r.setOwner(ctx, tx, assoc, ownerID, resolved)
}

func difference(a, b []string) []string {
	drop := make(map[string]bool, len(b))
	for _, id := range b {
		drop[id] = true
	}
	out := make([]string, 0, len(a))
	for _, id := range a {
		if !drop[id] {
			out = append(out, id)
		}
	}
	return out
}

// wrapStorage classifies an error from a reconciliation: taxonomy errors pass
// through untouched, anything else is a storage failure.
func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	if types.IsNotFound(err) || types.IsInvalidQuery(err) || types.IsConflict(err) {
		return err
	}
	var se *types.StorageError
	if errors.As(err, &se) {
		return err
	}
	return &types.StorageError{Op: op, Err: err}
}
