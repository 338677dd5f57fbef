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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/tomoncle/relations/model"
	"github.com/tomoncle/relations/types"
)

func seedOrder(t *testing.T, db *bun.DB, id string, customerID *string) {
	t.Helper()
	rec := &model.Order{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now(), CustomerID: customerID}
	_, err := db.NewInsert().Model(rec).Exec(context.Background())
	require.NoError(t, err)
}

func linkedOrders(t *testing.T, db *bun.DB, customerID string) []string {
	t.Helper()
	var ids []string
	err := db.NewSelect().Table(model.TableOrders).Column("id").
		Where("customer_id = ?", customerID).
		OrderExpr("id ASC").
		Scan(context.Background(), &ids)
	require.NoError(t, err)
	return ids
}

func TestReconcilerConnect(t *testing.T) {
	db := testDB(t)
	st := customerStore(db)
	r := NewReconciler(db)
	ctx := context.Background()

	seedCustomer(t, st, "c-1", "")
	seedOrder(t, db, "o-1", nil)
	seedOrder(t, db, "o-2", nil)

	require.NoError(t, r.Connect(ctx, model.CustomerOrders, "c-1", []string{"o-1", "ghost"}))
	require.Equal(t, []string{"o-1"}, linkedOrders(t, db, "c-1"))

	// Reconnecting a linked id only adds the new one.
	require.NoError(t, r.Connect(ctx, model.CustomerOrders, "c-1", []string{"o-1", "o-2"}))
	require.Equal(t, []string{"o-1", "o-2"}, linkedOrders(t, db, "c-1"))
}

func TestReconcilerConnectErrors(t *testing.T) {
	db := testDB(t)
	st := customerStore(db)
	r := NewReconciler(db)
	ctx := context.Background()

	seedCustomer(t, st, "c-1", "")

	err := r.Connect(ctx, model.CustomerOrders, "missing", []string{"o-1"})
	require.True(t, types.IsNotFound(err))

	err = r.Connect(ctx, model.CustomerOrders, "c-1", []string{"ghost"})
	require.True(t, types.IsNotFound(err))

	err = r.Connect(ctx, model.CustomerOrders, "c-1", nil)
	require.True(t, types.IsNotFound(err))
}

func TestReconcilerDisconnect(t *testing.T) {
	db := testDB(t)
	st := customerStore(db)
	r := NewReconciler(db)
	ctx := context.Background()

	seedCustomer(t, st, "c-1", "")
	seedCustomer(t, st, "c-2", "")
	owner := "c-1"
	other := "c-2"
	seedOrder(t, db, "o-1", &owner)
	seedOrder(t, db, "o-2", &other)

	// Only the owner's own links are cleared; unknown ids are ignored.
	require.NoError(t, r.Disconnect(ctx, model.CustomerOrders, "c-1", []string{"o-1", "o-2", "ghost"}))
	require.Empty(t, linkedOrders(t, db, "c-1"))
	require.Equal(t, []string{"o-2"}, linkedOrders(t, db, "c-2"))

	require.NoError(t, r.Disconnect(ctx, model.CustomerOrders, "c-1", nil))
}

func TestReconcilerReplace(t *testing.T) {
	db := testDB(t)
	st := customerStore(db)
	r := NewReconciler(db)
	ctx := context.Background()

	seedCustomer(t, st, "c-1", "")
	owner := "c-1"
	seedOrder(t, db, "o-1", &owner)
	seedOrder(t, db, "o-2", nil)
	seedOrder(t, db, "o-3", nil)

	require.NoError(t, r.Replace(ctx, model.CustomerOrders, "c-1", []string{"o-2", "o-3"}))
	require.Equal(t, []string{"o-2", "o-3"}, linkedOrders(t, db, "c-1"))

	// A replace that resolves to nothing is rejected rather than clearing.
	err := r.Replace(ctx, model.CustomerOrders, "c-1", []string{"ghost"})
	require.True(t, types.IsNotFound(err))
	require.Equal(t, []string{"o-2", "o-3"}, linkedOrders(t, db, "c-1"))
}

func TestReconcilerAssignClears(t *testing.T) {
	db := testDB(t)
	st := customerStore(db)
	r := NewReconciler(db)
	ctx := context.Background()

	seedCustomer(t, st, "c-1", "")
	owner := "c-1"
	seedOrder(t, db, "o-1", &owner)

	require.NoError(t, r.Assign(ctx, model.CustomerOrders, "c-1", nil))
	require.Empty(t, linkedOrders(t, db, "c-1"))
}
