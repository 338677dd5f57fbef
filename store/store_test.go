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
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/tomoncle/relations/database"
	"github.com/tomoncle/relations/model"
	"github.com/tomoncle/relations/types"
)

func testDB(t *testing.T) *bun.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	cfg := database.DefaultConnectionConfig()
	cfg.Type = "sqlite"
	cfg.DBName = "file:" + name + "?mode=memory&cache=shared"
	cfg.HealthCheckInterval = 0
	cfg.SlowQueryTime = 0

	manager := database.NewManager(cfg)
	ctx := context.Background()
	require.NoError(t, manager.Connect(ctx))
	require.NoError(t, manager.Bootstrap(ctx, database.BootstrapConfig{CreateTables: true}))
	t.Cleanup(func() { _ = manager.Disconnect() })

	return manager.GetDB()
}

func customerStore(db *bun.DB) *Store[model.Customer] {
	return NewStore[model.Customer](db, model.TableCustomers, model.CustomerColumns)
}

func seedCustomer(t *testing.T, st *Store[model.Customer], id, name string) *model.Customer {
	t.Helper()
	rec := &model.Customer{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if name != "" {
		rec.Name = &name
	}
	require.NoError(t, st.Insert(context.Background(), rec))
	return rec
}

func TestInsertAssignsUUID(t *testing.T) {
	st := customerStore(testDB(t))

	rec := &model.Customer{CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, st.Insert(context.Background(), rec))
	require.NotEmpty(t, rec.ID)
	_, err := uuid.Parse(rec.ID)
	require.NoError(t, err)
}

func TestInsertKeepsExplicitID(t *testing.T) {
	st := customerStore(testDB(t))

	seedCustomer(t, st, "c-1", "")
	err := st.Insert(context.Background(), &model.Customer{ID: "c-1", CreatedAt: time.Now(), UpdatedAt: time.Now()})
	require.True(t, types.IsConflict(err))
}

func TestFindByID(t *testing.T) {
	st := customerStore(testDB(t))
	seedCustomer(t, st, "c-1", "Ann")

	rec, err := st.FindByID(context.Background(), "c-1")
	require.NoError(t, err)
	require.Equal(t, "Ann", *rec.Name)

	_, err = st.FindByID(context.Background(), "missing")
	require.True(t, types.IsNotFound(err))
}

func TestSelectWhitelist(t *testing.T) {
	st := customerStore(testDB(t))
	ctx := context.Background()

	_, err := st.Select(ctx, types.FindManyArgs{
		Where: []types.Condition{types.Eq("secret", 1)},
	})
	require.True(t, types.IsInvalidQuery(err))

	_, err = st.Select(ctx, types.FindManyArgs{
		Where: []types.Condition{{Column: "name", Op: "like", Value: "x"}},
	})
	require.True(t, types.IsInvalidQuery(err))

	_, err = st.Select(ctx, types.FindManyArgs{
		SortBy: &types.Sort{Column: "secret"},
	})
	require.True(t, types.IsInvalidQuery(err))

	_, err = st.Count(ctx, []types.Condition{types.Eq("secret", 1)})
	require.True(t, types.IsInvalidQuery(err))
}

func TestSelectSortSkipTake(t *testing.T) {
	st := customerStore(testDB(t))
	ctx := context.Background()

	seedCustomer(t, st, "c-2", "b")
	seedCustomer(t, st, "c-1", "b")
	seedCustomer(t, st, "c-3", "a")

	recs, err := st.Select(ctx, types.FindManyArgs{SortBy: &types.Sort{Column: "name"}})
	require.NoError(t, err)
	require.Len(t, recs, 3)
	// Ties on name resolve by id.
	require.Equal(t, "c-3", recs[0].ID)
	require.Equal(t, "c-1", recs[1].ID)
	require.Equal(t, "c-2", recs[2].ID)

	recs, err = st.Select(ctx, types.FindManyArgs{
		SortBy: &types.Sort{Column: "name"},
		Skip:   types.Int(1),
		Take:   types.Int(1),
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "c-1", recs[0].ID)
}

func TestSelectSkipWithoutTake(t *testing.T) {
	st := customerStore(testDB(t))
	ctx := context.Background()

	seedCustomer(t, st, "c-1", "")
	seedCustomer(t, st, "c-2", "")
	seedCustomer(t, st, "c-3", "")

	recs, err := st.Select(ctx, types.FindManyArgs{Skip: types.Int(1)})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "c-2", recs[0].ID)
	require.Equal(t, "c-3", recs[1].ID)
}

func TestSelectEmptyIsNotNil(t *testing.T) {
	st := customerStore(testDB(t))

	recs, err := st.Select(context.Background(), types.FindManyArgs{})
	require.NoError(t, err)
	require.NotNil(t, recs)
	require.Empty(t, recs)
}

func TestUpdatePartialColumns(t *testing.T) {
	st := customerStore(testDB(t))
	ctx := context.Background()

	seedCustomer(t, st, "c-1", "before")
	phone := "555"
	rec := &model.Customer{ID: "c-1", Phone: &phone}
	require.NoError(t, st.Update(ctx, rec, []string{"phone"}))

	after, err := st.FindByID(ctx, "c-1")
	require.NoError(t, err)
	require.Equal(t, "before", *after.Name)
	require.Equal(t, "555", *after.Phone)
}

func TestUpdateNoRows(t *testing.T) {
	st := customerStore(testDB(t))

	name := "x"
	err := st.Update(context.Background(), &model.Customer{ID: "missing", Name: &name}, []string{"name"})
	require.ErrorIs(t, err, ErrNoRowsUpdated)
}

func TestUpdateNoColumnsIsNoop(t *testing.T) {
	st := customerStore(testDB(t))

	require.NoError(t, st.Update(context.Background(), &model.Customer{ID: "missing"}, nil))
}

func TestDeleteMissing(t *testing.T) {
	st := customerStore(testDB(t))

	err := st.Delete(context.Background(), "missing")
	require.True(t, types.IsNotFound(err))
}

func TestExists(t *testing.T) {
	st := customerStore(testDB(t))
	ctx := context.Background()

	seedCustomer(t, st, "c-1", "")
	ok, err := st.Exists(ctx, "c-1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = st.Exists(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSelectDriverFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db := bun.NewDB(mockDB, sqlitedialect.New())
	st := NewStore[model.Customer](db, model.TableCustomers, model.CustomerColumns)

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))
	_, err = st.Select(context.Background(), types.FindManyArgs{})

	var se *types.StorageError
	require.ErrorAs(t, err, &se)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDriverReportsZeroRows(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db := bun.NewDB(mockDB, sqlitedialect.New())
	st := NewStore[model.Customer](db, model.TableCustomers, model.CustomerColumns)

	mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 0))
	name := "x"
	err = st.Update(context.Background(), &model.Customer{ID: "c-1", Name: &name}, []string{"name"})
	require.ErrorIs(t, err, ErrNoRowsUpdated)
	require.NoError(t, mock.ExpectationsWereMet())
}
