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

package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSqlErrorMySQL(t *testing.T) {
	cases := []struct {
		number uint16
		want   SQLError
	}{
		{1050, ExistTableErr},
		{1062, DuplicateKeyErr},
		{1048, NotNullViolationErr},
		{1146, NoTableErr},
		{1452, ForeignKeyViolationErr},
		{9999, UnknownErr},
	}
	for _, c := range cases {
		is, kind := IsSqlError(&mysql.MySQLError{Number: c.number})
		assert.True(t, is)
		assert.Equal(t, c.want, kind)
	}
}

func TestIsSqlErrorByMessage(t *testing.T) {
	cases := []struct {
		msg  string
		want SQLError
	}{
		{"ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)", DuplicateKeyErr},
		{"UNIQUE constraint failed: customers.id", DuplicateKeyErr},
		{"no such table: customers", NoTableErr},
		{"ERROR: relation \"customers\" already exists (SQLSTATE 42P07)", ExistTableErr},
		{"NOT NULL constraint failed: customers.created_at", NotNullViolationErr},
		{"FOREIGN KEY constraint failed", ForeignKeyViolationErr},
	}
	for _, c := range cases {
		is, kind := IsSqlError(errors.New(c.msg))
		assert.True(t, is, c.msg)
		assert.Equal(t, c.want, kind, c.msg)
	}

	is, kind := IsSqlError(errors.New("connection refused"))
	assert.False(t, is)
	assert.Equal(t, UnknownErr, kind)

	is, _ = IsSqlError(nil)
	assert.False(t, is)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "file::memory:?cache=shared", sqliteDSN(""))
	assert.Equal(t, ":memory:", sqliteDSN(":memory:"))
	assert.Equal(t, "file:x?mode=memory&cache=shared", sqliteDSN("file:x?mode=memory&cache=shared"))
	assert.Equal(t, "app.db", sqliteDSN("app"))
}

func TestLoadConfigDefaultsAndFile(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Connection.Type)
	assert.True(t, cfg.Bootstrap.CreateTables)

	path := filepath.Join(t.TempDir(), "db.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
connection:
  type: postgres
  host: db.internal
  port: 5432
  dbname: relations
bootstrap:
  create_tables: true
  enable_foreign_key: true
`), 0o644))

	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Connection.Type)
	assert.Equal(t, "db.internal", cfg.Connection.Host)
	assert.Equal(t, 5432, cfg.Connection.Port)
	assert.True(t, cfg.Bootstrap.EnableForeignKey)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("DB_TYPE", "mysql")
	t.Setenv("DB_HOST", "env-host")
	t.Setenv("DB_PORT", "3307")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Connection.Type)
	assert.Equal(t, "env-host", cfg.Connection.Host)
	assert.Equal(t, 3307, cfg.Connection.Port)
}

func TestForeignKeyConstraintSQL(t *testing.T) {
	fk := ForeignKeyConstraint{
		Table:           "orders",
		Column:          "customer_id",
		ReferenceTable:  "customers",
		ReferenceColumn: "id",
		OnDelete:        "SET NULL",
	}
	assert.Equal(t, "fk_orders_customer_id", fk.GenerateConstraintName())
	assert.Equal(t,
		"ALTER TABLE orders ADD CONSTRAINT fk_orders_customer_id FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE SET NULL",
		fk.GenerateSQL())
}

func TestForeignKeyManagerDefaults(t *testing.T) {
	fkm := NewForeignKeyManager(nil)
	require.Empty(t, fkm.ValidateConstraints())

	itemFKs := fkm.GetConstraintsByTable("order_items")
	require.Len(t, itemFKs, 3)
	columns := make([]string, 0, len(itemFKs))
	for _, fk := range itemFKs {
		columns = append(columns, fk.Column)
		assert.Equal(t, "SET NULL", fk.OnDelete)
	}
	assert.ElementsMatch(t, []string{"order_id", "customer_item_id", "another_customer_id"}, columns)
}

func TestConfigurableForeignKeyManager(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
foreign_keys:
  - table: orders
    column: customer_id
    reference_table: customers
    reference_column: id
    on_delete: CASCADE
`), 0o644))

	fkm := NewConfigurableForeignKeyManager(nil, path)
	constraints := fkm.ListAllConstraints()
	require.Len(t, constraints, 1)
	assert.Equal(t, "CASCADE", constraints[0].OnDelete)

	// A missing file falls back to the code-defined set.
	fallback := NewConfigurableForeignKeyManager(nil, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Len(t, fallback.ListAllConstraints(), 4)
}

func TestManagerConnectAndBootstrap(t *testing.T) {
	cfg := DefaultConnectionConfig()
	cfg.DBName = "file:manager_test?mode=memory&cache=shared"
	cfg.HealthCheckInterval = 0
	cfg.SlowQueryTime = 0

	manager := NewManager(cfg)
	ctx := context.Background()
	require.NoError(t, manager.Connect(ctx))
	t.Cleanup(func() { _ = manager.Disconnect() })

	require.NoError(t, manager.Ping(ctx))
	require.NotNil(t, manager.GetDB())
	require.NotNil(t, manager.GetSQLDB())

	require.NoError(t, manager.Bootstrap(ctx, BootstrapConfig{CreateTables: true}))
	// Bootstrap is idempotent.
	require.NoError(t, manager.Bootstrap(ctx, BootstrapConfig{CreateTables: true}))

	status := manager.HealthCheck(ctx)
	assert.True(t, status.Healthy)
	assert.True(t, status.Connected)

	stats := manager.GetStats()
	assert.GreaterOrEqual(t, stats.OpenConns, 0)

	require.NoError(t, manager.Disconnect())
	require.Error(t, manager.Ping(ctx))
}

func TestManagerUnsupportedType(t *testing.T) {
	cfg := DefaultConnectionConfig()
	cfg.Type = "oracle"
	manager := NewManager(cfg)
	require.Error(t, manager.Connect(context.Background()))
}
