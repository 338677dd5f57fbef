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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/tomoncle/relations/database"
)

// testDB opens a private shared-cache in-memory SQLite database per test and
// bootstraps the schema. The health check loop stays off in tests.
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

func str(s string) *string { return &s }

func i32(n int32) *int32 { return &n }

func f64(v float64) *float64 { return &v }
