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
	"fmt"

	"github.com/uptrace/bun"

	"github.com/tomoncle/relations/model"
)

// runBootstrap creates the registered tables in priority order and applies
// the configured foreign keys. Existing tables are tolerated so bootstrap is
// safe to run on every startup.
func runBootstrap(ctx context.Context, db *bun.DB, cfg BootstrapConfig, logger Logger) error {
	if cfg.CreateTables {
		if err := createTables(ctx, db, logger); err != nil {
			return err
		}
	}

	if cfg.EnableForeignKey {
		var fkm *ForeignKeyManager
		if cfg.ForeignKeyFile != "" {
			fkm = NewConfigurableForeignKeyManager(logger, cfg.ForeignKeyFile)
		} else {
			fkm = NewForeignKeyManager(logger)
		}
		if errs := fkm.ValidateConstraints(); len(errs) > 0 {
			return fmt.Errorf("invalid foreign key constraints: %v", errs)
		}
		if err := fkm.AddAllForeignKeys(ctx, db); err != nil {
			return err
		}
	}

	if logger != nil {
		logger.Info("Database bootstrap completed")
	}
	return nil
}

func createTables(ctx context.Context, db *bun.DB, logger Logger) error {
	for _, instance := range model.RegisteredModels() {
		_, err := db.NewCreateTable().
			Model(instance).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			if is, kind := IsSqlError(err); is && kind == ExistTableErr {
				continue
			}
			return fmt.Errorf("failed to create table for %T: %w", instance, err)
		}
		if logger != nil {
			logger.Debug("Table ready", "model", fmt.Sprintf("%T", instance))
		}
	}
	return nil
}
