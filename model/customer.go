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

package model

import (
	"time"

	"github.com/uptrace/bun"
)

const TableCustomers = "customers"

// Customer is the storage record behind the customers table.
type Customer struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	ID        string    `bun:"id,pk"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
	Name      *string   `bun:"name"`
	Phone     *string   `bun:"phone"`

	Orders     []*Order     `bun:"rel:has-many,join:id=customer_id"`
	OrderItems []*OrderItem `bun:"rel:has-many,join:id=customer_item_id"`
}

func (c *Customer) RecordID() string      { return c.ID }
func (c *Customer) SetRecordID(id string) { c.ID = id }

// CustomerColumns is the set of columns a query may filter or sort on.
var CustomerColumns = columnSet("id", "created_at", "updated_at", "name", "phone")
