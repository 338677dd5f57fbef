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

const TableOrders = "orders"

// Order is the storage record behind the orders table. CustomerID is nullable;
// orphan orders are permitted.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID         string     `bun:"id,pk"`
	CreatedAt  time.Time  `bun:"created_at,notnull"`
	UpdatedAt  time.Time  `bun:"updated_at,notnull"`
	Date       *time.Time `bun:"date"`
	CustomerID *string    `bun:"customer_id"`

	Customer   *Customer    `bun:"rel:belongs-to,join:customer_id=id"`
	OrderItems []*OrderItem `bun:"rel:has-many,join:id=order_id"`
}

func (o *Order) RecordID() string      { return o.ID }
func (o *Order) SetRecordID(id string) { o.ID = id }

// OrderColumns is the set of columns a query may filter or sort on.
var OrderColumns = columnSet("id", "created_at", "updated_at", "date", "customer_id")
