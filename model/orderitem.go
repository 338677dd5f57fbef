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

const TableOrderItems = "order_items"

// OrderItem is the storage record behind the order_items table. It carries two
// independent Customer FK slots: customer_item_id (primary) and
// another_customer_id (secondary). Both are maintained; they are distinct
// associations, not aliases.
type OrderItem struct {
	bun.BaseModel `bun:"table:order_items,alias:oi"`

	ID                string    `bun:"id,pk"`
	CreatedAt         time.Time `bun:"created_at,notnull"`
	UpdatedAt         time.Time `bun:"updated_at,notnull"`
	OrderID           *string   `bun:"order_id"`
	Quantity          *int32    `bun:"quantity"`
	Price             *float64  `bun:"price"`
	CustomerItemID    *string   `bun:"customer_item_id"`
	AnotherCustomerID *string   `bun:"another_customer_id"`

	Order           *Order    `bun:"rel:belongs-to,join:order_id=id"`
	Customer        *Customer `bun:"rel:belongs-to,join:customer_item_id=id"`
	AnotherCustomer *Customer `bun:"rel:belongs-to,join:another_customer_id=id"`
}

func (i *OrderItem) RecordID() string      { return i.ID }
func (i *OrderItem) SetRecordID(id string) { i.ID = id }

// OrderItemColumns is the set of columns a query may filter or sort on.
var OrderItemColumns = columnSet(
	"id", "created_at", "updated_at",
	"order_id", "quantity", "price",
	"customer_item_id", "another_customer_id",
)
