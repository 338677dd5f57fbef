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

package dto

import (
	"time"

	"github.com/tomoncle/relations/model"
	"github.com/tomoncle/relations/types"
)

// OrderItem is the wire form of an order item. It carries two independent
// customer edges alongside the owning order edge, all as scalar ids.
type OrderItem struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	Order           *string   `json:"order,omitempty"`
	Quantity        *int32    `json:"quantity,omitempty"`
	Price           *float64  `json:"price,omitempty"`
	Customer        *string   `json:"customer,omitempty"`
	AnotherCustomer *string   `json:"anotherCustomer,omitempty"`
}

// OrderItemToWire converts a storage record to its wire form.
func OrderItemToWire(m *model.OrderItem) *OrderItem {
	return &OrderItem{
		ID:              m.ID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Order:           m.OrderID,
		Quantity:        m.Quantity,
		Price:           m.Price,
		Customer:        m.CustomerItemID,
		AnotherCustomer: m.AnotherCustomerID,
	}
}

// OrderItemCreateInput creates an order item. Reference fields name existing
// records by id; unresolvable references are dropped.
type OrderItemCreateInput struct {
	ID              *string    `json:"id,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
	Order           *string    `json:"order,omitempty"`
	Quantity        *int32     `json:"quantity,omitempty"`
	Price           *float64   `json:"price,omitempty"`
	Customer        *string    `json:"customer,omitempty"`
	AnotherCustomer *string    `json:"anotherCustomer,omitempty"`
}

// Record builds the storage record for the create. Reference fields are
// resolved by the service, not here.
func (in *OrderItemCreateInput) Record(now time.Time) *model.OrderItem {
	rec := &model.OrderItem{
		CreatedAt: now,
		UpdatedAt: now,
		Quantity:  in.Quantity,
		Price:     in.Price,
	}
	if in.ID != nil {
		rec.ID = *in.ID
	}
	if in.CreatedAt != nil {
		rec.CreatedAt = *in.CreatedAt
	}
	if in.UpdatedAt != nil {
		rec.UpdatedAt = *in.UpdatedAt
	}
	return rec
}

// OrderItemUpdateInput is a merge-on-present partial update. The customer
// edges are managed through the customer relation operations, not here.
type OrderItemUpdateInput struct {
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Order     *string    `json:"order,omitempty"`
	Quantity  *int32     `json:"quantity,omitempty"`
	Price     *float64   `json:"price,omitempty"`
}

// Apply copies only the present fields onto rec and returns the affected
// column names for a partial update.
func (in *OrderItemUpdateInput) Apply(rec *model.OrderItem) []string {
	var columns []string
	if in.CreatedAt != nil {
		rec.CreatedAt = *in.CreatedAt
		columns = append(columns, "created_at")
	}
	if in.UpdatedAt != nil {
		rec.UpdatedAt = *in.UpdatedAt
		columns = append(columns, "updated_at")
	}
	if in.Order != nil {
		rec.OrderID = in.Order
		columns = append(columns, "order_id")
	}
	if in.Quantity != nil {
		rec.Quantity = in.Quantity
		columns = append(columns, "quantity")
	}
	if in.Price != nil {
		rec.Price = in.Price
		columns = append(columns, "price")
	}
	return columns
}

// OrderItemWhereInput filters order items by equality on present fields.
type OrderItemWhereInput struct {
	ID              *string    `json:"id,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
	Order           *string    `json:"order,omitempty"`
	Quantity        *int32     `json:"quantity,omitempty"`
	Price           *float64   `json:"price,omitempty"`
	Customer        *string    `json:"customer,omitempty"`
	AnotherCustomer *string    `json:"anotherCustomer,omitempty"`
}

// Conditions converts the present fields into composer conditions.
func (w *OrderItemWhereInput) Conditions() []types.Condition {
	if w == nil {
		return nil
	}
	var conds []types.Condition
	if w.ID != nil {
		conds = append(conds, types.Eq("id", *w.ID))
	}
	if w.CreatedAt != nil {
		conds = append(conds, types.Eq("created_at", *w.CreatedAt))
	}
	if w.UpdatedAt != nil {
		conds = append(conds, types.Eq("updated_at", *w.UpdatedAt))
	}
	if w.Order != nil {
		conds = append(conds, types.Eq("order_id", *w.Order))
	}
	if w.Quantity != nil {
		conds = append(conds, types.Eq("quantity", *w.Quantity))
	}
	if w.Price != nil {
		conds = append(conds, types.Eq("price", *w.Price))
	}
	if w.Customer != nil {
		conds = append(conds, types.Eq("customer_item_id", *w.Customer))
	}
	if w.AnotherCustomer != nil {
		conds = append(conds, types.Eq("another_customer_id", *w.AnotherCustomer))
	}
	return conds
}
