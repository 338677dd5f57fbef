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

// Order is the wire form of an order record. Customer carries the owning
// customer id as a scalar, never an embedded object.
type Order struct {
	ID         string     `json:"id"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Date       *time.Time `json:"date,omitempty"`
	Customer   *string    `json:"customer,omitempty"`
	OrderItems []string   `json:"orderItems,omitempty"`
}

// OrderToWire converts a storage record to its wire form.
func OrderToWire(m *model.Order) *Order {
	w := &Order{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Date:      m.Date,
		Customer:  m.CustomerID,
	}
	if m.OrderItems != nil {
		w.OrderItems = collectIDs(m.OrderItems)
	}
	return w
}

// OrderCreateInput creates an order. Customer and OrderItems reference
// existing records by id; unresolvable references are dropped.
type OrderCreateInput struct {
	ID         *string    `json:"id,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	Customer   *string    `json:"customer,omitempty"`
	OrderItems []string   `json:"orderItems,omitempty"`
}

// Record builds the storage record for the create. The Customer and
// OrderItems references are resolved by the service, not here.
func (in *OrderCreateInput) Record(now time.Time) *model.Order {
	rec := &model.Order{
		CreatedAt: now,
		UpdatedAt: now,
		Date:      in.Date,
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

// OrderUpdateInput is a merge-on-present partial update. A present Customer
// re-points the owning edge.
type OrderUpdateInput struct {
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	Customer  *string    `json:"customer,omitempty"`
}

// Apply copies only the present fields onto rec and returns the affected
// column names for a partial update.
func (in *OrderUpdateInput) Apply(rec *model.Order) []string {
	var columns []string
	if in.CreatedAt != nil {
		rec.CreatedAt = *in.CreatedAt
		columns = append(columns, "created_at")
	}
	if in.UpdatedAt != nil {
		rec.UpdatedAt = *in.UpdatedAt
		columns = append(columns, "updated_at")
	}
	if in.Date != nil {
		rec.Date = in.Date
		columns = append(columns, "date")
	}
	if in.Customer != nil {
		rec.CustomerID = in.Customer
		columns = append(columns, "customer_id")
	}
	return columns
}

// OrderWhereInput filters orders by equality on present fields. Customer
// matches the owning customer id.
type OrderWhereInput struct {
	ID        *string    `json:"id,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	Customer  *string    `json:"customer,omitempty"`
}

// Conditions converts the present fields into composer conditions.
func (w *OrderWhereInput) Conditions() []types.Condition {
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
	if w.Date != nil {
		conds = append(conds, types.Eq("date", *w.Date))
	}
	if w.Customer != nil {
		conds = append(conds, types.Eq("customer_id", *w.Customer))
	}
	return conds
}
