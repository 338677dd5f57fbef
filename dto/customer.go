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

// Customer is the wire form of a customer record. Owned collections are id
// lists and appear only when the relation was loaded.
type Customer struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Name       *string   `json:"name,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Orders     []string  `json:"orders,omitempty"`
	OrderItems []string  `json:"orderItems,omitempty"`
}

// CustomerToWire converts a storage record to its wire form. It is total: an
// unloaded relation maps to an absent list, never a panic.
func CustomerToWire(m *model.Customer) *Customer {
	w := &Customer{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Name:      m.Name,
		Phone:     m.Phone,
	}
	if m.Orders != nil {
		w.Orders = collectIDs(m.Orders)
	}
	if m.OrderItems != nil {
		w.OrderItems = collectIDs(m.OrderItems)
	}
	return w
}

// CustomerCreateInput creates a customer. A nil ID lets the store assign one;
// nil timestamps default to the creation instant.
type CustomerCreateInput struct {
	ID         *string    `json:"id,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
	Name       *string    `json:"name,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
	Orders     []string   `json:"orders,omitempty"`
	OrderItems []string   `json:"orderItems,omitempty"`
}

// Record builds the storage record for the create, defaulting timestamps to
// now when absent.
func (in *CustomerCreateInput) Record(now time.Time) *model.Customer {
	rec := &model.Customer{
		CreatedAt: now,
		UpdatedAt: now,
		Name:      in.Name,
		Phone:     in.Phone,
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

// CustomerUpdateInput is a merge-on-present partial update. A non-nil Orders
// list replaces the customer's order edge set.
type CustomerUpdateInput struct {
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Name      *string    `json:"name,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	Orders    []string   `json:"orders,omitempty"`
}

// Apply copies only the present fields onto rec and returns the affected
// column names for a partial update.
func (in *CustomerUpdateInput) Apply(rec *model.Customer) []string {
	var columns []string
	if in.CreatedAt != nil {
		rec.CreatedAt = *in.CreatedAt
		columns = append(columns, "created_at")
	}
	if in.UpdatedAt != nil {
		rec.UpdatedAt = *in.UpdatedAt
		columns = append(columns, "updated_at")
	}
	if in.Name != nil {
		rec.Name = in.Name
		columns = append(columns, "name")
	}
	if in.Phone != nil {
		rec.Phone = in.Phone
		columns = append(columns, "phone")
	}
	return columns
}

// CustomerWhereInput filters customers by equality on present fields.
type CustomerWhereInput struct {
	ID        *string    `json:"id,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Name      *string    `json:"name,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
}

// Conditions converts the present fields into composer conditions.
func (w *CustomerWhereInput) Conditions() []types.Condition {
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
	if w.Name != nil {
		conds = append(conds, types.Eq("name", *w.Name))
	}
	if w.Phone != nil {
		conds = append(conds, types.Eq("phone", *w.Phone))
	}
	return conds
}

func collectIDs[T model.Record](recs []T) []string {
	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.RecordID())
	}
	return ids
}
