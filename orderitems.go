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
	"time"

	"github.com/uptrace/bun"

	"github.com/tomoncle/relations/dto"
	"github.com/tomoncle/relations/model"
	"github.com/tomoncle/relations/store"
	"github.com/tomoncle/relations/types"
)

// OrderItemService is the resource service for order items: CRUD plus getters
// for the three owning edges.
type OrderItemService struct {
	orderItems *store.Store[model.OrderItem]
	orders     *store.Store[model.Order]
	customers  *store.Store[model.Customer]
	res        resource[model.OrderItem]
}

// NewOrderItemService builds an order item service over an explicit handle.
func NewOrderItemService(db *bun.DB) *OrderItemService {
	orderItems := store.NewStore[model.OrderItem](db, model.TableOrderItems, model.OrderItemColumns)
	return &OrderItemService{
		orderItems: orderItems,
		orders:     store.NewStore[model.Order](db, model.TableOrders, model.OrderColumns),
		customers:  store.NewStore[model.Customer](db, model.TableCustomers, model.CustomerColumns),
		res:        resource[model.OrderItem]{store: orderItems},
	}
}

// Create inserts an order item. The three inline references are resolved
// first and silently left null when they name no existing record.
func (s *OrderItemService) Create(ctx context.Context, in *dto.OrderItemCreateInput) (*dto.OrderItem, error) {
	rec := in.Record(time.Now())

	orderID, err := resolveRef(ctx, s.orders, in.Order)
	if err != nil {
		return nil, err
	}
	rec.OrderID = orderID

	customerID, err := resolveRef(ctx, s.customers, in.Customer)
	if err != nil {
		return nil, err
	}
	rec.CustomerItemID = customerID

	anotherID, err := resolveRef(ctx, s.customers, in.AnotherCustomer)
	if err != nil {
		return nil, err
	}
	rec.AnotherCustomerID = anotherID

	if err := s.orderItems.Insert(ctx, rec); err != nil {
		return nil, err
	}
	return s.Get(ctx, rec.ID)
}

// Find lists order items through the composer.
func (s *OrderItemService) Find(ctx context.Context, args types.FindManyArgs) ([]*dto.OrderItem, error) {
	recs, err := s.orderItems.Select(ctx, args)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderItem, 0, len(recs))
	for _, rec := range recs {
		out = append(out, dto.OrderItemToWire(rec))
	}
	return out, nil
}

// Get reads one order item.
func (s *OrderItemService) Get(ctx context.Context, id string) (*dto.OrderItem, error) {
	rec, err := s.res.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.OrderItemToWire(rec), nil
}

// Update applies a merge-on-present partial update. A present order reference
// re-points the owning edge, nulling it when unresolvable.
func (s *OrderItemService) Update(ctx context.Context, id string, in *dto.OrderItemUpdateInput) (*dto.OrderItem, error) {
	rec := &model.OrderItem{ID: id}
	columns := in.Apply(rec)
	if in.Order != nil {
		orderID, err := resolveRef(ctx, s.orders, in.Order)
		if err != nil {
			return nil, err
		}
		rec.OrderID = orderID
	}
	if len(columns) > 0 {
		if err := s.res.update(ctx, id, rec, columns); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

// Delete removes one order item.
func (s *OrderItemService) Delete(ctx context.Context, id string) error {
	return s.orderItems.Delete(ctx, id)
}

// Meta counts the order items matching the filter.
func (s *OrderItemService) Meta(ctx context.Context, where *dto.OrderItemWhereInput) (*types.Meta, error) {
	return s.res.meta(ctx, where.Conditions())
}

// GetOrder reads the item's owning order. An item with no order reports the
// order as missing, not the item.
func (s *OrderItemService) GetOrder(ctx context.Context, id string) (*dto.Order, error) {
	rec, err := s.res.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.OrderID == nil {
		return nil, &types.NotFoundError{Resource: model.TableOrders}
	}
	order, err := s.orders.FindByID(ctx, *rec.OrderID, "OrderItems")
	if err != nil {
		return nil, err
	}
	return dto.OrderToWire(order), nil
}

// GetCustomer reads the customer behind the primary customer slot.
func (s *OrderItemService) GetCustomer(ctx context.Context, id string) (*dto.Customer, error) {
	rec, err := s.res.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.customerByRef(ctx, rec.CustomerItemID)
}

// GetAnotherCustomer reads the customer behind the secondary customer slot.
func (s *OrderItemService) GetAnotherCustomer(ctx context.Context, id string) (*dto.Customer, error) {
	rec, err := s.res.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.customerByRef(ctx, rec.AnotherCustomerID)
}

func (s *OrderItemService) customerByRef(ctx context.Context, ref *string) (*dto.Customer, error) {
	if ref == nil {
		return nil, &types.NotFoundError{Resource: model.TableCustomers}
	}
	customer, err := s.customers.FindByID(ctx, *ref, customerRelations...)
	if err != nil {
		return nil, err
	}
	return dto.CustomerToWire(customer), nil
}
