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

// OrderService is the resource service for orders: CRUD plus relation
// management for the owned order items collection and the owning customer.
type OrderService struct {
	orders     *store.Store[model.Order]
	customers  *store.Store[model.Customer]
	orderItems *store.Store[model.OrderItem]
	res        resource[model.Order]
	reconciler *store.Reconciler
}

// NewOrderService builds an order service over an explicit handle.
func NewOrderService(db *bun.DB) *OrderService {
	orders := store.NewStore[model.Order](db, model.TableOrders, model.OrderColumns)
	return &OrderService{
		orders:     orders,
		customers:  store.NewStore[model.Customer](db, model.TableCustomers, model.CustomerColumns),
		orderItems: store.NewStore[model.OrderItem](db, model.TableOrderItems, model.OrderItemColumns),
		res:        resource[model.Order]{store: orders},
		reconciler: store.NewReconciler(db),
	}
}

// Create inserts an order. The inline customer reference is resolved first
// and silently left null when it names no existing customer; inline order
// item references are attached after the insert.
func (s *OrderService) Create(ctx context.Context, in *dto.OrderCreateInput) (*dto.Order, error) {
	rec := in.Record(time.Now())
	customerID, err := resolveRef(ctx, s.customers, in.Customer)
	if err != nil {
		return nil, err
	}
	rec.CustomerID = customerID
	if err := s.orders.Insert(ctx, rec); err != nil {
		return nil, err
	}
	if in.OrderItems != nil {
		if err := s.reconciler.Assign(ctx, model.OrderOrderItems, rec.ID, in.OrderItems); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, rec.ID)
}

// Find lists orders through the composer.
func (s *OrderService) Find(ctx context.Context, args types.FindManyArgs) ([]*dto.Order, error) {
	recs, err := s.orders.Select(ctx, args, "OrderItems")
	if err != nil {
		return nil, err
	}
	out := make([]*dto.Order, 0, len(recs))
	for _, rec := range recs {
		out = append(out, dto.OrderToWire(rec))
	}
	return out, nil
}

// Get reads one order with its order item id list.
func (s *OrderService) Get(ctx context.Context, id string) (*dto.Order, error) {
	rec, err := s.res.get(ctx, id, "OrderItems")
	if err != nil {
		return nil, err
	}
	return dto.OrderToWire(rec), nil
}

// Update applies a merge-on-present partial update. A present customer
// reference re-points the owning edge, nulling it when unresolvable.
func (s *OrderService) Update(ctx context.Context, id string, in *dto.OrderUpdateInput) (*dto.Order, error) {
	rec := &model.Order{ID: id}
	columns := in.Apply(rec)
	if in.Customer != nil {
		customerID, err := resolveRef(ctx, s.customers, in.Customer)
		if err != nil {
			return nil, err
		}
		rec.CustomerID = customerID
	}
	if len(columns) > 0 {
		if err := s.res.update(ctx, id, rec, columns); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

// Delete removes one order.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}

// Meta counts the orders matching the filter.
func (s *OrderService) Meta(ctx context.Context, where *dto.OrderWhereInput) (*types.Meta, error) {
	return s.res.meta(ctx, where.Conditions())
}

// GetCustomer reads the order's owning customer. An order with no customer
// reports the customer as missing, not the order.
func (s *OrderService) GetCustomer(ctx context.Context, id string) (*dto.Customer, error) {
	rec, err := s.res.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.CustomerID == nil {
		return nil, &types.NotFoundError{Resource: model.TableCustomers}
	}
	customer, err := s.customers.FindByID(ctx, *rec.CustomerID, customerRelations...)
	if err != nil {
		return nil, err
	}
	return dto.CustomerToWire(customer), nil
}

// ConnectOrderItems links the order items to the order.
func (s *OrderService) ConnectOrderItems(ctx context.Context, id string, itemIDs []string) (*dto.Order, error) {
	if err := s.reconciler.Connect(ctx, model.OrderOrderItems, id, itemIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// DisconnectOrderItems unlinks the order items from the order.
func (s *OrderService) DisconnectOrderItems(ctx context.Context, id string, itemIDs []string) (*dto.Order, error) {
	if err := s.reconciler.Disconnect(ctx, model.OrderOrderItems, id, itemIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// UpdateOrderItems overwrites the order's order item set.
func (s *OrderService) UpdateOrderItems(ctx context.Context, id string, itemIDs []string) (*dto.Order, error) {
	if err := s.reconciler.Replace(ctx, model.OrderOrderItems, id, itemIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// FindOrderItems lists the order's order items through the composer.
func (s *OrderService) FindOrderItems(ctx context.Context, id string, args types.FindManyArgs) ([]*dto.OrderItem, error) {
	ok, err := s.orders.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &types.NotFoundError{Resource: model.TableOrders, ID: id}
	}
	args.Where = append(args.Where, types.Eq("order_id", id))
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
