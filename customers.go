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

// customerRelations are the Bun relations loaded for wire output.
var customerRelations = []string{"Orders", "OrderItems"}

// CustomerService is the resource service for customers: CRUD plus relation
// management for the owned orders and order items collections.
type CustomerService struct {
	customers  *store.Store[model.Customer]
	orders     *store.Store[model.Order]
	orderItems *store.Store[model.OrderItem]
	res        resource[model.Customer]
	reconciler *store.Reconciler
}

// NewCustomerService builds a customer service over an explicit handle.
func NewCustomerService(db *bun.DB) *CustomerService {
	customers := store.NewStore[model.Customer](db, model.TableCustomers, model.CustomerColumns)
	return &CustomerService{
		customers:  customers,
		orders:     store.NewStore[model.Order](db, model.TableOrders, model.OrderColumns),
		orderItems: store.NewStore[model.OrderItem](db, model.TableOrderItems, model.OrderItemColumns),
		res:        resource[model.Customer]{store: customers},
		reconciler: store.NewReconciler(db),
	}
}

// Create inserts a customer and attaches any inline order and order item
// references, then re-reads the stored record.
func (s *CustomerService) Create(ctx context.Context, in *dto.CustomerCreateInput) (*dto.Customer, error) {
	rec := in.Record(time.Now())
	if err := s.customers.Insert(ctx, rec); err != nil {
		return nil, err
	}
	if in.Orders != nil {
		if err := s.reconciler.Assign(ctx, model.CustomerOrders, rec.ID, in.Orders); err != nil {
			return nil, err
		}
	}
	if in.OrderItems != nil {
		if err := s.reconciler.Assign(ctx, model.CustomerOrderItems, rec.ID, in.OrderItems); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, rec.ID)
}

// Find lists customers through the composer.
func (s *CustomerService) Find(ctx context.Context, args types.FindManyArgs) ([]*dto.Customer, error) {
	recs, err := s.customers.Select(ctx, args, customerRelations...)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.Customer, 0, len(recs))
	for _, rec := range recs {
		out = append(out, dto.CustomerToWire(rec))
	}
	return out, nil
}

// Get reads one customer with its relation id lists.
func (s *CustomerService) Get(ctx context.Context, id string) (*dto.Customer, error) {
	rec, err := s.res.get(ctx, id, customerRelations...)
	if err != nil {
		return nil, err
	}
	return dto.CustomerToWire(rec), nil
}

// Update applies a merge-on-present partial update. A present Orders list
// replaces the customer's order edge set.
func (s *CustomerService) Update(ctx context.Context, id string, in *dto.CustomerUpdateInput) (*dto.Customer, error) {
	rec := &model.Customer{ID: id}
	columns := in.Apply(rec)
	if len(columns) > 0 {
		if err := s.res.update(ctx, id, rec, columns); err != nil {
			return nil, err
		}
	}
	if in.Orders != nil {
		if err := s.reconciler.Assign(ctx, model.CustomerOrders, id, in.Orders); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

// Delete removes one customer.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	return s.customers.Delete(ctx, id)
}

// Meta counts the customers matching the filter.
func (s *CustomerService) Meta(ctx context.Context, where *dto.CustomerWhereInput) (*types.Meta, error) {
	return s.res.meta(ctx, where.Conditions())
}

// ConnectOrders links the orders to the customer.
func (s *CustomerService) ConnectOrders(ctx context.Context, id string, orderIDs []string) (*dto.Customer, error) {
	if err := s.reconciler.Connect(ctx, model.CustomerOrders, id, orderIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// DisconnectOrders unlinks the orders from the customer.
func (s *CustomerService) DisconnectOrders(ctx context.Context, id string, orderIDs []string) (*dto.Customer, error) {
	if err := s.reconciler.Disconnect(ctx, model.CustomerOrders, id, orderIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// UpdateOrders overwrites the customer's order set.
func (s *CustomerService) UpdateOrders(ctx context.Context, id string, orderIDs []string) (*dto.Customer, error) {
	if err := s.reconciler.Replace(ctx, model.CustomerOrders, id, orderIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// FindOrders lists the customer's orders through the composer.
func (s *CustomerService) FindOrders(ctx context.Context, id string, args types.FindManyArgs) ([]*dto.Order, error) {
	if err := s.requireCustomer(ctx, id); err != nil {
		return nil, err
	}
	args.Where = append(args.Where, types.Eq("customer_id", id))
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

// ConnectOrderItems links the order items to the customer.
func (s *CustomerService) ConnectOrderItems(ctx context.Context, id string, itemIDs []string) (*dto.Customer, error) {
	if err := s.reconciler.Connect(ctx, model.CustomerOrderItems, id, itemIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// DisconnectOrderItems unlinks the order items from the customer.
func (s *CustomerService) DisconnectOrderItems(ctx context.Context, id string, itemIDs []string) (*dto.Customer, error) {
	if err := s.reconciler.Disconnect(ctx, model.CustomerOrderItems, id, itemIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// UpdateOrderItems overwrites the customer's order item set.
func (s *CustomerService) UpdateOrderItems(ctx context.Context, id string, itemIDs []string) (*dto.Customer, error) {
	if err := s.reconciler.Replace(ctx, model.CustomerOrderItems, id, itemIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// FindOrderItems lists the customer's order items through the composer.
func (s *CustomerService) FindOrderItems(ctx context.Context, id string, args types.FindManyArgs) ([]*dto.OrderItem, error) {
	if err := s.requireCustomer(ctx, id); err != nil {
		return nil, err
	}
	args.Where = append(args.Where, types.Eq("customer_item_id", id))
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

func (s *CustomerService) requireCustomer(ctx context.Context, id string) error {
	ok, err := s.customers.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return &types.NotFoundError{Resource: model.TableCustomers, ID: id}
	}
	return nil
}
