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
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tomoncle/relations/dto"
	"github.com/tomoncle/relations/types"
)

func TestOrderCreateResolvesCustomer(t *testing.T) {
	db := testDB(t)
	customers := NewCustomerService(db)
	orders := NewOrderService(db)
	ctx := context.Background()

	c, err := customers.Create(ctx, &dto.CustomerCreateInput{Name: str("Hank")})
	require.NoError(t, err)

	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	o, err := orders.Create(ctx, &dto.OrderCreateInput{Date: &date, Customer: &c.ID})
	require.NoError(t, err)
	require.Equal(t, c.ID, *o.Customer)
	require.True(t, date.Equal(*o.Date))

	// An unresolvable reference is dropped, not an error.
	orphan, err := orders.Create(ctx, &dto.OrderCreateInput{Customer: str("ghost")})
	require.NoError(t, err)
	require.Nil(t, orphan.Customer)
}

func TestOrderCreateWithInlineItems(t *testing.T) {
	db := testDB(t)
	orders := NewOrderService(db)
	items := NewOrderItemService(db)
	ctx := context.Background()

	i1, err := items.Create(ctx, &dto.OrderItemCreateInput{Quantity: i32(2), Price: f64(9.5)})
	require.NoError(t, err)

	o, err := orders.Create(ctx, &dto.OrderCreateInput{OrderItems: []string{i1.ID, "ghost"}})
	require.NoError(t, err)
	require.Equal(t, []string{i1.ID}, o.OrderItems)
}

func TestOrderUpdateMergeAndRepoint(t *testing.T) {
	db := testDB(t)
	customers := NewCustomerService(db)
	orders := NewOrderService(db)
	ctx := context.Background()

	c1, err := customers.Create(ctx, &dto.CustomerCreateInput{})
	require.NoError(t, err)
	c2, err := customers.Create(ctx, &dto.CustomerCreateInput{})
	require.NoError(t, err)

	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	o, err := orders.Create(ctx, &dto.OrderCreateInput{Date: &date, Customer: &c1.ID})
	require.NoError(t, err)

	updated, err := orders.Update(ctx, o.ID, &dto.OrderUpdateInput{Customer: &c2.ID})
	require.NoError(t, err)
	require.Equal(t, c2.ID, *updated.Customer)
	require.True(t, date.Equal(*updated.Date))

	// Re-pointing at a missing customer nulls the edge.
	updated, err = orders.Update(ctx, o.ID, &dto.OrderUpdateInput{Customer: str("ghost")})
	require.NoError(t, err)
	require.Nil(t, updated.Customer)
}

func TestOrderUpdateMissing(t *testing.T) {
	db := testDB(t)
	orders := NewOrderService(db)

	date := time.Now()
	_, err := orders.Update(context.Background(), "missing", &dto.OrderUpdateInput{Date: &date})
	require.True(t, types.IsNotFound(err))
}

func TestOrderGetCustomer(t *testing.T) {
	db := testDB(t)
	customers := NewCustomerService(db)
	orders := NewOrderService(db)
	ctx := context.Background()

	c, err := customers.Create(ctx, &dto.CustomerCreateInput{Name: str("Iris")})
	require.NoError(t, err)
	o, err := orders.Create(ctx, &dto.OrderCreateInput{Customer: &c.ID})
	require.NoError(t, err)

	owner, err := orders.GetCustomer(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, c.ID, owner.ID)
	require.Contains(t, owner.Orders, o.ID)

	orphan, err := orders.Create(ctx, &dto.OrderCreateInput{})
	require.NoError(t, err)
	_, err = orders.GetCustomer(ctx, orphan.ID)
	require.True(t, types.IsNotFound(err))

	_, err = orders.GetCustomer(ctx, "missing")
	require.True(t, types.IsNotFound(err))
}

func TestOrderItemRelationOps(t *testing.T) {
	db := testDB(t)
	orders := NewOrderService(db)
	items := NewOrderItemService(db)
	ctx := context.Background()

	o, err := orders.Create(ctx, &dto.OrderCreateInput{})
	require.NoError(t, err)
	i1, err := items.Create(ctx, &dto.OrderItemCreateInput{Quantity: i32(1)})
	require.NoError(t, err)
	i2, err := items.Create(ctx, &dto.OrderItemCreateInput{Quantity: i32(2)})
	require.NoError(t, err)

	after, err := orders.ConnectOrderItems(ctx, o.ID, []string{i1.ID, i2.ID})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{i1.ID, i2.ID}, after.OrderItems)

	after, err = orders.UpdateOrderItems(ctx, o.ID, []string{i1.ID})
	require.NoError(t, err)
	require.Equal(t, []string{i1.ID}, after.OrderItems)

	after, err = orders.DisconnectOrderItems(ctx, o.ID, []string{i1.ID, "ghost"})
	require.NoError(t, err)
	require.Empty(t, after.OrderItems)

	found, err := orders.FindOrderItems(ctx, o.ID, types.FindManyArgs{})
	require.NoError(t, err)
	require.Empty(t, found)

	_, err = orders.FindOrderItems(ctx, "missing", types.FindManyArgs{})
	require.True(t, types.IsNotFound(err))
}

func TestOrderFindFilterAndSort(t *testing.T) {
	db := testDB(t)
	customers := NewCustomerService(db)
	orders := NewOrderService(db)
	ctx := context.Background()

	c, err := customers.Create(ctx, &dto.CustomerCreateInput{})
	require.NoError(t, err)

	dates := []time.Time{
		time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	for i := range dates {
		_, err := orders.Create(ctx, &dto.OrderCreateInput{Date: &dates[i], Customer: &c.ID})
		require.NoError(t, err)
	}

	found, err := orders.Find(ctx, types.FindManyArgs{
		Where:  []types.Condition{{Column: "date", Op: types.OpGte, Value: dates[2]}},
		SortBy: &types.Sort{Column: "date", Desc: true},
	})
	require.NoError(t, err)
	require.Len(t, found, 2)
	require.True(t, found[0].Date.After(*found[1].Date))

	meta, err := orders.Meta(ctx, &dto.OrderWhereInput{Customer: &c.ID})
	require.NoError(t, err)
	require.Equal(t, 3, meta.Count)
}
