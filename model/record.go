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

// Record is the minimal identity contract a storage record implements so the
// generic store can read and assign primary keys.
type Record interface {
	RecordID() string
	SetRecordID(id string)
}

// Association describes one FK-backed relation: the owning table, the child
// table that holds the foreign key, and the FK column on the child. Connect,
// disconnect, and replace always mutate the FK-holding side.
type Association struct {
	Name  string // collection name as the owner exposes it
	Owner string // owner table
	Child string // FK-holding table
	FK    string // FK column on the child table
}

var (
	// CustomerOrders links customers to orders through orders.customer_id.
	CustomerOrders = Association{Name: "orders", Owner: TableCustomers, Child: TableOrders, FK: "customer_id"}

	// CustomerOrderItems links customers to order items through the primary
	// customer FK slot, order_items.customer_item_id.
	CustomerOrderItems = Association{Name: "order_items", Owner: TableCustomers, Child: TableOrderItems, FK: "customer_item_id"}

	// OrderOrderItems links orders to order items through order_items.order_id.
	OrderOrderItems = Association{Name: "order_items", Owner: TableOrders, Child: TableOrderItems, FK: "order_id"}
)

func columnSet(columns ...string) map[string]bool {
	set := make(map[string]bool, len(columns))
	for _, c := range columns {
		set[c] = true
	}
	return set
}
