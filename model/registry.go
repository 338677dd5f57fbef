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
	"sort"
	"sync"
)

// SQLModel pairs a model instance with a priority controlling bootstrap
// ordering (lower values first, so referenced tables exist before referrers).
type SQLModel struct {
	Instance interface{}
	Priority int
}

type modelRegistry struct {
	models []SQLModel
	mutex  sync.RWMutex
}

var defaultRegistry = &modelRegistry{}

func (r *modelRegistry) register(m SQLModel) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.models = append(r.models, m)
}

func (r *modelRegistry) all() []SQLModel {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]SQLModel, len(r.models))
	copy(result, r.models)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Priority < result[j].Priority
	})
	return result
}

// RegisterModel adds a model to the default registry.
func RegisterModel(instance interface{}, priority int) {
	defaultRegistry.register(SQLModel{Instance: instance, Priority: priority})
}

// RegisteredModels returns registered model instances in ascending priority.
func RegisteredModels() []interface{} {
	models := defaultRegistry.all()
	instances := make([]interface{}, len(models))
	for i, m := range models {
		instances[i] = m.Instance
	}
	return instances
}

func init() {
	RegisterModel((*Customer)(nil), 1)
	RegisterModel((*Order)(nil), 2)
	RegisterModel((*OrderItem)(nil), 3)
}
